// Package entity defines the employee record and its attendance.
package entity

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Attendance maps a calendar day to present (true) or absent (false).
// A missing day means no record, which is not the same as absent.
type Attendance map[civil.Date]bool

// Clone returns an independent copy. A nil map clones to an empty one.
func (a Attendance) Clone() Attendance {
	out := make(Attendance, len(a))
	for d, v := range a {
		out[d] = v
	}
	return out
}

// Strings returns the attendance keyed by YYYY-MM-DD, the stored form.
func (a Attendance) Strings() map[string]bool {
	out := make(map[string]bool, len(a))
	for d, v := range a {
		out[d.String()] = v
	}
	return out
}

// AttendanceFromStrings parses YYYY-MM-DD keys. The first bad key fails the
// whole map.
func AttendanceFromStrings(m map[string]bool) (Attendance, error) {
	out := make(Attendance, len(m))
	for k, v := range m {
		d, err := civil.ParseDate(k)
		if err != nil {
			return nil, err
		}
		out[d] = v
	}
	return out, nil
}

// Employee is a staff member paid per day present.
type Employee struct {
	ID         string
	Name       string
	Email      string
	MobileNo   string
	Position   string
	DailyWage  decimal.Decimal
	Image      string
	Attendance Attendance
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
