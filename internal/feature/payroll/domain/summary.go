package domain

import (
	"github.com/shopspring/decimal"

	"shopdesk_backend/internal/feature/employee/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Band buckets an attendance percentage the way the dashboard colours it.
type Band string

const (
	BandExcellent Band = "excellent" // >= 90
	BandGood      Band = "good"      // >= 75
	BandFair      Band = "fair"      // >= 60
	BandPoor      Band = "poor"
	BandNone      Band = "none" // no records this month
)

// EmployeeSummary holds one employee's figures for the month.
type EmployeeSummary struct {
	EmployeeID   string
	Name         string
	DailyWage    decimal.Decimal
	PresentDays  int
	AbsentDays   int
	RecordedDays int
	// Percentage is present/recorded*100 to two places, 0 with no records.
	Percentage decimal.Decimal
	Salary     decimal.Decimal
}

// RoundedPercentage is Percentage to the nearest integer.
func (s EmployeeSummary) RoundedPercentage() int {
	return int(s.Percentage.Round(0).IntPart())
}

// Band classifies the employee's attendance.
func (s EmployeeSummary) Band() Band {
	if s.RecordedDays == 0 {
		return BandNone
	}
	switch p := s.Percentage; {
	case p.GreaterThanOrEqual(decimal.NewFromInt(90)):
		return BandExcellent
	case p.GreaterThanOrEqual(decimal.NewFromInt(75)):
		return BandGood
	case p.GreaterThanOrEqual(decimal.NewFromInt(60)):
		return BandFair
	}
	return BandPoor
}

// Summary aggregates a month over a set of employees.
type Summary struct {
	Month             Month
	Employees         []EmployeeSummary
	TotalPresent      int
	TotalAbsent       int
	TotalSalaryPayout decimal.Decimal
	// AverageAttendancePercentage averages only employees with at least one
	// recorded day, so unrecorded employees do not pull it down.
	AverageAttendancePercentage decimal.Decimal
	// PerEmployeeAttendancePercentage is keyed by employee id and omits
	// employees without records.
	PerEmployeeAttendancePercentage map[string]decimal.Decimal
}

// SummarizeEmployee computes one employee's figures for month.
func SummarizeEmployee(e entity.Employee, month Month) EmployeeSummary {
	s := EmployeeSummary{
		EmployeeID: e.ID,
		Name:       e.Name,
		DailyWage:  e.DailyWage,
		Percentage: decimal.Zero,
	}
	for day, present := range e.Attendance {
		if !month.Contains(day) {
			continue
		}
		s.RecordedDays++
		if present {
			s.PresentDays++
		} else {
			s.AbsentDays++
		}
	}
	if s.RecordedDays > 0 {
		s.Percentage = decimal.NewFromInt(int64(s.PresentDays)).
			Mul(hundred).
			DivRound(decimal.NewFromInt(int64(s.RecordedDays)), 2)
	}
	s.Salary = e.DailyWage.Mul(decimal.NewFromInt(int64(s.PresentDays)))
	return s
}

// Summarize computes the month's payroll. It does not modify employees and
// its output depends only on its inputs; Employees keeps the input order.
func Summarize(employees []entity.Employee, month Month) Summary {
	sum := Summary{
		Month:                           month,
		Employees:                       make([]EmployeeSummary, 0, len(employees)),
		TotalSalaryPayout:               decimal.Zero,
		AverageAttendancePercentage:     decimal.Zero,
		PerEmployeeAttendancePercentage: map[string]decimal.Decimal{},
	}

	pctTotal := decimal.Zero
	for _, e := range employees {
		es := SummarizeEmployee(e, month)
		sum.Employees = append(sum.Employees, es)
		sum.TotalPresent += es.PresentDays
		sum.TotalAbsent += es.AbsentDays
		sum.TotalSalaryPayout = sum.TotalSalaryPayout.Add(es.Salary)

		if es.RecordedDays > 0 {
			sum.PerEmployeeAttendancePercentage[es.EmployeeID] = es.Percentage
			pctTotal = pctTotal.Add(es.Percentage)
		}
	}
	if n := len(sum.PerEmployeeAttendancePercentage); n > 0 {
		sum.AverageAttendancePercentage = pctTotal.DivRound(decimal.NewFromInt(int64(n)), 2)
	}
	return sum
}
