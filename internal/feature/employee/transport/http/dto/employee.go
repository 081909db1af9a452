// Package dto defines the employee HTTP request and response bodies.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"shopdesk_backend/internal/feature/employee/domain/entity"
)

// EmployeeForm is the multipart body of createEmp. dailyWage is parsed by
// the handler.
type EmployeeForm struct {
	Name      string `form:"name" binding:"required"`
	Email     string `form:"email" binding:"required"`
	MobileNo  string `form:"mobileNo" binding:"required"`
	Position  string `form:"position" binding:"required"`
	DailyWage string `form:"dailyWage" binding:"required"`
}

// EmployeePatchForm is a multipart partial update. Absent fields stay nil.
type EmployeePatchForm struct {
	Name      *string `form:"name"`
	Email     *string `form:"email"`
	MobileNo  *string `form:"mobileNo"`
	Position  *string `form:"position"`
	DailyWage *string `form:"dailyWage"`
}

// EmployeePatchJSON is a JSON partial update. dailyWage may be a number or
// a numeric string.
type EmployeePatchJSON struct {
	Name      *string          `json:"name"`
	Email     *string          `json:"email"`
	MobileNo  *string          `json:"mobileNo"`
	Position  *string          `json:"position"`
	DailyWage *decimal.Decimal `json:"dailyWage"`
}

// AttendanceReq marks one day.
type AttendanceReq struct {
	Date   string `json:"date" binding:"required"`
	Status *bool  `json:"status" binding:"required"`
}

type EmployeeRes struct {
	ID         string          `json:"_id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	MobileNo   string          `json:"mobileNo"`
	Position   string          `json:"position"`
	DailyWage  float64         `json:"dailyWage"`
	Image      string          `json:"image,omitempty"`
	Attendance map[string]bool `json:"attendance"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func NewEmployeeRes(e entity.Employee) EmployeeRes {
	return EmployeeRes{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		MobileNo:   e.MobileNo,
		Position:   e.Position,
		DailyWage:  e.DailyWage.InexactFloat64(),
		Image:      e.Image,
		Attendance: e.Attendance.Strings(),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func NewEmployeeList(es []entity.Employee) []EmployeeRes {
	out := make([]EmployeeRes, 0, len(es))
	for _, e := range es {
		out = append(out, NewEmployeeRes(e))
	}
	return out
}

// AttendanceRes is returned after an attendance change.
type AttendanceRes struct {
	Message  string      `json:"message"`
	Employee EmployeeRes `json:"employee"`
}
