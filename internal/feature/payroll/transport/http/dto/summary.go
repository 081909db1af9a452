// Package dto defines the payroll HTTP responses.
package dto

import "shopdesk_backend/internal/feature/payroll/domain"

type EmployeeRow struct {
	EmployeeID        string  `json:"employeeId"`
	Name              string  `json:"name"`
	DailyWage         float64 `json:"dailyWage"`
	PresentDays       int     `json:"presentDays"`
	AbsentDays        int     `json:"absentDays"`
	RecordedDays      int     `json:"recordedDays"`
	Percentage        float64 `json:"percentage"`
	RoundedPercentage int     `json:"roundedPercentage"`
	Band              string  `json:"band"`
	MonthlySalary     float64 `json:"monthlySalary"`
}

// SummaryRes keeps the figure names the dashboard already reads.
type SummaryRes struct {
	Month                           string             `json:"month"`
	TotalPresent                    int                `json:"totalPresent"`
	TotalAbsent                     int                `json:"totalAbsent"`
	TotalSalaryPayout               float64            `json:"totalSalaryPayout"`
	AverageAttendancePercentage     float64            `json:"averageAttendancePercentage"`
	PerEmployeeAttendancePercentage map[string]float64 `json:"perEmployeeAttendancePercentage"`
	Employees                       []EmployeeRow      `json:"employees"`
}

func NewSummaryRes(s domain.Summary) SummaryRes {
	res := SummaryRes{
		Month:                           s.Month.String(),
		TotalPresent:                    s.TotalPresent,
		TotalAbsent:                     s.TotalAbsent,
		TotalSalaryPayout:               s.TotalSalaryPayout.InexactFloat64(),
		AverageAttendancePercentage:     s.AverageAttendancePercentage.InexactFloat64(),
		PerEmployeeAttendancePercentage: make(map[string]float64, len(s.PerEmployeeAttendancePercentage)),
		Employees:                       make([]EmployeeRow, 0, len(s.Employees)),
	}
	for id, pct := range s.PerEmployeeAttendancePercentage {
		res.PerEmployeeAttendancePercentage[id] = pct.InexactFloat64()
	}
	for _, e := range s.Employees {
		res.Employees = append(res.Employees, EmployeeRow{
			EmployeeID:        e.EmployeeID,
			Name:              e.Name,
			DailyWage:         e.DailyWage.InexactFloat64(),
			PresentDays:       e.PresentDays,
			AbsentDays:        e.AbsentDays,
			RecordedDays:      e.RecordedDays,
			Percentage:        e.Percentage.InexactFloat64(),
			RoundedPercentage: e.RoundedPercentage(),
			Band:              string(e.Band()),
			MonthlySalary:     e.Salary.InexactFloat64(),
		})
	}
	return res
}
