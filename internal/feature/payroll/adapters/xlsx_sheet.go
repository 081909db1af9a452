// Package adapters renders payroll summaries for download.
package adapters

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"shopdesk_backend/internal/feature/payroll/domain"
	"shopdesk_backend/internal/feature/payroll/usecase"
)

const sheetName = "Payroll"

var header = []any{"Employee ID", "Name", "Daily Wage", "Present", "Absent", "Recorded", "Attendance %", "Salary"}

// XLSXSheet writes the month and its length, then one row per employee
// followed by a totals row.
type XLSXSheet struct{}

var _ usecase.SheetWriter = XLSXSheet{}

func (XLSXSheet) Write(w io.Writer, s domain.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, "A1", &[]any{"Month", s.Month.String(), "Days", s.Month.Days()}); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, "A3", &header); err != nil {
		return err
	}

	row := 4
	for _, e := range s.Employees {
		cells := []any{
			e.EmployeeID,
			e.Name,
			e.DailyWage.InexactFloat64(),
			e.PresentDays,
			e.AbsentDays,
			e.RecordedDays,
			e.Percentage.InexactFloat64(),
			e.Salary.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &cells); err != nil {
			return err
		}
		row++
	}

	totals := []any{"Total", "", "", s.TotalPresent, s.TotalAbsent, "", s.AverageAttendancePercentage.InexactFloat64(), s.TotalSalaryPayout.InexactFloat64()}
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &totals); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
