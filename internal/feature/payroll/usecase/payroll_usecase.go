// Package usecase serves monthly payroll summaries.
package usecase

import (
	"context"
	"fmt"
	"io"

	"shopdesk_backend/internal/feature/employee/domain/entity"
	"shopdesk_backend/internal/feature/payroll/domain"
)

// EmployeeSource lists every employee with their attendance.
type EmployeeSource interface {
	FindAll(ctx context.Context) ([]entity.Employee, error)
}

// SheetWriter renders a summary as a spreadsheet.
type SheetWriter interface {
	Write(w io.Writer, s domain.Summary) error
}

type payrollUsecase struct {
	employees EmployeeSource
	sheets    SheetWriter
}

func NewPayrollUsecase(employees EmployeeSource, sheets SheetWriter) *payrollUsecase {
	return &payrollUsecase{employees: employees, sheets: sheets}
}

// Summary aggregates every employee for month.
func (u *payrollUsecase) Summary(ctx context.Context, month domain.Month) (domain.Summary, error) {
	emps, err := u.employees.FindAll(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("load employees: %w", err)
	}
	return domain.Summarize(emps, month), nil
}

// Export writes the month's summary to w as a spreadsheet.
func (u *payrollUsecase) Export(ctx context.Context, month domain.Month, w io.Writer) error {
	s, err := u.Summary(ctx, month)
	if err != nil {
		return err
	}
	return u.sheets.Write(w, s)
}
