package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/mail"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"shopdesk_backend/internal/feature/employee/domain/entity"
	"shopdesk_backend/internal/platform/logging"
	"shopdesk_backend/internal/platform/media"
)

// EmployeeRepository persists employees. Implementations return
// ErrEmployeeNotFound for unknown or malformed ids and ErrEmailAlreadyExists
// on a unique email conflict.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	FindAll(ctx context.Context) ([]entity.Employee, error)
	FindByID(ctx context.Context, id string) (*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	Delete(ctx context.Context, id string) error
	// SetAttendance merges a single day into the stored map.
	SetAttendance(ctx context.Context, id string, day civil.Date, present bool) (*entity.Employee, error)
	// ClearAttendance removes a single day, leaving it unrecorded.
	ClearAttendance(ctx context.Context, id string, day civil.Date) (*entity.Employee, error)
}

// MediaStore uploads and removes employee photos.
type MediaStore interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// Image is an uploaded file.
type Image struct {
	Filename string
	Content  io.Reader
}

// EmployeeInput carries the create fields. Every field is required.
type EmployeeInput struct {
	Name      string
	Email     string
	MobileNo  string
	Position  string
	DailyWage decimal.Decimal
	Image     *Image
}

// EmployeePatch is a partial update. Nil fields are left unchanged.
type EmployeePatch struct {
	Name      *string
	Email     *string
	MobileNo  *string
	Position  *string
	DailyWage *decimal.Decimal
	Image     *Image
}

type employeeUsecase struct {
	employees EmployeeRepository
	media     MediaStore
}

// NewEmployeeUsecase wires the employee usecase.
func NewEmployeeUsecase(employees EmployeeRepository, media MediaStore) *employeeUsecase {
	return &employeeUsecase{employees: employees, media: media}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("email is invalid")
	}
	return nil
}

// Create uploads the photo and stores a new employee with no attendance.
func (u *employeeUsecase) Create(ctx context.Context, in EmployeeInput) (*entity.Employee, error) {
	e := &entity.Employee{
		Name:       strings.TrimSpace(in.Name),
		Email:      normalizeEmail(in.Email),
		MobileNo:   strings.TrimSpace(in.MobileNo),
		Position:   strings.TrimSpace(in.Position),
		DailyWage:  in.DailyWage,
		Attendance: entity.Attendance{},
	}
	if e.Name == "" || e.Email == "" || e.MobileNo == "" || e.Position == "" {
		return nil, invalid("name, email, mobileNo, position and dailyWage are required")
	}
	if err := validateEmail(e.Email); err != nil {
		return nil, err
	}
	if e.DailyWage.IsNegative() {
		return nil, invalid("dailyWage must be >= 0")
	}
	if in.Image == nil {
		return nil, ErrImageRequired
	}

	url, err := u.media.Upload(ctx, media.FolderEmployees, in.Image.Filename, in.Image.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageUpload, err)
	}
	e.Image = url

	if err := u.employees.Create(ctx, e); err != nil {
		u.discard(ctx, url)
		return nil, err
	}
	return e, nil
}

func (u *employeeUsecase) List(ctx context.Context) ([]entity.Employee, error) {
	return u.employees.FindAll(ctx)
}

func (u *employeeUsecase) Get(ctx context.Context, id string) (*entity.Employee, error) {
	return u.employees.FindByID(ctx, id)
}

// Update applies the supplied fields. A new photo replaces the stored URL and
// the old photo is removed afterwards.
func (u *employeeUsecase) Update(ctx context.Context, id string, p EmployeePatch) (*entity.Employee, error) {
	e, err := u.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		if e.Name = strings.TrimSpace(*p.Name); e.Name == "" {
			return nil, invalid("name must not be empty")
		}
	}
	if p.Email != nil {
		e.Email = normalizeEmail(*p.Email)
		if err := validateEmail(e.Email); err != nil {
			return nil, err
		}
	}
	if p.MobileNo != nil {
		if e.MobileNo = strings.TrimSpace(*p.MobileNo); e.MobileNo == "" {
			return nil, invalid("mobileNo must not be empty")
		}
	}
	if p.Position != nil {
		if e.Position = strings.TrimSpace(*p.Position); e.Position == "" {
			return nil, invalid("position must not be empty")
		}
	}
	if p.DailyWage != nil {
		if p.DailyWage.IsNegative() {
			return nil, invalid("dailyWage must be >= 0")
		}
		e.DailyWage = *p.DailyWage
	}

	oldImage := e.Image
	if p.Image != nil {
		url, err := u.media.Upload(ctx, media.FolderEmployees, p.Image.Filename, p.Image.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageUpload, err)
		}
		e.Image = url
	}

	if err := u.employees.Update(ctx, e); err != nil {
		if e.Image != oldImage {
			u.discard(ctx, e.Image)
		}
		return nil, err
	}
	if e.Image != oldImage {
		u.discard(ctx, oldImage)
	}
	return e, nil
}

// Delete removes the employee, then tries to remove the photo.
func (u *employeeUsecase) Delete(ctx context.Context, id string) error {
	e, err := u.employees.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.employees.Delete(ctx, id); err != nil {
		return err
	}
	u.discard(ctx, e.Image)
	return nil
}

// SetAttendance records one day as present or absent.
func (u *employeeUsecase) SetAttendance(ctx context.Context, id string, day civil.Date, present bool) (*entity.Employee, error) {
	if !day.IsValid() {
		return nil, invalid("date is invalid")
	}
	return u.employees.SetAttendance(ctx, id, day, present)
}

// ClearAttendance removes the record for one day.
func (u *employeeUsecase) ClearAttendance(ctx context.Context, id string, day civil.Date) (*entity.Employee, error) {
	if !day.IsValid() {
		return nil, invalid("date is invalid")
	}
	return u.employees.ClearAttendance(ctx, id, day)
}

func (u *employeeUsecase) discard(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := u.media.Delete(ctx, url); err != nil {
		logging.FromContext(ctx).Warn("employee image cleanup failed", slog.String("url", url), slog.Any("error", err))
	}
}
