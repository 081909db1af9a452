package adapters

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopdesk_backend/internal/feature/employee/domain/entity"
	"shopdesk_backend/internal/feature/employee/usecase"
	"shopdesk_backend/internal/platform/db"
)

type employeeGorm struct {
	db *gorm.DB
}

var _ usecase.EmployeeRepository = (*employeeGorm)(nil)

// NewEmployeeGorm stores employees in the relational backend.
func NewEmployeeGorm(db *gorm.DB) *employeeGorm {
	return &employeeGorm{db: db}
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return usecase.ErrEmployeeNotFound
	case db.IsUniqueViolation(err):
		return usecase.ErrEmailAlreadyExists
	}
	return err
}

func (r *employeeGorm) Create(ctx context.Context, e *entity.Employee) error {
	m := employeeModelFrom(e)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate(err)
	}
	e.ID, e.CreatedAt, e.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *employeeGorm) FindAll(ctx context.Context) ([]entity.Employee, error) {
	var models []EmployeeModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Employee, 0, len(models))
	for i := range models {
		e, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *employeeGorm) FindByID(ctx context.Context, id string) (*entity.Employee, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *employeeGorm) find(tx *gorm.DB, id string) (*entity.Employee, error) {
	var m EmployeeModel
	if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	e, err := m.toEntity()
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Update writes the profile fields. Attendance is only changed through
// SetAttendance and ClearAttendance.
func (r *employeeGorm) Update(ctx context.Context, e *entity.Employee) error {
	e.UpdatedAt = time.Now()
	m := employeeModelFrom(e)
	res := r.db.WithContext(ctx).Model(&EmployeeModel{ID: e.ID}).
		Select("name", "email", "mobile_no", "position", "daily_wage", "image", "updated_at").
		Updates(m)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&EmployeeModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeGorm) SetAttendance(ctx context.Context, id string, day civil.Date, present bool) (*entity.Employee, error) {
	return r.modifyAttendance(ctx, id, func(a entity.Attendance) { a[day] = present })
}

func (r *employeeGorm) ClearAttendance(ctx context.Context, id string, day civil.Date) (*entity.Employee, error) {
	return r.modifyAttendance(ctx, id, func(a entity.Attendance) { delete(a, day) })
}

// modifyAttendance is a read-modify-write of the JSON column inside one
// transaction. The row is read FOR UPDATE so concurrent marks on the same
// employee queue behind each other instead of overwriting the map.
func (r *employeeGorm) modifyAttendance(ctx context.Context, id string, apply func(entity.Attendance)) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := r.find(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		if err != nil {
			return err
		}
		e.Attendance = e.Attendance.Clone()
		apply(e.Attendance)
		e.UpdatedAt = time.Now()

		if err := tx.Model(&EmployeeModel{ID: id}).
			Select("attendance", "updated_at").
			Updates(employeeModelFrom(e)).Error; err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
