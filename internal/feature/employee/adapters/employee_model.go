package adapters

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shopdesk_backend/internal/feature/employee/domain/entity"
)

// EmployeeModel is the GORM model for the employees table. Attendance is a
// JSON object keyed by YYYY-MM-DD.
type EmployeeModel struct {
	ID         string          `gorm:"primaryKey;size:36"`
	Name       string          `gorm:"size:255;not null"`
	Email      string          `gorm:"uniqueIndex;size:255;not null"`
	MobileNo   string          `gorm:"size:32;not null"`
	Position   string          `gorm:"size:128;not null"`
	DailyWage  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Image      string          `gorm:"size:1024"`
	Attendance map[string]bool `gorm:"serializer:json;type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM.
func (EmployeeModel) TableName() string {
	return "employees"
}

// BeforeCreate assigns a UUID when the caller did not.
func (m *EmployeeModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *EmployeeModel) toEntity() (entity.Employee, error) {
	att, err := entity.AttendanceFromStrings(m.Attendance)
	if err != nil {
		return entity.Employee{}, fmt.Errorf("employee %s attendance: %w", m.ID, err)
	}
	return entity.Employee{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		MobileNo:   m.MobileNo,
		Position:   m.Position,
		DailyWage:  m.DailyWage,
		Image:      m.Image,
		Attendance: att,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}

func employeeModelFrom(e *entity.Employee) *EmployeeModel {
	return &EmployeeModel{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		MobileNo:   e.MobileNo,
		Position:   e.Position,
		DailyWage:  e.DailyWage,
		Image:      e.Image,
		Attendance: e.Attendance.Strings(),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
