package adapters

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shopdesk_backend/internal/feature/employee/domain/entity"
	"shopdesk_backend/internal/feature/employee/usecase"
	"shopdesk_backend/internal/platform/db/dbtest"
)

func newEmployee(email string) *entity.Employee {
	return &entity.Employee{
		Name:       "Asha",
		Email:      email,
		MobileNo:   "9876543210",
		Position:   "Cashier",
		DailyWage:  decimal.NewFromInt(500),
		Image:      "/uploads/employees/a.jpg",
		Attendance: entity.Attendance{},
	}
}

func TestEmployeeGorm_CRUD(t *testing.T) {
	t.Parallel()

	repo := NewEmployeeGorm(dbtest.Open(t, &EmployeeModel{}))
	ctx := context.Background()

	e := newEmployee("asha@example.com")
	require.NoError(t, repo.Create(ctx, e))
	require.NotEmpty(t, e.ID)

	got, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cashier", got.Position)
	assert.True(t, decimal.NewFromInt(500).Equal(got.DailyWage))
	assert.Empty(t, got.Attendance)

	got.Position = "Manager"
	got.DailyWage = decimal.RequireFromString("650.25")
	require.NoError(t, repo.Update(ctx, got))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Manager", all[0].Position)
	assert.Equal(t, "650.25", all[0].DailyWage.StringFixed(2))

	require.NoError(t, repo.Delete(ctx, e.ID))
	_, err = repo.FindByID(ctx, e.ID)
	assert.ErrorIs(t, err, usecase.ErrEmployeeNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, e.ID), usecase.ErrEmployeeNotFound)
}

func TestEmployeeGorm_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := NewEmployeeGorm(dbtest.Open(t, &EmployeeModel{}))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newEmployee("a@example.com")))
	assert.ErrorIs(t, repo.Create(ctx, newEmployee("a@example.com")), usecase.ErrEmailAlreadyExists)

	b := newEmployee("b@example.com")
	require.NoError(t, repo.Create(ctx, b))
	b.Email = "a@example.com"
	assert.ErrorIs(t, repo.Update(ctx, b), usecase.ErrEmailAlreadyExists)
}

func TestEmployeeGorm_Attendance(t *testing.T) {
	t.Parallel()

	repo := NewEmployeeGorm(dbtest.Open(t, &EmployeeModel{}))
	ctx := context.Background()
	e := newEmployee("asha@example.com")
	require.NoError(t, repo.Create(ctx, e))

	d1 := civil.Date{Year: 2024, Month: 3, Day: 1}
	d2 := civil.Date{Year: 2024, Month: 3, Day: 2}

	_, err := repo.SetAttendance(ctx, e.ID, d1, true)
	require.NoError(t, err)
	got, err := repo.SetAttendance(ctx, e.ID, d2, false)
	require.NoError(t, err)
	assert.Equal(t, entity.Attendance{d1: true, d2: false}, got.Attendance)

	// profile updates leave attendance alone
	got.Name = "Asha K"
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.ClearAttendance(ctx, e.ID, d2)
	require.NoError(t, err)
	assert.Equal(t, entity.Attendance{d1: true}, got.Attendance)

	stored, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha K", stored.Name)
	assert.Equal(t, entity.Attendance{d1: true}, stored.Attendance)

	_, err = repo.SetAttendance(ctx, "missing", d1, true)
	assert.ErrorIs(t, err, usecase.ErrEmployeeNotFound)
}

func TestEmployeeGorm_ConcurrentMarksKeepEveryDay(t *testing.T) {
	gdb := dbtest.Open(t, &EmployeeModel{})
	// SQLite has no row locks; one connection stands in for them.
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	var lockedReads atomic.Int32
	require.NoError(t, gdb.Callback().Query().Before("gorm:query").Register("test:count_locking", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Clauses["FOR"]; ok {
			lockedReads.Add(1)
		}
	}))

	repo := NewEmployeeGorm(gdb)
	ctx := context.Background()
	e := newEmployee("asha@example.com")
	require.NoError(t, repo.Create(ctx, e))

	const days = 12
	var wg sync.WaitGroup
	errs := make(chan error, days)
	for i := 1; i <= days; i++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			_, err := repo.SetAttendance(ctx, e.ID, civil.Date{Year: 2024, Month: 3, Day: day}, day%2 == 0)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Attendance, days)
	for day, present := range stored.Attendance {
		assert.Equal(t, day.Day%2 == 0, present, day.String())
	}
	assert.Equal(t, int32(days), lockedReads.Load())
}
