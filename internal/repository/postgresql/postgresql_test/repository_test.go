package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/department"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-desk/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newID(t *testing.T) string {
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}

func createDepartment(t *testing.T, ctx context.Context, repo department.DepartmentRepository, name string) department.Department {
	now := time.Now()
	d, err := repo.Create(ctx, department.Department{ID: newID(t), Name: name, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	return d
}

func createEmployee(t *testing.T, ctx context.Context, repo employee.EmployeeRepository, departmentID, first, last, email string) employee.Employee {
	now := time.Now()
	e, err := repo.Create(ctx, employee.Employee{
		ID:           newID(t),
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PhoneNumber:  "+628123456789",
		DepartmentID: departmentID,
		HireDate:     date(2023, time.January, 2),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return e
}

func TestDepartmentRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	deptRepo := postgresql.NewDepartmentRepository(setup.DB)
	empRepo := postgresql.NewEmployeeRepository(setup.DB)

	eng := createDepartment(t, ctx, deptRepo, "Engineering")
	createDepartment(t, ctx, deptRepo, "Finance")

	t.Run("duplicate name is rejected case-insensitively", func(t *testing.T) {
		now := time.Now()
		_, err := deptRepo.Create(ctx, department.Department{ID: newID(t), Name: "engineering", CreatedAt: now, UpdatedAt: now})
		assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

		exists, err := deptRepo.ExistsByName(ctx, "ENGINEERING", nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = deptRepo.ExistsByName(ctx, "Engineering", &eng.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("list carries employee counts", func(t *testing.T) {
		createEmployee(t, ctx, empRepo, eng.ID, "Alice", "Moss", "alice@example.com")

		departments, err := deptRepo.List(ctx)
		require.NoError(t, err)
		require.Len(t, departments, 2)
		assert.Equal(t, "Engineering", departments[0].Name)
		assert.Equal(t, int64(1), departments[0].EmployeeCount)
		assert.Equal(t, int64(0), departments[1].EmployeeCount)
	})

	t.Run("delete cascades to employees", func(t *testing.T) {
		require.NoError(t, deptRepo.Delete(ctx, eng.ID))

		_, err := deptRepo.GetByID(ctx, eng.ID)
		assert.ErrorIs(t, err, department.ErrDepartmentNotFound)

		all, err := empRepo.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		assert.ErrorIs(t, deptRepo.Delete(ctx, eng.ID), department.ErrDepartmentNotFound)
	})
}

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	deptRepo := postgresql.NewDepartmentRepository(setup.DB)
	empRepo := postgresql.NewEmployeeRepository(setup.DB)

	eng := createDepartment(t, ctx, deptRepo, "Engineering")
	ops := createDepartment(t, ctx, deptRepo, "Operations")

	bob := createEmployee(t, ctx, empRepo, eng.ID, "Bob", "Stone", "bob@example.com")
	createEmployee(t, ctx, empRepo, ops.ID, "Alice", "Moss", "alice@example.com")
	createEmployee(t, ctx, empRepo, eng.ID, "Cara", "Vale", "cara@example.com")

	t.Run("get joins department name", func(t *testing.T) {
		got, err := empRepo.GetByID(ctx, bob.ID)
		require.NoError(t, err)
		require.NotNil(t, got.DepartmentName)
		assert.Equal(t, "Engineering", *got.DepartmentName)
		assert.True(t, got.HireDate.Equal(date(2023, time.January, 2)))
	})

	t.Run("email uniqueness", func(t *testing.T) {
		now := time.Now()
		_, err := empRepo.Create(ctx, employee.Employee{
			ID: newID(t), FirstName: "Dup", LastName: "Bob", Email: "BOB@example.com",
			PhoneNumber: "+628123456789", DepartmentID: eng.ID, HireDate: date(2023, 1, 2),
			CreatedAt: now, UpdatedAt: now,
		})
		assert.ErrorIs(t, err, employee.ErrEmailExists)

		exists, err := empRepo.ExistsByEmail(ctx, "bob@example.com", &bob.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("list filters and paginates", func(t *testing.T) {
		filter := employee.EmployeeFilter{DepartmentID: &eng.ID, Page: 1, Limit: 1, SortBy: "name", SortOrder: "asc"}
		employees, total, err := empRepo.List(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, employees, 1)
		assert.Equal(t, "Bob", employees[0].FirstName)

		search := "vale"
		employees, total, err = empRepo.List(ctx, employee.EmployeeFilter{Search: &search, Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Cara", employees[0].FirstName)
	})

	t.Run("list all orders by name", func(t *testing.T) {
		all, err := empRepo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"Alice", "Bob", "Cara"}, []string{all[0].FirstName, all[1].FirstName, all[2].FirstName})
	})

	t.Run("update and delete", func(t *testing.T) {
		bob.LastName = "Stoner"
		bob.UpdatedAt = time.Now()
		_, err := empRepo.Update(ctx, bob)
		require.NoError(t, err)

		got, err := empRepo.GetByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "Stoner", got.LastName)

		require.NoError(t, empRepo.Delete(ctx, bob.ID))
		_, err = empRepo.GetByID(ctx, bob.ID)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestHolidayRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewHolidayRepository(setup.DB)
	now := time.Now()

	_, err := repo.Create(ctx, holiday.Holiday{ID: newID(t), Date: date(2020, time.December, 25), Name: "Christmas", Recurring: true, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	_, err = repo.Create(ctx, holiday.Holiday{ID: newID(t), Date: date(2024, time.March, 13), Name: "Founders Day", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	_, err = repo.Create(ctx, holiday.Holiday{ID: newID(t), Date: date(2023, time.May, 1), Name: "Labour Day", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	_, err = repo.Create(ctx, holiday.Holiday{ID: newID(t), Date: date(2024, time.March, 13), Name: "Founders Day", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, holiday.ErrHolidayExists)

	year := 2024
	holidays, err := repo.List(ctx, &year)
	require.NoError(t, err)
	assert.Len(t, holidays, 2)

	holidays, err = repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, holidays, 3)

	holidays, err = repo.ListForRange(ctx, date(2024, time.March, 1), date(2024, time.March, 31))
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "Christmas", holidays[0].Name)
	assert.Equal(t, "Founders Day", holidays[1].Name)

	_, err = repo.GetByID(ctx, newID(t))
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)
}

func TestAttendanceRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	deptRepo := postgresql.NewDepartmentRepository(setup.DB)
	empRepo := postgresql.NewEmployeeRepository(setup.DB)
	repo := postgresql.NewAttendanceRepository(setup.DB)

	eng := createDepartment(t, ctx, deptRepo, "Engineering")
	alice := createEmployee(t, ctx, empRepo, eng.ID, "Alice", "Moss", "alice@example.com")
	bob := createEmployee(t, ctx, empRepo, eng.ID, "Bob", "Stone", "bob@example.com")

	mark := func(employeeID string, day time.Time, status attendance.Status) attendance.Mark {
		now := time.Now()
		return attendance.Mark{ID: newID(t), EmployeeID: employeeID, Date: day, Status: status, CreatedAt: now, UpdatedAt: now}
	}

	t.Run("replace keeps one mark per employee and day", func(t *testing.T) {
		_, err := repo.Replace(ctx, mark(alice.ID, date(2024, time.March, 11), attendance.StatusPresent))
		require.NoError(t, err)
		second, err := repo.Replace(ctx, mark(alice.ID, date(2024, time.March, 11), attendance.StatusAbsent))
		require.NoError(t, err)

		marks, err := repo.ListByDate(ctx, date(2024, time.March, 11))
		require.NoError(t, err)
		require.Len(t, marks, 1)
		assert.Equal(t, second.ID, marks[0].ID)
		assert.Equal(t, attendance.StatusAbsent, marks[0].Status)
		require.NotNil(t, marks[0].EmployeeName)
		assert.Equal(t, "Alice Moss", *marks[0].EmployeeName)
	})

	t.Run("replace many writes a whole day", func(t *testing.T) {
		day := date(2024, time.March, 12)
		err := repo.ReplaceMany(ctx, []attendance.Mark{
			mark(alice.ID, day, attendance.StatusPresent),
			mark(bob.ID, day, attendance.StatusAbsent),
		})
		require.NoError(t, err)

		marks, err := repo.ListByRange(ctx, date(2024, time.March, 11), day)
		require.NoError(t, err)
		assert.Len(t, marks, 3)
	})

	t.Run("list filters by status", func(t *testing.T) {
		status := "absent"
		filter := attendance.AttendanceFilter{Status: &status, Page: 1, Limit: 20, SortBy: "date", SortOrder: "asc"}
		marks, total, err := repo.List(ctx, filter, date(2024, time.March, 1), date(2024, time.March, 31))
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, marks, 2)
		assert.True(t, marks[0].Date.Equal(date(2024, time.March, 11)))
	})

	t.Run("delete", func(t *testing.T) {
		marks, err := repo.ListByDate(ctx, date(2024, time.March, 12))
		require.NoError(t, err)
		require.NotEmpty(t, marks)

		require.NoError(t, repo.Delete(ctx, marks[0].ID))
		_, err = repo.GetByID(ctx, marks[0].ID)
		assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	})

	t.Run("concurrent replace keeps one mark and never fails", func(t *testing.T) {
		day := date(2024, time.March, 14)
		var g errgroup.Group
		for i := 0; i < 8; i++ {
			status := attendance.StatusPresent
			if i%2 == 1 {
				status = attendance.StatusAbsent
			}
			m := mark(alice.ID, day, status)
			g.Go(func() error {
				_, err := repo.Replace(ctx, m)
				return err
			})
		}
		require.NoError(t, g.Wait())

		marks, err := repo.ListByDate(ctx, day)
		require.NoError(t, err)
		assert.Len(t, marks, 1)
	})

	t.Run("insert missing leaves existing marks alone", func(t *testing.T) {
		day := date(2024, time.March, 15)
		present, err := repo.Replace(ctx, mark(alice.ID, day, attendance.StatusPresent))
		require.NoError(t, err)

		inserted, err := repo.InsertMissing(ctx, []attendance.Mark{
			mark(alice.ID, day, attendance.StatusAbsent),
			mark(bob.ID, day, attendance.StatusAbsent),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, inserted)

		got, err := repo.GetByID(ctx, present.ID)
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusPresent, got.Status)

		marks, err := repo.ListByDate(ctx, day)
		require.NoError(t, err)
		assert.Len(t, marks, 2)
	})
}

func TestRepositories_MalformedIDsAreNotFound(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	deptRepo := postgresql.NewDepartmentRepository(setup.DB)
	empRepo := postgresql.NewEmployeeRepository(setup.DB)
	holidayRepo := postgresql.NewHolidayRepository(setup.DB)
	markRepo := postgresql.NewAttendanceRepository(setup.DB)

	for _, id := range []string{"abc", "123", ""} {
		_, err := deptRepo.GetByID(ctx, id)
		assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
		assert.ErrorIs(t, deptRepo.Delete(ctx, id), department.ErrDepartmentNotFound)
		_, err = deptRepo.Update(ctx, department.Department{ID: id, Name: "Ops"})
		assert.ErrorIs(t, err, department.ErrDepartmentNotFound)

		_, err = empRepo.GetByID(ctx, id)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
		assert.ErrorIs(t, empRepo.Delete(ctx, id), employee.ErrEmployeeNotFound)

		_, err = holidayRepo.GetByID(ctx, id)
		assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)
		assert.ErrorIs(t, holidayRepo.Delete(ctx, id), holiday.ErrHolidayNotFound)

		_, err = markRepo.GetByID(ctx, id)
		assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
		assert.ErrorIs(t, markRepo.Delete(ctx, id), attendance.ErrAttendanceNotFound)
	}
}
