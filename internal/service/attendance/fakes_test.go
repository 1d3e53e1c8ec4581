package attendance

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/holiday"
)

type fakeAttendanceRepo struct {
	marks        []attendance.Mark
	replaceCalls int
	lastFilter   attendance.AttendanceFilter
	lastStart    time.Time
	lastEnd      time.Time

	// afterListByDate runs once the date snapshot has been taken
	afterListByDate func()
}

func (f *fakeAttendanceRepo) replace(m attendance.Mark) {
	kept := f.marks[:0]
	for _, existing := range f.marks {
		if existing.EmployeeID == m.EmployeeID && calendar.SameDay(existing.Date, m.Date) {
			continue
		}
		kept = append(kept, existing)
	}
	f.marks = append(kept, m)
}

func (f *fakeAttendanceRepo) Replace(ctx context.Context, m attendance.Mark) (attendance.Mark, error) {
	f.replaceCalls++
	f.replace(m)
	return m, nil
}

func (f *fakeAttendanceRepo) ReplaceMany(ctx context.Context, marks []attendance.Mark) error {
	f.replaceCalls++
	for _, m := range marks {
		f.replace(m)
	}
	return nil
}

func (f *fakeAttendanceRepo) InsertMissing(ctx context.Context, marks []attendance.Mark) (int, error) {
	var inserted int
	for _, m := range marks {
		taken := false
		for _, existing := range f.marks {
			if existing.EmployeeID == m.EmployeeID && calendar.SameDay(existing.Date, m.Date) {
				taken = true
				break
			}
		}
		if !taken {
			f.marks = append(f.marks, m)
			inserted++
		}
	}
	return inserted, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Mark, error) {
	for _, m := range f.marks {
		if m.ID == id {
			return m, nil
		}
	}
	return attendance.Mark{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	for i, m := range f.marks {
		if m.ID == id {
			f.marks = append(f.marks[:i], f.marks[i+1:]...)
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter, start, end time.Time) ([]attendance.Mark, int64, error) {
	f.lastFilter, f.lastStart, f.lastEnd = filter, start, end
	marks, _ := f.ListByRange(ctx, start, end)
	return marks, int64(len(marks)), nil
}

func (f *fakeAttendanceRepo) ListByRange(ctx context.Context, start, end time.Time) ([]attendance.Mark, error) {
	r := calendar.NewRange(start, end)
	var out []attendance.Mark
	for _, m := range f.marks {
		if r.Contains(m.Date) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]attendance.Mark, error) {
	marks, err := f.ListByRange(ctx, date, date)
	if f.afterListByDate != nil {
		f.afterListByDate()
	}
	return marks, err
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListAll(ctx context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, len(f.employees))
	copy(out, f.employees)
	return out, nil
}

type fakeHolidayRepo struct {
	holiday.HolidayRepository
	holidays []holiday.Holiday
}

func (f *fakeHolidayRepo) ListForRange(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	return f.holidays, nil
}
