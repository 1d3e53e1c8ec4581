package attendance

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-desk/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// Friday 2024-03-15, 10:00 UTC
var fixedNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

type testDeps struct {
	svc       *AttendanceServiceImpl
	marks     *fakeAttendanceRepo
	employees *fakeEmployeeRepo
	holidays  *fakeHolidayRepo
}

func newTestService() testDeps {
	marks := &fakeAttendanceRepo{}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e2", FirstName: "Bob", LastName: "Stone", HireDate: calendar.Date(2020, time.January, 1)},
		{ID: "e1", FirstName: "Alice", LastName: "Moss", HireDate: calendar.Date(2020, time.January, 1)},
		{ID: "e3", FirstName: "Cara", LastName: "Vale", HireDate: calendar.Date(2024, time.March, 15)},
	}}
	holidays := &fakeHolidayRepo{holidays: []holiday.Holiday{
		{ID: "h1", Date: calendar.Date(2024, time.March, 13), Name: "Founders Day"},
		{ID: "h2", Date: calendar.Date(2019, time.December, 25), Name: "Christmas", Recurring: true},
	}}

	svc := NewAttendanceService(marks, employees, holidays, time.UTC).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	return testDeps{svc: svc, marks: marks, employees: employees, holidays: holidays}
}

func TestRecordAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("records and replaces", func(t *testing.T) {
		deps := newTestService()

		first, err := deps.svc.RecordAttendance(ctx, attendance.RecordAttendanceRequest{EmployeeID: "e1", Date: "2024-03-14", Status: "present"})
		require.NoError(t, err)
		assert.Equal(t, "present", first.Status)
		require.NotNil(t, first.EmployeeName)
		assert.Equal(t, "Alice Moss", *first.EmployeeName)

		second, err := deps.svc.RecordAttendance(ctx, attendance.RecordAttendanceRequest{EmployeeID: "e1", Date: "2024-03-14", Status: "Absent"})
		require.NoError(t, err)
		assert.Equal(t, "absent", second.Status)

		require.Len(t, deps.marks.marks, 1)
		assert.Equal(t, attendance.StatusAbsent, deps.marks.marks[0].Status)
	})

	t.Run("rejects holiday", func(t *testing.T) {
		deps := newTestService()
		_, err := deps.svc.RecordAttendance(ctx, attendance.RecordAttendanceRequest{EmployeeID: "e1", Date: "2024-03-13", Status: "present"})
		assert.ErrorIs(t, err, attendance.ErrNonWorkingDay)
		assert.Empty(t, deps.marks.marks)
	})

	t.Run("rejects weekend", func(t *testing.T) {
		deps := newTestService()
		_, err := deps.svc.RecordAttendance(ctx, attendance.RecordAttendanceRequest{EmployeeID: "e1", Date: "2024-03-10", Status: "present"})
		assert.ErrorIs(t, err, attendance.ErrNonWorkingDay)
	})

	t.Run("rejects future date", func(t *testing.T) {
		deps := newTestService()
		_, err := deps.svc.RecordAttendance(ctx, attendance.RecordAttendanceRequest{EmployeeID: "e1", Date: "2024-03-18", Status: "present"})
		assert.ErrorIs(t, err, attendance.ErrFutureDate)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := newTestService()
		_, err := deps.svc.RecordAttendance(ctx, attendance.RecordAttendanceRequest{EmployeeID: "nobody", Date: "2024-03-14", Status: "present"})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		deps := newTestService()
		_, err := deps.svc.RecordAttendance(ctx, attendance.RecordAttendanceRequest{EmployeeID: "e1", Date: "14/03/2024", Status: "late"})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "date")
		assert.Contains(t, verrs.ToMap(), "status")
	})
}

func TestRecordDay(t *testing.T) {
	ctx := context.Background()

	t.Run("bulk marks with last entry winning", func(t *testing.T) {
		deps := newTestService()
		sheet, err := deps.svc.RecordDay(ctx, attendance.RecordDayRequest{
			Date: "2024-03-14",
			Entries: []attendance.DayEntry{
				{EmployeeID: "e1", Status: "present"},
				{EmployeeID: "e2", Status: "absent"},
				{EmployeeID: "e1", Status: "absent"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, deps.marks.replaceCalls)
		require.Len(t, deps.marks.marks, 2)

		assert.Equal(t, attendance.AggregateResponse{Total: 2, Present: 0, Absent: 2}, sheet.Aggregate)
		require.Len(t, sheet.Employees, 3)
		assert.Equal(t, "Alice Moss", sheet.Employees[0].EmployeeName)
		require.NotNil(t, sheet.Employees[0].Status)
		assert.Equal(t, "absent", *sheet.Employees[0].Status)
		assert.Nil(t, sheet.Employees[2].Status)
		assert.True(t, sheet.Markable)
	})

	t.Run("whole request rejected on non-working day", func(t *testing.T) {
		deps := newTestService()
		_, err := deps.svc.RecordDay(ctx, attendance.RecordDayRequest{
			Date:    "2024-03-16",
			Entries: []attendance.DayEntry{{EmployeeID: "e1", Status: "present"}},
		})
		assert.ErrorIs(t, err, attendance.ErrNonWorkingDay)
		assert.Zero(t, deps.marks.replaceCalls)
	})

	t.Run("unknown employee rejects the whole request", func(t *testing.T) {
		deps := newTestService()
		_, err := deps.svc.RecordDay(ctx, attendance.RecordDayRequest{
			Date: "2024-03-14",
			Entries: []attendance.DayEntry{
				{EmployeeID: "e1", Status: "present"},
				{EmployeeID: "ghost", Status: "present"},
			},
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
		assert.Empty(t, deps.marks.marks)
	})
}

func TestGetDaySheet(t *testing.T) {
	deps := newTestService()

	sheet, err := deps.svc.GetDaySheet(context.Background(), "2024-03-13")
	require.NoError(t, err)
	assert.True(t, sheet.Day.IsHoliday)
	require.NotNil(t, sheet.Day.HolidayName)
	assert.Equal(t, "Founders Day", *sheet.Day.HolidayName)
	assert.False(t, sheet.Markable)
	require.NotNil(t, sheet.Reason)
	assert.Equal(t, attendance.ErrNonWorkingDay.Error(), *sheet.Reason)

	// malformed date falls back to today
	sheet, err = deps.svc.GetDaySheet(context.Background(), "not-a-date")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", sheet.Day.Date)
	assert.True(t, sheet.Markable)
}

func TestListAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("preset range", func(t *testing.T) {
		deps := newTestService()
		deps.marks.marks = []attendance.Mark{
			{ID: "m1", EmployeeID: "e1", Date: calendar.Date(2024, time.March, 14), Status: attendance.StatusPresent},
			{ID: "m2", EmployeeID: "e1", Date: calendar.Date(2024, time.February, 1), Status: attendance.StatusPresent},
		}

		resp, err := deps.svc.ListAttendance(ctx, attendance.AttendanceFilter{RangeRequest: attendance.RangeRequest{Range: "thismonth"}})
		require.NoError(t, err)
		assert.Equal(t, "2024-03-01", resp.Range.StartDate)
		assert.Equal(t, "2024-03-15", resp.Range.EndDate)
		require.NotNil(t, resp.Range.Preset)
		assert.Equal(t, "thismonth", *resp.Range.Preset)
		assert.Equal(t, int64(1), resp.TotalCount)
		assert.Equal(t, "1-1 of 1", resp.Showing)
		assert.Equal(t, 20, resp.Limit)
	})

	t.Run("unknown preset falls back to last7days", func(t *testing.T) {
		deps := newTestService()
		resp, err := deps.svc.ListAttendance(ctx, attendance.AttendanceFilter{RangeRequest: attendance.RangeRequest{Range: "fortnight"}})
		require.NoError(t, err)
		assert.Equal(t, "2024-03-09", resp.Range.StartDate)
		assert.Equal(t, "2024-03-15", resp.Range.EndDate)
		assert.Equal(t, "last7days", *resp.Range.Preset)
		assert.Equal(t, "0 of 0", resp.Showing)
	})

	t.Run("explicit range detects preset", func(t *testing.T) {
		deps := newTestService()
		resp, err := deps.svc.ListAttendance(ctx, attendance.AttendanceFilter{RangeRequest: attendance.RangeRequest{
			StartDate: strPtr("2024-03-11"), EndDate: strPtr("2024-03-15"),
		}})
		require.NoError(t, err)
		assert.Equal(t, 5, resp.Range.Days)
		require.NotNil(t, resp.Range.Preset)
		assert.Equal(t, "thisweek", *resp.Range.Preset)
	})

	t.Run("explicit custom range has no preset", func(t *testing.T) {
		deps := newTestService()
		resp, err := deps.svc.ListAttendance(ctx, attendance.AttendanceFilter{RangeRequest: attendance.RangeRequest{
			StartDate: strPtr("2024-03-02"), EndDate: strPtr("2024-03-05"),
		}})
		require.NoError(t, err)
		assert.Nil(t, resp.Range.Preset)
	})

	t.Run("invalid explicit ranges", func(t *testing.T) {
		deps := newTestService()
		cases := []struct {
			start, end string
			want       error
		}{
			{"2024-03-10", "2024-03-01", calendar.ErrInvalidRange},
			{"2024-03-10", "2024-03-16", calendar.ErrFutureEndDate},
			{"2020-01-01", "2024-03-01", calendar.ErrRangeTooLarge},
		}
		for _, c := range cases {
			_, err := deps.svc.ListAttendance(ctx, attendance.AttendanceFilter{RangeRequest: attendance.RangeRequest{
				StartDate: strPtr(c.start), EndDate: strPtr(c.end),
			}})
			assert.ErrorIs(t, err, c.want, c.start+".."+c.end)
		}
	})
}

func TestGetAndDeleteAttendance(t *testing.T) {
	ctx := context.Background()
	deps := newTestService()
	deps.marks.marks = []attendance.Mark{{ID: "m1", EmployeeID: "e1", Date: calendar.Date(2024, time.March, 14), Status: attendance.StatusPresent}}

	resp, err := deps.svc.GetAttendance(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-14", resp.Date)

	require.NoError(t, deps.svc.DeleteAttendance(ctx, "m1"))
	_, err = deps.svc.GetAttendance(ctx, "m1")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	assert.ErrorIs(t, deps.svc.DeleteAttendance(ctx, "m1"), attendance.ErrAttendanceNotFound)
}

func TestGetCalendar(t *testing.T) {
	deps := newTestService()
	deps.marks.marks = []attendance.Mark{
		{ID: "m1", EmployeeID: "e1", Date: calendar.Date(2024, time.March, 14), Status: attendance.StatusPresent},
		{ID: "m2", EmployeeID: "e2", Date: calendar.Date(2024, time.March, 14), Status: attendance.StatusAbsent},
	}

	resp, err := deps.svc.GetCalendar(context.Background(), attendance.CalendarRequest{Month: "abc", Year: ""})
	require.NoError(t, err)
	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 3, resp.Month)
	assert.Equal(t, "2024-03", resp.Label)
	assert.Len(t, resp.Months, 6)

	selected := 0
	for _, m := range resp.Months {
		if m.Selected {
			selected++
			assert.Equal(t, "2024-03", m.Label)
		}
	}
	assert.Equal(t, 1, selected)

	// March 2024 starts on a Friday
	require.NotEmpty(t, resp.Weeks)
	first := resp.Weeks[0]
	require.Len(t, first, 7)
	for i := 0; i < 4; i++ {
		assert.Nil(t, first[i])
	}
	require.NotNil(t, first[4])
	assert.Equal(t, 1, first[4].Day)

	days := map[string]*attendance.CalendarDay{}
	for _, w := range resp.Weeks {
		for _, d := range w {
			if d != nil {
				days[d.Date] = d
			}
		}
	}
	assert.Len(t, days, 31)
	assert.Equal(t, attendance.AggregateResponse{Total: 2, Present: 1, Absent: 1}, days["2024-03-14"].Aggregate)
	assert.True(t, days["2024-03-15"].IsToday)
	assert.True(t, days["2024-03-15"].Markable)
	assert.True(t, days["2024-03-18"].IsFuture)
	assert.False(t, days["2024-03-18"].Markable)
	assert.False(t, days["2024-03-13"].Markable)
	assert.True(t, days["2024-03-13"].IsHoliday)
}

func TestGetMatrix(t *testing.T) {
	deps := newTestService()
	deps.marks.marks = []attendance.Mark{
		{ID: "m1", EmployeeID: "e2", Date: calendar.Date(2024, time.March, 14), Status: attendance.StatusPresent},
	}

	resp, err := deps.svc.GetMatrix(context.Background(), attendance.RangeRequest{Range: "last7days"})
	require.NoError(t, err)
	assert.Len(t, resp.Days, 7)
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, "Alice Moss", resp.Rows[0].EmployeeName)
	assert.Equal(t, "Bob Stone", resp.Rows[1].EmployeeName)
	assert.Equal(t, 1, resp.Rows[1].Present)

	cell := resp.Rows[1].Cells[5]
	assert.Equal(t, "2024-03-14", cell.Date)
	require.NotNil(t, cell.Status)
	assert.Equal(t, "present", *cell.Status)
	assert.Nil(t, resp.Rows[0].Cells[5].Status)

	_, err = deps.svc.GetMatrix(context.Background(), attendance.RangeRequest{StartDate: strPtr("2024-03-10"), EndDate: strPtr("2024-04-01")})
	assert.ErrorIs(t, err, calendar.ErrFutureEndDate)
}

func TestExportMatrixPDF(t *testing.T) {
	deps := newTestService()
	out, err := deps.svc.ExportMatrixPDF(context.Background(), attendance.RangeRequest{Range: "thismonth"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestMarkAbsentees(t *testing.T) {
	ctx := context.Background()

	t.Run("marks unmarked employees hired by the date", func(t *testing.T) {
		deps := newTestService()
		deps.marks.marks = []attendance.Mark{
			{ID: "m1", EmployeeID: "e1", Date: calendar.Date(2024, time.March, 14), Status: attendance.StatusPresent},
		}

		n, err := deps.svc.MarkAbsentees(ctx, calendar.Date(2024, time.March, 14))
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		marks, _ := deps.marks.ListByDate(ctx, calendar.Date(2024, time.March, 14))
		require.Len(t, marks, 2)
		for _, m := range marks {
			switch m.EmployeeID {
			case "e1":
				assert.Equal(t, attendance.StatusPresent, m.Status)
			case "e2":
				assert.Equal(t, attendance.StatusAbsent, m.Status)
			default:
				t.Fatalf("unexpected mark for %s", m.EmployeeID)
			}
		}

		n, err = deps.svc.MarkAbsentees(ctx, calendar.Date(2024, time.March, 14))
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("keeps a mark recorded after the snapshot", func(t *testing.T) {
		deps := newTestService()
		date := calendar.Date(2024, time.March, 14)
		deps.marks.afterListByDate = func() {
			deps.marks.replace(attendance.Mark{ID: "m2", EmployeeID: "e2", Date: date, Status: attendance.StatusPresent})
		}

		n, err := deps.svc.MarkAbsentees(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		marks, _ := deps.marks.ListByRange(ctx, date, date)
		require.Len(t, marks, 2)
		for _, m := range marks {
			switch m.EmployeeID {
			case "e1":
				assert.Equal(t, attendance.StatusAbsent, m.Status)
			case "e2":
				assert.Equal(t, attendance.StatusPresent, m.Status)
				assert.Equal(t, "m2", m.ID)
			default:
				t.Fatalf("unexpected mark for %s", m.EmployeeID)
			}
		}
		assert.Zero(t, deps.marks.replaceCalls)
	})

	t.Run("skips non-working and future days", func(t *testing.T) {
		deps := newTestService()
		for _, d := range []time.Time{calendar.Date(2024, time.March, 13), calendar.Date(2024, time.March, 16), calendar.Date(2024, time.March, 18)} {
			n, err := deps.svc.MarkAbsentees(ctx, d)
			require.NoError(t, err)
			assert.Zero(t, n)
		}
		assert.Empty(t, deps.marks.marks)
	})
}

func TestGetRanges(t *testing.T) {
	deps := newTestService()

	ranges, err := deps.svc.GetRanges(context.Background())
	require.NoError(t, err)
	require.Len(t, ranges, len(calendar.Presets()))

	var defaults int
	for _, r := range ranges {
		if r.Default {
			defaults++
			assert.Equal(t, "last7days", r.Key)
			assert.Equal(t, "2024-03-09", r.StartDate)
			assert.Equal(t, "2024-03-15", r.EndDate)
			assert.Equal(t, 7, r.Days)
		}
	}
	assert.Equal(t, 1, defaults)
	assert.Equal(t, "today", ranges[0].Key)
	assert.Equal(t, "Today", ranges[0].Label)
}
