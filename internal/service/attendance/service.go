package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-desk/internal/pkg/report"
	"github.com/google/uuid"
)

const defaultMonthWindow = 6

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employeeRepo employee.EmployeeRepository
	holidayRepo  holiday.HolidayRepository
	location     *time.Location
	now          func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	location *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		employeeRepo:         employeeRepo,
		holidayRepo:          holidayRepo,
		location:             location,
		now:                  time.Now,
	}
}

func (a *AttendanceServiceImpl) today() time.Time {
	return calendar.Today(a.now(), a.location)
}

// resolveRange turns a range request into concrete dates. Explicit dates are validated against
// today; otherwise the preset key is resolved, unknown keys meaning last7days.
func resolveRange(req attendance.RangeRequest, today time.Time) (calendar.DateRange, error) {
	if req.HasExplicitDates() {
		start, err := calendar.ParseDate(*req.StartDate)
		if err != nil {
			return calendar.DateRange{}, calendar.ErrInvalidRange
		}
		end, err := calendar.ParseDate(*req.EndDate)
		if err != nil {
			return calendar.DateRange{}, calendar.ErrInvalidRange
		}
		r := calendar.NewRange(start, end)
		if err := calendar.ValidateRange(r, today); err != nil {
			return calendar.DateRange{}, err
		}
		return r, nil
	}
	return calendar.PredefinedRange(calendar.ParsePreset(req.Range), today), nil
}

func mapRangeToResponse(r calendar.DateRange, today time.Time) attendance.RangeResponse {
	resp := attendance.RangeResponse{
		StartDate: calendar.Format(r.Start),
		EndDate:   calendar.Format(r.End),
		Days:      r.Days(),
	}
	if p, ok := calendar.DetectPreset(r, today); ok {
		preset := string(p)
		resp.Preset = &preset
	}
	return resp
}

// GetRanges implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetRanges(ctx context.Context) ([]attendance.PresetRangeResponse, error) {
	today := a.today()

	presets := calendar.Presets()
	ranges := make([]attendance.PresetRangeResponse, 0, len(presets))
	for _, p := range presets {
		r := calendar.PredefinedRange(p, today)
		ranges = append(ranges, attendance.PresetRangeResponse{
			Key:       string(p),
			Label:     p.Label(),
			StartDate: calendar.Format(r.Start),
			EndDate:   calendar.Format(r.End),
			Days:      r.Days(),
			Default:   p == calendar.DefaultPreset,
		})
	}
	return ranges, nil
}

// mapAttendanceToResponse converts a Mark entity to AttendanceResponse
func mapAttendanceToResponse(m attendance.Mark) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:           m.ID,
		EmployeeID:   m.EmployeeID,
		EmployeeName: m.EmployeeName,
		Date:         calendar.Format(m.Date),
		Status:       string(m.Status),
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    m.UpdatedAt.Format(time.RFC3339),
	}
}

func mapDayToResponse(c attendance.DayClassification) attendance.DayResponse {
	resp := attendance.DayResponse{
		Date:      calendar.Format(c.Date),
		Weekday:   c.Date.Weekday().String(),
		IsWeekend: c.IsWeekend,
		IsHoliday: c.IsHoliday,
		IsWorking: c.IsWorking,
	}
	if c.IsHoliday {
		name := c.HolidayName
		resp.HolidayName = &name
	}
	return resp
}

func mapAggregateToResponse(agg attendance.Aggregate) attendance.AggregateResponse {
	return attendance.AggregateResponse{
		Total:   agg.Total,
		Present: agg.Present,
		Absent:  agg.Absent,
	}
}

func (a *AttendanceServiceImpl) holidaysFor(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	holidays, err := a.holidayRepo.ListForRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return holidays, nil
}

func (a *AttendanceServiceImpl) newMark(employeeID string, date time.Time, status attendance.Status) (attendance.Mark, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Mark{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}
	now := a.now().UTC()
	return attendance.Mark{
		ID:         id.String(),
		EmployeeID: employeeID,
		Date:       calendar.Truncate(date),
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	today := a.today()
	r, err := resolveRange(filter.RangeRequest, today)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	marks, total, err := a.AttendanceRepository.List(ctx, filter, r.Start, r.End)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	// Map to response
	responses := make([]attendance.AttendanceResponse, 0, len(marks))
	for _, m := range marks {
		responses = append(responses, mapAttendanceToResponse(m))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min((filter.Page)*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Range:      mapRangeToResponse(r, today),
		Attendance: responses,
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	m, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return mapAttendanceToResponse(m), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}

// RecordAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordAttendance(ctx context.Context, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	holidays, err := a.holidaysFor(ctx, date, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	existing, err := a.AttendanceRepository.ListByDate(ctx, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to list attendance for date: %w", err)
	}

	mark, err := a.newMark(emp.ID, date, attendance.Status(req.Status))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	updated, err := attendance.RecordMark(existing, mark, holidays, a.today())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	mark = updated[len(updated)-1]

	saved, err := a.AttendanceRepository.Replace(ctx, mark)
	if err != nil {
		slog.Error("Failed to record attendance", "error", err, "employee_id", emp.ID, "date", req.Date)
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record attendance: %w", err)
	}

	name := emp.FullName()
	saved.EmployeeName = &name
	return mapAttendanceToResponse(saved), nil
}

// RecordDay implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordDay(ctx context.Context, req attendance.RecordDayRequest) (attendance.DaySheetResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DaySheetResponse{}, err
	}

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return attendance.DaySheetResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	holidays, err := a.holidaysFor(ctx, date, date)
	if err != nil {
		return attendance.DaySheetResponse{}, err
	}
	today := a.today()
	if err := attendance.CheckMarkable(date, holidays, today); err != nil {
		return attendance.DaySheetResponse{}, err
	}

	employees, err := a.employeeRepo.ListAll(ctx)
	if err != nil {
		return attendance.DaySheetResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}
	known := make(map[string]bool, len(employees))
	for _, emp := range employees {
		known[emp.ID] = true
	}

	marks, err := a.AttendanceRepository.ListByDate(ctx, date)
	if err != nil {
		return attendance.DaySheetResponse{}, fmt.Errorf("failed to list attendance for date: %w", err)
	}

	// later entries for the same employee win
	latest := make(map[string]attendance.Mark, len(req.Entries))
	order := make([]string, 0, len(req.Entries))
	for _, entry := range req.Entries {
		if !known[entry.EmployeeID] {
			return attendance.DaySheetResponse{}, fmt.Errorf("%w: %s", employee.ErrEmployeeNotFound, entry.EmployeeID)
		}
		mark, err := a.newMark(entry.EmployeeID, date, attendance.Status(entry.Status))
		if err != nil {
			return attendance.DaySheetResponse{}, err
		}
		marks, err = attendance.RecordMark(marks, mark, holidays, today)
		if err != nil {
			return attendance.DaySheetResponse{}, err
		}
		if _, seen := latest[entry.EmployeeID]; !seen {
			order = append(order, entry.EmployeeID)
		}
		latest[entry.EmployeeID] = marks[len(marks)-1]
	}

	toSave := make([]attendance.Mark, 0, len(order))
	for _, id := range order {
		toSave = append(toSave, latest[id])
	}
	if err := a.AttendanceRepository.ReplaceMany(ctx, toSave); err != nil {
		slog.Error("Failed to record day attendance", "error", err, "date", req.Date, "count", len(toSave))
		return attendance.DaySheetResponse{}, fmt.Errorf("failed to record attendance: %w", err)
	}

	slog.Info("Day attendance recorded", "date", req.Date, "count", len(toSave))
	return a.buildDaySheet(date, today, holidays, employees, marks), nil
}

// GetDaySheet implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDaySheet(ctx context.Context, date string) (attendance.DaySheetResponse, error) {
	today := a.today()
	day := calendar.ParseDateOr(date, today)

	holidays, err := a.holidaysFor(ctx, day, day)
	if err != nil {
		return attendance.DaySheetResponse{}, err
	}
	employees, err := a.employeeRepo.ListAll(ctx)
	if err != nil {
		return attendance.DaySheetResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}
	marks, err := a.AttendanceRepository.ListByDate(ctx, day)
	if err != nil {
		return attendance.DaySheetResponse{}, fmt.Errorf("failed to list attendance for date: %w", err)
	}

	return a.buildDaySheet(day, today, holidays, employees, marks), nil
}

func (a *AttendanceServiceImpl) buildDaySheet(day, today time.Time, holidays []holiday.Holiday, employees []employee.Employee, marks []attendance.Mark) attendance.DaySheetResponse {
	byEmployee := make(map[string]attendance.Mark, len(marks))
	for _, m := range marks {
		if calendar.SameDay(m.Date, day) {
			byEmployee[m.EmployeeID] = m
		}
	}

	sorted := make([]employee.Employee, len(employees))
	copy(sorted, employees)
	employee.SortByName(sorted)

	entries := make([]attendance.DaySheetEntry, 0, len(sorted))
	for _, emp := range sorted {
		entry := attendance.DaySheetEntry{
			EmployeeID:     emp.ID,
			EmployeeName:   emp.FullName(),
			DepartmentName: emp.DepartmentName,
		}
		if m, ok := byEmployee[emp.ID]; ok {
			id, status := m.ID, string(m.Status)
			entry.AttendanceID = &id
			entry.Status = &status
		}
		entries = append(entries, entry)
	}

	resp := attendance.DaySheetResponse{
		Day:       mapDayToResponse(attendance.Classify(day, holidays)),
		Markable:  true,
		Aggregate: mapAggregateToResponse(attendance.DailyAggregate(marks, day)),
		Employees: entries,
	}
	if err := attendance.CheckMarkable(day, holidays, today); err != nil {
		reason := err.Error()
		resp.Markable = false
		resp.Reason = &reason
	}
	return resp
}

// GetCalendar implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetCalendar(ctx context.Context, req attendance.CalendarRequest) (attendance.CalendarResponse, error) {
	today := a.today()
	selected := calendar.ParseYearMonth(req.Month, req.Year, today)
	month, year := int(selected.Month), selected.Year

	window := req.Window
	if window <= 0 || window > 24 {
		window = defaultMonthWindow
	}

	start, end := calendar.MonthBounds(month, year)
	holidays, err := a.holidaysFor(ctx, start, end)
	if err != nil {
		return attendance.CalendarResponse{}, err
	}
	marks, err := a.AttendanceRepository.ListByRange(ctx, start, end)
	if err != nil {
		return attendance.CalendarResponse{}, fmt.Errorf("failed to list attendance for month: %w", err)
	}

	grid := calendar.BuildGrid(month, year)
	dates := grid.Dates()
	aggregates := attendance.Aggregates(marks, dates)
	byDate := make(map[string]attendance.Aggregate, len(dates))
	for i, d := range dates {
		byDate[calendar.Format(d)] = aggregates[i]
	}

	weeks := make([][]*attendance.CalendarDay, 0, len(grid.Weeks))
	for _, week := range grid.Weeks {
		days := make([]*attendance.CalendarDay, len(week))
		for i, d := range week {
			if d == nil {
				continue
			}
			c := attendance.Classify(*d, holidays)
			days[i] = &attendance.CalendarDay{
				DayResponse: mapDayToResponse(c),
				Day:         d.Day(),
				IsToday:     d.Equal(today),
				IsFuture:    d.After(today),
				Markable:    attendance.CheckMarkable(*d, holidays, today) == nil,
				Aggregate:   mapAggregateToResponse(byDate[calendar.Format(*d)]),
			}
		}
		weeks = append(weeks, days)
	}

	options := make([]attendance.MonthOption, 0, window)
	for _, ym := range calendar.MonthWindow(month, year, window) {
		options = append(options, attendance.MonthOption{
			Year:     ym.Year,
			Month:    int(ym.Month),
			Label:    ym.String(),
			Selected: ym == selected,
		})
	}

	return attendance.CalendarResponse{
		Year:   year,
		Month:  month,
		Label:  selected.String(),
		Months: options,
		Weeks:  weeks,
	}, nil
}

func (a *AttendanceServiceImpl) buildMatrix(ctx context.Context, req attendance.RangeRequest) (attendance.Matrix, calendar.DateRange, time.Time, error) {
	if err := req.Validate(); err != nil {
		return attendance.Matrix{}, calendar.DateRange{}, time.Time{}, err
	}

	today := a.today()
	r, err := resolveRange(req, today)
	if err != nil {
		return attendance.Matrix{}, calendar.DateRange{}, time.Time{}, err
	}

	employees, err := a.employeeRepo.ListAll(ctx)
	if err != nil {
		return attendance.Matrix{}, calendar.DateRange{}, time.Time{}, fmt.Errorf("failed to list employees: %w", err)
	}
	marks, err := a.AttendanceRepository.ListByRange(ctx, r.Start, r.End)
	if err != nil {
		return attendance.Matrix{}, calendar.DateRange{}, time.Time{}, fmt.Errorf("failed to list attendance for range: %w", err)
	}
	holidays, err := a.holidaysFor(ctx, r.Start, r.End)
	if err != nil {
		return attendance.Matrix{}, calendar.DateRange{}, time.Time{}, err
	}

	return attendance.BuildMatrix(employees, marks, r.Dates(), holidays), r, today, nil
}

// GetMatrix implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMatrix(ctx context.Context, req attendance.RangeRequest) (attendance.MatrixResponse, error) {
	m, r, today, err := a.buildMatrix(ctx, req)
	if err != nil {
		return attendance.MatrixResponse{}, err
	}

	days := make([]attendance.DayResponse, 0, len(m.Days))
	for _, d := range m.Days {
		days = append(days, mapDayToResponse(d))
	}

	rows := make([]attendance.MatrixRowResponse, 0, len(m.Rows))
	for _, row := range m.Rows {
		cells := make([]attendance.MatrixCellResponse, 0, len(row.Cells))
		for _, cell := range row.Cells {
			c := attendance.MatrixCellResponse{
				Date:      calendar.Format(cell.Day.Date),
				IsWorking: cell.Day.IsWorking,
			}
			if cell.Mark != nil {
				id, status := cell.Mark.ID, string(cell.Mark.Status)
				c.AttendanceID = &id
				c.Status = &status
			}
			cells = append(cells, c)
		}
		rows = append(rows, attendance.MatrixRowResponse{
			EmployeeID:   row.Employee.ID,
			EmployeeName: row.Employee.FullName(),
			Present:      row.Present,
			Absent:       row.Absent,
			Cells:        cells,
		})
	}

	return attendance.MatrixResponse{
		Range: mapRangeToResponse(r, today),
		Days:  days,
		Rows:  rows,
	}, nil
}

// ExportMatrixPDF implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ExportMatrixPDF(ctx context.Context, req attendance.RangeRequest) ([]byte, error) {
	m, r, _, err := a.buildMatrix(ctx, req)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Attendance %s to %s", calendar.Format(r.Start), calendar.Format(r.End))
	out, err := report.MatrixPDF(title, m)
	if err != nil {
		slog.Error("Failed to render attendance matrix", "error", err)
		return nil, err
	}
	return out, nil
}

// MarkAbsentees implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAbsentees(ctx context.Context, date time.Time) (int, error) {
	date = calendar.Truncate(date)

	holidays, err := a.holidaysFor(ctx, date, date)
	if err != nil {
		return 0, err
	}
	if err := attendance.CheckMarkable(date, holidays, a.today()); err != nil {
		return 0, nil
	}

	employees, err := a.employeeRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees: %w", err)
	}
	existing, err := a.AttendanceRepository.ListByDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance for date: %w", err)
	}

	marked := make(map[string]bool, len(existing))
	for _, m := range existing {
		marked[m.EmployeeID] = true
	}

	var absent []attendance.Mark
	for _, emp := range employees {
		// employees hired later had nothing to attend
		if marked[emp.ID] || emp.HireDate.After(date) {
			continue
		}
		m, err := a.newMark(emp.ID, date, attendance.StatusAbsent)
		if err != nil {
			return 0, err
		}
		absent = append(absent, m)
	}

	if len(absent) == 0 {
		return 0, nil
	}
	inserted, err := a.AttendanceRepository.InsertMissing(ctx, absent)
	if err != nil {
		return 0, fmt.Errorf("failed to mark absentees: %w", err)
	}
	return inserted, nil
}
