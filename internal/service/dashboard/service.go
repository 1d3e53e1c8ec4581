package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/holiday"
	"golang.org/x/sync/errgroup"
)

const (
	trendDays        = 7
	upcomingDays     = 30
	newEmployeeDays  = 30
	latestRecordsMax = 10
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	holidayRepo holiday.HolidayRepository
	location    *time.Location
	now         func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, holidayRepo holiday.HolidayRepository, location *time.Location) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		holidayRepo:         holidayRepo,
		location:            location,
		now:                 time.Now,
	}
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// GetDashboard returns combined dashboard data using parallel goroutines
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	today := calendar.Today(s.now(), s.location)
	trendStart := today.AddDate(0, 0, -(trendDays - 1))

	var (
		summary  *dashboard.SummaryStats
		daily    []dashboard.DailyStats
		latest   []dashboard.LatestRecord
		holidays []holiday.Holiday
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Counts (1 query)
	g.Go(func() error {
		stats, err := s.GetSummary(gCtx, today.AddDate(0, 0, -newEmployeeDays))
		if err != nil {
			return fmt.Errorf("failed to get summary: %w", err)
		}
		summary = stats
		return nil
	})

	// 2. Daily counts for the trend, today included (1 query)
	g.Go(func() error {
		stats, err := s.GetDailyStats(gCtx, trendStart, today)
		if err != nil {
			return fmt.Errorf("failed to get daily stats: %w", err)
		}
		daily = stats
		return nil
	})

	// 3. Latest records (1 query)
	g.Go(func() error {
		records, err := s.GetLatestRecords(gCtx, latestRecordsMax)
		if err != nil {
			return fmt.Errorf("failed to get latest records: %w", err)
		}
		latest = records
		return nil
	})

	// 4. Holidays covering the trend and the upcoming window (1 query)
	g.Go(func() error {
		list, err := s.holidayRepo.ListForRange(gCtx, trendStart, today.AddDate(0, 0, upcomingDays-1))
		if err != nil {
			return fmt.Errorf("failed to list holidays: %w", err)
		}
		holidays = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byDate := make(map[string]dashboard.DailyStats, len(daily))
	for _, d := range daily {
		byDate[calendar.Format(d.Date)] = d
	}

	trend := make([]dashboard.TrendItem, 0, trendDays)
	for _, d := range calendar.NewRange(trendStart, today).Dates() {
		stats := byDate[calendar.Format(d)]
		trend = append(trend, dashboard.TrendItem{
			Date:      calendar.Format(d),
			IsWorking: attendance.IsWorkingDay(d, holidays),
			Present:   stats.Present,
			Absent:    stats.Absent,
		})
	}

	todayStats := byDate[calendar.Format(today)]
	todayClass := attendance.Classify(today, holidays)
	day := attendance.DayResponse{
		Date:      calendar.Format(today),
		Weekday:   today.Weekday().String(),
		IsWeekend: todayClass.IsWeekend,
		IsHoliday: todayClass.IsHoliday,
		IsWorking: todayClass.IsWorking,
	}
	if todayClass.IsHoliday {
		name := todayClass.HolidayName
		day.HolidayName = &name
	}

	marked := todayStats.Present + todayStats.Absent
	unmarked := summary.Employees - marked
	if unmarked < 0 || !todayClass.IsWorking {
		unmarked = 0
	}

	records := make([]dashboard.AttendanceRecordItem, 0, len(latest))
	for i, r := range latest {
		records = append(records, dashboard.AttendanceRecordItem{
			No:           i + 1,
			EmployeeName: r.EmployeeName,
			Date:         calendar.Format(r.Date),
			Status:       r.Status,
		})
	}

	return &dashboard.DashboardResponse{
		Summary: dashboard.SummaryResponse{
			TotalEmployee:   summary.Employees,
			TotalDepartment: summary.Departments,
			TotalHoliday:    summary.Holidays,
			NewEmployee:     summary.New,
		},
		Today: dashboard.TodayResponse{
			Day:            day,
			Present:        todayStats.Present,
			Absent:         todayStats.Absent,
			Unmarked:       unmarked,
			Total:          marked,
			PresentPercent: percent(todayStats.Present, marked),
			AbsentPercent:  percent(todayStats.Absent, marked),
		},
		Trend:            trend,
		UpcomingHolidays: holiday.Upcoming(holidays, today, upcomingDays),
		LatestRecords:    records,
	}, nil
}
