package dashboard

import (
	"context"
	"time"
)

// SummaryStats combines the record counts in a single query
type SummaryStats struct {
	Employees   int64
	Departments int64
	Holidays    int64
	New         int64 // hired since the given date
}

// DailyStats holds present/absent counts for a day
type DailyStats struct {
	Date    time.Time
	Present int64
	Absent  int64
}

// LatestRecord is a recent attendance mark with the employee name joined
type LatestRecord struct {
	EmployeeName string
	Date         time.Time
	Status       string
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetSummary returns employee, department and holiday counts plus employees hired since
	GetSummary(ctx context.Context, since time.Time) (*SummaryStats, error)

	// GetDailyStats returns present/absent counts per day within [start, end]. Days without
	// marks are omitted.
	GetDailyStats(ctx context.Context, start, end time.Time) ([]DailyStats, error)

	// GetLatestRecords returns the most recently updated marks
	GetLatestRecords(ctx context.Context, limit int) ([]LatestRecord, error)
}
