package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-desk/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetSummary returns all record counts in a single query
func (r *dashboardRepositoryImpl) GetSummary(ctx context.Context, since time.Time) (*dashboard.SummaryStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees),
			(SELECT COUNT(*) FROM departments),
			(SELECT COUNT(*) FROM holidays),
			(SELECT COUNT(*) FROM employees WHERE hire_date >= $1)
	`

	var stats dashboard.SummaryStats
	err := q.QueryRow(ctx, query, since).Scan(&stats.Employees, &stats.Departments, &stats.Holidays, &stats.New)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	return &stats, nil
}

// GetDailyStats returns present/absent per day using FILTER aggregates
func (r *dashboardRepositoryImpl) GetDailyStats(ctx context.Context, start, end time.Time) ([]dashboard.DailyStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			date,
			COUNT(*) FILTER (WHERE status = 'present') AS present,
			COUNT(*) FILTER (WHERE status = 'absent') AS absent
		FROM attendance_marks
		WHERE date BETWEEN $1 AND $2
		GROUP BY date
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []dashboard.DailyStats
	for rows.Next() {
		var s dashboard.DailyStats
		if err := rows.Scan(&s.Date, &s.Present, &s.Absent); err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily stats: %w", err)
	}
	return stats, nil
}

// GetLatestRecords returns the most recently recorded marks
func (r *dashboardRepositoryImpl) GetLatestRecords(ctx context.Context, limit int) ([]dashboard.LatestRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.first_name || ' ' || e.last_name, a.date, a.status
		FROM attendance_marks a
		JOIN employees e ON e.id = a.employee_id
		ORDER BY a.updated_at DESC, a.id DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest records: %w", err)
	}
	defer rows.Close()

	records := []dashboard.LatestRecord{}
	for rows.Next() {
		var rec dashboard.LatestRecord
		if err := rows.Scan(&rec.EmployeeName, &rec.Date, &rec.Status); err != nil {
			return nil, fmt.Errorf("failed to scan latest record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate latest records: %w", err)
	}
	return records, nil
}
