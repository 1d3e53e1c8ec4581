package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance marks.
type AttendanceRepository interface {
	// Replace stores m in place of any mark for (m.EmployeeID, m.Date) in a single statement
	Replace(ctx context.Context, m Mark) (Mark, error)

	// ReplaceMany applies Replace to every mark inside a single transaction
	ReplaceMany(ctx context.Context, marks []Mark) error

	// InsertMissing stores the marks whose (employee, date) slot is still empty and
	// returns how many were written. Existing marks are left untouched.
	InsertMissing(ctx context.Context, marks []Mark) (int, error)

	// GetByID retrieves a mark with the employee name joined
	GetByID(ctx context.Context, id string) (Mark, error)

	// Delete removes a mark
	Delete(ctx context.Context, id string) error

	// List retrieves marks within [start, end] with filters and pagination
	List(ctx context.Context, filter AttendanceFilter, start, end time.Time) ([]Mark, int64, error)

	// ListByRange returns every mark dated within [start, end]
	ListByRange(ctx context.Context, start, end time.Time) ([]Mark, error)

	// ListByDate returns the marks recorded on date
	ListByDate(ctx context.Context, date time.Time) ([]Mark, error)
}
