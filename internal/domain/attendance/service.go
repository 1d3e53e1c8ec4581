package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// GetRanges resolves every range preset against today
	GetRanges(ctx context.Context) ([]PresetRangeResponse, error)
	// ListAttendance retrieves marks within a preset or explicit date range
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single mark by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// DeleteAttendance removes a mark
	DeleteAttendance(ctx context.Context, id string) error

	// RecordAttendance records one employee's status for a past or current working day,
	// replacing an earlier mark for the same date
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) (AttendanceResponse, error)

	// RecordDay records statuses for several employees on one date
	RecordDay(ctx context.Context, req RecordDayRequest) (DaySheetResponse, error)

	// GetDaySheet returns every employee with their mark for date, for the marking page
	GetDaySheet(ctx context.Context, date string) (DaySheetResponse, error)

	// GetCalendar returns the month grid with per-day classification and counts
	GetCalendar(ctx context.Context, req CalendarRequest) (CalendarResponse, error)

	// GetMatrix returns the employees by dates matrix for a range
	GetMatrix(ctx context.Context, req RangeRequest) (MatrixResponse, error)

	// ExportMatrixPDF renders the matrix for a range as a PDF document
	ExportMatrixPDF(ctx context.Context, req RangeRequest) ([]byte, error)

	// MarkAbsentees marks every employee without a mark on date as absent, if date is a
	// working day that is not in the future. It returns the number of marks created.
	MarkAbsentees(ctx context.Context, date time.Time) (int, error)
}
