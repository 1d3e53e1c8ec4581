package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/holiday"
)

// CheckMarkable reports why attendance cannot be recorded on date, or nil when it can.
func CheckMarkable(date time.Time, holidays []holiday.Holiday, today time.Time) error {
	if !IsWorkingDay(date, holidays) {
		return ErrNonWorkingDay
	}
	if calendar.Truncate(date).After(calendar.Truncate(today)) {
		return ErrFutureDate
	}
	return nil
}

// RecordMark returns marks with m recorded: any earlier mark for the same employee and date is
// dropped before m is appended, so recording the same mark twice leaves the same set. marks is
// not modified.
func RecordMark(marks []Mark, m Mark, holidays []holiday.Holiday, today time.Time) ([]Mark, error) {
	if !m.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	m.Date = calendar.Truncate(m.Date)
	if err := CheckMarkable(m.Date, holidays, today); err != nil {
		return nil, err
	}

	updated := make([]Mark, 0, len(marks)+1)
	for _, existing := range marks {
		if existing.sameSlot(m.EmployeeID, m.Date) {
			continue
		}
		updated = append(updated, existing)
	}
	return append(updated, m), nil
}
