package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/calendar"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusAbsent),
}

// Valid reports whether s is present or absent.
func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Mark is the attendance status of one employee on one date. There is at most one mark per
// (employee, date).
type Mark struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

func (m Mark) sameSlot(employeeID string, date time.Time) bool {
	return m.EmployeeID == employeeID && calendar.SameDay(m.Date, date)
}
