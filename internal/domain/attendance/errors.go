package attendance

import "errors"

// Attendance domain errors
var (
	// Marking errors
	ErrNonWorkingDay = errors.New("attendance cannot be recorded on a weekend or holiday")
	ErrFutureDate    = errors.New("attendance cannot be recorded for a future date")
	ErrInvalidStatus = errors.New("status must be present or absent")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
