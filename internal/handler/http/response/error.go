package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/department"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-desk/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")

	// Calendar range errors
	case errors.Is(err, calendar.ErrInvalidRange):
		Error(w, http.StatusBadRequest, "INVALID_RANGE", "Start date must not be after end date", nil)
	case errors.Is(err, calendar.ErrFutureEndDate):
		Error(w, http.StatusBadRequest, "FUTURE_END_DATE", "End date cannot be in the future", nil)
	case errors.Is(err, calendar.ErrRangeTooLarge):
		Error(w, http.StatusBadRequest, "RANGE_TOO_LARGE", "Date range cannot exceed 2 years", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNonWorkingDay):
		Error(w, http.StatusBadRequest, "NON_WORKING_DAY", "Attendance can only be recorded on working days", nil)
	case errors.Is(err, attendance.ErrFutureDate):
		Error(w, http.StatusBadRequest, "FUTURE_DATE", "Attendance cannot be recorded for future dates", nil)
	case errors.Is(err, attendance.ErrInvalidStatus):
		Error(w, http.StatusBadRequest, "INVALID_STATUS", "Status must be present or absent", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrFutureDateNotAllowed):
		Error(w, http.StatusBadRequest, "FUTURE_DATE", "Hire date cannot be in the future", nil)

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, "Department name already exists")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday with this name already exists on this date")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
