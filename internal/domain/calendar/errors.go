package calendar

import "errors"

// Range validation errors
var (
	ErrInvalidRange  = errors.New("start date cannot be after end date")
	ErrFutureEndDate = errors.New("end date cannot be in the future")
	ErrRangeTooLarge = errors.New("date range cannot exceed 2 years")
)
