package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmailExists          = errors.New("email already registered")
	ErrFutureDateNotAllowed = errors.New("date cannot be in the future")
)
