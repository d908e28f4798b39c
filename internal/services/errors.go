package services

import "errors"

var (
	ErrProfileNotFound      = errors.New("cycle profile not found")
	ErrInvalidState         = errors.New("operation preconditions not met")
	ErrCycleIndexOutOfRange = errors.New("cycle index out of range")
	ErrWriteConflict        = errors.New("write conflict retries exhausted")
	ErrCalendarProvider     = errors.New("calendar provider unavailable")
)
