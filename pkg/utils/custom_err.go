package utils

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrSessionNotFound      = errors.New("session not found")
	ErrDestinationNotFound  = errors.New("destination not found")
	ErrAccommodationMissing = errors.New("accommodation not found")
	ErrPlanNotFound         = errors.New("trip plan not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrCompletionFailure    = errors.New("completion service failure")
	ErrDatabaseError        = errors.New("database error")
)
