package volunteer

import "errors"

var (
	ErrInvalidID    = errors.New("invalid id")
	ErrPostNotFound = errors.New("post not found")
	ErrEmptyUpdate  = errors.New("update sets no fields")
	// ErrVolunteerCountNotUpdated means a registration was stored but its post count was not decremented.
	ErrVolunteerCountNotUpdated = errors.New("registration stored but volunteer count not updated")
)
