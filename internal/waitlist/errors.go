package waitlist

import "errors"

var (
	// ErrInvalidInput indicates a signup failed validation.
	ErrInvalidInput = errors.New("invalid input")
)
