package users

import "errors"

var (
	// ErrNotFound indicates no user exists with the given id.
	ErrNotFound = errors.New("user not found")
)
