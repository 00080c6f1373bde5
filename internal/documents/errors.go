package documents

import "errors"

var (
	// ErrNotFound indicates the document does not exist for the owner.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidInput indicates a request failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotConfigured indicates object storage was not configured at startup.
	ErrNotConfigured = errors.New("object storage not configured")
)
