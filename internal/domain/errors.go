package domain

import "errors"

var (
	// ErrValidation marks caller-supplied data that violates a field
	// rule. Handlers map it to 400; it is never logged as a fault.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup for a submission that does not exist.
	ErrNotFound = errors.New("not found")
)
