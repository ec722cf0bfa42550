package domain

import "errors"

// Sentinel errors returned by services and repositories. Delivery code
// dispatches on these with errors.Is to pick the response status.
var (
	// ErrNotFound means a referenced id does not resolve to a row.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput means the input is malformed or out of range.
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden means the caller is not allowed to perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrEventFull means the event has no remaining capacity.
	ErrEventFull = errors.New("event is full")
	// ErrConflict means the operation would violate a uniqueness rule,
	// such as a duplicate active registration or a duplicate lookup name.
	ErrConflict = errors.New("conflict")
)
