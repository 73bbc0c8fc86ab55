package shared

import "errors"

// Error kinds shared by every domain package. Specific errors wrap one of
// these so callers can branch on the kind with errors.Is.
var (
	ErrValidation   = errors.New("validation rejected")
	ErrNotFound     = errors.New("entity not found")
	ErrInvalidState = errors.New("invalid state transition")
	ErrPersistence  = errors.New("persistence failure")
)
