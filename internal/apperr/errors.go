package apperr

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrDuplicateTitle = errors.New("duplicate title")
	ErrEmptyTitle     = errors.New("empty title")
	ErrInvalidFormat  = errors.New("invalid format")
)
