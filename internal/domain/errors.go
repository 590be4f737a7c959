package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidReference indicates a referenced entity is missing from the
	// active catalog or belongs to someone else.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrValidation indicates structurally invalid input.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized indicates a missing or invalid session.
	ErrUnauthorized = errors.New("unauthorized")
)
