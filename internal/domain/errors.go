package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateName is returned when a category name collides case-insensitively
	ErrDuplicateName = errors.New("name already in use")

	// ErrAlreadyExists is returned on duplicate-resource conflicts, e.g. a second
	// review from the same user for the same product
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is returned when the caller is not authenticated
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden is returned when the caller lacks the required role
	ErrForbidden = errors.New("insufficient permissions")

	// ErrInternal is returned when the underlying store fails
	ErrInternal = errors.New("internal error")
)
