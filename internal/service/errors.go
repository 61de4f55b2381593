package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrSelfDependency    = errors.New("cannot create dependency to itself")
	ErrDuplicateDep      = errors.New("dependency already exists between these tasks")
	ErrTasksMissing      = errors.New("one or both tasks do not exist")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrInactiveUser      = errors.New("user is inactive")
	ErrNothingToExport   = errors.New("no projects to export")
)

// InvalidInputError rejects a request body before it reaches the store.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, msg string) error {
	return &InvalidInputError{Field: field, Message: msg}
}
