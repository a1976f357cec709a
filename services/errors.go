package services

import "errors"

// Common errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrNotebookNotFound   = errors.New("notebook not found")
	ErrSectionNotFound    = errors.New("section not found")
	ErrPageNotFound       = errors.New("page not found")
	ErrInvalidParent      = errors.New("parent does not exist or is deleted")
	ErrInvalidInput       = errors.New("invalid input")
	ErrCycleDetected      = errors.New("move would create a cycle")
	ErrCrossContainerMove = errors.New("cannot move across containers")
	ErrPageReadOnly       = errors.New("page is in trash and read-only")
	ErrInternal           = errors.New("internal error")
)
