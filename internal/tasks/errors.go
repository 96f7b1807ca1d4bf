package tasks

import "errors"

var (
	ErrNotFound = errors.New("task not found")
	// ErrInvalidID marks an id that is not a well-formed identifier at all,
	// as opposed to a well-formed one that matches no task.
	ErrInvalidID = errors.New("invalid task id")
)

// ValidationError rejects bad input at write time. Message is safe to show
// to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
