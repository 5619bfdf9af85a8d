package intake

import (
	"fmt"
)

// MismatchWarning is attached to a Result when the recorded splits do not
// add up to the expense amount. The expense is still committed.
const MismatchWarning = "Split amounts do not match total expense"

// ValidationError reports malformed or missing input. Nothing is committed
// for the request that produced it.
type ValidationError struct {
	Message string
	Err     error // underlying cause, if any
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced record that does not exist.
type NotFoundError struct {
	Kind string // e.g. "user"
	ID   string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}
