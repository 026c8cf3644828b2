// internal/domain/roster/errors.go
package roster

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a reference to a schedule, role, or user-in-role
	// that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotAssigned signals that the caller is not an assignee of the role
	// they are answering for. Only the assignee may record their own response.
	ErrNotAssigned = errors.New("caller is not assigned to this role")

	// ErrAlreadyAnswered signals a response transition attempted from a
	// terminal state. Accepted and declined are one-shot; there is no path
	// back to pending.
	ErrAlreadyAnswered = errors.New("response already recorded")
)

// ValidationError reports malformed or unrecognized caller input: an unknown
// day type or role, an unparseable date, a duplicate role entry. Always
// recoverable by the caller correcting the input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
