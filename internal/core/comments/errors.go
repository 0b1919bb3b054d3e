package comments

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrThreadNotFound indicates the requested thread document doesn't exist
	ErrThreadNotFound = errors.New("comment thread not found")

	// ErrReplyPathOutOfRange indicates a reply path index doesn't match the
	// current shape of the thread's reply tree
	ErrReplyPathOutOfRange = errors.New("reply path does not match thread structure")

	// ErrConcurrentModification indicates the thread document changed between
	// read and replace
	ErrConcurrentModification = errors.New("thread was modified by another operation")

	// ErrStoreUnavailable indicates the comments index could not be reached
	ErrStoreUnavailable = errors.New("comment store unavailable")
)

// FieldError describes a single invalid input field
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports every invalid field of a request at once, rather
// than failing on the first one.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return fmt.Sprintf("invalid comment: %s", strings.Join(parts, "; "))
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrThreadNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsStructural checks if an error is a corrupt/out-of-range reply path error
func IsStructural(err error) bool {
	return errors.Is(err, ErrReplyPathOutOfRange)
}

// IsConflict checks if an error is a concurrent modification conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}
