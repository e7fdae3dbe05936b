package docstore

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrDuplicateName = errors.New("name already exists")
)

// Error provides detailed error information for store operations
type Error struct {
	Op  string // Operation that failed
	Key string // Semester or subject name involved
	Err error  // Underlying error
}

func (e *Error) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("docstore: %s", e.Op))

	if e.Key != "" {
		parts = append(parts, fmt.Sprintf("name=%s", e.Key))
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for Error type
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return errors.Is(e.Err, target)
	}

	if t.Op != "" && e.Op == t.Op {
		return true
	}

	return errors.Is(e.Err, t.Err)
}
