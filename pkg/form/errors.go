package form

import (
	"errors"
	"strings"
)

var (
	ErrMissingFields    = errors.New("required fields are empty")
	ErrPasswordMismatch = errors.New("password and confirmation differ")

	// ErrNoBackend is reported when the remote strategy has no API to call.
	ErrNoBackend = errors.New("no backend configured")
)

// ValidationError is raised before any side effect when a submission is
// incomplete or inconsistent. It never reaches the network.
type ValidationError struct {
	// Kind is ErrMissingFields or ErrPasswordMismatch.
	Kind   error
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}
