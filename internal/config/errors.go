package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks a flag or option value that failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// SetupError is a fatal error raised before any file is converted.
type SetupError struct {
	Op  string
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// IsSetupError reports whether err (or anything it wraps) is a SetupError.
func IsSetupError(err error) bool {
	var se *SetupError
	return errors.As(err, &se)
}

func invalid(op, format string, args ...any) error {
	return &SetupError{Op: op, Err: fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))}
}
