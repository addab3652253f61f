package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by repositories when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrValidation is wrapped by entity validation failures.
var ErrValidation = errors.New("validation failed")

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

// invalidf builds an error that matches errors.Is(err, ErrValidation).
func invalidf(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}
