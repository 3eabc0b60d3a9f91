package scoring

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInput          = errors.New("invalid scoring input")
	ErrInvalidWeights = errors.New("invalid scoring weights")
)

// InputError reports a required input that was not supplied.
type InputError struct {
	Field string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s is required", ErrInput, e.Field)
}

// Unwrap lets errors.Is match ErrInput.
func (e *InputError) Unwrap() error {
	return ErrInput
}
