package syncx

import (
	"errors"
	"fmt"
)

var ErrPanic = errors.New("recovered panic")

// PanicError carries a recovered panic value that was not itself an error.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: %v", ErrPanic, e.Value)
}

func (e *PanicError) Unwrap() error {
	return ErrPanic
}

// Recovered normalizes a value returned from recover into an error.
// Errors are returned as-is, anything else is wrapped in a [PanicError] that keeps the original message.
// Recovered returns nil for a nil value.
func Recovered(r any) error {
	if r == nil {
		return nil
	}
	if err, ok := r.(error); ok {
		return err
	}
	return &PanicError{Value: r}
}
