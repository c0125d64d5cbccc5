package notify

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
)

var (
	ErrHandler      = errors.New("handler failed")
	ErrRejected     = errors.New("handler task failed")
	ErrErrorHandler = errors.New("error handler failed")
	ErrTransform    = errors.New("transform failed")
)

// HandlerError is reported when a handler returns an error or panics while it's being invoked.
type HandlerError struct {
	Subscription uuid.UUID
	Err          error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%v: subscription %s: %v", ErrHandler, e.Subscription, e.Err)
}

func (e *HandlerError) Unwrap() []error {
	return []error{ErrHandler, e.Err}
}

// RejectionError is reported when the asynchronous work started by an [AsyncHandler] resolves with an error.
// It may be reported after [Broadcaster.Emit] has returned, but always before [Broadcaster.EmitWait] returns.
type RejectionError struct {
	Subscription uuid.UUID
	Err          error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%v: subscription %s: %v", ErrRejected, e.Subscription, e.Err)
}

func (e *RejectionError) Unwrap() []error {
	return []error{ErrRejected, e.Err}
}

// TransformError is returned to the caller when a user-supplied transform fails during an update.
// The container is left unchanged and nothing is emitted.
type TransformError struct {
	Err error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("%v: %v", ErrTransform, e.Err)
}

func (e *TransformError) Unwrap() []error {
	return []error{ErrTransform, e.Err}
}
