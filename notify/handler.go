package notify

import (
	"github.com/saylorsolutions/observe/syncx"
)

// Handler is called synchronously with each emitted payload.
// A returned error, or a panic, is routed to the [Broadcaster]'s error handlers as a [HandlerError].
type Handler[T any] func(payload T) error

// AsyncHandler starts asynchronous work for a payload and returns a [syncx.Future] that settles when the work is done.
// A nil future means that the work already completed.
// An error resolved by the future is routed to the [Broadcaster]'s error handlers as a [RejectionError].
type AsyncHandler[T any] func(payload T) syncx.Future[error]

// ErrorHandler receives errors raised by handlers.
// A panic in an ErrorHandler is sent to the diagnostic sink, never to the emitter.
type ErrorHandler func(err error)

// Func adapts a function that can't fail to a [Handler].
func Func[T any](fn func(payload T)) Handler[T] {
	return func(payload T) error {
		fn(payload)
		return nil
	}
}

// Async adapts fn to an [AsyncHandler] that runs fn on its own goroutine.
func Async[T any](fn func(payload T) error) AsyncHandler[T] {
	return func(payload T) syncx.Future[error] {
		return syncx.Go(func() error {
			return fn(payload)
		})
	}
}

func (h Handler[T]) call(payload T) (syncx.Future[error], error) {
	return nil, h(payload)
}

func (h AsyncHandler[T]) call(payload T) (syncx.Future[error], error) {
	return h(payload), nil
}
