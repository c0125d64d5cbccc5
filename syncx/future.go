package syncx

import (
	"sync"
)

// Future is a value that is resolved asynchronously at a later time.
// Once Await returns, the value is cached for other calls to Await.
//
// A Future[error] is the unit of asynchronous work returned by handlers: it settles exactly once, with a nil error on success.
type Future[T any] interface {
	// Resolve sets the value of the [Future] so it can be resolved by consumers.
	// Only the first call to Resolve will set the result. Subsequent calls do nothing.
	Resolve(T)
	// Await blocks until the value is made available with [Future.Resolve].
	// There is no timeout, work that never resolves blocks forever.
	Await() T
	// Done is closed once the [Future] has been resolved.
	Done() <-chan struct{}
}

// NewFuture creates an unresolved [Future].
func NewFuture[T any]() Future[T] {
	return &future[T]{
		done: make(chan struct{}),
	}
}

// Resolved creates a [Future] that is already resolved with val.
func Resolved[T any](val T) Future[T] {
	f := NewFuture[T]()
	f.Resolve(val)
	return f
}

type future[T any] struct {
	resolve sync.Once
	done    chan struct{}
	val     T
}

func (f *future[T]) Resolve(val T) {
	f.resolve.Do(func() {
		f.val = val
		close(f.done)
	})
}

func (f *future[T]) Await() T {
	<-f.done
	return f.val
}

func (f *future[T]) Done() <-chan struct{} {
	return f.done
}

// Go runs fn in a new goroutine and returns a [Future] resolved with its error.
// A panic in fn is recovered and resolved as a [PanicError].
func Go(fn func() error) Future[error] {
	f := NewFuture[error]()
	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = Recovered(r)
			}
			f.Resolve(err)
		}()
		err = fn()
	}()
	return f
}

// AwaitAll blocks until every non-nil [Future] has resolved, and returns the results in order.
func AwaitAll[T any](futures ...Future[T]) []T {
	results := make([]T, len(futures))
	for i, f := range futures {
		if f == nil {
			continue
		}
		results[i] = f.Await()
	}
	return results
}
