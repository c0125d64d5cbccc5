// Package observer provides [Subject], a single value that notifies handlers when it changes.
//
// Changes are detected with an identity comparison (see package identity) unless another comparator is given with [WithComparator].
// Setting a value that is the same as the current one doesn't notify anyone.
//
// Mutations are atomic, but notifications are delivered after the lock is released.
// Concurrent calls to Set or Update on the same Subject are not serialized against each other, so handlers of overlapping calls may observe values out of order.
package observer

import (
	"github.com/saylorsolutions/observe/identity"
	"github.com/saylorsolutions/observe/notify"
	"github.com/saylorsolutions/observe/syncx"
	"sync"
)

// Option configures a [Subject].
type Option[T any] func(s *Subject[T])

// WithComparator overrides the identity comparison used to detect changes.
func WithComparator[T any](same identity.Comparator[T]) Option[T] {
	return func(s *Subject[T]) {
		if same != nil {
			s.same = same
		}
	}
}

// WithName names the Subject's broadcaster for diagnostics.
func WithName[T any](name string) Option[T] {
	return func(s *Subject[T]) {
		s.name = name
	}
}

// Subject is a value that may be observed for changes.
type Subject[T any] struct {
	name   string
	same   identity.Comparator[T]
	events *notify.Broadcaster[T]
	unlink *notify.Subscription

	mux   sync.RWMutex
	value T
}

// NewSubject creates a [Subject] with an initial value.
func NewSubject[T any](val T, opts ...Option[T]) *Subject[T] {
	s := &Subject[T]{
		same:  identity.Same[T],
		value: val,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = notify.New[T](notify.Named(s.name))
	return s
}

// Get returns the current value.
func (s *Subject[T]) Get() T {
	return syncx.RLockFuncT(&s.mux, func() T {
		return s.value
	})
}

// Set stores newVal and notifies handlers if it differs from the current value.
// Set doesn't wait for asynchronous handlers.
func (s *Subject[T]) Set(newVal T) {
	if s.swap(newVal) {
		s.events.Emit(newVal)
	}
}

// SetWait is the same as [Subject.Set], but blocks until all asynchronous handlers for this change have settled.
func (s *Subject[T]) SetWait(newVal T) {
	if s.swap(newVal) {
		s.events.EmitWait(newVal)
	}
}

func (s *Subject[T]) swap(newVal T) bool {
	return syncx.LockFuncT(&s.mux, func() bool {
		if s.same(s.value, newVal) {
			return false
		}
		s.value = newVal
		return true
	})
}

// Update computes a new value from the current one and passes it to [Subject.Set].
// If fn returns an error, then the value is left unchanged, nothing is emitted, and a [notify.TransformError] is returned.
func (s *Subject[T]) Update(fn func(current T) (T, error)) error {
	newVal, err := s.transform(fn)
	if err != nil {
		return err
	}
	s.Set(newVal)
	return nil
}

// UpdateWait is the same as [Subject.Update], but uses [Subject.SetWait].
func (s *Subject[T]) UpdateWait(fn func(current T) (T, error)) error {
	newVal, err := s.transform(fn)
	if err != nil {
		return err
	}
	s.SetWait(newVal)
	return nil
}

func (s *Subject[T]) transform(fn func(current T) (T, error)) (T, error) {
	newVal, err := fn(s.Get())
	if err != nil {
		var zero T
		return zero, &notify.TransformError{Err: err}
	}
	return newVal, nil
}

// Subscribe calls handler with the current value right away, and then for every change.
// The handler is subscribed before the current value is read, so a change made in between is delivered rather than lost.
func (s *Subject[T]) Subscribe(handler notify.Handler[T]) *notify.Subscription {
	sub := s.OnChange(handler)
	s.events.Invoke(handler, s.Get())
	return sub
}

// OnChange calls handler for every change, without calling it for the current value.
func (s *Subject[T]) OnChange(handler notify.Handler[T]) *notify.Subscription {
	return s.events.Subscribe(handler)
}

// OnChangeAsync is the same as [Subject.OnChange] for an [notify.AsyncHandler].
func (s *Subject[T]) OnChangeAsync(handler notify.AsyncHandler[T]) *notify.Subscription {
	return s.events.SubscribeAsync(handler)
}

// OnError receives failures of this Subject's handlers.
func (s *Subject[T]) OnError(handler notify.ErrorHandler) *notify.Subscription {
	return s.events.SubscribeError(handler)
}

// ListenerCount returns the number of change handlers.
func (s *Subject[T]) ListenerCount() int {
	return s.events.ListenerCount()
}

// Destroy removes every handler.
// A Subject created with [Map] also stops following its source.
func (s *Subject[T]) Destroy() {
	s.unlink.Unsubscribe()
	s.events.Destroy()
}

// Map creates a new [Subject] that holds transform applied to the value of src, and follows every change to src.
// The derived Subject applies its own change detection, so a transform that maps different inputs to the same output doesn't notify the derived Subject's handlers again.
func Map[T, U any](src *Subject[T], transform func(T) U, opts ...Option[U]) *Subject[U] {
	derived := NewSubject(transform(src.Get()), opts...)
	derived.unlink = src.OnChange(func(newVal T) error {
		derived.Set(transform(newVal))
		return nil
	})
	// src may have changed before the link existed.
	derived.Set(transform(src.Get()))
	return derived
}
