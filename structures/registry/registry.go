// Package registry provides [Registry], an observable map that enforces presence rules on registration and lookup.
//
// A key may only be registered once until it's unregistered, and only registered keys may be read with [Registry.Get] or updated.
// Breaking these rules returns a [PresenceError] to the caller, and never reaches the change handlers.
package registry

import (
	"errors"
	"fmt"
	"github.com/saylorsolutions/observe/notify"
	"github.com/saylorsolutions/observe/structures/observmap"
)

var (
	ErrPresenceViolation = errors.New("presence violation")
	ErrAlreadyRegistered = fmt.Errorf("%w: already registered", ErrPresenceViolation)
	ErrNotRegistered     = fmt.Errorf("%w: not registered", ErrPresenceViolation)
)

// PresenceError reports the key that broke a presence rule.
type PresenceError struct {
	Key any
	Err error
}

func (e *PresenceError) Error() string {
	return fmt.Sprintf("key '%v': %v", e.Key, e.Err)
}

func (e *PresenceError) Unwrap() error {
	return e.Err
}

// Registry is an [observmap.Map] with presence rules.
// Set, Delete, and Clear are inherited from the Map and don't check presence.
type Registry[K comparable, V any] struct {
	*observmap.Map[K, V]
}

// New creates an empty [Registry].
func New[K comparable, V any](opts ...observmap.Option[K, V]) *Registry[K, V] {
	return &Registry[K, V]{
		Map: observmap.New[K, V](opts...),
	}
}

func mustBeAbsent[K comparable, V any](key K) observmap.Condition[V] {
	return func(_ V, present bool) error {
		if present {
			return &PresenceError{Key: key, Err: ErrAlreadyRegistered}
		}
		return nil
	}
}

func mustBePresent[K comparable, V any](key K) observmap.Condition[V] {
	return func(_ V, present bool) error {
		if !present {
			return &PresenceError{Key: key, Err: ErrNotRegistered}
		}
		return nil
	}
}

// Register adds a new key.
// If key is already registered, then a [PresenceError] is returned and the stored value is left unchanged.
func (r *Registry[K, V]) Register(key K, val V) error {
	return r.SetIf(key, val, mustBeAbsent[K, V](key))
}

// RegisterWait is the same as [Registry.Register], but blocks until all asynchronous handlers for this change have settled.
func (r *Registry[K, V]) RegisterWait(key K, val V) error {
	return r.SetIfWait(key, val, mustBeAbsent[K, V](key))
}

// Unregister removes key, and returns true if it was registered.
func (r *Registry[K, V]) Unregister(key K) bool {
	return r.Delete(key)
}

// UnregisterWait is the same as [Registry.Unregister], but blocks until all asynchronous handlers for this change have settled.
func (r *Registry[K, V]) UnregisterWait(key K) bool {
	return r.DeleteWait(key)
}

// Get returns the value registered for key, or a [PresenceError] if it isn't registered.
// Use [Registry.Lookup] to check for presence without an error.
func (r *Registry[K, V]) Get(key K) (V, error) {
	val, ok := r.Map.Get(key)
	if !ok {
		return val, &PresenceError{Key: key, Err: ErrNotRegistered}
	}
	return val, nil
}

// Lookup returns the value registered for key, and whether it was registered.
func (r *Registry[K, V]) Lookup(key K) (V, bool) {
	return r.Map.Get(key)
}

// HasAll reports whether every given key is registered.
func (r *Registry[K, V]) HasAll(keys ...K) bool {
	for _, key := range keys {
		if !r.Has(key) {
			return false
		}
	}
	return true
}

// Update replaces the value of a registered key.
// If key isn't registered, then a [PresenceError] is returned and nothing is stored.
func (r *Registry[K, V]) Update(key K, val V) error {
	return r.SetIf(key, val, mustBePresent[K, V](key))
}

// UpdateWait is the same as [Registry.Update], but blocks until all asynchronous handlers for this change have settled.
func (r *Registry[K, V]) UpdateWait(key K, val V) error {
	return r.SetIfWait(key, val, mustBePresent[K, V](key))
}

// UpdateWith replaces the value of a registered key with the result of transform.
// If transform returns an error, then it's returned wrapped in a [notify.TransformError], and the registry is left unchanged.
// The key must still be registered when the result is stored.
func (r *Registry[K, V]) UpdateWith(key K, transform func(current V) (V, error)) error {
	newVal, err := r.transform(key, transform)
	if err != nil {
		return err
	}
	return r.Update(key, newVal)
}

// UpdateWithWait is the same as [Registry.UpdateWith], but blocks until all asynchronous handlers for this change have settled.
func (r *Registry[K, V]) UpdateWithWait(key K, transform func(current V) (V, error)) error {
	newVal, err := r.transform(key, transform)
	if err != nil {
		return err
	}
	return r.UpdateWait(key, newVal)
}

func (r *Registry[K, V]) transform(key K, transform func(current V) (V, error)) (V, error) {
	current, err := r.Get(key)
	if err != nil {
		return current, err
	}
	newVal, err := transform(current)
	if err != nil {
		var zero V
		return zero, &notify.TransformError{Err: err}
	}
	return newVal, nil
}
