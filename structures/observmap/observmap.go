// Package observmap provides [Map], an insertion-ordered map that publishes a [notify.ChangeEvent] for every effective mutation.
//
// Setting a key to a value that is the same as its current value (see package identity) is a no-op, and so is deleting a missing key or clearing an empty Map.
// Each mutation is applied to the backing storage before handlers are notified, and handlers are called after the lock is released, so they may read or mutate the Map that notified them.
//
// Overlapping mutations from different goroutines are not serialized against each other.
// Handlers of two concurrent SetWait calls on the same key may observe events in an order that doesn't match the final write.
// Callers that need ordered delivery should serialize their own mutations.
//
// Float keys follow Go's equality, except that every NaN is the same key (see [identity.KeyOf]).
package observmap

import (
	"github.com/saylorsolutions/observe/identity"
	"github.com/saylorsolutions/observe/iterx"
	"github.com/saylorsolutions/observe/notify"
	"github.com/saylorsolutions/observe/syncx"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"iter"
	"sync"
)

// Event is the change record published by a [Map].
type Event[K comparable, V any] = notify.ChangeEvent[K, V]

// Option configures a [Map].
type Option[K comparable, V any] func(m *Map[K, V])

// WithComparator overrides the identity comparison used to detect a changed value.
func WithComparator[K comparable, V any](same identity.Comparator[V]) Option[K, V] {
	return func(m *Map[K, V]) {
		if same != nil {
			m.same = same
		}
	}
}

// WithName names the Map's broadcaster for diagnostics.
func WithName[K comparable, V any](name string) Option[K, V] {
	return func(m *Map[K, V]) {
		m.name = name
	}
}

// Condition is checked with the current state of a key while a [Map] is locked for writing.
// Returning an error cancels the write.
type Condition[V any] func(current V, present bool) error

// Map is an insertion-ordered map that may be observed for changes.
type Map[K comparable, V any] struct {
	name   string
	same   identity.Comparator[V]
	events *notify.Broadcaster[Event[K, V]]

	mux     sync.RWMutex
	entries *orderedmap.OrderedMap[identity.Key[K], V]
}

// New creates an empty [Map].
func New[K comparable, V any](opts ...Option[K, V]) *Map[K, V] {
	m := &Map[K, V]{
		same:    identity.Same[V],
		entries: orderedmap.New[identity.Key[K], V](),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.events = notify.New[Event[K, V]](notify.Named(m.name))
	return m
}

// Get returns the value stored for key, and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	return syncx.RLockFuncT2(&m.mux, func() (V, bool) {
		return m.entries.Get(identity.KeyOf(key))
	})
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return syncx.RLockFuncT(&m.mux, func() int {
		return m.entries.Len()
	})
}

// Set stores val for key.
// An [notify.Add] event is emitted for a new key, and an [notify.Update] event is emitted if the key held a different value.
func (m *Map[K, V]) Set(key K, val V) {
	_ = m.SetIf(key, val, nil)
}

// SetWait is the same as [Map.Set], but blocks until all asynchronous handlers for this change have settled.
func (m *Map[K, V]) SetWait(key K, val V) {
	_ = m.SetIfWait(key, val, nil)
}

// SetIf is the same as [Map.Set], but only writes if cond returns nil for the current state of key.
// The error returned from cond is returned as is, and nothing is emitted.
// A nil cond always allows the write.
//
// cond is called with the Map locked, so it must not call methods on the Map.
func (m *Map[K, V]) SetIf(key K, val V, cond Condition[V]) error {
	event, changed, err := m.store(key, val, cond)
	if err != nil || !changed {
		return err
	}
	m.events.Emit(event)
	return nil
}

// SetIfWait is the same as [Map.SetIf], but blocks until all asynchronous handlers for this change have settled.
func (m *Map[K, V]) SetIfWait(key K, val V, cond Condition[V]) error {
	event, changed, err := m.store(key, val, cond)
	if err != nil || !changed {
		return err
	}
	m.events.EmitWait(event)
	return nil
}

func (m *Map[K, V]) store(key K, val V, cond Condition[V]) (event Event[K, V], changed bool, err error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	slot := identity.KeyOf(key)
	old, present := m.entries.Get(slot)
	if cond != nil {
		if err := cond(old, present); err != nil {
			return event, false, err
		}
	}
	if present && m.same(old, val) {
		return event, false, nil
	}
	m.entries.Set(slot, val)
	event = Event[K, V]{Type: notify.Add, Key: key, Value: val}
	if present {
		event.Type = notify.Update
		event.OldValue = old
	}
	return event, true, nil
}

// Delete removes key, and returns true if it was present.
// A [notify.Delete] event is emitted only if something was removed.
func (m *Map[K, V]) Delete(key K) bool {
	event, removed := m.remove(key)
	if removed {
		m.events.Emit(event)
	}
	return removed
}

// DeleteWait is the same as [Map.Delete], but blocks until all asynchronous handlers for this change have settled.
func (m *Map[K, V]) DeleteWait(key K) bool {
	event, removed := m.remove(key)
	if removed {
		m.events.EmitWait(event)
	}
	return removed
}

func (m *Map[K, V]) remove(key K) (Event[K, V], bool) {
	return syncx.LockFuncT2(&m.mux, func() (Event[K, V], bool) {
		old, present := m.entries.Delete(identity.KeyOf(key))
		if !present {
			return Event[K, V]{}, false
		}
		return Event[K, V]{Type: notify.Delete, Key: key, OldValue: old}, true
	})
}

// Clear removes every entry and emits a single [notify.Clear] event.
// Clearing an empty Map does nothing.
func (m *Map[K, V]) Clear() {
	if m.reset() {
		m.events.Emit(Event[K, V]{Type: notify.Clear})
	}
}

// ClearWait is the same as [Map.Clear], but blocks until all asynchronous handlers for this change have settled.
func (m *Map[K, V]) ClearWait() {
	if m.reset() {
		m.events.EmitWait(Event[K, V]{Type: notify.Clear})
	}
}

func (m *Map[K, V]) reset() bool {
	return syncx.LockFuncT(&m.mux, func() bool {
		if m.entries.Len() == 0 {
			return false
		}
		m.entries = orderedmap.New[identity.Key[K], V]()
		return true
	})
}

// All iterates the entries in insertion order.
// The entries are copied when All is called, so the Map may be mutated while iterating.
func (m *Map[K, V]) All() iterx.MapIter[K, V] {
	keys, vals := m.pairs()
	return iterx.SelectPairs(keys, vals)
}

// Keys iterates the keys in insertion order, with the same copy semantics as [Map.All].
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return m.All().Keys().Seq()
}

// Values iterates the values in insertion order of their keys, with the same copy semantics as [Map.All].
func (m *Map[K, V]) Values() iter.Seq[V] {
	return m.All().Values().Seq()
}

func (m *Map[K, V]) pairs() ([]K, []V) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	keys := make([]K, 0, m.entries.Len())
	vals := make([]V, 0, m.entries.Len())
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key.Value())
		vals = append(vals, pair.Value)
	}
	return keys, vals
}

// Snapshot copies the entries into a new built-in map.
// NaN keys can't be read back from a built-in map, so prefer [Map.All] when keys may be NaN.
func (m *Map[K, V]) Snapshot() map[K]V {
	return m.All().Map()
}

// OnChange calls handler for every change event.
func (m *Map[K, V]) OnChange(handler notify.Handler[Event[K, V]]) *notify.Subscription {
	return m.events.Subscribe(handler)
}

// OnChangeAsync is the same as [Map.OnChange] for an [notify.AsyncHandler].
func (m *Map[K, V]) OnChangeAsync(handler notify.AsyncHandler[Event[K, V]]) *notify.Subscription {
	return m.events.SubscribeAsync(handler)
}

// OnError receives failures of this Map's handlers.
func (m *Map[K, V]) OnError(handler notify.ErrorHandler) *notify.Subscription {
	return m.events.SubscribeError(handler)
}

// ListenerCount returns the number of change handlers.
func (m *Map[K, V]) ListenerCount() int {
	return m.events.ListenerCount()
}

// Destroy removes every handler. The entries are left as they are.
func (m *Map[K, V]) Destroy() {
	m.events.Destroy()
}

// Filter creates a new [Map] with the entries for which keep returns true.
// The result doesn't follow later changes to m.
func (m *Map[K, V]) Filter(keep func(key K, val V) bool, opts ...Option[K, V]) *Map[K, V] {
	return collect(m.All().Filter(keep), opts...)
}

// MapValues creates a new [Map] with transform applied to every value of src.
// The result doesn't follow later changes to src.
func MapValues[K comparable, V, U any](src *Map[K, V], transform func(key K, val V) U, opts ...Option[K, U]) *Map[K, U] {
	return collect(iterx.TransformValues(src.All(), transform), opts...)
}

// collect fills a new Map before anyone can subscribe to it, so no events are emitted.
func collect[K comparable, V any](entries iterx.MapIter[K, V], opts ...Option[K, V]) *Map[K, V] {
	m := New[K, V](opts...)
	for key, val := range entries {
		m.entries.Set(identity.KeyOf(key), val)
	}
	return m
}
