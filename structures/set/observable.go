package set

import (
	"github.com/saylorsolutions/observe/identity"
	"github.com/saylorsolutions/observe/iterx"
	"github.com/saylorsolutions/observe/notify"
	"github.com/saylorsolutions/observe/syncx"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"iter"
	"sync"
)

// Event is the change record published by an [Observable].
// The Value of an add and the OldValue of a delete are always true.
type Event[T comparable] = notify.ChangeEvent[T, bool]

// Observable is an insertion-ordered set that publishes an [Event] for every item added or removed.
//
// Adding an item that is already present, removing an item that isn't, and clearing an empty Observable don't notify anyone.
// Handlers are called after the lock is released, and overlapping mutations from different goroutines are not serialized against each other.
// Every NaN is the same item.
//
// A nil *Observable reads as empty, so it may be passed as a [Collection] to set algebra.
type Observable[T comparable] struct {
	events *notify.Broadcaster[Event[T]]

	mux   sync.RWMutex
	items *orderedmap.OrderedMap[identity.Key[T], struct{}]
}

var _ Collection[int] = (*Observable[int])(nil)

// NewObservable creates an [Observable] holding the given items.
// Initial items don't produce events.
func NewObservable[T comparable](items ...T) *Observable[T] {
	o := &Observable[T]{
		events: notify.New[Event[T]](),
		items:  orderedmap.New[identity.Key[T], struct{}](),
	}
	for _, item := range items {
		o.items.Set(identity.KeyOf(item), struct{}{})
	}
	return o
}

func (o *Observable[T]) Has(item T) bool {
	if o == nil {
		return false
	}
	return syncx.RLockFuncT(&o.mux, func() bool {
		_, ok := o.items.Get(identity.KeyOf(item))
		return ok
	})
}

func (o *Observable[T]) Len() int {
	if o == nil {
		return 0
	}
	return syncx.RLockFuncT(&o.mux, func() int {
		return o.items.Len()
	})
}

// All iterates the items in insertion order.
// The items are copied when All is called, so the Observable may be mutated while iterating.
func (o *Observable[T]) All() iter.Seq[T] {
	return iterx.SelectAll(o.Slice()).Seq()
}

// Slice returns the items in insertion order.
func (o *Observable[T]) Slice() []T {
	if o == nil {
		return nil
	}
	o.mux.RLock()
	defer o.mux.RUnlock()
	if o.items.Len() == 0 {
		return nil
	}
	items := make([]T, 0, o.items.Len())
	for pair := o.items.Oldest(); pair != nil; pair = pair.Next() {
		items = append(items, pair.Key.Value())
	}
	return items
}

// Add adds item, and returns true if it wasn't already present.
func (o *Observable[T]) Add(item T) bool {
	added := o.insert(item)
	if added {
		o.events.Emit(Event[T]{Type: notify.Add, Key: item, Value: true})
	}
	return added
}

// AddWait is the same as [Observable.Add], but blocks until all asynchronous handlers for this change have settled.
func (o *Observable[T]) AddWait(item T) bool {
	added := o.insert(item)
	if added {
		o.events.EmitWait(Event[T]{Type: notify.Add, Key: item, Value: true})
	}
	return added
}

func (o *Observable[T]) insert(item T) bool {
	return syncx.LockFuncT(&o.mux, func() bool {
		_, present := o.items.Set(identity.KeyOf(item), struct{}{})
		return !present
	})
}

// Delete removes item, and returns true if it was present.
func (o *Observable[T]) Delete(item T) bool {
	removed := o.remove(item)
	if removed {
		o.events.Emit(Event[T]{Type: notify.Delete, Key: item, OldValue: true})
	}
	return removed
}

// DeleteWait is the same as [Observable.Delete], but blocks until all asynchronous handlers for this change have settled.
func (o *Observable[T]) DeleteWait(item T) bool {
	removed := o.remove(item)
	if removed {
		o.events.EmitWait(Event[T]{Type: notify.Delete, Key: item, OldValue: true})
	}
	return removed
}

func (o *Observable[T]) remove(item T) bool {
	return syncx.LockFuncT(&o.mux, func() bool {
		_, present := o.items.Delete(identity.KeyOf(item))
		return present
	})
}

// Clear removes every item and emits a single [notify.Clear] event.
// Clearing an empty Observable does nothing.
func (o *Observable[T]) Clear() {
	if o.reset() {
		o.events.Emit(Event[T]{Type: notify.Clear})
	}
}

// ClearWait is the same as [Observable.Clear], but blocks until all asynchronous handlers for this change have settled.
func (o *Observable[T]) ClearWait() {
	if o.reset() {
		o.events.EmitWait(Event[T]{Type: notify.Clear})
	}
}

func (o *Observable[T]) reset() bool {
	return syncx.LockFuncT(&o.mux, func() bool {
		if o.items.Len() == 0 {
			return false
		}
		o.items = orderedmap.New[identity.Key[T], struct{}]()
		return true
	})
}

// OnChange calls handler for every change event.
func (o *Observable[T]) OnChange(handler notify.Handler[Event[T]]) *notify.Subscription {
	return o.events.Subscribe(handler)
}

// OnChangeAsync is the same as [Observable.OnChange] for an [notify.AsyncHandler].
func (o *Observable[T]) OnChangeAsync(handler notify.AsyncHandler[Event[T]]) *notify.Subscription {
	return o.events.SubscribeAsync(handler)
}

// OnError receives failures of this Observable's handlers.
func (o *Observable[T]) OnError(handler notify.ErrorHandler) *notify.Subscription {
	return o.events.SubscribeError(handler)
}

func (o *Observable[T]) ListenerCount() int {
	return o.events.ListenerCount()
}

// Destroy removes every handler. The items are left as they are.
func (o *Observable[T]) Destroy() {
	o.events.Destroy()
}

// Union returns a new [Observable] with the items of o followed by the items of other that o doesn't have.
func (o *Observable[T]) Union(other Collection[T]) *Observable[T] {
	result := NewObservable[T]()
	union[T](o, other, result.put)
	return result
}

// Intersection returns a new [Observable] with the items of o that are also in other.
func (o *Observable[T]) Intersection(other Collection[T]) *Observable[T] {
	result := NewObservable[T]()
	intersection[T](o, other, result.put)
	return result
}

// Difference returns a new [Observable] with the items of o that aren't in other.
func (o *Observable[T]) Difference(other Collection[T]) *Observable[T] {
	result := NewObservable[T]()
	difference[T](o, other, result.put)
	return result
}

// SymmetricDifference returns a new [Observable] with the items that are in exactly one of o and other.
func (o *Observable[T]) SymmetricDifference(other Collection[T]) *Observable[T] {
	result := NewObservable[T]()
	symmetricDifference[T](o, other, result.put)
	return result
}

func (o *Observable[T]) IsSubsetOf(other Collection[T]) bool {
	return isSubset[T](o, other)
}

func (o *Observable[T]) IsSupersetOf(other Collection[T]) bool {
	return isSubset[T](other, o)
}

func (o *Observable[T]) IsDisjointFrom(other Collection[T]) bool {
	return isDisjoint[T](o, other)
}

// put adds without notifying, for results that nobody is subscribed to yet.
func (o *Observable[T]) put(item T) {
	o.insert(item)
}
