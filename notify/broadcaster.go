package notify

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/saylorsolutions/observe/diag"
	"github.com/saylorsolutions/observe/syncx"
	"slices"
	"sync"
	"sync/atomic"
)

type caller[T any] interface {
	call(payload T) (syncx.Future[error], error)
}

type entry[T any] struct {
	id      uuid.UUID
	handler caller[T]
	live    atomic.Bool
}

type errorEntry struct {
	id      uuid.UUID
	handler ErrorHandler
	live    atomic.Bool
}

type task struct {
	id     uuid.UUID
	future syncx.Future[error]
}

// Option configures a [Broadcaster].
type Option func(conf *broadcasterConf)

type broadcasterConf struct {
	name string
}

// Named sets a name that is attached to diagnostics reported by the [Broadcaster].
func Named(name string) Option {
	return func(conf *broadcasterConf) {
		conf.name = name
	}
}

// Broadcaster delivers payloads of type T to subscribed handlers.
// The zero value is ready to use, and a Broadcaster must not be copied after first use.
type Broadcaster[T any] struct {
	name string

	mux        sync.Mutex
	persistent []*entry[T]
	oneShot    []*entry[T]
	errs       []*errorEntry
}

// New creates a new [Broadcaster].
func New[T any](opts ...Option) *Broadcaster[T] {
	var conf broadcasterConf
	for _, opt := range opts {
		opt(&conf)
	}
	return &Broadcaster[T]{
		name: conf.name,
	}
}

// Name returns the name given with [Named], if any.
func (b *Broadcaster[T]) Name() string {
	return b.name
}

// Subscribe adds a persistent handler that is called for every emitted payload until it's unsubscribed.
// Passing a nil handler will panic.
func (b *Broadcaster[T]) Subscribe(handler Handler[T]) *Subscription {
	if handler == nil {
		panic("nil handler")
	}
	return b.add(handler, false)
}

// SubscribeAsync is the same as [Broadcaster.Subscribe] for an [AsyncHandler].
func (b *Broadcaster[T]) SubscribeAsync(handler AsyncHandler[T]) *Subscription {
	if handler == nil {
		panic("nil handler")
	}
	return b.add(handler, false)
}

// SubscribeOnce adds a handler that is removed when it's first invoked, whether it fails or not.
// The handler is removed from the Broadcaster before it's called, so it fires at most once even with concurrent emits.
func (b *Broadcaster[T]) SubscribeOnce(handler Handler[T]) *Subscription {
	if handler == nil {
		panic("nil handler")
	}
	return b.add(handler, true)
}

// SubscribeOnceAsync is the same as [Broadcaster.SubscribeOnce] for an [AsyncHandler].
func (b *Broadcaster[T]) SubscribeOnceAsync(handler AsyncHandler[T]) *Subscription {
	if handler == nil {
		panic("nil handler")
	}
	return b.add(handler, true)
}

func (b *Broadcaster[T]) add(handler caller[T], once bool) *Subscription {
	sub := newSubscription(b.remove)
	e := &entry[T]{id: sub.ID(), handler: handler}
	e.live.Store(true)
	syncx.LockFunc(&b.mux, func() {
		if once {
			b.oneShot = append(b.oneShot, e)
			return
		}
		b.persistent = append(b.persistent, e)
	})
	return sub
}

func removeEntry[T any](entries []*entry[T], id uuid.UUID) []*entry[T] {
	return slices.DeleteFunc(entries, func(e *entry[T]) bool {
		if e.id != id {
			return false
		}
		e.live.Store(false)
		return true
	})
}

func (b *Broadcaster[T]) remove(id uuid.UUID) {
	syncx.LockFunc(&b.mux, func() {
		b.persistent = removeEntry(b.persistent, id)
		b.oneShot = removeEntry(b.oneShot, id)
	})
}

// Unsubscribe removes the handlers for the given subscriptions.
// Subscriptions that belong to another Broadcaster are ignored.
// If no subscriptions are given, then all persistent and one-shot handlers are removed, but error handlers are kept.
func (b *Broadcaster[T]) Unsubscribe(subs ...*Subscription) {
	if len(subs) > 0 {
		for _, sub := range subs {
			if sub == nil {
				continue
			}
			b.remove(sub.ID())
		}
		return
	}
	syncx.LockFunc(&b.mux, func() {
		b.clearHandlers()
	})
}

func (b *Broadcaster[T]) clearHandlers() {
	for _, e := range b.persistent {
		e.live.Store(false)
	}
	for _, e := range b.oneShot {
		e.live.Store(false)
	}
	b.persistent = nil
	b.oneShot = nil
}

// SubscribeError adds a handler that receives every error raised by handlers of this Broadcaster.
// Passing a nil handler will panic.
func (b *Broadcaster[T]) SubscribeError(handler ErrorHandler) *Subscription {
	if handler == nil {
		panic("nil error handler")
	}
	sub := newSubscription(b.removeError)
	e := &errorEntry{id: sub.ID(), handler: handler}
	e.live.Store(true)
	syncx.LockFunc(&b.mux, func() {
		b.errs = append(b.errs, e)
	})
	return sub
}

func (b *Broadcaster[T]) removeError(id uuid.UUID) {
	syncx.LockFunc(&b.mux, func() {
		b.errs = slices.DeleteFunc(b.errs, func(e *errorEntry) bool {
			if e.id != id {
				return false
			}
			e.live.Store(false)
			return true
		})
	})
}

// UnsubscribeError removes the error handlers for the given subscriptions, or all error handlers if none are given.
func (b *Broadcaster[T]) UnsubscribeError(subs ...*Subscription) {
	if len(subs) > 0 {
		for _, sub := range subs {
			if sub == nil {
				continue
			}
			b.removeError(sub.ID())
		}
		return
	}
	syncx.LockFunc(&b.mux, func() {
		b.clearErrorHandlers()
	})
}

func (b *Broadcaster[T]) clearErrorHandlers() {
	for _, e := range b.errs {
		e.live.Store(false)
	}
	b.errs = nil
}

// Emit calls every handler with payload, in subscription order, persistent handlers first.
// Handler failures are routed to error handlers and never stop the remaining handlers from running.
// Emit doesn't wait for asynchronous work started by handlers.
//
// The returned count includes every handler that was invoked, even if it fails later.
func (b *Broadcaster[T]) Emit(payload T) int {
	count, tasks := b.pass(payload)
	b.settle(tasks)
	return count
}

// EmitWait is the same as [Broadcaster.Emit], but blocks until all asynchronous work started by this call has settled.
// Failures in that work are routed to error handlers before EmitWait returns, they are never returned to the caller.
// Work started by other, overlapping emits is not waited for.
func (b *Broadcaster[T]) EmitWait(payload T) int {
	count, tasks := b.pass(payload)
	b.settle(tasks).Wait()
	return count
}

func (b *Broadcaster[T]) pass(payload T) (int, []task) {
	persistent, oneShot := syncx.LockFuncT2(&b.mux, func() ([]*entry[T], []*entry[T]) {
		return slices.Clone(b.persistent), slices.Clone(b.oneShot)
	})
	var (
		count int
		tasks []task
	)
	for _, e := range persistent {
		// Removed mid-pass by another handler.
		if !e.live.Load() {
			continue
		}
		count++
		if f := b.invoke(e.id, e.handler, payload); f != nil {
			tasks = append(tasks, task{id: e.id, future: f})
		}
	}
	for _, e := range oneShot {
		if !e.live.CompareAndSwap(true, false) {
			continue
		}
		b.remove(e.id)
		count++
		if f := b.invoke(e.id, e.handler, payload); f != nil {
			tasks = append(tasks, task{id: e.id, future: f})
		}
	}
	return count, tasks
}

func (b *Broadcaster[T]) invoke(id uuid.UUID, handler caller[T], payload T) (future syncx.Future[error]) {
	defer func() {
		if r := recover(); r != nil {
			future = nil
			b.route(&HandlerError{Subscription: id, Err: syncx.Recovered(r)})
		}
	}()
	var err error
	future, err = handler.call(payload)
	if err != nil {
		b.route(&HandlerError{Subscription: id, Err: err})
	}
	return future
}

func (b *Broadcaster[T]) settle(tasks []task) *sync.WaitGroup {
	var wg sync.WaitGroup
	for _, t := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := t.future.Await(); err != nil {
				b.route(&RejectionError{Subscription: t.id, Err: err})
			}
		}()
	}
	return &wg
}

// Invoke calls a single handler with payload outside an emit, with the same error routing as [Broadcaster.Emit].
// The handler doesn't need to be subscribed.
func (b *Broadcaster[T]) Invoke(handler Handler[T], payload T) {
	if handler == nil {
		return
	}
	b.invoke(uuid.Nil, handler, payload)
}

func (b *Broadcaster[T]) route(err error) {
	handlers := syncx.LockFuncT(&b.mux, func() []*errorEntry {
		return slices.Clone(b.errs)
	})
	delivered := false
	for _, h := range handlers {
		if !h.live.Load() {
			continue
		}
		delivered = true
		b.callErrorHandler(h, err)
	}
	if !delivered {
		b.report(err)
	}
}

func (b *Broadcaster[T]) callErrorHandler(h *errorEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			b.report(fmt.Errorf("%w: %w", ErrErrorHandler, syncx.Recovered(r)), "cause", err)
		}
	}()
	h.handler(err)
}

func (b *Broadcaster[T]) report(err error, attrs ...any) {
	if len(b.name) > 0 {
		attrs = append(attrs, "broadcaster", b.name)
	}
	diag.Report(err, attrs...)
}

// HasHandlers reports whether any persistent or one-shot handlers are subscribed.
func (b *Broadcaster[T]) HasHandlers() bool {
	return b.ListenerCount() > 0
}

// ListenerCount returns the number of persistent and one-shot handlers, excluding error handlers.
func (b *Broadcaster[T]) ListenerCount() int {
	return syncx.LockFuncT(&b.mux, func() int {
		return len(b.persistent) + len(b.oneShot)
	})
}

// Destroy removes every handler, including error handlers.
// The Broadcaster may still be used afterward, but no previously subscribed handler will fire again.
func (b *Broadcaster[T]) Destroy() {
	syncx.LockFunc(&b.mux, func() {
		b.clearHandlers()
		b.clearErrorHandlers()
	})
}
