package eventbus

import (
	"errors"
	"fmt"
	"github.com/saylorsolutions/observe/notify"
	"github.com/saylorsolutions/observe/structures/set"
	"github.com/saylorsolutions/observe/syncx"
	"reflect"
	"slices"
	"sync"
)

var (
	ErrUnknownTopic   = errors.New("unknown topic")
	ErrTopicType      = errors.New("topic payload type mismatch")
	ErrDuplicateTopic = errors.New("duplicate topic")
	ErrEmptyTopic     = errors.New("topic name cannot be empty")
)

var (
	instanceBus *Bus
	initOnce    sync.Once
)

// Instance is useful in cases where a single, global [Bus] is desired.
// The global instance uses lazy topics unless it was configured first with [InitInstance].
func Instance() *Bus {
	initOnce.Do(func() {
		instanceBus = NewBus()
	})
	return instanceBus
}

// InitInstance configures the global [Bus] returned by [Instance].
// Returns false if the global instance was already created, in which case the configuration isn't applied.
func InitInstance(configs ...ConfigFunc) bool {
	initialized := false
	initOnce.Do(func() {
		instanceBus = NewBus(configs...)
		initialized = true
	})
	return initialized
}

type busConf struct {
	declared set.Set[string]
}

// ConfigFunc configures a [Bus] at construction.
type ConfigFunc func(conf *busConf) error

// DeclareTopics switches a [Bus] to a fixed set of topics.
// Subscribing to or emitting on a topic that wasn't declared fails with [ErrUnknownTopic].
// Every name that is declared more than once is reported with [ErrDuplicateTopic].
func DeclareTopics(names ...string) ConfigFunc {
	return func(conf *busConf) error {
		if conf.declared == nil {
			conf.declared = set.New[string]()
		}
		var errs []error
		for _, name := range names {
			if len(name) == 0 {
				errs = append(errs, ErrEmptyTopic)
				continue
			}
			if conf.declared.Has(name) {
				errs = append(errs, fmt.Errorf("%w: '%s'", ErrDuplicateTopic, name))
				continue
			}
			conf.declared.Add(name)
		}
		return errors.Join(errs...)
	}
}

// topicCore is the untyped view of a per-topic [notify.Broadcaster].
type topicCore interface {
	ListenerCount() int
	Destroy()
}

// Bus multiplexes named topics, each with its own [notify.Broadcaster].
// The payload type of a topic is fixed by the first call that creates it.
type Bus struct {
	declared set.Set[string]

	mux    sync.RWMutex
	topics map[string]topicCore
}

// NewBus creates a new [Bus].
// By default, topics are created on first subscription. Use [DeclareTopics] to fix the set of topics instead.
// NewBus panics if any ConfigFunc fails.
func NewBus(configs ...ConfigFunc) *Bus {
	conf := new(busConf)
	var errs []error
	for _, cfg := range configs {
		if err := cfg(conf); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		panic(fmt.Sprintf("invalid event bus configuration: %v", err))
	}
	return &Bus{
		declared: conf.declared,
		topics:   map[string]topicCore{},
	}
}

// Fixed reports whether the Bus only accepts declared topics.
func (b *Bus) Fixed() bool {
	return b.declared != nil
}

func (b *Bus) checkName(name string) error {
	if len(name) == 0 {
		return ErrEmptyTopic
	}
	if b.Fixed() && !b.declared.Has(name) {
		return fmt.Errorf("%w: '%s'", ErrUnknownTopic, name)
	}
	return nil
}

// Topics returns the names of the topics that currently exist, in sorted order.
// In fixed mode, declared topics that nothing has subscribed to yet are included.
func (b *Bus) Topics() []string {
	names := syncx.RLockFuncT(&b.mux, func() set.Set[string] {
		names := b.declared.Copy()
		for name := range b.topics {
			names.Add(name)
		}
		return names
	})
	sorted := names.Slice()
	slices.Sort(sorted)
	return sorted
}

// ListenerCount returns the number of handlers subscribed to a topic.
func (b *Bus) ListenerCount(name string) int {
	return syncx.RLockFuncT(&b.mux, func() int {
		t, ok := b.topics[name]
		if !ok {
			return 0
		}
		return t.ListenerCount()
	})
}

// RemoveTopic destroys a topic's broadcaster, removing every handler.
// The topic may be created again with a different payload type.
// Returns false if the topic didn't exist.
func (b *Bus) RemoveTopic(name string) bool {
	t, ok := syncx.LockFuncT2(&b.mux, func() (topicCore, bool) {
		t, ok := b.topics[name]
		delete(b.topics, name)
		return t, ok
	})
	if ok {
		t.Destroy()
	}
	return ok
}

// Destroy destroys every topic's broadcaster and clears the topic table.
func (b *Bus) Destroy() {
	topics := syncx.LockFuncT(&b.mux, func() map[string]topicCore {
		topics := b.topics
		b.topics = map[string]topicCore{}
		return topics
	})
	for _, t := range topics {
		t.Destroy()
	}
}

func broadcaster[T any](b *Bus, name string, create bool) (*notify.Broadcaster[T], error) {
	if err := b.checkName(name); err != nil {
		return nil, err
	}
	if !create {
		t, ok := syncx.RLockFuncT2(&b.mux, func() (topicCore, bool) {
			t, ok := b.topics[name]
			return t, ok
		})
		if !ok {
			return nil, nil
		}
		return assertType[T](name, t)
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	t, ok := b.topics[name]
	if !ok {
		core := notify.New[T](notify.Named(name))
		b.topics[name] = core
		return core, nil
	}
	return assertType[T](name, t)
}

func assertType[T any](name string, t topicCore) (*notify.Broadcaster[T], error) {
	core, ok := t.(*notify.Broadcaster[T])
	if !ok {
		return nil, fmt.Errorf("%w: topic '%s' carries %T, not %s", ErrTopicType, name, t, reflect.TypeFor[T]())
	}
	return core, nil
}

// Subscribe adds a handler to a topic, creating the topic if needed.
func Subscribe[T any](b *Bus, topic string, handler notify.Handler[T]) (*notify.Subscription, error) {
	core, err := broadcaster[T](b, topic, true)
	if err != nil {
		return nil, err
	}
	return core.Subscribe(handler), nil
}

// SubscribeAsync is the same as [Subscribe] for a [notify.AsyncHandler].
func SubscribeAsync[T any](b *Bus, topic string, handler notify.AsyncHandler[T]) (*notify.Subscription, error) {
	core, err := broadcaster[T](b, topic, true)
	if err != nil {
		return nil, err
	}
	return core.SubscribeAsync(handler), nil
}

// SubscribeOnce adds a handler to a topic that is removed after its first call.
func SubscribeOnce[T any](b *Bus, topic string, handler notify.Handler[T]) (*notify.Subscription, error) {
	core, err := broadcaster[T](b, topic, true)
	if err != nil {
		return nil, err
	}
	return core.SubscribeOnce(handler), nil
}

// SubscribeError adds an error handler to a topic, creating the topic if needed.
func SubscribeError[T any](b *Bus, topic string, handler notify.ErrorHandler) (*notify.Subscription, error) {
	core, err := broadcaster[T](b, topic, true)
	if err != nil {
		return nil, err
	}
	return core.SubscribeError(handler), nil
}

// Emit delivers payload to the handlers of a topic and returns the number of handlers invoked.
// Emitting on a topic that has no subscribers yet does nothing and isn't an error.
func Emit[T any](b *Bus, topic string, payload T) (int, error) {
	core, err := broadcaster[T](b, topic, false)
	if err != nil || core == nil {
		return 0, err
	}
	return core.Emit(payload), nil
}

// EmitWait is the same as [Emit], but blocks until all asynchronous handlers invoked by this call have settled.
func EmitWait[T any](b *Bus, topic string, payload T) (int, error) {
	core, err := broadcaster[T](b, topic, false)
	if err != nil || core == nil {
		return 0, err
	}
	return core.EmitWait(payload), nil
}
