package notify

import (
	"github.com/google/uuid"
	"sync"
)

// Subscription is returned when a handler is added to a [Broadcaster].
// It's the only way to remove that specific handler, since Go functions can't be compared.
type Subscription struct {
	id     uuid.UUID
	remove func(id uuid.UUID)
	once   sync.Once
}

func newSubscription(remove func(id uuid.UUID)) *Subscription {
	return &Subscription{
		id:     uuid.New(),
		remove: remove,
	}
}

// ID returns the unique ID of the subscription.
func (s *Subscription) ID() uuid.UUID {
	if s == nil {
		return uuid.Nil
	}
	return s.id
}

// Unsubscribe removes the subscribed handler.
// If the handler is a one-shot handler that hasn't fired yet, then it's removed without running.
// This is safe to call multiple times, and on a nil Subscription.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.remove(s.id)
	})
}
