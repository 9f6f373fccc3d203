// Package events implements the synchronous named-event bus used by the
// accordion controller.
package events

import (
	"sync"

	"github.com/google/uuid"
)

// Handler receives the payload emitted with an event. Payloads are passed by
// reference; a nil payload arrives as an empty map.
type Handler func(payload any)

// Subscription is the handle returned by On. Removing it is idempotent.
type Subscription struct {
	Token uuid.UUID
	Name  string

	bus     *Bus
	handler Handler
	removed bool
}

// Remove tombstones the subscription. A handler removed while an emit is in
// flight is skipped for the rest of that dispatch.
func (s *Subscription) Remove() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.remove(s)
}

// Removed reports whether the subscription was tombstoned.
func (s *Subscription) Removed() bool {
	if s == nil || s.bus == nil {
		return true
	}
	s.bus.mu.RLock()
	defer s.bus.mu.RUnlock()
	return s.removed
}

// Bus maps event names to ordered subscription lists.
type Bus struct {
	mu     sync.RWMutex
	topics map[string][]*Subscription
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{topics: make(map[string][]*Subscription)}
}

// On registers handler for name. Handlers run in subscription order.
func (b *Bus) On(name string, handler Handler) *Subscription {
	sub := &Subscription{
		Token:   uuid.New(),
		Name:    name,
		bus:     b,
		handler: handler,
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.topics == nil {
		b.topics = make(map[string][]*Subscription)
	}
	b.topics[name] = append(b.topics[name], sub)
	return sub
}

// Emit runs the handlers registered for name synchronously. Unknown names are
// no-ops. Handlers may subscribe or unsubscribe while the dispatch is running;
// new subscriptions fire from the next emit on.
func (b *Bus) Emit(name string, payload any) {
	if payload == nil {
		payload = map[string]any{}
	}

	b.mu.RLock()
	snapshot := append([]*Subscription(nil), b.topics[name]...)
	b.mu.RUnlock()

	for _, sub := range snapshot {
		b.mu.RLock()
		removed := sub.removed
		b.mu.RUnlock()
		if removed || sub.handler == nil {
			continue
		}
		sub.handler(payload)
	}
}

// Count returns the number of live subscriptions for name.
func (b *Bus) Count(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[name])
}

// Clear drops every subscription.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, subs := range b.topics {
		for _, sub := range subs {
			sub.removed = true
		}
	}
	b.topics = make(map[string][]*Subscription)
}

func (b *Bus) remove(target *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if target.removed {
		return
	}
	target.removed = true
	subs := b.topics[target.Name]
	kept := subs[:0:0]
	for _, sub := range subs {
		if sub != target {
			kept = append(kept, sub)
		}
	}
	if len(kept) == 0 {
		delete(b.topics, target.Name)
		return
	}
	b.topics[target.Name] = kept
}
