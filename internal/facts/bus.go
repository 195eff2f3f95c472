// Package facts provides the in-process publication channel for the
// immutable facts the ledger emits alongside committed state transitions.
package facts

import (
	"sync"
	"time"

	"github.com/mindmatch/memoryledger/internal/model"
)

// Subscriber receives published facts. Notify is called synchronously on
// the publishing goroutine, in emission order; subscribers that need to
// do slow work should hand the fact off to their own goroutine.
type Subscriber interface {
	Notify(fact model.Fact)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(fact model.Fact)

// Notify calls f(fact)
func (f SubscriberFunc) Notify(fact model.Fact) {
	f(fact)
}

// Bus fans facts out to subscribers. There is no shared mutable event
// state beyond the subscriber list itself.
type Bus struct {
	mu   sync.RWMutex
	subs []Subscriber
}

// NewBus creates an empty fact bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe adds a subscriber. Subscribers are notified in subscription
// order and cannot be removed; the bus lives for the process lifetime.
func (b *Bus) Subscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, sub)
}

// Publish delivers a fact to every subscriber synchronously.
func (b *Bus) Publish(factType model.FactType, at time.Time, payload any) {
	fact := model.Fact{
		Type:      factType,
		Timestamp: at,
		Payload:   payload,
	}

	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.Notify(fact)
	}
}
