// Package events notifies connected clients that catalogue or order data changed.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Type names the collection that changed.
type Type string

const (
	BrandsUpdated   Type = "brandsUpdated"
	ProductsUpdated Type = "productsUpdated"
	OrdersUpdated   Type = "ordersUpdated"
)

// Event is a change notification. It carries no payload; receivers refetch.
type Event struct {
	Type   Type      `json:"type"`
	At     time.Time `json:"at"`
	Origin string    `json:"origin,omitempty"`
}

// Publisher announces that a collection changed.
type Publisher interface {
	Publish(ctx context.Context, t Type)
}

const subscriberBuffer = 16

// Broker fans events out to in-process subscribers. Delivery is best-effort:
// a subscriber whose buffer is full misses the event.
type Broker struct {
	mu     sync.RWMutex
	subs   map[chan Event]struct{}
	now    func() time.Time
	logger zerolog.Logger
}

// NewBroker returns an empty broker.
func NewBroker(logger zerolog.Logger) *Broker {
	return &Broker{
		subs:   make(map[chan Event]struct{}),
		now:    time.Now,
		logger: logger.With().Str("component", "event-broker").Logger(),
	}
}

// Publish delivers an event of type t, stamped with the current time.
func (b *Broker) Publish(ctx context.Context, t Type) {
	b.Deliver(Event{Type: t, At: b.now().UTC()})
}

// Deliver hands e to every current subscriber without blocking.
func (b *Broker) Deliver(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.logger.Debug().Str("event", string(e.Type)).Msg("subscriber buffer full, event dropped")
		}
	}
}

// Subscribe registers a subscriber until ctx is done, after which the returned
// channel is closed.
func (b *Broker) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}()

	return ch
}

// Subscribers returns the number of active subscribers.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
