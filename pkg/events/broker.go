package events

import (
	"sync"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"
)

// Broker distributes engine events to subscribers.
//
// Dispatch is synchronous and in registration order: the engine is
// single-threaded and cooperative, and consumers (UI updates, counters)
// rely on observing events in the exact order the engine produced them.
// A subscriber that needs to do slow work should hand the event off to
// its own goroutine.
type Broker struct {
	mu          sync.RWMutex
	nextID      int
	subscribers []subscription
	logger      *zerolog.Logger
}

type subscription struct {
	id  int
	sub Subscriber
}

// NewBroker creates a new event broker.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{logger: logger}
}

// Publish delivers an event to all subscribers, in registration order.
func (b *Broker) Publish(eventType EventType, data any) {
	event := Event{
		Type:      eventType,
		Timestamp: utc.Now(),
		Data:      data,
	}

	b.mu.RLock()
	subs := make([]subscription, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, s := range subs {
		if err := s.sub.Handle(event); err != nil && b.logger != nil {
			b.logger.Warn().
				Err(err).
				Str("event_type", string(event.Type)).
				Msg("Subscriber failed to handle event")
		}
	}
}

// Subscribe registers a subscriber and returns a cancel function that
// removes it. Cancel is idempotent.
func (b *Broker) Subscribe(sub Subscriber) (cancel func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subscribers = append(b.subscribers, subscription{id: id, sub: sub})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subscribers {
			if s.id == id {
				b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
				return
			}
		}
	}
}

// SubscriberCount returns the current number of subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
