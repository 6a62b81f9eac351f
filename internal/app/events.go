package app

import (
	"sync"

	"aeroedu-service/internal/domain"
)

// EventBus fans caller-facing events out to per-user subscribers. The UI layer
// subscribes once per connection and renders whatever arrives.
type EventBus struct {
	mu   sync.RWMutex
	subs map[string]map[chan domain.Event]struct{}
}

func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[string]map[chan domain.Event]struct{})}
}

// Subscribe returns a channel receiving events for one user. The caller must
// invoke the returned cancel function to avoid leaks.
func (b *EventBus) Subscribe(userID string) (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, 16)

	b.mu.Lock()
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[chan domain.Event]struct{})
	}
	b.subs[userID][ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if set, ok := b.subs[userID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(b.subs, userID)
			}
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of the user. Slow consumers
// lose their oldest pending event instead of blocking the publisher.
func (b *EventBus) Publish(userID string, event domain.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs[userID] {
		select {
		case ch <- event:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- event
		}
	}
}
