package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNoHandler is returned when a notification has no subscriber.
var ErrNoHandler = errors.New("no handler subscribed")

// Handler reacts to a notification. A returned error fails the publish.
type Handler func(ctx context.Context, n Notification) error

type topic struct {
	kind  Kind
	event Event
}

// Bus is a synchronous in-process publish/subscribe hub keyed by
// (kind, event).
type Bus struct {
	mu       sync.RWMutex
	handlers map[topic][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[topic][]Handler)}
}

// Subscribe registers a handler for one (kind, event) pair.
func (b *Bus) Subscribe(kind Kind, event Event, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := topic{kind: kind, event: event}
	b.handlers[key] = append(b.handlers[key], h)
}

// Publish runs the handlers of the notification in subscription order.
// The first failing handler stops the publish and its error is returned.
func (b *Bus) Publish(ctx context.Context, n Notification) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[topic{kind: n.Kind, event: n.Event}]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return fmt.Errorf("%s: %w", n, ErrNoHandler)
	}

	for _, h := range handlers {
		if err := h(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
