// Package events provides in-process pub/sub for booking events.
package events

import (
	"sync"
	"time"

	"roombook/internal/models"
)

// Booking event types.
const (
	ReservationCreated   = "reservation.created"
	ReservationUpdated   = "reservation.updated"
	ReservationCancelled = "reservation.cancelled"
)

// Event carries a reservation lifecycle notification.
type Event struct {
	Type        string
	Reservation models.Reservation
	OccurredAt  time.Time
}

// Handler reacts to an event.
type Handler func(event Event)

// Bus fans events out to subscribers. Handlers run synchronously on
// the publisher's goroutine, so a handler's side effects (cache
// invalidation, counters) are visible before the publisher responds.
type Bus struct {
	subscribers map[string][]Handler
	mu          sync.RWMutex
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// SubscribeAll registers a handler for every reservation event type.
func (b *Bus) SubscribeAll(handler Handler) {
	for _, t := range []string{ReservationCreated, ReservationUpdated, ReservationCancelled} {
		b.Subscribe(t, handler)
	}
}

// Publish notifies subscribers of the event type.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	for _, handler := range handlers {
		handler(event)
	}
}
