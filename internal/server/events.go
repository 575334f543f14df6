package server

import (
	"fmt"
	"sync"

	"github.com/lamim/prdforge/internal/wizard"
)

// subscriberBuffer is the number of events a subscriber may lag behind before
// events are dropped for it
const subscriberBuffer = 64

// EventBus fans controller events out to the subscribers of each session
type EventBus struct {
	mu     sync.RWMutex
	topics map[string]map[string]chan wizard.Event
	nextID int64
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		topics: make(map[string]map[string]chan wizard.Event),
	}
}

// Subscribe registers a subscriber for one session and returns its id and channel
func (eb *EventBus) Subscribe(session string) (string, <-chan wizard.Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	id := fmt.Sprintf("sub_%d", eb.nextID)
	ch := make(chan wizard.Event, subscriberBuffer)

	subs, ok := eb.topics[session]
	if !ok {
		subs = make(map[string]chan wizard.Event)
		eb.topics[session] = subs
	}
	subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel
func (eb *EventBus) Unsubscribe(session, id string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs, ok := eb.topics[session]
	if !ok {
		return
	}
	if ch, exists := subs[id]; exists {
		delete(subs, id)
		close(ch)
	}
	if len(subs) == 0 {
		delete(eb.topics, session)
	}
}

// CloseSession drops every subscriber of a session
func (eb *EventBus) CloseSession(session string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for _, ch := range eb.topics[session] {
		close(ch)
	}
	delete(eb.topics, session)
}

// CloseAll drops every subscriber
func (eb *EventBus) CloseAll() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for session, subs := range eb.topics {
		for _, ch := range subs {
			close(ch)
		}
		delete(eb.topics, session)
	}
}

// Publish delivers an event to the subscribers of a session.
// A subscriber whose buffer is full misses the event.
func (eb *EventBus) Publish(session string, e wizard.Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, ch := range eb.topics[session] {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribers returns the number of subscribers of a session
func (eb *EventBus) Subscribers(session string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.topics[session])
}
