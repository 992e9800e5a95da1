package events

import (
	"sync"

	"github.com/mosfeq/sportslink/pkg/errors"
)

// Events is a concurrency-safe, order-preserving collection of events.
// Order is the order the events were received from the collaborator; the
// filter engine and the list views depend on it being stable.
type Events struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Event
}

// EventsOption configures an Events collection.
type EventsOption func(*Events)

// WithEvents seeds the collection, preserving the given order.
func WithEvents(list []Event) EventsOption {
	return func(e *Events) {
		for _, ev := range list {
			e.add(ev)
		}
	}
}

// NewEvents creates an Events collection.
func NewEvents(opts ...EventsOption) *Events {
	e := &Events{byID: make(map[string]Event)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Events) add(ev Event) {
	if _, exists := e.byID[ev.ID]; !exists {
		e.order = append(e.order, ev.ID)
	}
	e.byID[ev.ID] = ev
}

// Set inserts or replaces an event by ID, appending newcomers at the end.
func (e *Events) Set(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.add(ev)
}

// Get returns an event by ID.
func (e *Events) Get(id string) (Event, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ev, ok := e.byID[id]
	return ev, ok
}

// Delete removes an event by ID. Returns an error if it is absent.
func (e *Events) Delete(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.byID[id]; !ok {
		return errors.NewNotFoundError("event", id)
	}
	delete(e.byID, id)
	for i, existing := range e.order {
		if existing == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return nil
}

// Exists reports whether an event with the given ID is present.
func (e *Events) Exists(id string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.byID[id]
	return ok
}

// Len returns the number of events.
func (e *Events) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.byID)
}

// List returns all events in received order. The slice is a copy.
func (e *Events) List() []Event {
	e.mu.RLock()
	defer e.mu.RUnlock()
	list := make([]Event, 0, len(e.order))
	for _, id := range e.order {
		list = append(list, e.byID[id])
	}
	return list
}

// ByHost returns the events hosted by the given host email, in order.
func (e *Events) ByHost(hostEmail string) []Event {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var list []Event
	for _, id := range e.order {
		if ev := e.byID[id]; ev.HostEmail == hostEmail {
			list = append(list, ev)
		}
	}
	return list
}

// ByIDs returns the present events among ids, in catalog order. IDs with
// no matching event are skipped; a stale membership entry is not an error.
func (e *Events) ByIDs(ids []string) []Event {
	e.mu.RLock()
	defer e.mu.RUnlock()
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var list []Event
	for _, id := range e.order {
		if wanted[id] {
			list = append(list, e.byID[id])
		}
	}
	return list
}
