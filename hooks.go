package sportslink

import (
	"sync"

	"github.com/mosfeq/sportslink/pkg/events"
)

// Hook function types for catalog change events.
type (
	// EventAddedHook is called when an event appears in the catalog.
	EventAddedHook func(ev events.Event)

	// EventUpdatedHook is called when an event's fields change.
	EventUpdatedHook func(old, updated events.Event)

	// EventRemovedHook is called when an event leaves the catalog.
	EventRemovedHook func(ev events.Event)

	// VisibleChangedHook is called when the filtered view changes,
	// whether from a snapshot delivery or a predicate change.
	VisibleChangedHook func(visible []events.Event)
)

// hooks manages registered callbacks for catalog changes.
type hooks struct {
	mu               sync.RWMutex
	onEventAdded     []EventAddedHook
	onEventUpdated   []EventUpdatedHook
	onEventRemoved   []EventRemovedHook
	onVisibleChanged []VisibleChangedHook
}

// newHooks creates a new hooks instance.
func newHooks() *hooks {
	return &hooks{}
}

// OnEventAdded registers a callback for added events.
func (h *hooks) OnEventAdded(fn EventAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onEventAdded = append(h.onEventAdded, fn)
}

// OnEventUpdated registers a callback for updated events.
func (h *hooks) OnEventUpdated(fn EventUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onEventUpdated = append(h.onEventUpdated, fn)
}

// OnEventRemoved registers a callback for removed events.
func (h *hooks) OnEventRemoved(fn EventRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onEventRemoved = append(h.onEventRemoved, fn)
}

// OnVisibleChanged registers a callback for filtered-view changes.
func (h *hooks) OnVisibleChanged(fn VisibleChangedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onVisibleChanged = append(h.onVisibleChanged, fn)
}

// triggerCatalogUpdate diffs consecutive snapshots by ID and fires the
// appropriate hooks. Delivering the same snapshot twice fires nothing.
func (h *hooks) triggerCatalogUpdate(old, updated []events.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	oldByID := make(map[string]events.Event, len(old))
	for _, ev := range old {
		oldByID[ev.ID] = ev
	}
	newByID := make(map[string]events.Event, len(updated))
	for _, ev := range updated {
		newByID[ev.ID] = ev
	}

	for _, ev := range updated {
		previous, exists := oldByID[ev.ID]
		switch {
		case !exists:
			for _, hook := range h.onEventAdded {
				hook(ev)
			}
		case previous != ev:
			for _, hook := range h.onEventUpdated {
				hook(previous, ev)
			}
		}
	}

	for _, ev := range old {
		if _, exists := newByID[ev.ID]; !exists {
			for _, hook := range h.onEventRemoved {
				hook(ev)
			}
		}
	}
}

// triggerVisibleChanged fires the filtered-view hooks.
func (h *hooks) triggerVisibleChanged(visible []events.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onVisibleChanged {
		hook(visible)
	}
}

// OnEventAdded implements SportsLink.
func (s *sportslink) OnEventAdded(fn EventAddedHook) {
	s.hooks.OnEventAdded(fn)
}

// OnEventUpdated implements SportsLink.
func (s *sportslink) OnEventUpdated(fn EventUpdatedHook) {
	s.hooks.OnEventUpdated(fn)
}

// OnEventRemoved implements SportsLink.
func (s *sportslink) OnEventRemoved(fn EventRemovedHook) {
	s.hooks.OnEventRemoved(fn)
}

// OnVisibleChanged implements SportsLink.
func (s *sportslink) OnVisibleChanged(fn VisibleChangedHook) {
	s.hooks.OnVisibleChanged(fn)
}
