package sportslink

import (
	"time"

	"github.com/mosfeq/sportslink/pkg/events"
)

// filterSet is the active predicate conjunction. A nil predicate is not
// applied; there are no OR or NOT combinators.
type filterSet struct {
	sport      *events.Sport
	experience *events.Experience
	date       *time.Time
	location   *time.Location
}

// apply computes the visible subset of list, preserving order.
func (f filterSet) apply(list []events.Event) []events.Event {
	visible := make([]events.Event, 0, len(list))
	for _, ev := range list {
		if f.matches(ev) {
			visible = append(visible, ev)
		}
	}
	return visible
}

func (f filterSet) matches(ev events.Event) bool {
	if f.sport != nil && ev.Sport != *f.sport {
		return false
	}
	if f.experience != nil && ev.Experience != *f.experience {
		return false
	}
	if f.date != nil && !events.SameDay(ev.Date.Time, *f.date, f.location) {
		return false
	}
	return true
}

// SetSportFilter activates the sport predicate.
func (s *sportslink) SetSportFilter(sport events.Sport) {
	s.updateFilters(func(f *filterSet) {
		f.sport = &sport
	})
}

// ClearSportFilter deactivates the sport predicate.
func (s *sportslink) ClearSportFilter() {
	s.updateFilters(func(f *filterSet) {
		f.sport = nil
	})
}

// SetExperienceFilter activates the experience predicate.
func (s *sportslink) SetExperienceFilter(experience events.Experience) {
	s.updateFilters(func(f *filterSet) {
		f.experience = &experience
	})
}

// ClearExperienceFilter deactivates the experience predicate.
func (s *sportslink) ClearExperienceFilter() {
	s.updateFilters(func(f *filterSet) {
		f.experience = nil
	})
}

// SetDateFilter activates the same-calendar-day predicate.
func (s *sportslink) SetDateFilter(date time.Time) {
	s.updateFilters(func(f *filterSet) {
		f.date = &date
	})
}

// ClearDateFilter deactivates the date predicate.
func (s *sportslink) ClearDateFilter() {
	s.updateFilters(func(f *filterSet) {
		f.date = nil
	})
}

// updateFilters mutates the predicate set and eagerly recomputes the
// visible view, firing the change hook if it moved.
func (s *sportslink) updateFilters(mutate func(*filterSet)) {
	s.mu.Lock()
	mutate(&s.filters)
	changed := s.recomputeVisibleLocked()
	visible := s.visible
	s.mu.Unlock()

	if changed {
		s.hooks.triggerVisibleChanged(visible)
	}
}

// recomputeVisibleLocked reapplies the predicate conjunction to the
// current snapshot. Returns whether the visible view changed.
func (s *sportslink) recomputeVisibleLocked() bool {
	visible := s.filters.apply(s.allEventsLocked())
	if equalEvents(visible, s.visible) {
		return false
	}
	s.visible = visible
	return true
}

func equalEvents(a, b []events.Event) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
