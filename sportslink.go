// Package sportslink keeps a local view of a remote sport-event catalog.
// A SportsLink owns the authoritative in-memory snapshot of all events
// plus the viewer's hosted and joined subsets, reconciles the store's
// full-snapshot notifications with local filter changes, and exposes a
// filtered view recomputed on every change.
package sportslink

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mosfeq/sportslink/pkg/events"
	"github.com/mosfeq/sportslink/pkg/logging"
	"github.com/mosfeq/sportslink/pkg/repository"
)

// SportsLink manages the synchronized event catalog, the derived per-user
// lists, and the filter engine.
type SportsLink interface {
	// Run subscribes to the store and starts the update loop. It returns
	// once subscriptions are established; deliveries are applied in the
	// background until ctx is canceled or Close is called.
	Run(ctx context.Context) error

	// Close stops the update loop.
	Close() error

	// Catalog returns a copy of the current full-catalog snapshot with
	// its list state.
	Catalog() ([]events.Event, State)

	// Hosted returns the events the viewer hosts, derived from the
	// catalog by host email.
	Hosted() ([]events.Event, State)

	// Joined returns the events the viewer has joined, derived from the
	// catalog through the profile's membership index.
	Joined() ([]events.Event, State)

	// Visible returns the filtered view of the catalog under the active
	// predicates. With no predicates active, it equals the full catalog.
	Visible() []events.Event

	// Filter predicates. Each set or clear recomputes the visible view
	// eagerly. Predicates compose by logical AND.
	SetSportFilter(events.Sport)
	ClearSportFilter()
	SetExperienceFilter(events.Experience)
	ClearExperienceFilter()
	SetDateFilter(time.Time)
	ClearDateFilter()

	// Change hooks, fired from the update loop after a snapshot is
	// applied.
	OnEventAdded(EventAddedHook)
	OnEventUpdated(EventUpdatedHook)
	OnEventRemoved(EventRemovedHook)
	OnVisibleChanged(VisibleChangedHook)
}

// sportslink is the internal implementation of the SportsLink interface.
//
// The run loop goroutine is the only writer of snapshot state; filter
// setters mutate only the predicate set. Both go through mu, so no
// caller ever observes a partially applied update.
type sportslink struct {
	repo   *repository.Repository
	config *config
	log    *zerolog.Logger
	hooks  *hooks

	mu           sync.RWMutex
	viewer       string
	catalog      *events.Events
	catalogState State
	profile      events.Profile
	profileState State
	filters      filterSet
	visible      []events.Event

	stopOnce sync.Once
	stopCh   chan struct{}
	cancel   context.CancelFunc
}

// New creates a SportsLink over the given repository.
func New(repo *repository.Repository, opts ...Option) (SportsLink, error) {
	s := &sportslink{
		repo:   repo,
		config: defaultConfig(),
		hooks:  newHooks(),
		stopCh: make(chan struct{}),
	}

	if err := s.options(opts...); err != nil {
		return nil, err
	}

	s.log = s.config.logger
	if s.log == nil {
		s.log = logging.Default()
	}
	s.viewer = s.config.viewer
	s.filters.location = s.config.location

	s.catalog = events.NewEvents(events.WithEvents(s.config.initial))

	if s.config.cachePath != "" && len(s.config.initial) == 0 {
		if cached, err := loadCache(s.config.cachePath); err == nil {
			s.catalog = events.NewEvents(events.WithEvents(cached))
		} else {
			s.log.Debug().Err(err).Str("path", s.config.cachePath).Msg("No usable snapshot cache")
		}
	}

	// Seed the visible view through the same stages later recomputes use,
	// so an excluded or filtered event never shows up before the first
	// delivery.
	s.visible = s.filters.apply(s.allEventsLocked())

	return s, nil
}

// Catalog returns a copy of the current snapshot. Before the first
// successful fetch the state is Uninitialized; a cached or initial list
// is still returned so consumers can render something while loading.
func (s *sportslink) Catalog() ([]events.Event, State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allEventsLocked(), s.catalogState
}

// allEventsLocked applies the optional exclude-hosted stage to the full
// snapshot.
func (s *sportslink) allEventsLocked() []events.Event {
	list := s.catalog.List()
	if !s.config.excludeHosted || s.viewer == "" {
		return list
	}
	filtered := make([]events.Event, 0, len(list))
	for _, ev := range list {
		if ev.HostEmail != s.viewer {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

// Hosted returns the viewer's hosted events.
func (s *sportslink) Hosted() ([]events.Event, State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.ByHost(s.viewer), s.catalogState
}

// Joined returns the viewer's joined events. The list depends on both
// the catalog and the profile, so its state is the worse of the two.
func (s *sportslink) Joined() ([]events.Event, State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.ByIDs(s.profile.Joined), worseState(s.catalogState, s.profileState)
}

// Visible returns the current filtered view.
func (s *sportslink) Visible() []events.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]events.Event, len(s.visible))
	copy(out, s.visible)
	return out
}
