package sportslink

import (
	"context"

	"github.com/mosfeq/sportslink/pkg/events"
	"github.com/mosfeq/sportslink/pkg/repository"
)

// Run subscribes to the catalog and, when a viewer is signed in, to the
// viewer's profile, then starts the update loop. Every delivery fully
// replaces the corresponding snapshot: the store is the source of truth,
// so notifications are authoritative and idempotent, and re-filtering
// the whole list on each one is acceptable at catalog scale.
func (s *sportslink) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Close cancels this context so the repository's forwarding
	// goroutines unwind with the loop instead of blocking on a send
	// nobody will receive.
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	if s.viewer == "" {
		if email, err := s.repo.Viewer(); err == nil {
			s.mu.Lock()
			s.viewer = email
			s.mu.Unlock()
		}
	}

	catalogCh, err := s.repo.WatchEvents(ctx)
	if err != nil {
		cancel()
		return err
	}

	var profileCh <-chan repository.ProfileResult
	if s.viewer != "" {
		profileCh, err = s.repo.WatchProfile(ctx)
		if err != nil {
			// The catalog can still sync; only the joined view degrades.
			s.log.Warn().Err(err).Msg("Profile subscription unavailable")
			s.mu.Lock()
			s.profileState = failed(err)
			s.mu.Unlock()
		}
	}

	go s.loop(ctx, catalogCh, profileCh)
	return nil
}

// Close stops the update loop and cancels the subscriptions opened by
// Run. Deliveries already in flight are discarded, not canceled.
func (s *sportslink) Close() error {
	s.stopOnce.Do(func() {
		s.mu.RLock()
		cancel := s.cancel
		s.mu.RUnlock()
		if cancel != nil {
			cancel()
		}
		close(s.stopCh)
	})
	return nil
}

// loop is the single serialized update path: store notifications for
// both snapshots funnel through this one goroutine, so no consumer can
// observe an interleaved partial write.
func (s *sportslink) loop(ctx context.Context, catalogCh <-chan repository.EventsResult, profileCh <-chan repository.ProfileResult) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case result, ok := <-catalogCh:
			if !ok {
				catalogCh = nil
				continue
			}
			s.applyCatalog(result)
		case result, ok := <-profileCh:
			if !ok {
				profileCh = nil
				continue
			}
			s.applyProfile(result)
		}
		if catalogCh == nil && profileCh == nil {
			return
		}
	}
}

// applyCatalog applies one catalog delivery: a full replace on success,
// a transition to Failed on error. The previous snapshot is kept as the
// last known good list while Failed.
func (s *sportslink) applyCatalog(result repository.EventsResult) {
	if result.Err != nil {
		s.log.Error().Err(result.Err).Msg("Catalog subscription delivery failed")
		s.mu.Lock()
		s.catalogState = failed(result.Err)
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	old := s.catalog.List()
	s.catalog = events.NewEvents(events.WithEvents(result.Events))
	s.catalogState = ready
	visibleChanged := s.recomputeVisibleLocked()
	visible := s.visible
	s.mu.Unlock()

	s.log.Debug().Int("events", len(result.Events)).Msg("Catalog snapshot applied")

	s.hooks.triggerCatalogUpdate(old, result.Events)
	if visibleChanged {
		s.hooks.triggerVisibleChanged(visible)
	}

	if s.config.cachePath != "" {
		if err := saveCache(s.config.cachePath, result.Events); err != nil {
			s.log.Warn().Err(err).Str("path", s.config.cachePath).Msg("Could not write snapshot cache")
		}
	}
}

// applyProfile applies one profile delivery, recomputing the membership
// derived joined view.
func (s *sportslink) applyProfile(result repository.ProfileResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result.Err != nil {
		s.profileState = failed(result.Err)
		return
	}
	s.profile = result.Profile
	s.profileState = ready
}
