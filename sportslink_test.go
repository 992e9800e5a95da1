package sportslink

import (
	"testing"
	"time"

	authmem "github.com/mosfeq/sportslink/pkg/auth/memory"
	"github.com/mosfeq/sportslink/pkg/errors"
	"github.com/mosfeq/sportslink/pkg/events"
	"github.com/mosfeq/sportslink/pkg/repository"
	storemem "github.com/mosfeq/sportslink/pkg/store/memory"
)

// newLink builds an unstarted instance with direct access to the apply
// paths, which keeps state-machine tests synchronous.
func newLink(t *testing.T, opts ...Option) *sportslink {
	t.Helper()
	repo := repository.New(storemem.New(), authmem.New())
	link, err := New(repo, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return link.(*sportslink)
}

func TestStatesStartUninitialized(t *testing.T) {
	link := newLink(t)

	for _, probe := range []struct {
		name  string
		state State
	}{
		{"catalog", stateOf(link.Catalog())},
		{"hosted", stateOf(link.Hosted())},
		{"joined", stateOf(link.Joined())},
	} {
		if probe.state.Ready() {
			t.Errorf("%s list ready before any fetch", probe.name)
		}
		if !errors.Is(probe.state.Error(), errors.ErrNotReady) {
			t.Errorf("%s Error() = %v, want ErrNotReady", probe.name, probe.state.Error())
		}
	}
}

func stateOf(_ []events.Event, s State) State {
	return s
}

func TestCatalogStateTransitions(t *testing.T) {
	link := newLink(t)
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	ev := makeEvent("golf", events.SportGolf, events.ExperienceBeginner, day)

	// Uninitialized -> Ready on first successful delivery.
	link.applyCatalog(repository.EventsResult{Events: []events.Event{ev}})
	list, state := link.Catalog()
	if !state.Ready() || len(list) != 1 {
		t.Fatalf("after first delivery: state=%v list=%v", state, titles(list))
	}

	// Ready -> Failed keeps the last good list.
	cause := errors.NewTransportError("watch", "Sports Events", errors.MsgCannotRetrieveEvents, nil)
	link.applyCatalog(repository.EventsResult{Err: cause})
	list, state = link.Catalog()
	if state.Kind != Failed {
		t.Fatalf("after failed delivery: state=%v", state)
	}
	if state.Error() == nil || state.Error().Error() != errors.MsgCannotRetrieveEvents {
		t.Errorf("failure reason = %v", state.Error())
	}
	if len(list) != 1 {
		t.Errorf("last good list lost on failure: %v", titles(list))
	}

	// Failed -> Ready on the next successful delivery.
	link.applyCatalog(repository.EventsResult{Events: nil})
	list, state = link.Catalog()
	if !state.Ready() {
		t.Fatalf("after recovery: state=%v", state)
	}
	if len(list) != 0 {
		t.Errorf("recovery delivery not applied: %v", titles(list))
	}
}

func TestSnapshotFullyReplaces(t *testing.T) {
	link := newLink(t)
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	a := makeEvent("alpha", events.SportGolf, events.ExperienceBeginner, day)
	b := makeEvent("bravo", events.SportTennis, events.ExperienceBeginner, day)

	link.applyCatalog(repository.EventsResult{Events: []events.Event{a, b}})
	link.applyCatalog(repository.EventsResult{Events: []events.Event{b}})

	list, _ := link.Catalog()
	if len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("snapshot merged instead of replacing: %v", titles(list))
	}
}

func TestCatalogHooksDiffDeliveries(t *testing.T) {
	link := newLink(t)
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	a := makeEvent("alpha", events.SportGolf, events.ExperienceBeginner, day)
	b := makeEvent("bravo", events.SportTennis, events.ExperienceBeginner, day)

	var added, updated, removed []string
	link.OnEventAdded(func(ev events.Event) { added = append(added, ev.Title) })
	link.OnEventUpdated(func(_, ev events.Event) { updated = append(updated, ev.Title) })
	link.OnEventRemoved(func(ev events.Event) { removed = append(removed, ev.Title) })

	link.applyCatalog(repository.EventsResult{Events: []events.Event{a, b}})
	if len(added) != 2 || len(updated) != 0 || len(removed) != 0 {
		t.Fatalf("first delivery: added=%v updated=%v removed=%v", added, updated, removed)
	}

	changed := a
	changed.Location = "Hyde Park"
	link.applyCatalog(repository.EventsResult{Events: []events.Event{changed}})
	if len(added) != 2 {
		t.Errorf("update delivery fired added hooks: %v", added)
	}
	if len(updated) != 1 || updated[0] != "alpha" {
		t.Errorf("updated = %v", updated)
	}
	if len(removed) != 1 || removed[0] != "bravo" {
		t.Errorf("removed = %v", removed)
	}
}

func TestIdenticalDeliveryFiresNothing(t *testing.T) {
	link := newLink(t)
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	a := makeEvent("alpha", events.SportGolf, events.ExperienceBeginner, day)

	var fired int
	link.OnEventAdded(func(events.Event) { fired++ })
	link.OnEventUpdated(func(_, _ events.Event) { fired++ })
	link.OnEventRemoved(func(events.Event) { fired++ })
	link.OnVisibleChanged(func([]events.Event) { fired++ })

	link.applyCatalog(repository.EventsResult{Events: []events.Event{a}})
	firstRound := fired

	// Notifications are idempotent: the same snapshot again is a no-op.
	link.applyCatalog(repository.EventsResult{Events: []events.Event{a}})
	if fired != firstRound {
		t.Errorf("identical delivery fired hooks: %d -> %d", firstRound, fired)
	}
}

func TestSnapshotRecomputesVisible(t *testing.T) {
	link := newLink(t)
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	golf := makeEvent("golf", events.SportGolf, events.ExperienceBeginner, day)
	tennis := makeEvent("tennis", events.SportTennis, events.ExperienceBeginner, day)

	link.SetSportFilter(events.SportTennis)
	link.applyCatalog(repository.EventsResult{Events: []events.Event{golf, tennis}})

	got := link.Visible()
	if len(got) != 1 || got[0].Title != "tennis" {
		t.Errorf("Visible after delivery = %v", titles(got))
	}
}

func TestExcludeHosted(t *testing.T) {
	link := newLink(t, WithViewer("jo@example.com"), WithExcludeHosted(true))
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)

	mine := makeEvent("mine", events.SportGolf, events.ExperienceBeginner, day)
	theirs := events.New("theirs", events.SportGolf, "Victoria Park", day, day,
		events.ExperienceBeginner, "Sam", "sam@example.com")

	link.applyCatalog(repository.EventsResult{Events: []events.Event{mine, theirs}})

	list, _ := link.Catalog()
	if len(list) != 1 || list[0].Title != "theirs" {
		t.Errorf("Catalog with exclude-hosted = %v", titles(list))
	}
	if got := link.Visible(); len(got) != 1 || got[0].Title != "theirs" {
		t.Errorf("Visible with exclude-hosted = %v", titles(got))
	}

	// The hosted list itself is unaffected by the exclusion stage.
	hosted, _ := link.Hosted()
	if len(hosted) != 1 || hosted[0].Title != "mine" {
		t.Errorf("Hosted = %v", titles(hosted))
	}
}

func TestExcludeHostedAppliesToSeededView(t *testing.T) {
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	mine := makeEvent("mine", events.SportGolf, events.ExperienceBeginner, day)
	theirs := events.New("theirs", events.SportGolf, "Victoria Park", day, day,
		events.ExperienceBeginner, "Sam", "sam@example.com")

	link := newLink(t,
		WithViewer("jo@example.com"),
		WithExcludeHosted(true),
		WithInitialEvents([]events.Event{mine, theirs}))

	// The exclusion stage holds from construction, not just after the
	// first recompute.
	if got := link.Visible(); len(got) != 1 || got[0].Title != "theirs" {
		t.Errorf("seeded Visible = %v", titles(got))
	}
	if list, _ := link.Catalog(); len(list) != 1 || list[0].Title != "theirs" {
		t.Errorf("seeded Catalog = %v", titles(list))
	}
}

func TestJoinedDerivedFromProfileIndex(t *testing.T) {
	link := newLink(t, WithViewer("jo@example.com"))
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	a := makeEvent("alpha", events.SportGolf, events.ExperienceBeginner, day)
	b := makeEvent("bravo", events.SportTennis, events.ExperienceBeginner, day)

	link.applyCatalog(repository.EventsResult{Events: []events.Event{a, b}})
	link.applyProfile(repository.ProfileResult{Profile: events.Profile{
		Name:   "Jo",
		Email:  "jo@example.com",
		Joined: []string{b.ID, "stale-id"},
	}})

	joined, state := link.Joined()
	if !state.Ready() {
		t.Fatalf("joined state = %v", state)
	}
	if len(joined) != 1 || joined[0].ID != b.ID {
		t.Errorf("Joined = %v", titles(joined))
	}

	// Removing the event from the catalog empties the joined view with
	// no profile write.
	link.applyCatalog(repository.EventsResult{Events: []events.Event{a}})
	joined, _ = link.Joined()
	if len(joined) != 0 {
		t.Errorf("Joined after catalog removal = %v", titles(joined))
	}
}

func TestJoinedStateIsWorseOfBoth(t *testing.T) {
	link := newLink(t, WithViewer("jo@example.com"))

	link.applyCatalog(repository.EventsResult{Events: nil})
	link.applyProfile(repository.ProfileResult{Err: errors.ErrStoreUnavailable})

	_, state := link.Joined()
	if state.Kind != Failed {
		t.Errorf("joined state = %v, want failed while profile is failed", state)
	}

	_, catalogState := link.Catalog()
	if !catalogState.Ready() {
		t.Errorf("catalog state = %v, want ready", catalogState)
	}

	// Profile recovery restores the joined view.
	link.applyProfile(repository.ProfileResult{Profile: events.NewProfile("Jo", "jo@example.com")})
	_, state = link.Joined()
	if !state.Ready() {
		t.Errorf("joined state after recovery = %v", state)
	}
}

func TestWorseState(t *testing.T) {
	failedState := failed(errors.ErrStoreUnavailable)
	uninitialized := State{}

	tests := []struct {
		name string
		a, b State
		want StateKind
	}{
		{"both ready", ready, ready, Ready},
		{"failure dominates", ready, failedState, Failed},
		{"failure dominates reversed", failedState, ready, Failed},
		{"loading beats ready", uninitialized, ready, Uninitialized},
		{"failure beats loading", failedState, uninitialized, Failed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := worseState(tt.a, tt.b); got.Kind != tt.want {
				t.Errorf("worseState = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}
