package sportslink

import (
	"testing"
	"time"

	authmem "github.com/mosfeq/sportslink/pkg/auth/memory"
	"github.com/mosfeq/sportslink/pkg/events"
	"github.com/mosfeq/sportslink/pkg/repository"
	storemem "github.com/mosfeq/sportslink/pkg/store/memory"
)

func makeEvent(title string, sport events.Sport, experience events.Experience, day time.Time) events.Event {
	return events.New(title, sport, "Victoria Park", day, day, experience, "Jo", "jo@example.com")
}

func seededLink(t *testing.T, list []events.Event, opts ...Option) SportsLink {
	t.Helper()
	repo := repository.New(storemem.New(), authmem.New())
	link, err := New(repo, append([]Option{WithInitialEvents(list)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return link
}

func titles(list []events.Event) []string {
	out := make([]string, len(list))
	for i, ev := range list {
		out[i] = ev.Title
	}
	return out
}

func TestFiltersCompose(t *testing.T) {
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	link := seededLink(t, []events.Event{
		makeEvent("tennis beginner", events.SportTennis, events.ExperienceBeginner, day),
		makeEvent("tennis expert", events.SportTennis, events.ExperienceExpert, day),
		makeEvent("football beginner", events.SportFootball, events.ExperienceBeginner, day),
	})

	if got := link.Visible(); len(got) != 3 {
		t.Fatalf("unfiltered Visible = %v", titles(got))
	}

	link.SetSportFilter(events.SportTennis)
	if got := titles(link.Visible()); len(got) != 2 {
		t.Fatalf("sport filter: Visible = %v", got)
	}

	// Both predicates active: conjunction, not either-or.
	link.SetExperienceFilter(events.ExperienceBeginner)
	got := link.Visible()
	if len(got) != 1 || got[0].Title != "tennis beginner" {
		t.Fatalf("sport+experience: Visible = %v", titles(got))
	}

	// Dropping the sport predicate leaves the experience one active.
	link.ClearSportFilter()
	if got := titles(link.Visible()); len(got) != 2 {
		t.Fatalf("experience only: Visible = %v", got)
	}

	link.ClearExperienceFilter()
	if got := link.Visible(); len(got) != 3 {
		t.Fatalf("cleared: Visible = %v", titles(got))
	}
}

func TestFilterWithNoMatchesYieldsEmptyNotError(t *testing.T) {
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	link := seededLink(t, []events.Event{
		makeEvent("football", events.SportFootball, events.ExperienceBeginner, day),
	})

	link.SetSportFilter(events.SportGolf)
	if got := link.Visible(); len(got) != 0 {
		t.Errorf("Visible = %v, want empty", titles(got))
	}
}

func TestDateFilterMatchesCalendarDay(t *testing.T) {
	lateFifth := time.Date(2026, 9, 5, 23, 59, 0, 0, time.UTC)
	earlySixth := time.Date(2026, 9, 6, 0, 1, 0, 0, time.UTC)

	link := seededLink(t, []events.Event{
		makeEvent("late on the fifth", events.SportGolf, events.ExperienceBeginner, lateFifth),
		makeEvent("early on the sixth", events.SportGolf, events.ExperienceBeginner, earlySixth),
	}, WithLocation(time.UTC))

	link.SetDateFilter(time.Date(2026, 9, 5, 8, 0, 0, 0, time.UTC))
	got := link.Visible()
	if len(got) != 1 || got[0].Title != "late on the fifth" {
		t.Fatalf("date filter: Visible = %v", titles(got))
	}

	link.ClearDateFilter()
	if got := link.Visible(); len(got) != 2 {
		t.Errorf("cleared date filter: Visible = %v", titles(got))
	}
}

func TestFilterPreservesCatalogOrder(t *testing.T) {
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	link := seededLink(t, []events.Event{
		makeEvent("first", events.SportGolf, events.ExperienceBeginner, day),
		makeEvent("second", events.SportTennis, events.ExperienceBeginner, day),
		makeEvent("third", events.SportGolf, events.ExperienceBeginner, day),
	})

	link.SetSportFilter(events.SportGolf)
	got := titles(link.Visible())
	if len(got) != 2 || got[0] != "first" || got[1] != "third" {
		t.Errorf("Visible = %v, want catalog order preserved", got)
	}
}

func TestVisibleChangedHook(t *testing.T) {
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	link := seededLink(t, []events.Event{
		makeEvent("golf", events.SportGolf, events.ExperienceBeginner, day),
		makeEvent("tennis", events.SportTennis, events.ExperienceBeginner, day),
	})

	var fired int
	var last []events.Event
	link.OnVisibleChanged(func(visible []events.Event) {
		fired++
		last = visible
	})

	link.SetSportFilter(events.SportGolf)
	if fired != 1 || len(last) != 1 {
		t.Fatalf("after set: fired=%d last=%v", fired, titles(last))
	}

	// Clearing a predicate that was never set leaves the view unchanged
	// and must not fire.
	link.ClearExperienceFilter()
	if fired != 1 {
		t.Errorf("no-op clear fired the hook, fired=%d", fired)
	}

	link.ClearSportFilter()
	if fired != 2 || len(last) != 2 {
		t.Errorf("after clear: fired=%d last=%v", fired, titles(last))
	}
}

func TestVisibleReturnsCopy(t *testing.T) {
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	link := seededLink(t, []events.Event{
		makeEvent("golf", events.SportGolf, events.ExperienceBeginner, day),
	})

	got := link.Visible()
	got[0].Title = "mutated"

	if link.Visible()[0].Title != "golf" {
		t.Error("caller mutation reached the internal view")
	}
}
