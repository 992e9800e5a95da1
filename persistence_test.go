package sportslink

import (
	"path/filepath"
	"testing"
	"time"

	authmem "github.com/mosfeq/sportslink/pkg/auth/memory"
	"github.com/mosfeq/sportslink/pkg/events"
	"github.com/mosfeq/sportslink/pkg/repository"
	storemem "github.com/mosfeq/sportslink/pkg/store/memory"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "events.yaml")
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	list := []events.Event{
		makeEvent("golf", events.SportGolf, events.ExperienceBeginner, day),
		makeEvent("tennis", events.SportTennis, events.ExperienceExpert, day),
	}

	if err := saveCache(path, list); err != nil {
		t.Fatalf("saveCache: %v", err)
	}

	got, err := loadCache(path)
	if err != nil {
		t.Fatalf("loadCache: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loadCache returned %d events, want 2", len(got))
	}
	for i := range list {
		if got[i].ID != list[i].ID || got[i].Title != list[i].Title {
			t.Errorf("event %d = %+v, want %+v", i, got[i], list[i])
		}
		if !got[i].Date.Equal(list[i].Date.Time) || !got[i].Time.Equal(list[i].Time.Time) {
			t.Errorf("event %d timestamps drifted: %+v", i, got[i])
		}
	}
}

func TestLoadCacheMissingFile(t *testing.T) {
	if _, err := loadCache(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("loadCache on a missing file should error")
	}
}

func TestCacheSeedsInitialView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.yaml")
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	cached := []events.Event{
		makeEvent("from cache", events.SportKarting, events.ExperienceIntermediate, day),
	}
	if err := saveCache(path, cached); err != nil {
		t.Fatalf("saveCache: %v", err)
	}

	repo := repository.New(storemem.New(), authmem.New())
	link, err := New(repo, WithCachePath(path))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// The cached snapshot renders immediately, but the list is still
	// loading until a live fetch confirms it.
	list, state := link.Catalog()
	if len(list) != 1 || list[0].Title != "from cache" {
		t.Errorf("Catalog = %v, want cached seed", titles(list))
	}
	if state.Ready() {
		t.Error("cached seed marked the list ready")
	}
	if got := link.Visible(); len(got) != 1 {
		t.Errorf("Visible = %v, want cached seed", titles(got))
	}
}

func TestInitialEventsTakePrecedenceOverCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.yaml")
	day := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	if err := saveCache(path, []events.Event{
		makeEvent("from cache", events.SportKarting, events.ExperienceIntermediate, day),
	}); err != nil {
		t.Fatalf("saveCache: %v", err)
	}

	repo := repository.New(storemem.New(), authmem.New())
	link, err := New(repo,
		WithCachePath(path),
		WithInitialEvents([]events.Event{
			makeEvent("explicit seed", events.SportGolf, events.ExperienceBeginner, day),
		}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	list, _ := link.Catalog()
	if len(list) != 1 || list[0].Title != "explicit seed" {
		t.Errorf("Catalog = %v, want the explicit seed", titles(list))
	}
}
