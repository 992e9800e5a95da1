package sportslink

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mosfeq/sportslink/pkg/errors"
	"github.com/mosfeq/sportslink/pkg/events"
)

// Option is a function that configures a SportsLink instance.
type Option func(*config) error

// config holds the assembled configuration.
type config struct {
	viewer        string
	excludeHosted bool
	cachePath     string
	initial       []events.Event
	location      *time.Location
	logger        *zerolog.Logger
}

func defaultConfig() *config {
	return &config{location: time.Local}
}

func (s *sportslink) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(s.config); err != nil {
			return err
		}
	}
	return nil
}

// WithViewer sets the viewer identity used to derive the hosted list and
// the exclude-hosted stage. When unset, the repository's signed-in
// principal is used at Run time.
func WithViewer(email string) Option {
	return func(c *config) error {
		c.viewer = email
		return nil
	}
}

// WithExcludeHosted configures whether the all-events view excludes
// events the viewer hosts. Off by default.
func WithExcludeHosted(enabled bool) Option {
	return func(c *config) error {
		c.excludeHosted = enabled
		return nil
	}
}

// WithCachePath enables local YAML persistence of the last good catalog
// snapshot. The cache seeds the initial view on start; the list stays
// Uninitialized until the first live fetch confirms it.
func WithCachePath(path string) Option {
	return func(c *config) error {
		c.cachePath = path
		return nil
	}
}

// WithInitialEvents seeds the catalog before the first fetch.
func WithInitialEvents(list []events.Event) Option {
	return func(c *config) error {
		c.initial = list
		return nil
	}
}

// WithLocation sets the calendar used by the date filter's same-day
// comparison. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *config) error {
		if loc == nil {
			return errors.NewValidationError("location", nil, "location cannot be nil")
		}
		c.location = loc
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(log *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = log
		return nil
	}
}
