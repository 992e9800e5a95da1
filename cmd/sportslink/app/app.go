// Package app provides the application context and dependency management
// for the sportslink CLI. It centralizes configuration, dependency
// injection, and lifecycle management.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mosfeq/sportslink"
	"github.com/mosfeq/sportslink/internal/server"
	"github.com/mosfeq/sportslink/pkg/errors"
	"github.com/mosfeq/sportslink/pkg/repository"
	"github.com/mosfeq/sportslink/pkg/store/remote"
)

// App represents the sportslink application with all its dependencies.
// The remote client and the link are lazy-initialized singletons so
// commands that never touch the server (serve, version) pay nothing.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	mu     sync.Mutex
	client *remote.Client
	repo   *repository.Repository
	link   sportslink.SportsLink
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// ExcludeHosted reports whether listings hide the viewer's own events.
func (a *App) ExcludeHosted() bool {
	return a.config.ExcludeHosted
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Client returns the remote store client, creating it lazily. A saved
// session is loaded on first use so earlier sign-ins carry over.
func (a *App) Client() (*remote.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.clientLocked()
}

func (a *App) clientLocked() (*remote.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	opts := []remote.Option{remote.WithLogger(a.logger)}
	if session, err := LoadSession(a.config.SessionFile); err == nil {
		opts = append(opts, remote.WithToken(session.Token, session.Email))
	}

	client, err := remote.New(a.config.ServerURL, opts...)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

// Repository returns the event repository over the remote client,
// creating it lazily.
func (a *App) Repository() (*repository.Repository, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.repositoryLocked()
}

func (a *App) repositoryLocked() (*repository.Repository, error) {
	if a.repo != nil {
		return a.repo, nil
	}

	client, err := a.clientLocked()
	if err != nil {
		return nil, err
	}
	a.repo = repository.New(client, client, repository.WithLogger(a.logger))
	return a.repo, nil
}

// Link returns the running SportsLink instance, creating and starting it
// lazily. It requires a signed-in session.
func (a *App) Link(ctx context.Context, opts ...sportslink.Option) (sportslink.SportsLink, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.link != nil {
		return a.link, nil
	}

	repo, err := a.repositoryLocked()
	if err != nil {
		return nil, err
	}

	linkOpts := []sportslink.Option{
		sportslink.WithLogger(a.logger),
		sportslink.WithExcludeHosted(a.config.ExcludeHosted),
	}
	if a.config.CachePath != "" {
		linkOpts = append(linkOpts, sportslink.WithCachePath(a.config.CachePath))
	}
	linkOpts = append(linkOpts, opts...)

	link, err := sportslink.New(repo, linkOpts...)
	if err != nil {
		return nil, err
	}
	if err := link.Run(ctx); err != nil {
		return nil, err
	}

	a.link = link
	return link, nil
}

// SaveSession persists the client's current session to the session file.
func (a *App) SaveSession() error {
	client, err := a.Client()
	if err != nil {
		return err
	}
	email, err := client.CurrentEmail()
	if err != nil {
		return err
	}
	return SaveSession(a.config.SessionFile, Session{Email: email, Token: client.Token()})
}

// RequireSession returns an error unless a signed-in session exists.
func (a *App) RequireSession() error {
	client, err := a.Client()
	if err != nil {
		return err
	}
	if _, err := client.CurrentEmail(); err != nil {
		return errors.NewAuthenticationError("", "not signed in, run 'sportslink signin' first", err)
	}
	return nil
}

// ClearSession removes the saved session file.
func (a *App) ClearSession() error {
	return ClearSession(a.config.SessionFile)
}

// ServerConfig builds a sync server configuration from the app config.
func (a *App) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	cfg.Host = a.config.ServeHost
	cfg.Port = a.config.ServePort
	cfg.TokenSecret = []byte(a.config.TokenSecret)
	cfg.TokenTTL = a.config.TokenTTL
	return cfg
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.link != nil {
		if err := a.link.Close(); err != nil {
			return err
		}
		a.link = nil
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithRepository sets a custom repository (useful for testing).
func WithRepository(repo *repository.Repository) Option {
	return func(a *App) error {
		a.repo = repo
		return nil
	}
}
