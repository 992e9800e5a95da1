// Package server implements the bundled sync server: a small self-hosted
// stand-in for the hosted realtime database and authentication service.
// It exposes the document store over REST, full-snapshot watch streams
// over websockets, and credential endpoints issuing HS256 tokens.
//
// The server makes no promise the store contract reserves: writes are
// last-write-wins full overwrites, watches re-deliver whole documents,
// and there are no transactions.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	authmem "github.com/mosfeq/sportslink/pkg/auth/memory"
	"github.com/mosfeq/sportslink/pkg/logging"
	storemem "github.com/mosfeq/sportslink/pkg/store/memory"
)

// Config holds server configuration.
type Config struct {
	Host string
	Port int

	// TokenSecret signs the HS256 session tokens.
	TokenSecret []byte

	// TokenTTL bounds session token lifetime.
	TokenTTL time.Duration

	// HTTP timeouts.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         8080,
		TokenTTL:     24 * time.Hour,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	store    *storemem.Memory
	accounts *authmem.Memory
	upgrader websocket.Upgrader
	logger   *zerolog.Logger
	config   Config

	httpServer *http.Server
	ctx        context.Context
	cancel     context.CancelFunc
}

// New creates a new server instance.
func New(cfg Config, logger *zerolog.Logger) (*Server, error) {
	if len(cfg.TokenSecret) == 0 {
		return nil, fmt.Errorf("token secret is required")
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = logging.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		store:    storemem.New(),
		accounts: authmem.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		logger: logger,
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	mux := http.NewServeMux()
	s.routes(mux)
	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port)),
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s, nil
}

// Store exposes the backing store, mainly for seeding and tests.
func (s *Server) Store() *storemem.Memory {
	return s.store
}

// Handler returns the HTTP handler, for serving over a custom listener
// or an httptest server.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts the server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("Sync server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	return s.httpServer.Shutdown(ctx)
}

// routes registers all endpoints.
func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/signin", s.handleSignIn)
	mux.Handle("/db/", s.requireToken(http.HandlerFunc(s.handleDocument)))
	mux.Handle("/watch", s.requireToken(http.HandlerFunc(s.handleWatch)))
}
