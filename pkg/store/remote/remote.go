// Package remote is the client side of the sync server: a store.Store
// speaking the /db REST surface and the /watch websocket stream, and an
// auth.Authenticator speaking the /auth endpoints. One Client carries
// both roles so the session token issued at sign-in authorizes the
// document traffic that follows.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mosfeq/sportslink/pkg/errors"
	"github.com/mosfeq/sportslink/pkg/logging"
	"github.com/mosfeq/sportslink/pkg/store"
)

const (
	defaultTimeout   = 10 * time.Second
	reconnectBackoff = 2 * time.Second
)

// Client talks to a sync server. It is safe for concurrent use; the
// session token is guarded so watches can start while a sign-in is in
// flight.
type Client struct {
	baseURL    string
	httpClient *http.Client
	dialer     *websocket.Dialer
	logger     *zerolog.Logger

	mu    sync.RWMutex
	token string
	email string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Client) {
		r.httpClient = c
	}
}

// WithToken seeds a previously issued session token, skipping sign-in.
func WithToken(token, email string) Option {
	return func(r *Client) {
		r.token = token
		r.email = email
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Client) {
		r.logger = logger
	}
}

// New returns a client for the sync server at baseURL, e.g.
// "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.NewValidationError("baseURL", "", "server URL is required")
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		dialer:     websocket.DefaultDialer,
		logger:     logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Token returns the current session token, empty when signed out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreateAccount registers a new account and keeps the issued session.
func (c *Client) CreateAccount(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/auth/register", email, password)
}

// SignIn authenticates and keeps the issued session. A rejected pair
// surfaces ErrIncorrectCredentials.
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/auth/signin", email, password)
}

// CurrentEmail returns the signed-in email, or ErrUnauthenticated.
func (c *Client) CurrentEmail() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.email == "" {
		return "", errors.ErrUnauthenticated
	}
	return c.email, nil
}

func (c *Client) authenticate(ctx context.Context, endpoint, email, password string) error {
	body, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return errors.WrapParse("json", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WrapTransport("POST", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WrapTransport("POST", endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
	case resp.StatusCode == http.StatusUnauthorized:
		return errors.NewAuthenticationError(email, "", errors.ErrIncorrectCredentials)
	case resp.StatusCode == http.StatusConflict:
		return errors.NewConflictError("account", email, remoteMessage(resp))
	default:
		return errors.NewTransportError("POST", endpoint, remoteMessage(resp), nil)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return errors.WrapParse("json", endpoint, err)
	}

	c.mu.Lock()
	c.token = tok.Token
	c.email = email
	c.mu.Unlock()

	c.logger.Debug().Str("email", email).Msg("Session established")
	return nil
}

// documentURL maps a store path onto the /db surface, escaping each
// segment so titles with slashes or spaces survive the round trip.
func (c *Client) documentURL(path string) string {
	segments := strings.Split(path, "/")
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}
	return c.baseURL + "/db/" + strings.Join(escaped, "/")
}

func (c *Client) doDocument(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.documentURL(path), body)
	if err != nil {
		return nil, errors.WrapTransport(method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapTransport(method, path, err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, errors.NewAuthenticationError("", "session token rejected", errors.ErrUnauthenticated)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		msg := remoteMessage(resp)
		resp.Body.Close()
		return nil, errors.NewTransportError(method, path, msg, nil)
	}
	return resp, nil
}

// Get reads the full JSON document at path; a missing document comes
// back as JSON null, matching the store contract.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.doDocument(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapTransport("GET", path, err)
	}
	return data, nil
}

// Set fully overwrites the document at path with value.
func (c *Client) Set(ctx context.Context, path string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	resp, err := c.doDocument(ctx, http.MethodPut, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Delete removes the document at path.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.doDocument(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// watchURL builds the websocket endpoint for path, attaching the session
// token as a query parameter since browser-grade dialers cannot set an
// Authorization header.
func (c *Client) watchURL(path string) string {
	wsBase := c.baseURL
	switch {
	case strings.HasPrefix(wsBase, "https://"):
		wsBase = "wss://" + strings.TrimPrefix(wsBase, "https://")
	case strings.HasPrefix(wsBase, "http://"):
		wsBase = "ws://" + strings.TrimPrefix(wsBase, "http://")
	}
	query := url.Values{}
	query.Set("path", path)
	if token := c.Token(); token != "" {
		query.Set("token", token)
	}
	return wsBase + "/watch?" + query.Encode()
}

// Watch subscribes to the document at path. The stream reconnects on
// transport failures, delivering a Snapshot with Err set between
// attempts; the server re-sends the full document on every reconnect, so
// consumers converge without any replay protocol.
func (c *Client) Watch(ctx context.Context, path string) (<-chan store.Snapshot, error) {
	if path == "" {
		return nil, errors.NewValidationError("path", "", "watch path is required")
	}

	out := make(chan store.Snapshot)
	go c.watchLoop(ctx, path, out)
	return out, nil
}

func (c *Client) watchLoop(ctx context.Context, path string, out chan<- store.Snapshot) {
	defer close(out)

	for {
		err := c.watchOnce(ctx, path, out)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			select {
			case out <- store.Snapshot{Err: errors.WrapTransport("WATCH", path, err)}:
			case <-ctx.Done():
				return
			}
		}

		c.logger.Debug().Str("path", path).Msg("Watch reconnecting")
		select {
		case <-time.After(reconnectBackoff):
		case <-ctx.Done():
			return
		}
	}
}

// watchOnce runs a single websocket session, forwarding every text frame
// as a snapshot until the connection drops.
func (c *Client) watchOnce(ctx context.Context, path string, out chan<- store.Snapshot) error {
	conn, resp, err := c.dialer.DialContext(ctx, c.watchURL(path), nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return err
	}
	defer conn.Close()
	if resp != nil {
		resp.Body.Close()
	}

	conn.SetPingHandler(func(data string) error {
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(defaultTimeout))
	})

	// Unblock the read loop when the caller goes away.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			conn.Close()
		case <-stop:
		}
	}()

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if kind != websocket.TextMessage {
			continue
		}
		select {
		case out <- store.Snapshot{Data: data}:
		case <-ctx.Done():
			return nil
		}
	}
}

// remoteMessage extracts the server's error body, falling back to the
// HTTP status.
func remoteMessage(resp *http.Response) string {
	var body errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("server answered %s", resp.Status)
}
