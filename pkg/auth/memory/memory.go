// Package memory provides an in-memory Authenticator holding bcrypt
// password hashes. It backs the bundled sync server and the tests.
package memory

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/mosfeq/sportslink/pkg/errors"
)

// Memory is an in-memory credential store and session.
type Memory struct {
	mu      sync.RWMutex
	hashes  map[string][]byte
	current string
}

// New creates an empty authenticator.
func New() *Memory {
	return &Memory{hashes: make(map[string][]byte)}
}

// CreateAccount implements auth.Authenticator.
func (m *Memory) CreateAccount(_ context.Context, email, password string) error {
	if email == "" {
		return errors.NewValidationError("email", email, "email is required")
	}
	if password == "" {
		return errors.NewValidationError("password", nil, "password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.WrapTransport("register", "", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.hashes[email]; exists {
		return errors.NewConflictError("account", email, "account already exists")
	}
	m.hashes[email] = hash
	return nil
}

// SignIn implements auth.Authenticator.
func (m *Memory) SignIn(_ context.Context, email, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	hash, ok := m.hashes[email]
	if !ok {
		return errors.NewAuthenticationError(email, "", errors.ErrIncorrectCredentials)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return errors.NewAuthenticationError(email, "", errors.ErrIncorrectCredentials)
	}
	m.current = email
	return nil
}

// CurrentEmail implements auth.Authenticator.
func (m *Memory) CurrentEmail() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == "" {
		return "", errors.ErrUnauthenticated
	}
	return m.current, nil
}

// Verify checks a credential pair without changing the current principal.
// The bundled server uses it to authenticate token requests.
func (m *Memory) Verify(email, password string) bool {
	m.mu.RLock()
	hash, ok := m.hashes[email]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
