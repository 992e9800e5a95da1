// Package auth defines the authentication collaborator contract: account
// creation, sign-in, and access to the current principal's email, which
// is the input to the store's path-escaping rule.
package auth

import "context"

// Authenticator is the consumed authentication contract.
type Authenticator interface {
	// CreateAccount registers a new principal. Failures carry the
	// collaborator's message verbatim.
	CreateAccount(ctx context.Context, email, password string) error

	// SignIn authenticates and establishes the current principal.
	// A rejected credential pair surfaces the fixed
	// "Incorrect Credentials" condition.
	SignIn(ctx context.Context, email, password string) error

	// CurrentEmail returns the signed-in principal's email, or
	// ErrUnauthenticated when nobody is signed in.
	CurrentEmail() (string, error)
}
