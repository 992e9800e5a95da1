package memory

import (
	"context"
	"testing"

	"github.com/mosfeq/sportslink/pkg/errors"
)

func TestCreateAccountAndSignIn(t *testing.T) {
	m := New()
	ctx := context.Background()

	if err := m.CreateAccount(ctx, "jo@example.com", "secret"); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	if _, err := m.CurrentEmail(); !errors.Is(err, errors.ErrUnauthenticated) {
		t.Errorf("CurrentEmail before sign-in = %v, want ErrUnauthenticated", err)
	}

	if err := m.SignIn(ctx, "jo@example.com", "secret"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	email, err := m.CurrentEmail()
	if err != nil || email != "jo@example.com" {
		t.Errorf("CurrentEmail = (%q, %v)", email, err)
	}
}

func TestCreateAccountDuplicate(t *testing.T) {
	m := New()
	ctx := context.Background()

	if err := m.CreateAccount(ctx, "jo@example.com", "secret"); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	err := m.CreateAccount(ctx, "jo@example.com", "other")
	if !errors.IsConflict(err) {
		t.Errorf("duplicate CreateAccount = %v, want conflict", err)
	}
}

func TestCreateAccountValidation(t *testing.T) {
	m := New()
	ctx := context.Background()

	if err := m.CreateAccount(ctx, "", "secret"); !errors.IsValidation(err) {
		t.Errorf("empty email = %v, want validation error", err)
	}
	if err := m.CreateAccount(ctx, "jo@example.com", ""); !errors.IsValidation(err) {
		t.Errorf("empty password = %v, want validation error", err)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	m := New()
	ctx := context.Background()

	if err := m.CreateAccount(ctx, "jo@example.com", "secret"); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "jo@example.com", "nope"},
		{"unknown account", "sam@example.com", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.SignIn(ctx, tt.email, tt.password)
			if !errors.Is(err, errors.ErrIncorrectCredentials) {
				t.Errorf("SignIn = %v, want ErrIncorrectCredentials", err)
			}
			if err.Error() != "Incorrect Credentials" {
				t.Errorf("message = %q, want fixed string", err.Error())
			}
		})
	}

	if _, err := m.CurrentEmail(); err == nil {
		t.Error("failed sign-in established a session")
	}
}

func TestVerifyDoesNotTouchSession(t *testing.T) {
	m := New()
	ctx := context.Background()

	if err := m.CreateAccount(ctx, "jo@example.com", "secret"); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	if !m.Verify("jo@example.com", "secret") {
		t.Error("Verify rejected valid credentials")
	}
	if m.Verify("jo@example.com", "nope") {
		t.Error("Verify accepted a wrong password")
	}
	if _, err := m.CurrentEmail(); err == nil {
		t.Error("Verify established a session")
	}
}
