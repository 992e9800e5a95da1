package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFixedMessages(t *testing.T) {
	// These strings are surfaced verbatim to users and the store schema
	// depends on them; they must not drift.
	tests := []struct {
		err  error
		want string
	}{
		{ErrAlreadyJoined, "Event Already Joined"},
		{ErrIncorrectCredentials, "Incorrect Credentials"},
		{NewNotFoundError("User", ""), "User not found"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
	if MsgCannotRetrieveEvents != "Cannot Retrieve Events" {
		t.Errorf("MsgCannotRetrieveEvents = %q", MsgCannotRetrieveEvents)
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NewNotFoundError("event", "x"), ErrNotFound},
		{"conflict", NewConflictError("account", "a@b.c", ""), ErrAlreadyExists},
		{"validation", NewValidationError("sports", "Cricket", "unknown sport"), ErrInvalidInput},
		{"transport", NewTransportError("get", "Sports Events", "boom", nil), ErrStoreUnavailable},
		{"authentication", NewAuthenticationError("a@b.c", "", nil), ErrIncorrectCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
		})
	}
}

func TestWrapHelpersPreserveCause(t *testing.T) {
	cause := errors.New("connection refused")

	wrapped := WrapTransport("watch", "Sports Events", cause)
	if !errors.Is(wrapped, cause) {
		t.Error("WrapTransport lost the cause")
	}
	if !IsTransport(wrapped) {
		t.Error("WrapTransport result not a transport error")
	}

	var transport *TransportError
	if !errors.As(wrapped, &transport) {
		t.Fatal("errors.As failed for TransportError")
	}
	if transport.Op != "watch" || transport.Path != "Sports Events" {
		t.Errorf("TransportError fields = %+v", transport)
	}

	if WrapTransport("get", "x", nil) != nil {
		t.Error("wrapping nil should stay nil")
	}
}

func TestHelperPredicates(t *testing.T) {
	if !IsConflict(ErrAlreadyJoined) {
		t.Error("IsConflict(ErrAlreadyJoined) = false")
	}
	if !IsAuthentication(ErrUnauthenticated) {
		t.Error("IsAuthentication(ErrUnauthenticated) = false")
	}
	if !IsValidation(fmt.Errorf("outer: %w", NewValidationError("f", nil, "bad"))) {
		t.Error("IsValidation through wrapping = false")
	}
	if IsNotFound(ErrAlreadyExists) {
		t.Error("IsNotFound matched the wrong sentinel")
	}
}
