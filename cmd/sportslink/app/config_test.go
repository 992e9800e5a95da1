package app

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfigApplyDefaults(t *testing.T) {
	var c Config
	c.applyDefaults()

	if c.ServerURL != DefaultServerURL {
		t.Errorf("ServerURL = %q, want %q", c.ServerURL, DefaultServerURL)
	}
	if c.ServeHost != "localhost" || c.ServePort != 8080 {
		t.Errorf("serve defaults = %s:%d", c.ServeHost, c.ServePort)
	}
	if c.TokenTTL != DefaultTokenTTL {
		t.Errorf("TokenTTL = %v, want %v", c.TokenTTL, DefaultTokenTTL)
	}
	if !strings.HasSuffix(c.SessionFile, filepath.Join(".sportslink", "session.json")) {
		t.Errorf("SessionFile = %q", c.SessionFile)
	}
	if !strings.HasSuffix(c.CachePath, filepath.Join(".sportslink", "events.yaml")) {
		t.Errorf("CachePath = %q", c.CachePath)
	}
}

func TestConfigApplyDefaultsKeepsExplicitValues(t *testing.T) {
	c := Config{
		ServerURL: "https://sync.example.com",
		ServePort: 9999,
		TokenTTL:  time.Hour,
		CachePath: "/tmp/custom.yaml",
	}
	c.applyDefaults()

	if c.ServerURL != "https://sync.example.com" {
		t.Errorf("ServerURL overwritten: %q", c.ServerURL)
	}
	if c.ServePort != 9999 {
		t.Errorf("ServePort overwritten: %d", c.ServePort)
	}
	if c.TokenTTL != time.Hour {
		t.Errorf("TokenTTL overwritten: %v", c.TokenTTL)
	}
	if c.CachePath != "/tmp/custom.yaml" {
		t.Errorf("CachePath overwritten: %q", c.CachePath)
	}
}

func TestUpdateFromFlags(t *testing.T) {
	var c Config
	c.LogLevel = "info"

	c.UpdateFromFlags(true, false, true, "")
	if !c.Verbose || c.Quiet || !c.NoColor {
		t.Errorf("flags not applied: %+v", c)
	}
	if c.LogLevel != "info" {
		t.Errorf("empty log level flag overwrote config: %q", c.LogLevel)
	}

	c.UpdateFromFlags(false, true, false, "trace")
	if c.LogLevel != "trace" {
		t.Errorf("explicit log level not applied: %q", c.LogLevel)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	in := Session{Email: "jo@example.com", Token: "tok"}
	if err := SaveSession(path, in); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	out, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}

	if err := ClearSession(path); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if _, err := LoadSession(path); err == nil {
		t.Error("LoadSession succeeded after clear")
	}
	// Clearing again is a no-op.
	if err := ClearSession(path); err != nil {
		t.Errorf("second ClearSession: %v", err)
	}
}

func TestLoadSessionRejectsEmptyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := SaveSession(path, Session{Email: "jo@example.com"}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if _, err := LoadSession(path); err == nil {
		t.Error("LoadSession accepted a session with no token")
	}
}
