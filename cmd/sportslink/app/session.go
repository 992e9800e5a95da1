package app

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mosfeq/sportslink/pkg/errors"
)

// Session is the persisted sign-in state: who is signed in and the
// bearer token the server issued.
type Session struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// LoadSession reads a saved session from path.
func LoadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, errors.WrapIO("read", path, err)
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, errors.WrapParse("json", path, err)
	}
	if session.Token == "" {
		return Session{}, errors.ErrUnauthenticated
	}
	return session, nil
}

// SaveSession writes the session to path. The file is owner-only since
// the token grants account access.
func SaveSession(path string, session Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// ClearSession removes a saved session, ignoring a missing file.
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("delete", path, err)
	}
	return nil
}
