// Package store defines the contract for the remote document store the
// catalog lives in: an opaque key-path store with get/set/delete and a
// full-snapshot watch stream. The store is an external collaborator; this
// package only pins down the narrow surface the rest of the system
// consumes, plus the path rules the backing schema imposes.
package store

import (
	"context"
	"strings"
)

// Well-known root paths in the backing store.
const (
	// EventsPath is the root of the global event catalog. Children are
	// keyed by event title.
	EventsPath = "Sports Events"

	// UsersPath is the root of the user profiles. Children are keyed by
	// escaped email.
	UsersPath = "Users"
)

// Snapshot is one delivery on a watch stream: either the full document at
// the watched path, or an error. A stream may recover after an error
// delivery; reconnection is the store's concern, not the consumer's.
type Snapshot struct {
	// Data is the full JSON document at the watched path. A missing
	// document is delivered as JSON null.
	Data []byte

	// Err is set when this delivery reports a subscription failure.
	Err error
}

// Store is an opaque key-path document store. Set fully overwrites the
// record at path; Watch re-delivers the entire document on every change,
// never a diff. Deliveries may arrive at arbitrary times and may be
// duplicated; the last delivered snapshot wins.
type Store interface {
	// Get reads the full JSON document at path. A missing document is
	// returned as JSON null, not an error.
	Get(ctx context.Context, path string) ([]byte, error)

	// Set fully overwrites the document at path with value.
	Set(ctx context.Context, path string, value any) error

	// Delete removes the document at path. Deleting an absent document
	// is not an error.
	Delete(ctx context.Context, path string) error

	// Watch subscribes to the document at path. The returned channel
	// delivers the current document immediately, then a fresh full
	// snapshot after every change, until ctx is canceled.
	Watch(ctx context.Context, path string) (<-chan Snapshot, error)
}

// Escape rewrites an email into a legal store key by replacing every "."
// with ",". The dot is a reserved path separator in the backing store;
// the substitution is fixed and not configurable.
func Escape(email string) string {
	return strings.ReplaceAll(email, ".", ",")
}

// Unescape reverses Escape.
func Unescape(key string) string {
	return strings.ReplaceAll(key, ",", ".")
}

// Join joins path segments with the store's "/" separator.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// ProfilePath returns the store path of the profile for email.
func ProfilePath(email string) string {
	return Join(UsersPath, Escape(email))
}

// EventPath returns the store path of the catalog record for an event
// title. The title is the record key, which is why identical titles
// collide last-write-wins.
func EventPath(title string) string {
	return Join(EventsPath, title)
}
