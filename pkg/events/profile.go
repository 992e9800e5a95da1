package events

import "slices"

// Profile is a user's stored profile document.
//
// Joined is a membership index of event IDs, not embedded event copies:
// the catalog stays the single source of truth for event fields, and the
// hosted list is derived from the catalog by host email rather than
// stored at all.
type Profile struct {
	Name   string   `json:"name" yaml:"name"`
	Email  string   `json:"email" yaml:"email"`
	Joined []string `json:"joined" yaml:"joined"`
}

// NewProfile creates an empty profile for a freshly registered user.
func NewProfile(name, email string) Profile {
	return Profile{Name: name, Email: email, Joined: []string{}}
}

// HasJoined reports whether the profile's membership index contains id.
func (p Profile) HasJoined(id string) bool {
	return slices.Contains(p.Joined, id)
}

// Join returns a copy of p with id appended to the membership index.
// Joining twice is the caller's error to surface; Join itself is a pure
// value operation.
func (p Profile) Join(id string) Profile {
	joined := make([]string, len(p.Joined), len(p.Joined)+1)
	copy(joined, p.Joined)
	p.Joined = append(joined, id)
	return p
}

// Leave returns a copy of p with id removed from the membership index,
// and whether it was present.
func (p Profile) Leave(id string) (Profile, bool) {
	joined := make([]string, 0, len(p.Joined))
	found := false
	for _, existing := range p.Joined {
		if existing == id {
			found = true
			continue
		}
		joined = append(joined, existing)
	}
	p.Joined = joined
	return p, found
}
