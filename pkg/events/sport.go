package events

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mosfeq/sportslink/pkg/errors"
)

// Sport identifies one of the supported sports. The value is the display
// name, which is also what the backing store persists.
type Sport string

// Supported sports.
const (
	SportGolf        Sport = "Golf"
	SportFootball    Sport = "Football"
	SportTennis      Sport = "Tennis"
	SportTableTennis Sport = "Table Tennis"
	SportKarting     Sport = "Karting"
	SportPadel       Sport = "Padel"
	SportRugby       Sport = "Rugby"
	SportBadminton   Sport = "Badminton"
)

// AllSports returns every supported sport in display order.
func AllSports() []Sport {
	return []Sport{
		SportGolf,
		SportFootball,
		SportTennis,
		SportTableTennis,
		SportKarting,
		SportPadel,
		SportRugby,
		SportBadminton,
	}
}

// String returns the display name.
func (s Sport) String() string {
	return string(s)
}

// Valid reports whether s is one of the supported sports.
func (s Sport) Valid() bool {
	for _, known := range AllSports() {
		if s == known {
			return true
		}
	}
	return false
}

var titleCaser = cases.Title(language.English)

// ParseSport parses a sport from either its display name ("Table Tennis")
// or its collapsed tag form ("TableTennis"), case-insensitively.
// Unrecognized values are a validation error, never silently defaulted.
func ParseSport(s string) (Sport, error) {
	candidate := Sport(titleCaser.String(strings.TrimSpace(s)))
	if candidate.Valid() {
		return candidate, nil
	}

	// Tag form: compare with spaces stripped.
	collapsed := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	for _, known := range AllSports() {
		if collapsed == strings.ToLower(strings.ReplaceAll(string(known), " ", "")) {
			return known, nil
		}
	}

	return "", errors.NewValidationError("sports", s, "unknown sport")
}
