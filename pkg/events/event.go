// Package events defines the domain types for the sportslink catalog:
// events, user profiles, and the enumerated sport and experience tags.
// Events are immutable value objects; anything that changes an event
// produces a new one.
package events

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mosfeq/sportslink/pkg/errors"
)

// Millis is a time.Time that marshals as milliseconds since the Unix epoch,
// the wire format the backing store uses for event dates and times.
type Millis struct {
	time.Time
}

// NewMillis returns t truncated to millisecond precision.
func NewMillis(t time.Time) Millis {
	return Millis{t.Truncate(time.Millisecond)}
}

// MarshalJSON implements json.Marshaler.
func (m Millis) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.UnixMilli(), 10)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Millis) UnmarshalJSON(data []byte) error {
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return errors.WrapParse("json", "", err)
	}
	m.Time = time.UnixMilli(ms).UTC()
	return nil
}

// MarshalYAML implements yaml.InterfaceMarshaler for the snapshot cache.
func (m Millis) MarshalYAML() (any, error) {
	return m.UnixMilli(), nil
}

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (m *Millis) UnmarshalYAML(unmarshal func(any) error) error {
	var ms int64
	if err := unmarshal(&ms); err != nil {
		return err
	}
	m.Time = time.UnixMilli(ms).UTC()
	return nil
}

// Event is a single sport event in the catalog.
//
// The ID is assigned once at creation and never reassigned. The Title
// doubles as the remote record key, so two events with the same title
// collide last-write-wins at the store layer. Field names on the wire
// follow the store's existing schema.
type Event struct {
	ID         string     `json:"id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	Sport      Sport      `json:"sports" yaml:"sports"`
	Location   string     `json:"location" yaml:"location"`
	Date       Millis     `json:"date" yaml:"date"`
	Time       Millis     `json:"time" yaml:"time"`
	Experience Experience `json:"experience" yaml:"experience"`
	Host       string     `json:"host" yaml:"host"`
	HostEmail  string     `json:"hostEmail,omitempty" yaml:"host_email,omitempty"`
	Players    string     `json:"numberOfPlayers,omitempty" yaml:"players,omitempty"`
}

// New creates an event with a freshly assigned ID. The scheduled date is
// normalized to UTC midnight; the time-of-day keeps its own field.
func New(title string, sport Sport, location string, date, timeOfDay time.Time, experience Experience, host, hostEmail string) Event {
	return Event{
		ID:         uuid.NewString(),
		Title:      title,
		Sport:      sport,
		Location:   location,
		Date:       NewMillis(DateOnly(date)),
		Time:       NewMillis(timeOfDay),
		Experience: experience,
		Host:       host,
		HostEmail:  hostEmail,
	}
}

// Validate reports the first missing or malformed required field.
// Validation failures are caught client-side, before any remote call.
func (e Event) Validate() error {
	switch {
	case e.ID == "":
		return errors.NewValidationError("id", e.ID, "missing event id")
	case e.Title == "":
		return errors.NewValidationError("title", e.Title, "title is required")
	case !e.Sport.Valid():
		return errors.NewValidationError("sports", string(e.Sport), "unknown sport")
	case e.Location == "":
		return errors.NewValidationError("location", e.Location, "location is required")
	case e.Date.IsZero():
		return errors.NewValidationError("date", nil, "date is required")
	case !e.Experience.Valid():
		return errors.NewValidationError("experience", string(e.Experience), "unknown experience level")
	case e.Host == "":
		return errors.NewValidationError("host", e.Host, "host is required")
	}
	return nil
}

// WithPlayers returns a copy of e carrying a player-count hint.
func (e Event) WithPlayers(players string) Event {
	e.Players = players
	return e
}
