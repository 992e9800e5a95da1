package events

import (
	"strings"

	"github.com/mosfeq/sportslink/pkg/errors"
)

// Experience identifies the skill level an event is pitched at.
type Experience string

// Supported experience levels.
const (
	ExperienceBeginner     Experience = "Beginner"
	ExperienceIntermediate Experience = "Intermediate"
	ExperienceExpert       Experience = "Expert"
)

// AllExperiences returns every supported experience level.
func AllExperiences() []Experience {
	return []Experience{
		ExperienceBeginner,
		ExperienceIntermediate,
		ExperienceExpert,
	}
}

// String returns the display name.
func (e Experience) String() string {
	return string(e)
}

// Valid reports whether e is one of the supported levels.
func (e Experience) Valid() bool {
	for _, known := range AllExperiences() {
		if e == known {
			return true
		}
	}
	return false
}

// ParseExperience parses an experience level case-insensitively.
func ParseExperience(s string) (Experience, error) {
	candidate := Experience(titleCaser.String(strings.TrimSpace(s)))
	if candidate.Valid() {
		return candidate, nil
	}
	return "", errors.NewValidationError("experience", s, "unknown experience level")
}
