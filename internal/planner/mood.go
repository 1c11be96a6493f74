package planner

import (
	"errors"
	"fmt"
	"strings"
)

// Mood is the user's self-reported energy level for a planning session.
type Mood string

const (
	MoodEnergetic Mood = "Energetic"
	MoodNeutral   Mood = "Neutral"
	MoodTired     Mood = "Tired"
)

// ErrUnknownMood is returned when a value is not one of the three moods.
var ErrUnknownMood = errors.New("unknown mood")

// Moods lists the accepted moods in display order.
func Moods() []Mood {
	return []Mood{MoodEnergetic, MoodNeutral, MoodTired}
}

// ParseMood accepts "tired", "Tired 💤" and similar labels.
func ParseMood(raw string) (Mood, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty value", ErrUnknownMood)
	}
	word := strings.ToLower(fields[0])
	for _, m := range Moods() {
		if strings.ToLower(string(m)) == word {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMood, raw)
}

func (m Mood) Valid() bool {
	switch m {
	case MoodEnergetic, MoodNeutral, MoodTired:
		return true
	default:
		return false
	}
}

// mustBeValid panics on a mood that did not come from ParseMood or the
// constants. Callers are expected to validate user input first.
func (m Mood) mustBeValid() {
	if !m.Valid() {
		panic(fmt.Errorf("%w: %q", ErrUnknownMood, string(m)))
	}
}

// allows reports whether a task of the given intensity fits this mood.
func (m Mood) allows(level Intensity) bool {
	switch m {
	case MoodEnergetic:
		return true
	case MoodTired:
		return level == IntensityLow
	case MoodNeutral:
		return level != IntensityHigh
	default:
		m.mustBeValid()
		return false
	}
}
