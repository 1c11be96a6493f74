package planner

import (
	"strings"
	"time"
)

// Intensity is the energy a task is expected to demand.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

type intensityRule struct {
	level    Intensity
	keywords []string
}

// Evaluated in order; the first rule with a matching keyword wins.
var intensityRules = []intensityRule{
	{level: IntensityHigh, keywords: []string{"report", "presentation", "debug", "analyze", "fix"}},
	{level: IntensityMedium, keywords: []string{"homework", "review", "prepare", "write"}},
}

// Classify maps task text to an intensity by case-insensitive keyword lookup.
func Classify(text string) Intensity {
	lower := strings.ToLower(text)
	for _, rule := range intensityRules {
		if containsAny(lower, rule.keywords) {
			return rule.level
		}
	}
	return IntensityLow
}

// Duration is the time block reserved for a task of this intensity.
func (i Intensity) Duration() time.Duration {
	switch i {
	case IntensityHigh:
		return 45 * time.Minute
	case IntensityMedium:
		return 30 * time.Minute
	default:
		return 15 * time.Minute
	}
}

// EstimateDuration returns the scheduled length of a task.
func EstimateDuration(text string) time.Duration {
	return Classify(text).Duration()
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
