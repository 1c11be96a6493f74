package planner

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Flag marks a ranked task as urgent or normal.
type Flag string

const (
	FlagUrgent Flag = "urgent-flag"
	FlagNormal Flag = "normal-flag"
)

const (
	urgencyWeight   = 2
	longTaskBonus   = 1
	longTaskLength  = 25
	neutralMaxScore = 2
)

var (
	urgencyKeywords = []string{"urgent", "important", "asap", "today", "now", "deadline"}
	tiringKeywords  = []string{"report", "presentation", "fix", "debug", "analyze", "meeting"}
)

// ScoredTask is a task text with its priority score.
type ScoredTask struct {
	Text  string
	Score int
	Flag  Flag
}

// Score counts each urgency keyword once and adds a point for long texts.
func Score(text string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, k := range urgencyKeywords {
		if strings.Contains(lower, k) {
			score += urgencyWeight
		}
	}
	if utf8.RuneCountInString(text) > longTaskLength {
		score += longTaskBonus
	}
	return score
}

// Rank scores tasks, drops the ones the mood should not face and orders the
// rest by score, highest first. Equal scores keep their input order.
// It panics with ErrUnknownMood for a mood outside Moods().
func Rank(tasks []Task, mood Mood) []ScoredTask {
	mood.mustBeValid()
	ranked := make([]ScoredTask, 0, len(tasks))
	for _, task := range tasks {
		score := Score(task.Text)
		if !rankable(task.Text, score, mood) {
			continue
		}
		ranked = append(ranked, ScoredTask{Text: task.Text, Score: score, Flag: flagFor(score)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Prioritize is Rank over the caller's snapshot.
func Prioritize(tasks []Task, mood Mood) []ScoredTask {
	return Rank(tasks, mood)
}

func rankable(text string, score int, mood Mood) bool {
	switch mood {
	case MoodEnergetic:
		return true
	case MoodTired:
		lower := strings.ToLower(text)
		return !containsAny(lower, urgencyKeywords) && !containsAny(lower, tiringKeywords)
	case MoodNeutral:
		return score <= neutralMaxScore
	default:
		mood.mustBeValid()
		return false
	}
}

func flagFor(score int) Flag {
	if score > neutralMaxScore {
		return FlagUrgent
	}
	return FlagNormal
}
