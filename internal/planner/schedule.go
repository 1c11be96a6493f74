package planner

import (
	"sort"
	"time"
)

// EntryKind tells task blocks apart from inserted breaks and fixed anchors.
type EntryKind string

const (
	KindTask   EntryKind = "task"
	KindBreak  EntryKind = "break"
	KindAnchor EntryKind = "anchor"
)

// Marker is the visual hint shown next to a schedule entry.
type Marker string

const (
	MarkerIntense  Marker = "intense"
	MarkerModerate Marker = "moderate"
	MarkerLight    Marker = "light"
	MarkerBreak    Marker = "break"
	MarkerMeal     Marker = "meal"
	MarkerWrapUp   Marker = "wrap-up"
)

const (
	clockLayout   = "03:04 PM"
	breakLabel    = "Break ☕"
	breakDuration = 5 * time.Minute
	breakEvery    = time.Hour
)

// ScheduleEntry is one block of the day plan.
type ScheduleEntry struct {
	Start  time.Time
	End    time.Time
	Label  string
	Kind   EntryKind
	Marker Marker
}

// TimeRange renders the block as "09:00 AM - 09:45 AM".
func (e ScheduleEntry) TimeRange() string {
	return e.Start.Format(clockLayout) + " - " + e.End.Format(clockLayout)
}

func (e ScheduleEntry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Anchor is a fixed slot of the day, placed at a clock time on the plan's date.
type Anchor struct {
	Label    string
	Hour     int
	Minute   int
	Duration time.Duration
	Marker   Marker
}

// DefaultAnchors are the meal and wrap-up slots added to every plan.
func DefaultAnchors() []Anchor {
	return []Anchor{
		{Label: "Breakfast 🍳", Hour: 8, Minute: 0, Duration: 30 * time.Minute, Marker: MarkerMeal},
		{Label: "Lunch 🍽", Hour: 13, Minute: 0, Duration: 45 * time.Minute, Marker: MarkerMeal},
		{Label: "Dinner 🍲", Hour: 19, Minute: 30, Duration: 45 * time.Minute, Marker: MarkerMeal},
		{Label: "Wrap-up 🌙", Hour: 21, Minute: 30, Duration: 15 * time.Minute, Marker: MarkerWrapUp},
	}
}

type planOptions struct {
	anchors []Anchor
}

// Option customizes PlanDay.
type Option func(*planOptions)

// WithAnchors replaces the default anchors.
func WithAnchors(anchors ...Anchor) Option {
	return func(o *planOptions) {
		o.anchors = anchors
	}
}

// WithoutAnchors plans task blocks and breaks only.
func WithoutAnchors() Option {
	return func(o *planOptions) {
		o.anchors = nil
	}
}

// PlanDay lays pending, mood-compatible tasks out back to back from now.
//
// A five minute break follows any task that ends exactly on a whole hour of
// elapsed plan time; there is no running timer, so most plans get fewer
// breaks than hours. Anchors in the future are added unless an entry already
// starts at the same displayed minute. Anchors are not checked for overlap
// with task blocks. It panics with ErrUnknownMood for a mood outside Moods().
func PlanDay(tasks []Task, mood Mood, now time.Time, opts ...Option) []ScheduleEntry {
	mood.mustBeValid()
	options := planOptions{anchors: DefaultAnchors()}
	for _, opt := range opts {
		opt(&options)
	}

	pending := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if !task.Done {
			pending = append(pending, task)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	pending = FilterByMood(pending, mood)

	start := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), 0, 0, now.Location())
	cursor := start
	entries := make([]ScheduleEntry, 0, len(pending)+len(options.anchors))

	for _, task := range pending {
		duration := EstimateDuration(task.Text)
		end := cursor.Add(duration)
		entries = append(entries, ScheduleEntry{
			Start:  cursor,
			End:    end,
			Label:  task.Text,
			Kind:   KindTask,
			Marker: markerFor(duration),
		})
		cursor = end

		if cursor.Sub(start)%breakEvery == 0 {
			entries = append(entries, ScheduleEntry{
				Start:  cursor,
				End:    cursor.Add(breakDuration),
				Label:  breakLabel,
				Kind:   KindBreak,
				Marker: MarkerBreak,
			})
			cursor = cursor.Add(breakDuration)
		}
	}

	entries = addAnchors(entries, options.anchors, now)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start.Before(entries[j].Start)
	})
	return entries
}

func addAnchors(entries []ScheduleEntry, anchors []Anchor, now time.Time) []ScheduleEntry {
	taken := make(map[string]struct{}, len(entries)+len(anchors))
	for _, e := range entries {
		taken[e.Start.Format(clockLayout)] = struct{}{}
	}

	for _, a := range anchors {
		at := time.Date(now.Year(), now.Month(), now.Day(), a.Hour, a.Minute, 0, 0, now.Location())
		if !at.After(now) {
			continue
		}
		key := at.Format(clockLayout)
		if _, ok := taken[key]; ok {
			continue
		}
		taken[key] = struct{}{}
		entries = append(entries, ScheduleEntry{
			Start:  at,
			End:    at.Add(a.Duration),
			Label:  a.Label,
			Kind:   KindAnchor,
			Marker: a.Marker,
		})
	}
	return entries
}

func markerFor(d time.Duration) Marker {
	switch {
	case d > 30*time.Minute:
		return MarkerIntense
	case d == 30*time.Minute:
		return MarkerModerate
	default:
		return MarkerLight
	}
}

// TaskEntries drops breaks and anchors from a plan.
func TaskEntries(entries []ScheduleEntry) []ScheduleEntry {
	out := make([]ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.Kind == KindTask {
			out = append(out, e)
		}
	}
	return out
}
