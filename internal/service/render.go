package service

import (
	"fmt"
	"html"
	"strings"

	"smart-task-planner/internal/planner"
)

var markerIcons = map[planner.Marker]string{
	planner.MarkerIntense:  "🔥",
	planner.MarkerModerate: "📚",
	planner.MarkerLight:    "✅",
	planner.MarkerBreak:    "☕",
	planner.MarkerMeal:     "🍽",
	planner.MarkerWrapUp:   "🌙",
}

var flagIcons = map[planner.Flag]string{
	planner.FlagUrgent: "🔴",
	planner.FlagNormal: "🟢",
}

// MarkerIcon returns the emoji shown for a schedule marker.
func MarkerIcon(m planner.Marker) string {
	if icon, ok := markerIcons[m]; ok {
		return icon
	}
	return "•"
}

// RenderPlan formats a day plan as Telegram HTML. Empty plans render as "".
func RenderPlan(entries []planner.ScheduleEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("🗓 <b>Your Smart Day Plan</b>\n")
	for _, e := range entries {
		label := html.EscapeString(e.Label)
		if e.Kind == planner.KindTask {
			sb.WriteString(fmt.Sprintf("%s → %s %s\n", e.TimeRange(), label, MarkerIcon(e.Marker)))
			continue
		}
		sb.WriteString(fmt.Sprintf("<i>%s → %s</i>\n", e.TimeRange(), label))
	}
	return strings.TrimSpace(sb.String())
}

// RenderRanking formats a priority ranking as Telegram HTML.
func RenderRanking(ranked []planner.ScoredTask) string {
	if len(ranked) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("📊 <b>Your Priorities</b>\n")
	for i, r := range ranked {
		sb.WriteString(fmt.Sprintf("%d. %s %s <i>(score %d)</i>\n", i+1, flagIcons[r.Flag], html.EscapeString(r.Text), r.Score))
	}
	return strings.TrimSpace(sb.String())
}

// HasTaskEntries reports whether any task survived mood filtering.
func HasTaskEntries(entries []planner.ScheduleEntry) bool {
	for _, e := range entries {
		if e.Kind == planner.KindTask {
			return true
		}
	}
	return false
}
