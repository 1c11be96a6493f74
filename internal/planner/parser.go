package planner

import "strings"

var taskSeparators = strings.NewReplacer(";", ",", "\r\n", ",", "\n", ",", "\r", ",")

// ParseTasks splits free-form input on commas, semicolons and newlines.
// Segments are trimmed and empty ones dropped; duplicates are kept.
func ParseTasks(raw string) []string {
	normalized := taskSeparators.Replace(raw)
	tasks := make([]string, 0)
	for _, part := range strings.Split(normalized, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tasks = append(tasks, trimmed)
		}
	}
	return tasks
}
