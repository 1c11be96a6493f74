// Package planner turns a snapshot of tasks and a mood into a time-boxed
// day plan, a priority ranking and canned suggestions.
package planner

import "time"

// Task is the planner's read-only view of a stored task.
type Task struct {
	Text      string
	Done      bool
	CreatedAt time.Time
}

// TasksFromTexts builds pending tasks for ad-hoc input that was never stored.
// CreatedAt is the same for all of them, so stable ordering keeps input order.
func TasksFromTexts(texts []string, now time.Time) []Task {
	tasks := make([]Task, 0, len(texts))
	for _, text := range texts {
		tasks = append(tasks, Task{Text: text, CreatedAt: now})
	}
	return tasks
}
