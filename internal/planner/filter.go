package planner

// FilterByMood keeps, in order, the tasks whose intensity the mood allows:
// tired keeps only light tasks, neutral skips the heavy ones.
// It panics with ErrUnknownMood for a mood outside Moods().
func FilterByMood(tasks []Task, mood Mood) []Task {
	mood.mustBeValid()
	kept := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if mood.allows(Classify(task.Text)) {
			kept = append(kept, task)
		}
	}
	return kept
}
