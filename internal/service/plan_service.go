package service

import (
	"context"
	"time"

	"smart-task-planner/internal/model"
	"smart-task-planner/internal/planner"
)

// TaskStore is the read side of task persistence the planner needs.
type TaskStore interface {
	ListByUser(ctx context.Context, userKey string) ([]model.Task, error)
}

// TaskSuggestion pairs a stored task with its helper text.
type TaskSuggestion struct {
	Task       model.Task
	Category   planner.Category
	Suggestion string
}

// PlanService runs the planner over saved or ad-hoc tasks.
type PlanService struct {
	store   TaskStore
	clock   Clock
	options []planner.Option
}

func NewPlanService(store TaskStore, clock Clock, options ...planner.Option) *PlanService {
	if clock == nil {
		clock = SystemClock
	}
	return &PlanService{store: store, clock: clock, options: options}
}

// PlanDay schedules the user's saved tasks starting now in loc.
func (s *PlanService) PlanDay(ctx context.Context, userKey string, mood planner.Mood, loc *time.Location) ([]planner.ScheduleEntry, error) {
	tasks, err := s.snapshot(ctx, userKey)
	if err != nil {
		return nil, err
	}
	return planner.PlanDay(tasks, mood, s.now(loc), s.options...), nil
}

// PlanDraft schedules tasks typed in this session without storing them.
func (s *PlanService) PlanDraft(raw string, mood planner.Mood, loc *time.Location) []planner.ScheduleEntry {
	now := s.now(loc)
	return planner.PlanDay(planner.TasksFromTexts(planner.ParseTasks(raw), now), mood, now, s.options...)
}

// Prioritize ranks the user's pending tasks.
func (s *PlanService) Prioritize(ctx context.Context, userKey string, mood planner.Mood) ([]planner.ScoredTask, error) {
	tasks, err := s.snapshot(ctx, userKey)
	if err != nil {
		return nil, err
	}
	pending := make([]planner.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Done {
			pending = append(pending, t)
		}
	}
	return planner.Prioritize(pending, mood), nil
}

// PrioritizeDraft ranks tasks typed in this session.
func (s *PlanService) PrioritizeDraft(raw string, mood planner.Mood) []planner.ScoredTask {
	return planner.Prioritize(planner.TasksFromTexts(planner.ParseTasks(raw), s.clock()), mood)
}

// Suggestions lists helper texts for the user's saved tasks that match a category.
func (s *PlanService) Suggestions(ctx context.Context, userKey, userName string) ([]TaskSuggestion, error) {
	tasks, err := s.store.ListByUser(ctx, userKey)
	if err != nil {
		return nil, err
	}
	var out []TaskSuggestion
	for _, task := range tasks {
		category, ok := planner.Match(task.Text)
		if !ok {
			continue
		}
		text, _ := planner.Suggest(task.Text, userName)
		out = append(out, TaskSuggestion{Task: task, Category: category, Suggestion: text})
	}
	return out, nil
}

func (s *PlanService) snapshot(ctx context.Context, userKey string) ([]planner.Task, error) {
	stored, err := s.store.ListByUser(ctx, userKey)
	if err != nil {
		return nil, err
	}
	tasks := make([]planner.Task, 0, len(stored))
	for _, t := range stored {
		tasks = append(tasks, planner.Task{Text: t.Text, Done: t.Done, CreatedAt: t.CreatedAt})
	}
	return tasks, nil
}

func (s *PlanService) now(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return s.clock().In(loc)
}
