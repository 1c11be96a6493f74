package service

import (
	"context"
	"strings"

	"smart-task-planner/internal/model"
	"smart-task-planner/internal/planner"
	"smart-task-planner/internal/repository"
)

// AddResult reports the outcome of adding parsed tasks.
type AddResult struct {
	Parsed  int
	Added   []model.Task
	Skipped []string
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
	clock    Clock
}

func NewTaskService(taskRepo *repository.TaskRepository, clock Clock) *TaskService {
	if clock == nil {
		clock = SystemClock
	}
	return &TaskService{taskRepo: taskRepo, clock: clock}
}

// AddTasks parses raw input and stores every task whose lowercased text is
// not already present for the user, including earlier entries of the same batch.
func (s *TaskService) AddTasks(ctx context.Context, userKey, raw string) (AddResult, error) {
	parsed := planner.ParseTasks(raw)
	result := AddResult{Parsed: len(parsed)}
	if len(parsed) == 0 {
		return result, nil
	}

	existing, err := s.taskRepo.ExistingTexts(ctx, userKey)
	if err != nil {
		return result, err
	}

	now := s.clock()
	batch := make([]model.Task, 0, len(parsed))
	for _, text := range parsed {
		key := strings.ToLower(text)
		if _, ok := existing[key]; ok {
			result.Skipped = append(result.Skipped, text)
			continue
		}
		existing[key] = struct{}{}
		batch = append(batch, model.Task{UserKey: userKey, Text: text, CreatedAt: now})
	}

	if err := s.taskRepo.CreateBatch(ctx, batch); err != nil {
		return result, err
	}
	result.Added = batch
	return result, nil
}

func (s *TaskService) List(ctx context.Context, userKey string) ([]model.Task, error) {
	return s.taskRepo.ListByUser(ctx, userKey)
}

func (s *TaskService) Get(ctx context.Context, userKey string, taskID uint) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, userKey, taskID)
}

// SetDone flips the done flag of one task.
func (s *TaskService) SetDone(ctx context.Context, userKey string, taskID uint, done bool) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, userKey, taskID)
	if err != nil {
		return nil, err
	}
	if task.Done == done {
		return task, nil
	}
	if err := s.taskRepo.SetDone(ctx, task, done); err != nil {
		return nil, err
	}
	return task, nil
}

// Toggle inverts the done flag of one task.
func (s *TaskService) Toggle(ctx context.Context, userKey string, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, userKey, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.SetDone(ctx, task, !task.Done); err != nil {
		return nil, err
	}
	return task, nil
}

// ClearAll deletes every task owned by the user.
func (s *TaskService) ClearAll(ctx context.Context, userKey string) (int64, error) {
	return s.taskRepo.DeleteAll(ctx, userKey)
}
