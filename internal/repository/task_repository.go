package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"smart-task-planner/internal/model"
)

// TaskRepository handles CRUD for tasks. All queries are scoped to a user key.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// CreateBatch stores tasks in one transaction.
func (r *TaskRepository) CreateBatch(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&tasks).Error
	})
	if err != nil {
		return fmt.Errorf("create tasks: %w", err)
	}
	return nil
}

// ListByUser returns the user's tasks oldest first.
func (r *TaskRepository) ListByUser(ctx context.Context, userKey string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_key = ?", userKey).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ExistingTexts returns the lowercased texts already stored for the user.
func (r *TaskRepository) ExistingTexts(ctx context.Context, userKey string) (map[string]struct{}, error) {
	var texts []string
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_key = ?", userKey).
		Pluck("text", &texts).Error; err != nil {
		return nil, fmt.Errorf("list task texts: %w", err)
	}
	set := make(map[string]struct{}, len(texts))
	for _, text := range texts {
		set[strings.ToLower(text)] = struct{}{}
	}
	return set, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userKey string, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_key = ? AND id = ?", userKey, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) SetDone(ctx context.Context, task *model.Task, done bool) error {
	if err := r.db.WithContext(ctx).Model(task).Update("done", done).Error; err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	task.Done = done
	return nil
}

// DeleteAll removes every task of the user and reports how many were removed.
func (r *TaskRepository) DeleteAll(ctx context.Context, userKey string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_key = ?", userKey).Delete(&model.Task{})
	if res.Error != nil {
		return 0, fmt.Errorf("clear tasks: %w", res.Error)
	}
	return res.RowsAffected, nil
}
