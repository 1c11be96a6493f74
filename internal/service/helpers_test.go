package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"smart-task-planner/internal/model"
	"smart-task-planner/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repository.NewDB(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name), nil)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

type fakeStore struct {
	tasks map[string][]model.Task
	err   error
}

func (f *fakeStore) ListByUser(_ context.Context, userKey string) ([]model.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks[userKey], nil
}
