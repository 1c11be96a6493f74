package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smart-task-planner/internal/model"
	"smart-task-planner/internal/planner"
)

func TestPlanServicePlanDay(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 03:37 UTC is 09:07 in Kolkata.
	now := time.Date(2025, time.March, 10, 3, 37, 30, 0, time.UTC)
	created := now.Add(-time.Hour)
	store := &fakeStore{tasks: map[string][]model.Task{
		"tg:1": {
			{Text: "finish report", CreatedAt: created},
			{Text: "buy milk", CreatedAt: created.Add(time.Second)},
			{Text: "call mom", CreatedAt: created.Add(2 * time.Second), Done: true},
		},
	}}
	svc := NewPlanService(store, fixedClock(now), planner.WithoutAnchors())

	plan, err := svc.PlanDay(context.Background(), "tg:1", planner.MoodEnergetic, kolkata)
	if err != nil {
		t.Fatalf("PlanDay: %v", err)
	}
	if len(plan) != 3 {
		t.Fatalf("got %d entries, want 3", len(plan))
	}
	if plan[0].TimeRange() != "09:07 AM - 09:52 AM" || plan[1].Label != "buy milk" {
		t.Errorf("unexpected plan %s %q / %s %q", plan[0].TimeRange(), plan[0].Label, plan[1].TimeRange(), plan[1].Label)
	}
	if plan[2].Kind != planner.KindBreak || plan[2].TimeRange() != "10:07 AM - 10:12 AM" {
		t.Errorf("expected a break after the first hour, got %s %s", plan[2].Kind, plan[2].TimeRange())
	}

	tired, err := svc.PlanDay(context.Background(), "tg:1", planner.MoodTired, kolkata)
	if err != nil {
		t.Fatalf("PlanDay: %v", err)
	}
	if len(tired) != 1 || tired[0].Label != "buy milk" {
		t.Errorf("unexpected tired plan %+v", tired)
	}
}

func TestPlanServiceStoreError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewPlanService(&fakeStore{err: boom}, nil)
	if _, err := svc.PlanDay(context.Background(), "tg:1", planner.MoodNeutral, time.UTC); !errors.Is(err, boom) {
		t.Errorf("PlanDay err = %v", err)
	}
	if _, err := svc.Prioritize(context.Background(), "tg:1", planner.MoodNeutral); !errors.Is(err, boom) {
		t.Errorf("Prioritize err = %v", err)
	}
	if _, err := svc.Suggestions(context.Background(), "tg:1", ""); !errors.Is(err, boom) {
		t.Errorf("Suggestions err = %v", err)
	}
}

func TestPlanServiceDrafts(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	svc := NewPlanService(&fakeStore{}, fixedClock(now), planner.WithoutAnchors())

	plan := svc.PlanDraft("finish report", planner.MoodTired, time.UTC)
	if len(plan) != 0 {
		t.Errorf("tired draft should be empty, got %+v", plan)
	}

	plan = svc.PlanDraft("fix bug; buy milk", planner.MoodEnergetic, time.UTC)
	if len(plan) != 3 || plan[2].Kind != planner.KindBreak {
		t.Errorf("expected two tasks and a break, got %+v", plan)
	}

	ranked := svc.PrioritizeDraft("urgent report, call mom, buy milk", planner.MoodEnergetic)
	if len(ranked) != 3 || ranked[0].Text != "urgent report" || ranked[0].Score != 2 {
		t.Errorf("unexpected ranking %+v", ranked)
	}
}

func TestPlanServicePrioritizeSkipsDone(t *testing.T) {
	store := &fakeStore{tasks: map[string][]model.Task{
		"tg:1": {
			{Text: "urgent taxes", Done: true},
			{Text: "call mom today"},
			{Text: "buy milk"},
		},
	}}
	svc := NewPlanService(store, nil)

	ranked, err := svc.Prioritize(context.Background(), "tg:1", planner.MoodEnergetic)
	if err != nil {
		t.Fatalf("Prioritize: %v", err)
	}
	if len(ranked) != 2 || ranked[0].Text != "call mom today" {
		t.Errorf("unexpected ranking %+v", ranked)
	}
}

func TestPlanServiceSuggestions(t *testing.T) {
	store := &fakeStore{tasks: map[string][]model.Task{
		"tg:1": {
			{ID: 1, Text: "email landlord"},
			{ID: 2, Text: "finish report"},
			{ID: 3, Text: "clean kitchen"},
		},
	}}
	svc := NewPlanService(store, nil)

	got, err := svc.Suggestions(context.Background(), "tg:1", "anicka")
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}
	if got[0].Category != planner.CategoryEmail || got[0].Task.ID != 1 {
		t.Errorf("unexpected first suggestion %+v", got[0])
	}
	if got[1].Category != planner.CategoryClean {
		t.Errorf("unexpected second suggestion %+v", got[1])
	}
}
