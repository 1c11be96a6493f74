package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"smart-task-planner/internal/model"
	"smart-task-planner/internal/planner"
	"smart-task-planner/internal/repository"
)

func TestReminderServiceTexts(t *testing.T) {
	svc := NewReminderService(nil, nil)
	svc.pick = func(n int) int { return n - 1 }

	if got := svc.Quote(); got != quotes[len(quotes)-1] {
		t.Errorf("Quote = %q", got)
	}
	if got := svc.Reminder(); got != "🧘 "+reminders[len(reminders)-1] {
		t.Errorf("Reminder = %q", got)
	}

	now := time.Date(2025, time.March, 10, 15, 4, 0, 0, time.UTC)
	if got := svc.Greeting("anicka", now); got != "Hi <b>Anicka</b> — Monday, 03:04 PM" {
		t.Errorf("Greeting = %q", got)
	}
	if got := svc.Greeting("  ", now); got != "Hi there! — Monday, 03:04 PM" {
		t.Errorf("Greeting without name = %q", got)
	}
}

func TestReminderServiceMorningDigest(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	tasks := NewTaskService(repository.NewTaskRepository(db), fixedClock(now))
	profiles := NewProfileService(repository.NewUserRepository(db), "UTC")
	plans := NewPlanService(repository.NewTaskRepository(db), fixedClock(now), planner.WithoutAnchors())
	svc := NewReminderService(plans, profiles)

	user, err := profiles.Ensure(ctx, 99, "Anicka", "")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	text, err := svc.MorningDigest(ctx, *user)
	if err != nil {
		t.Fatalf("MorningDigest: %v", err)
	}
	if text != "" {
		t.Errorf("no tasks should mean no digest, got %q", text)
	}

	if _, err := tasks.AddTasks(ctx, UserKey(*user), "finish report, buy milk"); err != nil {
		t.Fatalf("AddTasks: %v", err)
	}
	if _, err := profiles.SetMood(ctx, user, "tired"); err != nil {
		t.Fatalf("SetMood: %v", err)
	}

	text, err = svc.MorningDigest(ctx, model.User{TelegramID: user.TelegramID, FirstName: user.FirstName, Mood: user.Mood, Timezone: user.Timezone})
	if err != nil {
		t.Fatalf("MorningDigest: %v", err)
	}
	for _, want := range []string{"Hi <b>Anicka</b>", "Mood on file: <b>Tired</b>", "08:00 AM - 08:15 AM → buy milk"} {
		if !strings.Contains(text, want) {
			t.Errorf("digest missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "finish report") {
		t.Errorf("tired digest should skip heavy tasks:\n%s", text)
	}
}

func TestReminderServiceDigestDue(t *testing.T) {
	at := DailyTime{Hour: 7, Minute: 30}
	users := map[string]model.User{
		"prague":    {TelegramID: 1, Timezone: "Europe/Prague"},
		"utc":       {TelegramID: 2, Timezone: "UTC"},
		"kolkata":   {TelegramID: 3, Timezone: "Asia/Kolkata"},
		"kathmandu": {TelegramID: 4, Timezone: "Asia/Kathmandu"},
	}

	tests := []struct {
		name string
		now  time.Time
		due  []string
	}{
		{name: "prague morning", now: time.Date(2025, time.March, 10, 6, 30, 0, 0, time.UTC), due: []string{"prague"}},
		{name: "prague end of tick", now: time.Date(2025, time.March, 10, 6, 44, 59, 0, time.UTC), due: []string{"prague"}},
		{name: "next tick", now: time.Date(2025, time.March, 10, 6, 45, 0, 0, time.UTC)},
		{name: "kolkata half hour offset", now: time.Date(2025, time.March, 10, 2, 0, 0, 0, time.UTC), due: []string{"kolkata"}},
		{name: "kathmandu quarter offset", now: time.Date(2025, time.March, 10, 1, 45, 0, 0, time.UTC), due: []string{"kathmandu"}},
		{name: "utc", now: time.Date(2025, time.March, 10, 7, 30, 0, 0, time.UTC), due: []string{"utc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plans := NewPlanService(&fakeStore{}, fixedClock(tt.now))
			svc := NewReminderService(plans, NewProfileService(nil, "UTC"))

			want := make(map[string]bool, len(tt.due))
			for _, name := range tt.due {
				want[name] = true
			}
			for name, user := range users {
				if got := svc.DigestDue(user, at); got != want[name] {
					t.Errorf("DigestDue(%s) = %t, want %t", name, got, want[name])
				}
			}
		})
	}
}
