package service

import (
	"context"
	"fmt"
	"html"
	"math/rand"
	"strings"
	"time"

	"smart-task-planner/internal/model"
	"smart-task-planner/internal/planner"
)

var quotes = []string{
	"“Small steps every day lead to big change.”",
	"“You don’t need to do everything, just something.”",
	"“Even one task done is progress.”",
	"“Work gently. Rest proudly.”",
	"“Start where you are. Use what you have. Do what you can.”",
}

var reminders = []string{
	"Take a deep breath and stretch a little.",
	"Stay hydrated, drink some water.",
	"Don’t forget your lunch today!",
	"Your mind is powerful, even if you're tired.",
	"Try to take a 5-minute break after every hour.",
	"Smile! You're doing better than you think.",
}

// ReminderService builds greetings, nudges and the morning digest.
type ReminderService struct {
	plans    *PlanService
	profiles *ProfileService
	pick     func(n int) int
}

func NewReminderService(plans *PlanService, profiles *ProfileService) *ReminderService {
	return &ReminderService{plans: plans, profiles: profiles, pick: rand.Intn}
}

// Quote returns a random motivational quote.
func (s *ReminderService) Quote() string {
	return quotes[s.pick(len(quotes))]
}

// Reminder returns a random wellbeing nudge.
func (s *ReminderService) Reminder() string {
	return "🧘 " + reminders[s.pick(len(reminders))]
}

// Greeting renders "Hi <b>Anicka</b> — Monday, 03:04 PM" in the user's time.
func (s *ReminderService) Greeting(name string, now time.Time) string {
	when := now.Format("Monday, 03:04 PM")
	if title := planner.TitleName(name); title != "" {
		return fmt.Sprintf("Hi <b>%s</b> — %s", html.EscapeString(title), when)
	}
	return fmt.Sprintf("Hi there! — %s", when)
}

// MorningDigest plans the user's saved tasks with their stored mood.
// It returns "" when the user has nothing to do today.
func (s *ReminderService) MorningDigest(ctx context.Context, user model.User) (string, error) {
	mood := s.profiles.Mood(&user)
	loc := s.profiles.Location(&user)

	plan, err := s.plans.PlanDay(ctx, UserKey(user), mood, loc)
	if err != nil {
		return "", err
	}
	if !HasTaskEntries(plan) {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("☀️ " + s.Greeting(user.DisplayName(), s.plans.now(loc)) + "\n")
	sb.WriteString(fmt.Sprintf("Mood on file: <b>%s</b>. Change it with /mood.\n\n", mood))
	sb.WriteString(RenderPlan(plan))
	sb.WriteString("\n\n" + s.Quote())
	return sb.String(), nil
}

// DigestTick is how often the digest job runs. Every user whose local digest
// time falls in the last tick gets the digest, which covers zones offset by
// half and quarter hours.
const DigestTick = 15 * time.Minute

// DigestDue reports whether the user's local clock is within one tick after at.
func (s *ReminderService) DigestDue(user model.User, at DailyTime) bool {
	now := s.plans.now(s.profiles.Location(&user))
	target := at.On(now)
	return !now.Before(target) && now.Before(target.Add(DigestTick))
}

// UserKey is the task owner key for a Telegram user.
func UserKey(user model.User) string {
	return fmt.Sprintf("tg:%d", user.TelegramID)
}
