package bot

import (
	"strings"
	"testing"
	"time"

	"smart-task-planner/internal/model"
	"smart-task-planner/internal/planner"
	"smart-task-planner/internal/service"
)

func TestMenuCommand(t *testing.T) {
	tests := map[string]string{
		menuLabelPlan:        "plan",
		" " + menuLabelTasks: "tasks",
		menuLabelPrioritize:  "prioritize",
		menuLabelSuggest:     "suggest",
		menuLabelMood:        "mood",
		menuLabelHelp:        "help",
	}
	for text, want := range tests {
		got, ok := menuCommand(text)
		if !ok || got != want {
			t.Errorf("menuCommand(%q) = %q, %t; want %q", text, got, ok, want)
		}
	}
	if _, ok := menuCommand("buy milk"); ok {
		t.Error("plain text should not be a menu command")
	}
}

func TestMoodKeyboard(t *testing.T) {
	kb := moodKeyboard()
	if len(kb.InlineKeyboard) != 1 || len(kb.InlineKeyboard[0]) != 3 {
		t.Fatalf("unexpected layout %+v", kb.InlineKeyboard)
	}
	for i, m := range planner.Moods() {
		button := kb.InlineKeyboard[0][i]
		if button.CallbackData == nil {
			t.Fatalf("button %d has no callback data", i)
		}
		parsed, err := planner.ParseMood(strings.TrimPrefix(*button.CallbackData, cbMoodPrefix))
		if err != nil || parsed != m {
			t.Errorf("button %d data %q parses to %s, %v", i, *button.CallbackData, parsed, err)
		}
		if !strings.HasPrefix(button.Text, string(m)) {
			t.Errorf("button %d text %q", i, button.Text)
		}
	}
}

func TestTaskListKeyboard(t *testing.T) {
	kb := taskListKeyboard([]model.Task{
		{ID: 3, Text: "buy milk"},
		{ID: 9, Text: "finish the quarterly report for the board and the investors", Done: true},
	})
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("expected one row per task, got %d", len(kb.InlineKeyboard))
	}
	first := kb.InlineKeyboard[0][0]
	if first.Text != "⬜ buy milk" || *first.CallbackData != "toggle:3" {
		t.Errorf("unexpected first button %q / %q", first.Text, *first.CallbackData)
	}
	second := kb.InlineKeyboard[1][0]
	if !strings.HasPrefix(second.Text, "✅ ") || !strings.HasSuffix(second.Text, "…") {
		t.Errorf("unexpected second button %q", second.Text)
	}
	id, err := parseTaskID(*second.CallbackData, cbTogglePrefix)
	if err != nil || id != 9 {
		t.Errorf("parseTaskID = %d, %v", id, err)
	}
}

func TestParseTaskID(t *testing.T) {
	if _, err := parseTaskID("toggle:abc", cbTogglePrefix); err == nil {
		t.Error("expected error for non-numeric id")
	}
	if id, err := parseTaskID("toggle:42", cbTogglePrefix); err != nil || id != 42 {
		t.Errorf("parseTaskID = %d, %v", id, err)
	}
}

func TestFormatting(t *testing.T) {
	draft := formatDraft([]string{"buy milk", "a <b> c"})
	if !strings.Contains(draft, "I found 2 task(s)") || !strings.Contains(draft, "• a &lt;b&gt; c") {
		t.Errorf("unexpected draft:\n%s", draft)
	}

	added := formatAddResult(service.AddResult{
		Parsed:  3,
		Added:   []model.Task{{Text: "buy milk"}},
		Skipped: []string{"Call Mom", "call mom"},
	})
	if !strings.HasPrefix(added, "📌 Tasks added successfully!") || !strings.Contains(added, "Already on your list: Call Mom, call mom") {
		t.Errorf("unexpected add result:\n%s", added)
	}

	text, _ := planner.Suggest("call mom", "")
	suggestions := formatSuggestions([]service.TaskSuggestion{
		{Task: model.Task{Text: "call mom"}, Category: planner.CategoryCall, Suggestion: text},
	})
	if !strings.Contains(suggestions, "Help with: call mom</b> (📞 Call)") || !strings.Contains(suggestions, "<pre>Call script:") {
		t.Errorf("unexpected suggestions:\n%s", suggestions)
	}
}

func TestShortTitle(t *testing.T) {
	if got := shortTitle("  line one\nline two ", 40); got != "line one line two" {
		t.Errorf("shortTitle = %q", got)
	}
	if got := shortTitle("abcdef", 4); got != "abc…" {
		t.Errorf("shortTitle = %q", got)
	}
}

func TestUserLimiter(t *testing.T) {
	l := newUserLimiter(30)
	allowed := 0
	for i := 0; i < 10; i++ {
		if l.Allow(1) {
			allowed++
		}
	}
	if allowed != 3 {
		t.Errorf("burst allowed %d requests, want 3", allowed)
	}
	if !l.Allow(2) {
		t.Error("a different user has its own budget")
	}
}

func TestStartTextUsesBotClock(t *testing.T) {
	at := time.Date(2025, time.March, 10, 14, 4, 0, 0, time.UTC)
	b := &Bot{
		profiles:  service.NewProfileService(nil, "Europe/Prague"),
		reminders: service.NewReminderService(nil, nil),
		clock:     func() time.Time { return at },
	}
	user := &model.User{Name: "anicka"}

	now := b.localNow(user)
	if now.Location().String() != "Europe/Prague" || now.Hour() != 15 {
		t.Errorf("localNow = %s", now)
	}
	if text := b.startText(user); !strings.Contains(text, "Hi <b>Anicka</b> — Monday, 03:04 PM") {
		t.Errorf("unexpected start text:\n%s", text)
	}

	user.Timezone = "Asia/Kolkata"
	if now := b.localNow(user); now.Hour() != 19 || now.Minute() != 34 {
		t.Errorf("localNow with user zone = %s", now)
	}
}
