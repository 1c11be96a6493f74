package bot

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"smart-task-planner/internal/model"
	"smart-task-planner/internal/planner"
	"smart-task-planner/internal/service"
)

const (
	menuLabelPlan       = "✨ Plan My Day"
	menuLabelPrioritize = "📊 Prioritize"
	menuLabelTasks      = "📋 My Tasks"
	menuLabelSuggest    = "💡 Need Help?"
	menuLabelMood       = "🌡 Mood"
	menuLabelHelp       = "ℹ️ Help"

	taskListHeader = "✅ <b>Mark Your Completed Tasks</b>\nTap a task to toggle it."
	maxButtonTitle = 40
)

const helpText = "ℹ️ <b>How to use SmartTaskBot</b>\n" +
	"• Type your tasks in any format: new lines, commas or semicolons.\n" +
	"• /mood — tell me how you feel (Energetic, Neutral, Tired)\n" +
	"• /plan — plan your day around your energy\n" +
	"• /prioritize — rank tasks by urgency\n" +
	"• /add &lt;tasks&gt; — save tasks to track them later\n" +
	"• /tasks — mark saved tasks as done\n" +
	"• /suggest — templates for emails, calls, meetings and more\n" +
	"• /name &lt;name&gt; and /tz &lt;zone&gt; — personalise\n" +
	"• /clear — delete all saved tasks\n" +
	"• /cancel — forget the current list"

var moodIcons = map[planner.Mood]string{
	planner.MoodEnergetic: "⚡",
	planner.MoodNeutral:   "☁",
	planner.MoodTired:     "💤",
}

var categoryTitles = map[planner.Category]string{
	planner.CategoryEmail:    "✉️ Email",
	planner.CategoryCall:     "📞 Call",
	planner.CategoryMeeting:  "👥 Meeting",
	planner.CategoryHomework: "📖 Study",
	planner.CategoryGrocery:  "🛒 Groceries",
	planner.CategoryClean:    "🧽 Cleaning",
}

// menuCommand maps a main menu button to the command it stands for.
func menuCommand(text string) (string, bool) {
	switch strings.TrimSpace(text) {
	case menuLabelPlan:
		return "plan", true
	case menuLabelPrioritize:
		return "prioritize", true
	case menuLabelTasks:
		return "tasks", true
	case menuLabelSuggest:
		return "suggest", true
	case menuLabelMood:
		return "mood", true
	case menuLabelHelp:
		return "help", true
	default:
		return "", false
	}
}

func moodLabel(m planner.Mood) string {
	return fmt.Sprintf("%s %s", m, moodIcons[m])
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelPlan),
			tgbotapi.NewKeyboardButton(menuLabelPrioritize),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelTasks),
			tgbotapi.NewKeyboardButton(menuLabelSuggest),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelMood),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func moodKeyboard() tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(planner.Moods()))
	for _, m := range planner.Moods() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(moodLabel(m), cbMoodPrefix+string(m)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func draftKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(menuLabelPlan, cbDraftPlan),
			tgbotapi.NewInlineKeyboardButtonData("📌 Add to My Tasks", cbDraftAdd),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(menuLabelPrioritize, cbDraftRank),
		),
	)
}

func clearKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧹 Yes, clear all", cbClearYes),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Keep them", cbClearNo),
		),
	)
}

// taskListKeyboard renders one toggle button per task.
func taskListKeyboard(tasks []model.Task) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(tasks))
	for _, task := range tasks {
		box := "⬜"
		if task.Done {
			box = "✅"
		}
		label := fmt.Sprintf("%s %s", box, shortTitle(task.Text, maxButtonTitle))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbTogglePrefix, task.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func formatDraft(parsed []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📝 I found %d task(s):\n", len(parsed)))
	for _, text := range parsed {
		sb.WriteString(fmt.Sprintf("• %s\n", escape(text)))
	}
	sb.WriteString("\nWhat should I do with them?")
	return sb.String()
}

func formatAddResult(res service.AddResult) string {
	var sb strings.Builder
	sb.WriteString("📌 Tasks added successfully!\n")
	for _, task := range res.Added {
		sb.WriteString(fmt.Sprintf("• %s\n", escape(task.Text)))
	}
	if len(res.Skipped) > 0 {
		sb.WriteString(fmt.Sprintf("\nAlready on your list: %s", escape(strings.Join(res.Skipped, ", "))))
	}
	return strings.TrimSpace(sb.String())
}

func formatSuggestions(suggestions []service.TaskSuggestion) string {
	var sb strings.Builder
	sb.WriteString("✨ <b>Need Help With a Task?</b>\n")
	for _, s := range suggestions {
		sb.WriteString(fmt.Sprintf("\n💡 <b>Help with: %s</b> (%s)\n<pre>%s</pre>\n",
			escape(s.Task.Text), categoryTitles[s.Category], escape(s.Suggestion)))
	}
	return strings.TrimSpace(sb.String())
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func escape(s string) string {
	return html.EscapeString(s)
}
