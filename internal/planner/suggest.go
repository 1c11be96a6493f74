package planner

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is a kind of task the bot has a canned helper for.
type Category string

const (
	CategoryEmail    Category = "email"
	CategoryCall     Category = "call"
	CategoryMeeting  Category = "meeting"
	CategoryHomework Category = "homework"
	CategoryGrocery  Category = "grocery"
	CategoryClean    Category = "clean"
)

type suggestionRule struct {
	category Category
	keywords []string
	template string
}

// "call" also appears under meeting; call is declared first and wins.
var suggestionRules = []suggestionRule{
	{
		category: CategoryEmail,
		keywords: []string{"email", "mail", "send", "reply"},
		template: "Subject: Follow-up\n\nHi [Name],\nJust checking in on [topic]. Let me know your thoughts.\n\nThanks,",
	},
	{
		category: CategoryCall,
		keywords: []string{"call", "phone", "speak"},
		template: "Call script: Hi! Just wanted to connect quickly about [topic]. Is now a good time?",
	},
	{
		category: CategoryMeeting,
		keywords: []string{"meeting", "zoom", "call", "agenda"},
		template: "Meeting Outline:\n- Agenda overview\n- Discussion\n- Action steps\n- Q&A",
	},
	{
		category: CategoryHomework,
		keywords: []string{"study", "homework", "assignment"},
		template: "Try: 25 mins focused study + 5 min break. Repeat 3x. Pomodoro works wonders!",
	},
	{
		category: CategoryGrocery,
		keywords: []string{"grocery", "groceries", "buy", "shop", "milk"},
		template: "Shopping list:\n- Check the fridge first\n- Group items by aisle\n- Add one treat for yourself",
	},
	{
		category: CategoryClean,
		keywords: []string{"clean", "organize", "declutter"},
		template: "Tip: Play a 10-minute timer and clean one area. Small wins = motivation!",
	},
}

// Match returns the first category whose keywords occur in the text.
func Match(text string) (Category, bool) {
	if rule, ok := matchRule(text); ok {
		return rule.category, true
	}
	return "", false
}

// Suggest returns the helper text for a task, signed with userName where the
// template has a sign-off.
func Suggest(text, userName string) (string, bool) {
	rule, ok := matchRule(text)
	if !ok {
		return "", false
	}
	if rule.category == CategoryEmail {
		if name := TitleName(userName); name != "" {
			return rule.template + "\n" + name, true
		}
	}
	return rule.template, true
}

// TitleName trims and title-cases a user supplied name.
func TitleName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return cases.Title(language.Und).String(name)
}

func matchRule(text string) (suggestionRule, bool) {
	lower := strings.ToLower(text)
	for _, rule := range suggestionRules {
		if containsAny(lower, rule.keywords) {
			return rule, true
		}
	}
	return suggestionRule{}, false
}
