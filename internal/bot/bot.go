package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"smart-task-planner/internal/model"
	"smart-task-planner/internal/planner"
	"smart-task-planner/internal/service"
)

const (
	cbMoodPrefix   = "mood:"
	cbTogglePrefix = "toggle:"
	cbClearYes     = "clear:yes"
	cbClearNo      = "clear:no"
	cbDraftPlan    = "draft:plan"
	cbDraftAdd     = "draft:add"
	cbDraftRank    = "draft:rank"
)

const (
	draftTTL        = 30 * time.Minute
	confirmationTTL = 2 * time.Minute
	maxTrackedUsers = 1000
	// Telegram allows about 30 messages per second across chats.
	broadcastInterval = 50 * time.Millisecond
)

// Services groups what the bot needs from the service layer.
type Services struct {
	Profiles  *service.ProfileService
	Tasks     *service.TaskService
	Plans     *service.PlanService
	Reminders *service.ReminderService
	// Clock defaults to service.SystemClock.
	Clock service.Clock
}

// Bot aggregates Telegram API with services.
type Bot struct {
	api       *tgbotapi.BotAPI
	profiles  *service.ProfileService
	tasks     *service.TaskService
	plans     *service.PlanService
	reminders *service.ReminderService
	clock     service.Clock
	log       *zap.SugaredLogger

	// drafts keeps the last free-text task list per user until they pick an action.
	drafts        *expirable.LRU[int64, string]
	confirmations *expirable.LRU[int64, struct{}]
	limiter       *userLimiter
	broadcast     *rate.Limiter
}

func New(token string, svc Services, requestsPerMin int, logger *zap.SugaredLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	logger.Infof("bot authorized on account %s", api.Self.UserName)

	clock := svc.Clock
	if clock == nil {
		clock = service.SystemClock
	}

	return &Bot{
		api:           api,
		profiles:      svc.Profiles,
		tasks:         svc.Tasks,
		plans:         svc.Plans,
		reminders:     svc.Reminders,
		clock:         clock,
		log:           logger,
		drafts:        expirable.NewLRU[int64, string](maxTrackedUsers, nil, draftTTL),
		confirmations: expirable.NewLRU[int64, struct{}](maxTrackedUsers, nil, confirmationTTL),
		limiter:       newUserLimiter(requestsPerMin),
		broadcast:     rate.NewLimiter(rate.Every(broadcastInterval), 1),
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				b.log.Errorf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				b.log.Errorf("handle message: %v", err)
			}
		}
	}

	return ctx.Err()
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}
	if !b.limiter.Allow(msg.From.ID) {
		b.log.Warnf("rate limited user=%d", msg.From.ID)
		return nil
	}

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	if msg.IsCommand() {
		b.log.Infof("command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg.Chat.ID, user, msg.Command(), msg.CommandArguments())
	}

	if command, ok := menuCommand(msg.Text); ok {
		return b.handleCommand(ctx, msg.Chat.ID, user, command, "")
	}

	return b.handleDraft(msg, user)
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, user *model.User, command, args string) error {
	args = strings.TrimSpace(args)

	switch command {
	case "start":
		return b.handleStart(chatID, user)
	case "help":
		return b.sendText(chatID, helpText)
	case "name":
		return b.handleName(ctx, chatID, user, args)
	case "tz":
		return b.handleTimezone(ctx, chatID, user, args)
	case "mood":
		return b.handleMood(ctx, chatID, user, args)
	case "add":
		return b.addTasks(ctx, chatID, user, args)
	case "plan":
		return b.planDay(ctx, chatID, user, args)
	case "prioritize":
		return b.prioritize(ctx, chatID, user, args)
	case "tasks":
		return b.sendTaskList(ctx, chatID, user)
	case "suggest":
		return b.handleSuggest(ctx, chatID, user)
	case "clear":
		b.confirmations.Add(user.TelegramID, struct{}{})
		return b.sendWithReplyMarkup(chatID, "🧹 Delete <b>all</b> your saved tasks?", clearKeyboard())
	case "cancel":
		b.drafts.Remove(user.TelegramID)
		b.confirmations.Remove(user.TelegramID)
		return b.sendText(chatID, "⏪ Cancelled.")
	default:
		return b.sendText(chatID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleStart(chatID int64, user *model.User) error {
	return b.sendText(chatID, b.startText(user))
}

func (b *Bot) startText(user *model.User) string {
	return fmt.Sprintf("✨ <b>SmartTaskBot</b> ✨\nGentle planning, made for your mood.\n\n%s\n\n%s\n\n%s\n\n%s",
		b.reminders.Greeting(user.DisplayName(), b.localNow(user)),
		escape(b.reminders.Quote()),
		escape(b.reminders.Reminder()),
		helpText,
	)
}

// localNow is the bot clock in the user's timezone.
func (b *Bot) localNow(user *model.User) time.Time {
	return b.clock().In(b.profiles.Location(user))
}

func (b *Bot) handleName(ctx context.Context, chatID int64, user *model.User, args string) error {
	if err := b.profiles.SetName(ctx, user, args); err != nil {
		if errors.Is(err, service.ErrEmptyName) {
			return b.sendText(chatID, "Tell me your name like this: /name Anicka")
		}
		return err
	}
	b.log.Infof("name set user=%d", user.TelegramID)
	return b.sendText(chatID, fmt.Sprintf("Nice to meet you, <b>%s</b>!", escape(planner.TitleName(user.Name))))
}

func (b *Bot) handleTimezone(ctx context.Context, chatID int64, user *model.User, args string) error {
	if args == "" {
		now := b.localNow(user)
		return b.sendText(chatID, fmt.Sprintf("Your timezone is <b>%s</b> (%s). Change it with /tz Europe/Prague", escape(now.Location().String()), now.Format("03:04 PM")))
	}
	loc, err := b.profiles.SetTimezone(ctx, user, args)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimezone) {
			return b.sendText(chatID, "I don't know that timezone. Use a name like <code>Asia/Kolkata</code>.")
		}
		return err
	}
	return b.sendText(chatID, fmt.Sprintf("Timezone set. It is %s for you now.", b.clock().In(loc).Format("Monday, 03:04 PM")))
}

func (b *Bot) handleMood(ctx context.Context, chatID int64, user *model.User, args string) error {
	if args == "" {
		current := b.profiles.Mood(user)
		return b.sendWithReplyMarkup(chatID, fmt.Sprintf("How are you feeling today? (now: %s)", moodLabel(current)), moodKeyboard())
	}
	return b.setMood(ctx, chatID, user, args)
}

func (b *Bot) setMood(ctx context.Context, chatID int64, user *model.User, raw string) error {
	mood, err := b.profiles.SetMood(ctx, user, raw)
	if err != nil {
		if errors.Is(err, planner.ErrUnknownMood) {
			return b.sendText(chatID, "Mood must be one of: Energetic, Neutral, Tired.")
		}
		return err
	}
	b.log.Infof("mood set user=%d mood=%s", user.TelegramID, mood)
	return b.sendText(chatID, fmt.Sprintf("Mood set to %s. Try /plan.", moodLabel(mood)))
}

func (b *Bot) handleDraft(msg *tgbotapi.Message, user *model.User) error {
	parsed := planner.ParseTasks(msg.Text)
	if len(parsed) == 0 {
		return b.sendText(msg.Chat.ID, "Please enter tasks first. Tip: separate them with commas, semicolons or new lines.")
	}
	b.drafts.Add(user.TelegramID, msg.Text)
	return b.sendWithReplyMarkup(msg.Chat.ID, formatDraft(parsed), draftKeyboard())
}

func (b *Bot) addTasks(ctx context.Context, chatID int64, user *model.User, raw string) error {
	res, err := b.tasks.AddTasks(ctx, service.UserKey(*user), raw)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not save tasks: %s", escape(err.Error())))
	}
	switch {
	case res.Parsed == 0:
		return b.sendText(chatID, "Please enter tasks first.")
	case len(res.Added) == 0:
		return b.sendText(chatID, "No new tasks to add.")
	}
	b.log.Infof("tasks added user=%d added=%d skipped=%d", user.TelegramID, len(res.Added), len(res.Skipped))
	b.drafts.Remove(user.TelegramID)
	return b.sendText(chatID, formatAddResult(res))
}

// planDay plans raw when given, otherwise the saved tasks.
func (b *Bot) planDay(ctx context.Context, chatID int64, user *model.User, raw string) error {
	mood := b.profiles.Mood(user)
	loc := b.profiles.Location(user)

	var plan []planner.ScheduleEntry
	if len(planner.ParseTasks(raw)) > 0 {
		plan = b.plans.PlanDraft(raw, mood, loc)
	} else {
		tasks, err := b.tasks.List(ctx, service.UserKey(*user))
		if err != nil {
			return b.sendText(chatID, fmt.Sprintf("Could not load tasks: %s", escape(err.Error())))
		}
		if len(tasks) == 0 {
			return b.sendText(chatID, "No tasks found. Please enter or save tasks first.")
		}
		plan, err = b.plans.PlanDay(ctx, service.UserKey(*user), mood, loc)
		if err != nil {
			return b.sendText(chatID, fmt.Sprintf("Could not build a plan: %s", escape(err.Error())))
		}
	}

	if !service.HasTaskEntries(plan) {
		return b.sendText(chatID, fmt.Sprintf("No tasks matched your current mood energy level (%s).", moodLabel(mood)))
	}
	b.log.Infof("plan built user=%d mood=%s entries=%d", user.TelegramID, mood, len(plan))
	return b.sendText(chatID, service.RenderPlan(plan))
}

func (b *Bot) prioritize(ctx context.Context, chatID int64, user *model.User, raw string) error {
	mood := b.profiles.Mood(user)

	var ranked []planner.ScoredTask
	if len(planner.ParseTasks(raw)) > 0 {
		ranked = b.plans.PrioritizeDraft(raw, mood)
	} else {
		var err error
		ranked, err = b.plans.Prioritize(ctx, service.UserKey(*user), mood)
		if err != nil {
			return b.sendText(chatID, fmt.Sprintf("Could not rank tasks: %s", escape(err.Error())))
		}
	}

	if len(ranked) == 0 {
		return b.sendText(chatID, fmt.Sprintf("No tasks matched your current mood energy level (%s).", moodLabel(mood)))
	}
	return b.sendText(chatID, service.RenderRanking(ranked))
}

func (b *Bot) handleSuggest(ctx context.Context, chatID int64, user *model.User) error {
	suggestions, err := b.plans.Suggestions(ctx, service.UserKey(*user), user.Name)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not load tasks: %s", escape(err.Error())))
	}
	if len(suggestions) == 0 {
		return b.sendText(chatID, "💡 No helpers for your saved tasks yet. Emails, calls, meetings, study, groceries and cleaning get one.")
	}
	return b.sendText(chatID, formatSuggestions(suggestions))
}

func (b *Bot) sendTaskList(ctx context.Context, chatID int64, user *model.User) error {
	tasks, err := b.tasks.List(ctx, service.UserKey(*user))
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not load tasks: %s", escape(err.Error())))
	}
	if len(tasks) == 0 {
		return b.sendText(chatID, "💡 To mark tasks as done or see suggestions, please add tasks to your day.")
	}
	msg := tgbotapi.NewMessage(chatID, taskListHeader)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = taskListKeyboard(tasks)
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Warnf("callback ack: %v", err)
	}
	if !b.limiter.Allow(cb.From.ID) {
		return nil
	}

	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return err
	}
	chatID := cb.Message.Chat.ID
	data := cb.Data
	b.log.Debugf("callback user=%d data=%s", cb.From.ID, data)

	switch {
	case strings.HasPrefix(data, cbMoodPrefix):
		return b.setMood(ctx, chatID, user, strings.TrimPrefix(data, cbMoodPrefix))
	case strings.HasPrefix(data, cbTogglePrefix):
		taskID, err := parseTaskID(data, cbTogglePrefix)
		if err != nil {
			return nil
		}
		return b.toggleTask(ctx, cb.Message, user, taskID)
	case data == cbClearYes:
		return b.clearTasks(ctx, chatID, user)
	case data == cbClearNo:
		b.confirmations.Remove(user.TelegramID)
		return b.sendText(chatID, "Nothing was deleted.")
	case data == cbDraftPlan, data == cbDraftAdd, data == cbDraftRank:
		raw, ok := b.drafts.Get(user.TelegramID)
		if !ok {
			return b.sendText(chatID, "That list expired. Send your tasks again.")
		}
		switch data {
		case cbDraftPlan:
			return b.planDay(ctx, chatID, user, raw)
		case cbDraftAdd:
			return b.addTasks(ctx, chatID, user, raw)
		default:
			return b.prioritize(ctx, chatID, user, raw)
		}
	default:
		return nil
	}
}

func (b *Bot) toggleTask(ctx context.Context, message *tgbotapi.Message, user *model.User, taskID uint) error {
	chatID := message.Chat.ID
	task, err := b.tasks.Toggle(ctx, service.UserKey(*user), taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b.sendText(chatID, "Task not found.")
		}
		return b.sendText(chatID, fmt.Sprintf("Error: %s", escape(err.Error())))
	}
	b.log.Infof("task toggled id=%d user=%d done=%t", task.ID, user.TelegramID, task.Done)

	tasks, err := b.tasks.List(ctx, service.UserKey(*user))
	if err != nil {
		return err
	}
	if len(tasks) > 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, message.MessageID, taskListHeader, taskListKeyboard(tasks))
		edit.ParseMode = tgbotapi.ModeHTML
		if _, err := b.api.Send(edit); err != nil {
			b.log.Warnf("refresh task list: %v", err)
		}
	}

	if task.Done {
		return b.sendText(chatID, "🎉 Great job! You completed a task!")
	}
	return nil
}

func (b *Bot) clearTasks(ctx context.Context, chatID int64, user *model.User) error {
	if _, ok := b.confirmations.Get(user.TelegramID); !ok {
		return b.sendText(chatID, "This confirmation expired. Send /clear again.")
	}
	b.confirmations.Remove(user.TelegramID)

	removed, err := b.tasks.ClearAll(ctx, service.UserKey(*user))
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not clear tasks: %s", escape(err.Error())))
	}
	b.log.Infof("tasks cleared user=%d removed=%d", user.TelegramID, removed)
	return b.sendText(chatID, "🧹 Your saved tasks have been cleared.")
}

// SendReminders sends a wellbeing nudge to every known user.
func (b *Bot) SendReminders(ctx context.Context) error {
	return b.eachUser(ctx, func(user model.User) (string, error) {
		return b.reminders.Reminder(), nil
	})
}

// SendMorningDigests sends today's plan to every user whose local time has
// just reached at. It is meant to run once per service.DigestTick.
func (b *Bot) SendMorningDigests(ctx context.Context, at service.DailyTime) error {
	return b.eachUser(ctx, func(user model.User) (string, error) {
		if !b.reminders.DigestDue(user, at) {
			return "", nil
		}
		return b.reminders.MorningDigest(ctx, user)
	})
}

func (b *Bot) eachUser(ctx context.Context, build func(model.User) (string, error)) error {
	users, err := b.profiles.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		text, err := build(user)
		if err != nil {
			b.log.Errorf("build message for user %d: %v", user.TelegramID, err)
			continue
		}
		if text == "" {
			continue
		}
		if err := b.broadcast.Wait(ctx); err != nil {
			return err
		}
		if err := b.sendText(user.TelegramID, text); err != nil {
			b.log.Errorf("send to %d: %v", user.TelegramID, err)
		}
	}
	return nil
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	return b.profiles.Ensure(ctx, from.ID, from.FirstName, from.UserName)
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func parseTaskID(data, prefix string) (uint, error) {
	raw := strings.TrimPrefix(data, prefix)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
