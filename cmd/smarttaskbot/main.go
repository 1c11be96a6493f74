package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"smart-task-planner/internal/bot"
	"smart-task-planner/internal/config"
	"smart-task-planner/internal/logging"
	"smart-task-planner/internal/repository"
	"smart-task-planner/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Logger)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := repository.NewDB(cfg.DatabaseURL, logging.StdLogger(logger.Named("gorm")))
	if err != nil {
		logger.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	profileSvc := service.NewProfileService(userRepo, cfg.DefaultTimezone)
	taskSvc := service.NewTaskService(taskRepo, service.SystemClock)
	planSvc := service.NewPlanService(taskRepo, service.SystemClock)
	reminderSvc := service.NewReminderService(planSvc, profileSvc)

	telegramBot, err := bot.New(cfg.TelegramToken, bot.Services{
		Profiles:  profileSvc,
		Tasks:     taskSvc,
		Plans:     planSvc,
		Reminders: reminderSvc,
		Clock:     service.SystemClock,
	}, cfg.RateLimitPerMin, logger.Named("bot"))
	if err != nil {
		logger.Fatalf("bot: %v", err)
	}

	loc, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		logger.Fatalf("timezone: %v", err)
	}
	scheduler := service.NewSchedulerService(loc, logging.StdLogger(logger.Named("cron")))

	if cfg.ReminderInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.ReminderInterval, runJob(logger, "reminders", 30*time.Second, telegramBot.SendReminders)); err != nil {
			logger.Fatalf("schedule reminders: %v", err)
		}
	}
	var digestID cron.EntryID
	if cfg.DigestTime != "" {
		at, err := service.ParseDailyTime(cfg.DigestTime)
		if err != nil {
			logger.Fatalf("digest time: %v", err)
		}
		sendDigests := func(ctx context.Context) error {
			return telegramBot.SendMorningDigests(ctx, at)
		}
		digestID, err = scheduler.ScheduleAligned(service.DigestTick, runJob(logger, "digest", 2*time.Minute, sendDigests))
		if err != nil {
			logger.Fatalf("schedule digest: %v", err)
		}
		logger.Infof("morning digest at %s in each user's timezone", at)
	}
	scheduler.Start()
	defer scheduler.Stop()
	if digestID != 0 {
		logger.Debugf("digest check next runs %s", scheduler.Next(digestID).Format(time.RFC1123))
	}

	logger.Info("SmartTaskBot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("bot stopped with error: %v", err)
		return
	}
	logger.Info("Shutdown complete.")
}

func runJob(logger *zap.SugaredLogger, name string, timeout time.Duration, job func(context.Context) error) func() {
	return func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := job(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorf("%s: %v", name, err)
		}
	}
}
