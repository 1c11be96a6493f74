package service

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService wraps cron-based jobs: wellbeing reminders and the morning digest.
type SchedulerService struct {
	cron *cron.Cron
}

// NewSchedulerService runs jobs in loc. Panicking jobs are recovered and
// logged to logger; a job still running when its next tick fires is skipped.
func NewSchedulerService(loc *time.Location, logger *log.Logger) *SchedulerService {
	cronLogger := cron.PrintfLogger(logger)
	return &SchedulerService{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
	}
}

// ScheduleAligned registers a job on a wall-clock grid: step must be a whole
// number of minutes under an hour that divides it, so a 15m step fires at :00, :15,
// :30 and :45.
func (s *SchedulerService) ScheduleAligned(step time.Duration, job func()) (cron.EntryID, error) {
	spec, err := alignedSpec(step)
	if err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, job)
}

// ScheduleInterval registers a periodic job every given duration.
func (s *SchedulerService) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval < time.Minute {
		return 0, fmt.Errorf("interval must be at least a minute, got %s", interval)
	}
	return s.cron.Schedule(cron.Every(interval), cron.FuncJob(job)), nil
}

// Next reports when the job runs next; zero before Start.
func (s *SchedulerService) Next(id cron.EntryID) time.Time {
	return s.cron.Entry(id).Next
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func alignedSpec(step time.Duration) (string, error) {
	if step < time.Minute || step >= time.Hour || step%time.Minute != 0 || time.Hour%step != 0 {
		return "", fmt.Errorf("step %s must be whole minutes dividing an hour", step)
	}
	// cron format: minute hour dom month dow
	return fmt.Sprintf("*/%d * * * *", int(step/time.Minute)), nil
}

// DailyTime is a wall-clock time of day.
type DailyTime struct {
	Hour   int
	Minute int
}

// ParseDailyTime reads "HH:MM".
func ParseDailyTime(timeStr string) (DailyTime, error) {
	parts := strings.Split(strings.TrimSpace(timeStr), ":")
	if len(parts) != 2 {
		return DailyTime{}, fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return DailyTime{}, fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return DailyTime{}, fmt.Errorf("invalid minute in %q", timeStr)
	}
	return DailyTime{Hour: hour, Minute: minute}, nil
}

// On returns the time of day on now's date in now's location.
func (d DailyTime) On(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), d.Hour, d.Minute, 0, 0, now.Location())
}

func (d DailyTime) String() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}
