package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config keeps runtime settings for the bot.
type Config struct {
	TelegramToken    string
	DatabaseURL      string
	DefaultTimezone  string
	ReminderInterval time.Duration
	DigestTime       string
	RateLimitPerMin  int
	Logger           LoggerConfig
}

type LoggerConfig struct {
	Level    string
	Mode     string
	Encoding string
}

// Load reads config.yaml (if any) and environment variables with sane defaults.
// Environment variables win over the file.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		TelegramToken:    strings.TrimSpace(v.GetString("TELEGRAM_TOKEN")),
		DatabaseURL:      strings.TrimSpace(v.GetString("DATABASE_URL")),
		DefaultTimezone:  strings.TrimSpace(v.GetString("DEFAULT_TIMEZONE")),
		ReminderInterval: parseMinutes(v.GetInt("REMINDER_INTERVAL_MINUTES")),
		DigestTime:       strings.TrimSpace(v.GetString("DIGEST_TIME")),
		RateLimitPerMin:  v.GetInt("RATE_LIMIT_PER_MIN"),
		Logger: LoggerConfig{
			Level:    v.GetString("LOG_LEVEL"),
			Mode:     v.GetString("LOG_MODE"),
			Encoding: v.GetString("LOG_ENCODING"),
		},
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "smart_tasks.db"
	}
	if cfg.DefaultTimezone == "" {
		cfg.DefaultTimezone = "Asia/Kolkata"
	}
	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		return cfg, fmt.Errorf("DEFAULT_TIMEZONE %q: %w", cfg.DefaultTimezone, err)
	}
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = 30
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_URL", "smart_tasks.db")
	v.SetDefault("DEFAULT_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("REMINDER_INTERVAL_MINUTES", 60)
	v.SetDefault("DIGEST_TIME", "08:00")
	v.SetDefault("RATE_LIMIT_PER_MIN", 30)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_MODE", "production")
	v.SetDefault("LOG_ENCODING", "console")
}

func parseMinutes(minutes int) time.Duration {
	if minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}
