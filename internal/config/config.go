package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken     string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	DatabaseURL  string `envconfig:"DATABASE_URL" default:"./data/countdown.db"` // SQLite path or postgres:// DSN
	DefaultTZ    string `envconfig:"TIMEZONE" default:"UTC"`                     // IANA name for new countdowns
	ReminderTime string `envconfig:"DAILY_REMINDER_TIME" default:"09:00"`        // HH:MM in the default timezone
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`                   // debug|info|warn|error
	HTTPAddr     string `envconfig:"HTTP_ADDR" default:":8080"`                  // healthz
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
