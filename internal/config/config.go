package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	DBPath         string `env:"DB_PATH" envDefault:"data/selene.db"`
	SecretKey      string `env:"SECRET_KEY" envDefault:"change_me_in_production"`
	TZ             string `env:"TZ" envDefault:"UTC"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	Environment    string `env:"ENVIRONMENT" envDefault:"development"`
	ResyncSchedule string `env:"CALENDAR_RESYNC_CRON" envDefault:"0 3 * * *"`
}

// Load reads configuration from the environment, with an optional .env file
// that never overrides variables already set.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
