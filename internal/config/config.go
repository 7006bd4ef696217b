package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/matchday.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR"`

	// RedisURL enables cross-instance event relay when set.
	RedisURL    string   `env:"REDIS_URL"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// LiveMinutesPerSecond drives the server-side live match clock.
	// Zero leaves ticking to clients.
	LiveMinutesPerSecond float64 `env:"LIVE_MINUTES_PER_SECOND" envDefault:"1"`
	AutosaveIntervalDays int     `env:"AUTOSAVE_INTERVAL_DAYS" envDefault:"7"`
	SimSeed              uint64  `env:"SIM_SEED" envDefault:"0"`
	DemoSlot             string  `env:"DEMO_SLOT" envDefault:"demo"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.LiveMinutesPerSecond < 0 {
		return nil, fmt.Errorf("LIVE_MINUTES_PER_SECOND must not be negative, got %v", cfg.LiveMinutesPerSecond)
	}
	if cfg.AutosaveIntervalDays < 0 {
		return nil, fmt.Errorf("AUTOSAVE_INTERVAL_DAYS must not be negative, got %d", cfg.AutosaveIntervalDays)
	}
	return &cfg, nil
}
