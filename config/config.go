package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read once at startup. Every knob has
// a default that works for local development against a level service on
// port 9090; analytics stays disabled until ANALYTICS_URL is set.
type Config struct {
	// HTTP server
	Port string `env:"PORT" envDefault:"8080"`

	// Level service
	LevelAPIURL  string        `env:"LEVEL_API_URL" envDefault:"http://localhost:9090"`
	LevelTimeout time.Duration `env:"LEVEL_FETCH_TIMEOUT" envDefault:"10s"`
	LevelCache   bool          `env:"LEVEL_CACHE" envDefault:"true"`

	// Game
	PlayerID    string `env:"PLAYER_ID" envDefault:"anonymous"`
	TotalStages int    `env:"TOTAL_STAGES" envDefault:"10"`

	// Analytics collector. Empty URL disables delivery.
	AnalyticsURL       string        `env:"ANALYTICS_URL"`
	AnalyticsQueueSize int           `env:"ANALYTICS_QUEUE_SIZE" envDefault:"64"`
	AnalyticsTimeout   time.Duration `env:"ANALYTICS_TIMEOUT" envDefault:"5s"`

	// Session expiry
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`

	// SnapshotTick spaces periodic websocket snapshots while a stage is in
	// play. Zero disables them.
	SnapshotTick time.Duration `env:"SNAPSHOT_TICK" envDefault:"1s"`

	// Ngrok tunnel for exposing the server publicly
	NgrokEnabled bool `env:"NGROK_ENABLED" envDefault:"false"`
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.LevelAPIURL == "" {
		return fmt.Errorf("LEVEL_API_URL must not be empty")
	}
	if c.LevelTimeout <= 0 {
		return fmt.Errorf("LEVEL_FETCH_TIMEOUT must be positive, got %s", c.LevelTimeout)
	}
	if c.TotalStages < 1 {
		return fmt.Errorf("TOTAL_STAGES must be at least 1, got %d", c.TotalStages)
	}
	if c.AnalyticsQueueSize < 1 {
		return fmt.Errorf("ANALYTICS_QUEUE_SIZE must be at least 1, got %d", c.AnalyticsQueueSize)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive, got %s", c.CleanupInterval)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
