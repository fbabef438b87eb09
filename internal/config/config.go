// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/critterquest/internal/game"
)

// Config is the process configuration shared by both binaries.
type Config struct {
	Seed             int64         `env:"CRITTERQUEST_SEED"`
	StartArea        string        `env:"CRITTERQUEST_START_AREA"`
	StarterSpecies   string        `env:"CRITTERQUEST_STARTER"           envDefault:"pikachu"`
	StarterLevel     int           `env:"CRITTERQUEST_STARTER_LEVEL"     envDefault:"5"`
	RosterCapacity   int           `env:"CRITTERQUEST_ROSTER_CAPACITY"`
	FleeChance       float64       `env:"CRITTERQUEST_FLEE_CHANCE"       envDefault:"0.6"`
	PacingDelay      time.Duration `env:"CRITTERQUEST_PACING_DELAY"      envDefault:"1s"`
	ShakeDelay       time.Duration `env:"CRITTERQUEST_SHAKE_DELAY"       envDefault:"800ms"`
	EvolutionDelay   time.Duration `env:"CRITTERQUEST_EVOLUTION_DELAY"   envDefault:"2500ms"`
	TickInterval     time.Duration `env:"CRITTERQUEST_TICK_INTERVAL"     envDefault:"1s"`
	AutoSaveInterval time.Duration `env:"CRITTERQUEST_AUTOSAVE_INTERVAL" envDefault:"30s"`
	StorageDriver    string        `env:"CRITTERQUEST_STORAGE_DRIVER"    envDefault:"sqlite"`
	StoragePath      string        `env:"CRITTERQUEST_STORAGE_PATH"      envDefault:"critterquest.db"`
	SaveSlot         string        `env:"CRITTERQUEST_SAVE_SLOT"`
	ListenAddr       string        `env:"CRITTERQUEST_LISTEN_ADDR"       envDefault:":8080"`
	TelemetryEnabled bool          `env:"TELEMETRY_ENABLED"`
	TelemetrySample  float64       `env:"TELEMETRY_SAMPLE_RATIO"         envDefault:"1"`
}

// Load parses the environment into a Config.
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

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.FleeChance < 0 || c.FleeChance > 1 {
		return fmt.Errorf("flee chance %v out of range [0, 1]", c.FleeChance)
	}
	if c.StarterLevel < 1 {
		return fmt.Errorf("starter level must be at least 1, got %d", c.StarterLevel)
	}
	if c.RosterCapacity < 0 {
		return fmt.Errorf("roster capacity must not be negative, got %d", c.RosterCapacity)
	}
	for name, d := range map[string]time.Duration{
		"pacing delay":    c.PacingDelay,
		"shake delay":     c.ShakeDelay,
		"evolution delay": c.EvolutionDelay,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %v", name, d)
		}
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", c.TickInterval)
	}
	return nil
}

// Game returns the engine tuning.
func (c Config) Game() game.Config {
	cfg := game.DefaultConfig()
	cfg.Seed = c.Seed
	cfg.FleeChance = c.FleeChance
	cfg.PacingDelay = c.PacingDelay
	cfg.ShakeDelay = c.ShakeDelay
	cfg.EvolutionDelay = c.EvolutionDelay
	cfg.RosterCapacity = c.RosterCapacity
	cfg.StartArea = c.StartArea
	if c.StarterSpecies != "" {
		cfg.StarterSpecies = c.StarterSpecies
	}
	if c.StarterLevel > 0 {
		cfg.StarterLevel = c.StarterLevel
	}
	return cfg
}
