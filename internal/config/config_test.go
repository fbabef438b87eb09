package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StarterSpecies != "pikachu" {
		t.Errorf("StarterSpecies = %q, want pikachu", cfg.StarterSpecies)
	}
	if cfg.FleeChance != 0.6 {
		t.Errorf("FleeChance = %v, want 0.6", cfg.FleeChance)
	}
	if cfg.PacingDelay != time.Second || cfg.ShakeDelay != 800*time.Millisecond || cfg.EvolutionDelay != 2500*time.Millisecond {
		t.Errorf("delays = %v/%v/%v", cfg.PacingDelay, cfg.ShakeDelay, cfg.EvolutionDelay)
	}
	if cfg.StorageDriver != "sqlite" || cfg.StoragePath != "critterquest.db" {
		t.Errorf("storage = %s %s", cfg.StorageDriver, cfg.StoragePath)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.TelemetryEnabled {
		t.Error("telemetry should be off by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CRITTERQUEST_SEED", "42")
	t.Setenv("CRITTERQUEST_STARTER", "charmander")
	t.Setenv("CRITTERQUEST_PACING_DELAY", "0s")
	t.Setenv("CRITTERQUEST_STORAGE_DRIVER", "bolt")
	t.Setenv("TELEMETRY_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed != 42 || cfg.StarterSpecies != "charmander" || cfg.PacingDelay != 0 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.StorageDriver != "bolt" || !cfg.TelemetryEnabled {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	g := cfg.Game()
	if g.Seed != 42 || g.StarterSpecies != "charmander" || g.StarterLevel != 5 {
		t.Errorf("Game() = %+v", g)
	}
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("CRITTERQUEST_SEED", "not-an-int")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := Config{FleeChance: 0.5, StarterLevel: 5, TickInterval: time.Second}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"flee chance above one", func(c *Config) { c.FleeChance = 1.5 }, false},
		{"starter level zero", func(c *Config) { c.StarterLevel = 0 }, false},
		{"negative roster", func(c *Config) { c.RosterCapacity = -1 }, false},
		{"negative delay", func(c *Config) { c.ShakeDelay = -time.Second }, false},
		{"zero tick", func(c *Config) { c.TickInterval = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
