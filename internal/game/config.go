package game

import (
	"math/rand"
	"time"
)

// Config holds engine tuning options.
type Config struct {
	// Seed for random number generation. Used for reproducible battles.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// FleeChance is the probability an escape attempt succeeds.
	FleeChance float64

	// PacingDelay separates the player's action from the enemy's reply.
	PacingDelay time.Duration
	// ShakeDelay is the time per capture shake before a failed capture
	// hands the turn to the enemy.
	ShakeDelay time.Duration
	// EvolutionDelay is how long an evolution takes to resolve.
	EvolutionDelay time.Duration

	// RosterCapacity limits owned creatures. Zero means unlimited.
	RosterCapacity int

	StarterSpecies string
	StarterLevel   int
	// StartArea defaults to the first area when empty.
	StartArea string
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		FleeChance:     0.6,
		PacingDelay:    time.Second,
		ShakeDelay:     800 * time.Millisecond,
		EvolutionDelay: 2500 * time.Millisecond,
		StarterSpecies: "pikachu",
		StarterLevel:   5,
	}
}

// StartingInventory is given to every new session.
var StartingInventory = map[string]int{
	"poke-ball": 10,
	"potion":    5,
}

// NewRand returns the random source for cfg.Seed. A zero seed draws from the
// current time.
func (c Config) NewRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
