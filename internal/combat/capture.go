package combat

import (
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
)

const (
	MinCatchChance = 0.01
	MaxCatchChance = 0.95
	// CatchHPFactor scales the max/current HP ratio.
	CatchHPFactor = 2.5
	// CaptureShakes is the number of attempts per thrown ball.
	CaptureShakes = 3
	// DefaultBaseCatchRate applies when an encounter has no rate of its own.
	DefaultBaseCatchRate = 0.2
)

// StatusBonus returns the catch multiplier for a status condition.
func StatusBonus(s gamedata.StatusCondition) float64 {
	switch s {
	case gamedata.StatusSleep, gamedata.StatusParalysis:
		return 1.5
	case gamedata.StatusPoison, gamedata.StatusBurn:
		return 1.2
	default:
		return 1
	}
}

// CatchChance returns the per-shake success chance against enemy, clamped
// to [MinCatchChance, MaxCatchChance].
func CatchChance(enemy *entity.Combatant, speciesBonus, ballModifier float64) float64 {
	base := DefaultBaseCatchRate
	if enemy.Encounter != nil && enemy.Encounter.BaseCatchRate > 0 {
		base = enemy.Encounter.BaseCatchRate
	}
	hp := enemy.CurrentHP
	if hp < 1 {
		hp = 1
	}
	if ballModifier <= 0 {
		ballModifier = 1
	}
	if speciesBonus <= 0 {
		speciesBonus = 1
	}
	raw := base * (float64(enemy.MaxHP()) / float64(hp)) * CatchHPFactor * StatusBonus(enemy.Status) * ballModifier
	chance := raw * speciesBonus
	if chance < MinCatchChance {
		return MinCatchChance
	}
	if chance > MaxCatchChance {
		return MaxCatchChance
	}
	return chance
}

// Shake is one attempt within a capture sequence.
type Shake struct {
	Attempt int     `json:"attempt"`
	Draw    float64 `json:"draw"`
	Caught  bool    `json:"caught"`
}

// CaptureResult is the outcome of a full capture sequence.
type CaptureResult struct {
	Chance float64
	Shakes []Shake
	Caught bool
}

// CaptureSimulator runs capture sequences.
type CaptureSimulator struct {
	rng Source
}

// NewCaptureSimulator creates a simulator.
func NewCaptureSimulator(rng Source) *CaptureSimulator {
	return &CaptureSimulator{rng: rng}
}

// Attempt runs up to CaptureShakes attempts and stops at the first success.
func (s *CaptureSimulator) Attempt(enemy *entity.Combatant, speciesBonus, ballModifier float64) CaptureResult {
	res := CaptureResult{Chance: CatchChance(enemy, speciesBonus, ballModifier)}
	for i := 1; i <= CaptureShakes; i++ {
		draw := s.rng.Float64()
		caught := draw <= res.Chance
		res.Shakes = append(res.Shakes, Shake{Attempt: i, Draw: draw, Caught: caught})
		if caught {
			res.Caught = true
			break
		}
	}
	return res
}
