package combat

import (
	"math"

	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
)

const (
	CriticalChance     = 0.0625
	CriticalMultiplier = 1.5
	SameTypeBonus      = 1.5
	// DamageVariance is the +/- spread applied to every hit.
	DamageVariance = 0.15
	// BurnAttackModifier halves physical attack while burned.
	BurnAttackModifier = 0.5
)

// DamageResult is the outcome of one damage calculation.
type DamageResult struct {
	Damage        int
	Critical      bool
	Effectiveness float64
	// Blocked is set when an ability cancelled the hit outright.
	Blocked bool
}

// Calculator computes move damage.
type Calculator struct {
	chart     gamedata.TypeChart
	abilities *AbilityRegistry
	rng       Source
}

// NewCalculator creates a damage calculator.
func NewCalculator(chart gamedata.TypeChart, abilities *AbilityRegistry, rng Source) *Calculator {
	return &Calculator{chart: chart, abilities: abilities, rng: rng}
}

// Calculate returns the damage move would deal from attacker to defender.
// It does not apply the damage. Effectiveness messages go to log, which may
// be nil.
func (c *Calculator) Calculate(attacker, defender *entity.Combatant, move *gamedata.MoveDef, log *Log) DamageResult {
	result := DamageResult{Effectiveness: 1}
	if move.IsStatus() || move.Power == nil {
		return result
	}

	if attacker != defender {
		h := &HookContext{Self: defender, Opponent: attacker, Move: move, Log: log, RNG: c.rng}
		if c.abilities.DamageReceived(h) {
			result.Blocked = true
			return result
		}
	}

	atkStat, defStat := gamedata.StatAttack, gamedata.StatDefense
	if move.Category == gamedata.CategorySpecial {
		atkStat, defStat = gamedata.StatSpecialAttack, gamedata.StatSpecialDefense
	}

	effAtk := float64(attacker.Stats.Get(atkStat)) * StageMultiplier(attacker.Stages.Get(atkStat))
	if move.Category == gamedata.CategoryPhysical && attacker.Status == gamedata.StatusBurn {
		effAtk *= BurnAttackModifier
	}
	effDef := float64(defender.Stats.Get(defStat)) * StageMultiplier(defender.Stages.Get(defStat))
	atk := math.Max(1, math.Floor(effAtk))
	def := math.Max(1, math.Floor(effDef))

	power := c.abilities.ModifyPower(&HookContext{
		Self: attacker, Opponent: defender, Move: move, Log: log, RNG: c.rng,
	}, move.BasePower())

	level := float64(attacker.Level)
	damage := math.Floor(((level*2/5+2)*float64(power)*atk/def)/50 + 2)

	if attacker.HasType(move.Type) {
		damage = math.Floor(damage * SameTypeBonus)
	}

	mult := c.chart.Multiplier(move.Type, defender.Types)
	result.Effectiveness = mult
	switch {
	case mult == 0:
		log.Add(CategoryInfo, "It has no effect on %s...", DisplayName(defender))
	case mult > 1:
		log.Add(CategoryInfo, "It's super effective!")
	case mult < 1:
		log.Add(CategoryInfo, "It's not very effective...")
	}
	damage = math.Floor(damage * mult)

	if c.rng.Float64() < CriticalChance {
		result.Critical = true
		damage = math.Floor(damage * CriticalMultiplier)
		log.Add(CategoryInfo, "A critical hit!")
	}

	damage = math.Floor(damage * (1 + (c.rng.Float64()*2-1)*DamageVariance))

	if mult == 0 {
		return result
	}
	result.Damage = int(math.Max(1, damage))
	return result
}
