package combat

import (
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
)

const (
	// StatusDamageDivisor sets poison and burn damage to max HP / 16.
	StatusDamageDivisor    = 16
	ParalysisSkipChance    = 0.25
	ConfusionSelfHitChance = 0.33
	ConfusionSelfHitPower  = 40

	MinSleepTurns     = 1
	MaxSleepTurns     = 3
	MinConfusionTurns = 2
	MaxConfusionTurns = 5
)

// TurnCheck is the result of start-of-turn processing.
type TurnCheck struct {
	CanAct     bool
	SelfDamage int
}

// StatusProcessor applies and ticks status conditions and stat stages.
type StatusProcessor struct {
	rng     Source
	calc    *Calculator
	selfHit gamedata.MoveDef
}

// NewStatusProcessor creates a processor. calc is used for confusion
// self-hits.
func NewStatusProcessor(rng Source, calc *Calculator) *StatusProcessor {
	power := ConfusionSelfHitPower
	return &StatusProcessor{
		rng:  rng,
		calc: calc,
		selfHit: gamedata.MoveDef{
			ID:       "confusion-self-hit",
			Name:     "Confusion",
			Type:     gamedata.TypeNormal,
			Category: gamedata.CategoryPhysical,
			Power:    &power,
		},
	}
}

// StartOfTurn ticks confusion, sleep and paralysis for the creature about
// to act and reports whether it may use its move.
func (p *StatusProcessor) StartOfTurn(c *entity.Combatant, log *Log) TurnCheck {
	name := DisplayName(c)

	if c.IsConfused() {
		c.ConfusionTurns--
		if c.ConfusionTurns == 0 {
			log.Add(CategoryStatusCured, "%s snapped out of its confusion!", name)
		} else {
			log.Add(CategoryStatusEffect, "%s is confused!", name)
			if Roll(p.rng, ConfusionSelfHitChance) {
				// The self-hit is computed quietly; only the result is logged.
				dmg := p.calc.Calculate(c, c, &p.selfHit, nil).Damage
				dealt := c.TakeDamage(dmg)
				log.Add(damageCategory(c.Side), "It hurt itself in its confusion! (%d damage)", dealt)
				if c.IsFainted() {
					log.Add(faintCategory(c.Side), "%s fainted!", name)
				}
				return TurnCheck{SelfDamage: dealt}
			}
		}
	}

	switch c.Status {
	case gamedata.StatusSleep:
		if c.StatusTurns > 0 {
			c.StatusTurns--
		}
		if c.StatusTurns <= 0 {
			c.ClearStatus()
			log.Add(CategoryStatusCured, "%s woke up!", name)
		} else {
			log.Add(CategoryStatusEffect, "%s is fast asleep.", name)
		}
		return TurnCheck{}
	case gamedata.StatusParalysis:
		if Roll(p.rng, ParalysisSkipChance) {
			log.Add(CategoryStatusEffect, "%s is fully paralyzed! It can't move!", name)
			return TurnCheck{}
		}
	}
	return TurnCheck{CanAct: true}
}

// EndOfTurn applies poison or burn damage and returns the HP lost.
func (p *StatusProcessor) EndOfTurn(c *entity.Combatant, log *Log) int {
	if c.IsFainted() {
		return 0
	}
	var verb string
	switch c.Status {
	case gamedata.StatusPoison:
		verb = "poison"
	case gamedata.StatusBurn:
		verb = "burn"
	default:
		return 0
	}
	dmg := c.MaxHP() / StatusDamageDivisor
	if dmg < 1 {
		dmg = 1
	}
	dealt := c.TakeDamage(dmg)
	log.Add(CategoryStatusEffect, "%s is hurt by its %s! (%d damage)", DisplayName(c), verb, dealt)
	if c.IsFainted() {
		log.Add(faintCategory(c.Side), "%s fainted!", DisplayName(c))
	}
	return dealt
}

// ApplyStatus rolls effect.Chance and inflicts the condition on target.
// A major status fails if one is already set; confusion fails if the target
// is already confused.
func (p *StatusProcessor) ApplyStatus(target *entity.Combatant, effect gamedata.StatusEffect, log *Log) bool {
	if effect.Condition == "" || effect.Condition == gamedata.StatusNone || target.IsFainted() {
		return false
	}
	if !Roll(p.rng, effect.Chance) {
		return false
	}
	name := DisplayName(target)

	if effect.Condition == gamedata.StatusConfusion {
		if target.IsConfused() {
			log.Add(CategoryInfo, "%s is already confused!", name)
			return false
		}
		lo, hi := turnBounds(effect, MinConfusionTurns, MaxConfusionTurns)
		target.SetConfusion(RollRange(p.rng, lo, hi))
		log.Add(CategoryStatusInflicted, "%s became confused!", name)
		return true
	}

	if target.HasMajorStatus() {
		log.Add(CategoryInfo, "%s is already affected by %s!", name, StatusLabel(target.Status))
		return false
	}

	turns := 0
	if effect.Condition == gamedata.StatusSleep {
		lo, hi := turnBounds(effect, MinSleepTurns, MaxSleepTurns)
		turns = RollRange(p.rng, lo, hi)
	}
	target.SetStatus(effect.Condition, turns)

	switch effect.Condition {
	case gamedata.StatusSleep:
		log.Add(CategoryStatusInflicted, "%s fell asleep!", name)
	case gamedata.StatusParalysis:
		log.Add(CategoryStatusInflicted, "%s is paralyzed! It may be unable to move!", name)
	case gamedata.StatusPoison:
		log.Add(CategoryStatusInflicted, "%s was poisoned!", name)
	case gamedata.StatusBurn:
		log.Add(CategoryStatusInflicted, "%s was burned!", name)
	}
	return true
}

func turnBounds(effect gamedata.StatusEffect, defMin, defMax int) (int, int) {
	lo, hi := effect.TurnsMin, effect.TurnsMax
	if lo <= 0 {
		lo = defMin
	}
	if hi <= 0 {
		hi = defMax
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// ApplyStatChange moves a stat stage by delta, clamped to +/-MaxStage.
// Returns false when the stage was already at the limit.
func (p *StatusProcessor) ApplyStatChange(target *entity.Combatant, stat gamedata.StatName, delta int, log *Log) bool {
	if delta == 0 || target.IsFainted() {
		return false
	}
	name := DisplayName(target)
	label := StatLabel(stat)
	current := target.Stages.Get(stat)

	if delta > 0 && current >= entity.MaxStage {
		log.Add(CategoryInfo, "%s's %s won't go any higher!", name, label)
		return false
	}
	if delta < 0 && current <= -entity.MaxStage {
		log.Add(CategoryInfo, "%s's %s won't go any lower!", name, label)
		return false
	}
	target.Stages.Set(stat, current+delta)

	sharply := ""
	if delta >= 2 || delta <= -2 {
		sharply = " sharply"
	}
	if delta > 0 {
		log.Add(CategoryBuff, "%s's %s rose%s!", name, label, sharply)
	} else {
		log.Add(CategoryDebuff, "%s's %s fell%s!", name, label, sharply)
	}
	return true
}

// Cure removes condition from target. Confusion is cleared independently of
// the major status slot.
func (p *StatusProcessor) Cure(target *entity.Combatant, condition gamedata.StatusCondition, log *Log) bool {
	name := DisplayName(target)
	if condition == gamedata.StatusConfusion {
		if !target.IsConfused() {
			return false
		}
		target.SetConfusion(0)
		log.Add(CategoryStatusCured, "%s snapped out of its confusion!", name)
		return true
	}
	if target.Status != condition || !condition.IsMajor() {
		return false
	}
	target.ClearStatus()
	log.Add(CategoryStatusCured, "%s was cured of its %s!", name, condition)
	return true
}

// CureMajor removes whatever major status target has.
func (p *StatusProcessor) CureMajor(target *entity.Combatant, log *Log) bool {
	if !target.HasMajorStatus() {
		return false
	}
	return p.Cure(target, target.Status, log)
}

func faintCategory(side entity.Side) Category {
	if side == entity.SidePlayer {
		return CategoryDefeat
	}
	return CategoryVictory
}
