// Package entity provides the battle participants: the tagged Combatant,
// its derived stats, the persisted record form and the player's roster.
package entity

import "github.com/samdwyer/critterquest/internal/gamedata"

const (
	// MaxLevel is the level cap.
	MaxLevel = 100
	// MaxMoves is the number of moves a combatant can know.
	MaxMoves = 4
)

// Side says which half of the battle a combatant belongs to.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// LearnedMove is a known move with its remaining uses.
type LearnedMove struct {
	MoveID string `json:"moveId"`
	PP     int    `json:"pp"`
	MaxPP  int    `json:"maxPp"`
}

// NewLearnedMove creates a fully charged learned move.
func NewLearnedMove(def *gamedata.MoveDef) LearnedMove {
	return LearnedMove{MoveID: def.ID, PP: def.PP, MaxPP: def.PP}
}

// BattleFlags are transient per-battle markers. They are never persisted.
type BattleFlags struct {
	FlashFire bool `json:"flashFire,omitempty"`
}

// Encounter carries the spawn-table data attached to an enemy.
type Encounter struct {
	AreaID        string
	BaseCatchRate float64
	Reward        int
	Experience    int
	IsBoss        bool
	IsGymLeader   bool
	Drops         []gamedata.DropDef
}

// Combatant is a creature in battle. The same type serves the player's
// creatures and the enemy; Side tells them apart.
type Combatant struct {
	Side      Side
	SpeciesID string
	Name      string
	Types     []gamedata.ElementType

	Level      int
	Experience int
	Base       gamedata.BaseStats
	Stats      Stats
	CurrentHP  int

	Status         gamedata.StatusCondition
	StatusTurns    int
	ConfusionTurns int

	Stages  StatStages
	Ability gamedata.AbilityID
	Flags   BattleFlags
	Moves   []LearnedMove

	// Encounter is set only on enemies.
	Encounter *Encounter
}

// NewCombatant creates a combatant at full HP with stats derived for level.
func NewCombatant(species *gamedata.SpeciesDef, level int, side Side, moves []LearnedMove) *Combatant {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	if len(moves) > MaxMoves {
		moves = moves[:MaxMoves]
	}
	types := make([]gamedata.ElementType, len(species.Types))
	copy(types, species.Types)

	c := &Combatant{
		Side:      side,
		SpeciesID: species.ID,
		Name:      species.Name,
		Types:     types,
		Level:     level,
		Base:      species.BaseStats,
		Status:    gamedata.StatusNone,
		Ability:   species.PrimaryAbility(),
		Moves:     moves,
	}
	c.Stats = CalculateStats(c.Base, c.Level)
	c.CurrentHP = c.Stats.HP
	return c
}

// MaxHP returns the maximum HP at the current level.
func (c *Combatant) MaxHP() int { return c.Stats.HP }

// IsFainted returns true when HP is zero.
func (c *Combatant) IsFainted() bool { return c.CurrentHP <= 0 }

// IsAlive returns true if the combatant has HP remaining.
func (c *Combatant) IsAlive() bool { return c.CurrentHP > 0 }

// HasType reports whether t is one of the combatant's types.
func (c *Combatant) HasType(t gamedata.ElementType) bool {
	for _, own := range c.Types {
		if own == t {
			return true
		}
	}
	return false
}

// HPFraction returns current HP as a fraction of max HP.
func (c *Combatant) HPFraction() float64 {
	if c.Stats.HP <= 0 {
		return 0
	}
	return float64(c.CurrentHP) / float64(c.Stats.HP)
}

// TakeDamage reduces HP and returns actual damage taken.
// Reaching zero HP faints the combatant.
func (c *Combatant) TakeDamage(amount int) int {
	if amount <= 0 || c.CurrentHP <= 0 {
		return 0
	}
	actual := amount
	if actual > c.CurrentHP {
		actual = c.CurrentHP
	}
	c.CurrentHP -= actual
	if c.CurrentHP == 0 {
		c.Faint()
	}
	return actual
}

// Heal restores HP and returns actual amount healed. Fainted combatants
// cannot be healed; use Revive.
func (c *Combatant) Heal(amount int) int {
	if amount <= 0 || c.CurrentHP <= 0 {
		return 0
	}
	actual := amount
	if c.CurrentHP+actual > c.Stats.HP {
		actual = c.Stats.HP - c.CurrentHP
	}
	c.CurrentHP += actual
	return actual
}

// Revive brings a fainted combatant back with hp HP, clamped to [1, max].
func (c *Combatant) Revive(hp int) bool {
	if c.CurrentHP > 0 {
		return false
	}
	if hp < 1 {
		hp = 1
	}
	if hp > c.Stats.HP {
		hp = c.Stats.HP
	}
	c.CurrentHP = hp
	return true
}

// Faint sets HP to zero and clears status, confusion, stages and flags.
func (c *Combatant) Faint() {
	c.CurrentHP = 0
	c.ClearStatus()
	c.ConfusionTurns = 0
	c.ResetBattleState()
}

// ResetBattleState clears stat stages and transient flags.
func (c *Combatant) ResetBattleState() {
	c.Stages.Reset()
	c.Flags = BattleFlags{}
}

// HasMajorStatus reports whether a major status is set.
func (c *Combatant) HasMajorStatus() bool {
	return c.Status.IsMajor()
}

// SetStatus sets a major status with its turn counter.
func (c *Combatant) SetStatus(status gamedata.StatusCondition, turns int) {
	if turns < 0 {
		turns = 0
	}
	c.Status = status
	c.StatusTurns = turns
}

// ClearStatus removes the major status.
func (c *Combatant) ClearStatus() {
	c.Status = gamedata.StatusNone
	c.StatusTurns = 0
}

// IsConfused reports whether confusion turns remain.
func (c *Combatant) IsConfused() bool { return c.ConfusionTurns > 0 }

// SetConfusion sets the confusion counter, never below zero.
func (c *Combatant) SetConfusion(turns int) {
	if turns < 0 {
		turns = 0
	}
	c.ConfusionTurns = turns
}

// Move returns the learned move with the given ID, or nil.
func (c *Combatant) Move(id string) *LearnedMove {
	for i := range c.Moves {
		if c.Moves[i].MoveID == id {
			return &c.Moves[i]
		}
	}
	return nil
}

// KnowsMove reports whether the move is in the combatant's list.
func (c *Combatant) KnowsMove(id string) bool {
	return c.Move(id) != nil
}

// UsableMoves returns the moves with uses remaining.
func (c *Combatant) UsableMoves() []LearnedMove {
	usable := make([]LearnedMove, 0, len(c.Moves))
	for _, m := range c.Moves {
		if m.PP > 0 {
			usable = append(usable, m)
		}
	}
	return usable
}

// ConsumePP spends one use of a move. Returns false if none remain.
func (c *Combatant) ConsumePP(id string) bool {
	m := c.Move(id)
	if m == nil || m.PP <= 0 {
		return false
	}
	m.PP--
	return true
}

// LearnMove appends a move if there is room and it is not already known.
func (c *Combatant) LearnMove(m LearnedMove) bool {
	if len(c.Moves) >= MaxMoves || c.KnowsMove(m.MoveID) {
		return false
	}
	c.Moves = append(c.Moves, m)
	return true
}

// RestoreAllPP refills every move.
func (c *Combatant) RestoreAllPP() {
	for i := range c.Moves {
		c.Moves[i].PP = c.Moves[i].MaxPP
	}
}

// Recalculate re-derives stats for the current level and clamps HP.
func (c *Combatant) Recalculate() {
	c.Stats = CalculateStats(c.Base, c.Level)
	if c.CurrentHP > c.Stats.HP {
		c.CurrentHP = c.Stats.HP
	}
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
}

// FullRestore heals to max, cures everything, refills moves and resets
// battle state.
func (c *Combatant) FullRestore() {
	c.Stats = CalculateStats(c.Base, c.Level)
	c.CurrentHP = c.Stats.HP
	c.ClearStatus()
	c.ConfusionTurns = 0
	c.ResetBattleState()
	c.RestoreAllPP()
}
