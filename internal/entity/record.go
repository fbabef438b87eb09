package entity

import (
	"errors"
	"fmt"

	"github.com/samdwyer/critterquest/internal/gamedata"
)

// ErrUnknownSpecies is returned when a record names a species that is not loaded.
var ErrUnknownSpecies = errors.New("unknown species")

// MoveRecord is the persisted form of a learned move.
type MoveRecord struct {
	MoveID string `json:"moveId"`
	PP     int    `json:"pp"`
}

// Record is the persisted form of a player creature. Stat stages and
// battle flags are deliberately absent; they load as neutral.
type Record struct {
	SpeciesID      string                   `json:"speciesId"`
	Level          int                      `json:"level"`
	Experience     int                      `json:"experience"`
	CurrentHP      int                      `json:"currentHp"`
	Moves          []MoveRecord             `json:"moves"`
	Status         gamedata.StatusCondition `json:"status"`
	StatusTurns    int                      `json:"statusTurns"`
	ConfusionTurns int                      `json:"confusionTurns"`
	Ability        gamedata.AbilityID       `json:"ability"`
}

// ToRecord captures the persisted fields.
func (c *Combatant) ToRecord() Record {
	moves := make([]MoveRecord, len(c.Moves))
	for i, m := range c.Moves {
		moves[i] = MoveRecord{MoveID: m.MoveID, PP: m.PP}
	}
	return Record{
		SpeciesID:      c.SpeciesID,
		Level:          c.Level,
		Experience:     c.Experience,
		CurrentHP:      c.CurrentHP,
		Moves:          moves,
		Status:         c.Status,
		StatusTurns:    c.StatusTurns,
		ConfusionTurns: c.ConfusionTurns,
		Ability:        c.Ability,
	}
}

// FromRecord rebuilds a player combatant, re-deriving stats from the species
// and clamping every restored counter into range.
func FromRecord(r Record, species SpeciesLookup, moves MoveLookup) (*Combatant, error) {
	def := species.GetByID(r.SpeciesID)
	if def == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, r.SpeciesID)
	}

	learned := make([]LearnedMove, 0, len(r.Moves))
	for _, m := range r.Moves {
		lm := LearnedMove{MoveID: m.MoveID, PP: m.PP, MaxPP: m.PP}
		if md := moves.GetByID(m.MoveID); md != nil {
			lm.MaxPP = md.PP
		}
		if lm.PP > lm.MaxPP {
			lm.PP = lm.MaxPP
		}
		if lm.PP < 0 {
			lm.PP = 0
		}
		learned = append(learned, lm)
	}

	c := NewCombatant(def, r.Level, SidePlayer, learned)
	if r.Experience > 0 {
		c.Experience = r.Experience
	}
	if r.Ability != "" {
		c.Ability = r.Ability
	}

	c.CurrentHP = r.CurrentHP
	if c.CurrentHP > c.Stats.HP {
		c.CurrentHP = c.Stats.HP
	}
	if c.CurrentHP <= 0 {
		c.Faint()
		return c, nil
	}

	if r.Status.IsMajor() {
		c.SetStatus(r.Status, r.StatusTurns)
	}
	c.SetConfusion(r.ConfusionTurns)
	return c, nil
}
