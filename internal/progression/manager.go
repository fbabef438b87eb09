package progression

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/critterquest/internal/combat"
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/telemetry"
)

// FallbackMove is given to a new creature whose learnset yields nothing.
const FallbackMove = "tackle"

var (
	ErrCannotEvolve     = errors.New("creature cannot evolve with that item")
	ErrIncompatibleMove = errors.New("creature cannot learn that move")
	ErrAlreadyKnown     = errors.New("creature already knows that move")
	ErrMovesFull        = errors.New("creature already knows the maximum number of moves")
	ErrWrongItem        = errors.New("item has no progression effect")
	ErrUnknownMove      = errors.New("unknown move")
)

// LevelUp records one level gained.
type LevelUp struct {
	Level   int
	HPGain  int
	Learned []string
	// Skipped lists moves not learned because the move list was full.
	Skipped []string
}

// ExperienceResult is the outcome of GainExperience.
type ExperienceResult struct {
	Gained   int
	LevelUps []LevelUp
	// Evolution is set when a level-based evolution became due. Level-up
	// processing stops at that point; the caller runs Evolve.
	Evolution *gamedata.Evolution
}

// Manager applies experience, move learning and evolution.
type Manager struct {
	species entity.SpeciesLookup
	moves   entity.MoveLookup
}

// NewManager creates a progression manager.
func NewManager(species entity.SpeciesLookup, moves entity.MoveLookup) *Manager {
	return &Manager{species: species, moves: moves}
}

// NewCreature creates a creature at level knowing the last MaxMoves moves
// its learnset offers by then.
func (m *Manager) NewCreature(speciesID string, level int, side entity.Side) (*entity.Combatant, error) {
	species := m.species.GetByID(speciesID)
	if species == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownSpecies, speciesID)
	}
	return entity.NewCombatant(species, level, side, m.DefaultMoves(species, level)), nil
}

// DefaultMoves returns the moves a species knows at level when nothing
// overrides them.
func (m *Manager) DefaultMoves(species *gamedata.SpeciesDef, level int) []entity.LearnedMove {
	ids := entity.LastN(species.MovesUpTo(level), entity.MaxMoves)
	if len(ids) == 0 {
		ids = []string{FallbackMove}
	}
	return entity.BuildMoves(ids, m.moves)
}

// GainExperience adds experience and processes level-ups. It stops early
// when a level-based evolution becomes due.
func (m *Manager) GainExperience(ctx context.Context, c *entity.Combatant, amount int, log *combat.Log) ExperienceResult {
	_, span := telemetry.Tracer("progression").Start(ctx, "progression.experience")
	defer span.End()

	var res ExperienceResult
	if amount <= 0 {
		return res
	}
	res.Gained = amount
	c.Experience += amount
	log.Add(combat.CategoryInfo, "%s gained %d experience!", c.Name, amount)

	species := m.species.GetByID(c.SpeciesID)
	for c.Level < entity.MaxLevel && c.Experience >= ExperienceToNext(c.Level) {
		c.Experience -= ExperienceToNext(c.Level)
		res.LevelUps = append(res.LevelUps, m.levelUp(c, species, log))

		if species != nil && species.Evolution.ByLevel() && c.Level >= species.Evolution.Condition.Level {
			res.Evolution = species.Evolution
			break
		}
	}

	span.SetAttributes(
		attribute.String("species", c.SpeciesID),
		attribute.Int("gained", amount),
		attribute.Int("levels", len(res.LevelUps)),
		attribute.Int("level", c.Level),
		attribute.Bool("evolution", res.Evolution != nil),
	)
	return res
}

func (m *Manager) levelUp(c *entity.Combatant, species *gamedata.SpeciesDef, log *combat.Log) LevelUp {
	prevMax := c.MaxHP()
	c.Level++
	c.Recalculate()

	up := LevelUp{Level: c.Level, HPGain: c.MaxHP() - prevMax}
	if c.IsAlive() && up.HPGain > 0 {
		c.Heal(up.HPGain)
	}
	log.Add(combat.CategoryVictory, "%s grew to level %d!", c.Name, c.Level)

	if species == nil {
		return up
	}
	for _, id := range species.MovesAt(c.Level) {
		if c.KnowsMove(id) {
			continue
		}
		def := m.moves.GetByID(id)
		if def == nil {
			log.Add(combat.CategorySystem, "Unknown move %q in %s's learnset.", id, species.Name)
			continue
		}
		if !c.LearnMove(entity.NewLearnedMove(def)) {
			up.Skipped = append(up.Skipped, id)
			log.Add(combat.CategoryInfo, "%s tried to learn %s, but already knows %d moves.", c.Name, def.Name, entity.MaxMoves)
			continue
		}
		up.Learned = append(up.Learned, id)
		log.Add(combat.CategoryBuff, "%s learned %s!", c.Name, def.Name)
	}
	return up
}

// Evolve returns a new creature of species toID replacing c. The new
// creature keeps level and experience, knows the new species' level-1
// moves followed by c's old moves up to the cap, and is fully healed.
func (m *Manager) Evolve(ctx context.Context, c *entity.Combatant, toID string, log *combat.Log) (*entity.Combatant, error) {
	_, span := telemetry.Tracer("progression").Start(ctx, "progression.evolve")
	defer span.End()

	target := m.species.GetByID(toID)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownSpecies, toID)
	}

	moves := entity.BuildMoves(target.MovesUpTo(1), m.moves)
	for _, old := range c.Moves {
		if len(moves) >= entity.MaxMoves {
			break
		}
		known := false
		for _, mv := range moves {
			if mv.MoveID == old.MoveID {
				known = true
				break
			}
		}
		if !known {
			moves = append(moves, old)
		}
	}

	evolved := entity.NewCombatant(target, c.Level, c.Side, moves)
	evolved.Experience = c.Experience
	evolved.FullRestore()

	log.Add(combat.CategoryEvolution, "Congratulations! %s evolved into %s!", c.Name, target.Name)
	span.SetAttributes(
		attribute.String("from", c.SpeciesID),
		attribute.String("to", toID),
		attribute.Int("level", c.Level),
	)
	return evolved, nil
}

// EvolveWithItem evolves c if item is an evolution item for its species.
func (m *Manager) EvolveWithItem(ctx context.Context, c *entity.Combatant, item *gamedata.ItemDef, log *combat.Log) (*entity.Combatant, error) {
	eff := item.Effect
	if eff == nil || eff.Type != gamedata.EffectEvolve {
		return nil, ErrWrongItem
	}
	if eff.RequiredSpeciesID != c.SpeciesID || eff.EvolvesToSpeciesID == "" {
		return nil, ErrCannotEvolve
	}
	return m.Evolve(ctx, c, eff.EvolvesToSpeciesID, log)
}

// TeachMove teaches the move carried by a teach-move item.
func (m *Manager) TeachMove(c *entity.Combatant, item *gamedata.ItemDef, log *combat.Log) error {
	eff := item.Effect
	if eff == nil || eff.Type != gamedata.EffectTeachMove {
		return ErrWrongItem
	}
	def := m.moves.GetByID(eff.MoveID)
	if def == nil {
		return fmt.Errorf("%w: %s", ErrUnknownMove, eff.MoveID)
	}
	if len(eff.CompatibleTypes) > 0 {
		compatible := false
		for _, t := range eff.CompatibleTypes {
			if c.HasType(t) {
				compatible = true
				break
			}
		}
		if !compatible {
			return ErrIncompatibleMove
		}
	}
	if c.KnowsMove(def.ID) {
		return ErrAlreadyKnown
	}
	if !c.LearnMove(entity.NewLearnedMove(def)) {
		return ErrMovesFull
	}
	log.Add(combat.CategoryBuff, "%s learned %s!", c.Name, def.Name)
	return nil
}
