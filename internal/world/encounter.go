// Package world picks encounters for an area and tracks progress through
// the area sequence.
package world

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/critterquest/internal/combat"
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/progression"
	"github.com/samdwyer/critterquest/internal/telemetry"
)

// ErrNoEncounter is returned when an area has nothing left to spawn.
var ErrNoEncounter = errors.New("no eligible encounters")

// Spawn is a freshly generated enemy.
type Spawn struct {
	Enemy *entity.Combatant
	Entry *gamedata.SpawnEntry
}

// Generator builds enemies from area spawn tables.
type Generator struct {
	species  entity.SpeciesLookup
	moves    entity.MoveLookup
	prog     *progression.Manager
	resolver *combat.Resolver
	rng      combat.Source
}

// NewGenerator creates an encounter generator. The resolver supplies the
// ability hooks fired on spawn.
func NewGenerator(species entity.SpeciesLookup, moves entity.MoveLookup, prog *progression.Manager, resolver *combat.Resolver, rng combat.Source) *Generator {
	return &Generator{species: species, moves: moves, prog: prog, resolver: resolver, rng: rng}
}

// Pick selects the next spawn entry. An undefeated gym leader always comes
// first; otherwise wild entries are drawn by weight.
func (g *Generator) Pick(area *gamedata.AreaDef, gymDefeated bool) (*gamedata.SpawnEntry, error) {
	if area.IsGym && !gymDefeated {
		if leader := area.Leader(); leader != nil {
			return leader, nil
		}
	}

	entries := area.WildEntries()
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoEncounter, area.ID)
	}
	total := 0.0
	for _, e := range entries {
		total += e.SpawnWeight
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoEncounter, area.ID)
	}

	draw := g.rng.Float64() * total
	for _, e := range entries {
		if draw < e.SpawnWeight {
			return e, nil
		}
		draw -= e.SpawnWeight
	}
	return entries[0], nil
}

// Generate spawns the next enemy for area and fires switch-in abilities
// between it and the player's active creature, which may be nil.
func (g *Generator) Generate(ctx context.Context, area *gamedata.AreaDef, gymDefeated bool, player *entity.Combatant, log *combat.Log) (*Spawn, error) {
	_, span := telemetry.Tracer("world").Start(ctx, "encounter.spawn")
	defer span.End()

	entry, err := g.Pick(area, gymDefeated)
	if err != nil {
		return nil, err
	}
	species := g.species.GetByID(entry.SpeciesID)
	if species == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownSpecies, entry.SpeciesID)
	}

	var moves []entity.LearnedMove
	if len(entry.Moves) > 0 {
		moves = entity.BuildMoves(entry.Moves, g.moves)
	} else {
		moves = g.prog.DefaultMoves(species, entry.Level)
	}

	enemy := entity.NewCombatant(species, entry.Level, entity.SideEnemy, moves)
	catchRate := entry.BaseCatchRate
	if catchRate <= 0 {
		catchRate = combat.DefaultBaseCatchRate
	}
	enemy.Encounter = &entity.Encounter{
		AreaID:        area.ID,
		BaseCatchRate: catchRate,
		Reward:        area.RewardFor(entry),
		Experience:    area.ExperienceFor(entry),
		IsBoss:        entry.IsBoss,
		IsGymLeader:   entry.IsGymLeader,
		Drops:         entry.Drops,
	}

	switch {
	case entry.IsGymLeader:
		log.Add(combat.CategoryGymLeaderIntro, "The Gym Leader sends out %s (Lv. %d)!", enemy.Name, enemy.Level)
	case entry.IsBoss:
		log.Add(combat.CategoryInfo, "A powerful %s (Lv. %d) blocks the way!", enemy.Name, enemy.Level)
	default:
		log.Add(combat.CategoryInfo, "A wild %s (Lv. %d) appeared!", enemy.Name, enemy.Level)
	}

	g.SwitchIn(enemy, player, log)

	span.SetAttributes(
		attribute.String("area", area.ID),
		attribute.String("species", enemy.SpeciesID),
		attribute.Int("level", enemy.Level),
		attribute.Bool("gym_leader", entry.IsGymLeader),
		attribute.Bool("boss", entry.IsBoss),
	)
	return &Spawn{Enemy: enemy, Entry: entry}, nil
}

// Enter fires the switch-in ability of a creature entering a battle that
// is already underway. The creature it faces keeps its own state.
func (g *Generator) Enter(entering, facing *entity.Combatant, log *combat.Log) {
	if entering == nil || facing == nil || entering.IsFainted() || facing.IsFainted() {
		return
	}
	g.resolver.Abilities().SwitchIn(g.resolver.Hook(entering, facing, nil, log))
}

// SwitchIn fires switch-in abilities in both directions. It is used when an
// enemy spawns, since both sides are new to the encounter.
func (g *Generator) SwitchIn(entering, facing *entity.Combatant, log *combat.Log) {
	if entering == nil || facing == nil || entering.IsFainted() || facing.IsFainted() {
		return
	}
	abilities := g.resolver.Abilities()
	abilities.SwitchIn(g.resolver.Hook(entering, facing, nil, log))
	abilities.SwitchIn(g.resolver.Hook(facing, entering, nil, log))
}
