package gamedata

import (
	"errors"
	"fmt"
)

// keyed is implemented by every definition type held in a Registry.
type keyed interface {
	Key() string
}

// Registry holds loaded definitions and provides lookup by ID.
type Registry[T keyed] struct {
	byID map[string]*T
	all  []T
}

// Registries for each definition kind.
type (
	SpeciesRegistry = Registry[SpeciesDef]
	MoveRegistry    = Registry[MoveDef]
	AreaRegistry    = Registry[AreaDef]
	ItemRegistry    = Registry[ItemDef]
	AbilityRegistry = Registry[AbilityDef]
)

// NewRegistry creates a registry from loaded definitions.
// Later duplicates shadow earlier ones.
func NewRegistry[T keyed](defs []T) *Registry[T] {
	r := &Registry[T]{
		byID: make(map[string]*T, len(defs)),
		all:  defs,
	}
	for i := range defs {
		r.byID[defs[i].Key()] = &defs[i]
	}
	return r
}

// GetByID returns the definition with the given ID, or nil if not found.
func (r *Registry[T]) GetByID(id string) *T {
	if r == nil {
		return nil
	}
	return r.byID[id]
}

// All returns all definitions in file order.
func (r *Registry[T]) All() []T {
	return r.all
}

// Count returns the number of definitions in the registry.
func (r *Registry[T]) Count() int {
	return len(r.all)
}

// First returns the first definition, or nil for an empty registry.
func (r *Registry[T]) First() *T {
	if len(r.all) == 0 {
		return nil
	}
	return &r.all[0]
}

// =============================================================================
// Data bundle
// =============================================================================

// Data bundles every registry the engine needs.
type Data struct {
	Species   *SpeciesRegistry
	Moves     *MoveRegistry
	Areas     *AreaRegistry
	Items     *ItemRegistry
	Abilities *AbilityRegistry
	Types     TypeChart

	typeColors map[ElementType]string
}

// LoadData loads every embedded data file.
func LoadData() (*Data, error) {
	species, err := LoadSpecies()
	if err != nil {
		return nil, err
	}
	if len(species) == 0 {
		return nil, errors.New("no species loaded from species.json")
	}
	moves, err := LoadMoves()
	if err != nil {
		return nil, err
	}
	areas, err := LoadAreas()
	if err != nil {
		return nil, err
	}
	if len(areas) == 0 {
		return nil, errors.New("no areas loaded from areas.json")
	}
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	abilities, err := LoadAbilities()
	if err != nil {
		return nil, err
	}
	types, err := LoadTypes()
	if err != nil {
		return nil, err
	}

	colors := make(map[ElementType]string, len(types))
	for _, t := range types {
		colors[t.ID] = t.Color
	}

	return &Data{
		Species:    NewRegistry(species),
		Moves:      NewRegistry(moves),
		Areas:      NewRegistry(areas),
		Items:      NewRegistry(items),
		Abilities:  NewRegistry(abilities),
		Types:      NewTypeChart(types),
		typeColors: colors,
	}, nil
}

// MustLoadData loads every embedded data file, panicking on error.
func MustLoadData() *Data {
	data, err := LoadData()
	if err != nil {
		panic(err)
	}
	return data
}

// TypeColor returns the hex color for an element, or "" if unknown.
func (d *Data) TypeColor(t ElementType) string {
	return d.typeColors[t]
}

// Validate reports dangling references between data files. The engine
// tolerates every one of them at runtime; this is for startup diagnostics.
func (d *Data) Validate() []string {
	var problems []string
	missingMove := func(owner, id string) {
		if d.Moves.GetByID(id) == nil {
			problems = append(problems, fmt.Sprintf("%s references unknown move %q", owner, id))
		}
	}
	missingSpecies := func(owner, id string) {
		if d.Species.GetByID(id) == nil {
			problems = append(problems, fmt.Sprintf("%s references unknown species %q", owner, id))
		}
	}
	missingItem := func(owner, id string) {
		if d.Items.GetByID(id) == nil {
			problems = append(problems, fmt.Sprintf("%s references unknown item %q", owner, id))
		}
	}

	for _, s := range d.Species.All() {
		for _, lm := range s.LevelUpMoves {
			missingMove("species "+s.ID, lm.MoveID)
		}
		if s.Evolution != nil {
			missingSpecies("species "+s.ID, s.Evolution.ToSpeciesID)
		}
		for _, a := range s.Abilities {
			if d.Abilities.GetByID(string(a)) == nil {
				problems = append(problems, fmt.Sprintf("species %s references unknown ability %q", s.ID, a))
			}
		}
	}
	for _, a := range d.Areas.All() {
		owner := "area " + a.ID
		for _, e := range a.Encounters {
			missingSpecies(owner, e.SpeciesID)
			for _, m := range e.Moves {
				missingMove(owner, m)
			}
			for _, drop := range e.Drops {
				missingItem(owner, drop.ItemID)
			}
		}
		if a.NextAreaID != "" && d.Areas.GetByID(a.NextAreaID) == nil {
			problems = append(problems, fmt.Sprintf("%s references unknown area %q", owner, a.NextAreaID))
		}
	}
	for _, it := range d.Items.All() {
		if it.Effect == nil {
			continue
		}
		owner := "item " + it.ID
		switch it.Effect.Type {
		case EffectTeachMove:
			missingMove(owner, it.Effect.MoveID)
		case EffectEvolve:
			missingSpecies(owner, it.Effect.RequiredSpeciesID)
			missingSpecies(owner, it.Effect.EvolvesToSpeciesID)
		}
	}
	return problems
}
