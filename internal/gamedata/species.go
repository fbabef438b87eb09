package gamedata

// BaseStats are the six species base values stats are derived from.
type BaseStats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
	Speed          int `json:"speed"`
}

// LevelUpMove is one row of a species' learnset.
type LevelUpMove struct {
	Level  int    `json:"level"`
	MoveID string `json:"moveId"`
}

// EvolutionCondition gates an evolution on a level or an item.
type EvolutionCondition struct {
	Level  int    `json:"level,omitempty"`
	ItemID string `json:"itemId,omitempty"`
}

// Evolution describes what a species evolves into.
type Evolution struct {
	ToSpeciesID string             `json:"toSpeciesId"`
	Condition   EvolutionCondition `json:"condition"`
}

// ByLevel reports whether the evolution triggers from leveling alone.
func (e *Evolution) ByLevel() bool {
	return e != nil && e.Condition.Level > 0 && e.Condition.ItemID == ""
}

// SpeciesDef defines a species loaded from JSON.
type SpeciesDef struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Types          []ElementType `json:"types"`
	BaseStats      BaseStats     `json:"baseStats"`
	LevelUpMoves   []LevelUpMove `json:"levelUpMoves"`
	CatchRateBonus float64       `json:"catchRateBonus"`
	Abilities      []AbilityID   `json:"abilities"`
	Evolution      *Evolution    `json:"evolution,omitempty"`
	Color          string        `json:"color"`
	Description    string        `json:"description"`
}

// Key returns the registry key.
func (s SpeciesDef) Key() string { return s.ID }

// HasType reports whether t is one of the species' types.
func (s *SpeciesDef) HasType(t ElementType) bool {
	for _, own := range s.Types {
		if own == t {
			return true
		}
	}
	return false
}

// PrimaryAbility returns the first listed ability, or AbilityNone.
func (s *SpeciesDef) PrimaryAbility() AbilityID {
	if len(s.Abilities) == 0 || s.Abilities[0] == "" {
		return AbilityNone
	}
	return s.Abilities[0]
}

// CatchBonus returns the species catch multiplier, defaulting to 1.
func (s *SpeciesDef) CatchBonus() float64 {
	if s.CatchRateBonus <= 0 {
		return 1
	}
	return s.CatchRateBonus
}

// MovesUpTo returns learnset move IDs at or below level, in table order.
func (s *SpeciesDef) MovesUpTo(level int) []string {
	var ids []string
	for _, lm := range s.LevelUpMoves {
		if lm.Level <= level {
			ids = append(ids, lm.MoveID)
		}
	}
	return ids
}

// MovesAt returns learnset move IDs learned exactly at level.
func (s *SpeciesDef) MovesAt(level int) []string {
	var ids []string
	for _, lm := range s.LevelUpMoves {
		if lm.Level == level {
			ids = append(ids, lm.MoveID)
		}
	}
	return ids
}

// LoadSpecies loads species definitions from the embedded species.json.
func LoadSpecies() ([]SpeciesDef, error) {
	return Load[[]SpeciesDef]("species.json")
}
