package gamedata

// StatChange raises or lowers one stat stage when a move lands.
type StatChange struct {
	Stat   StatName     `json:"stat"`
	Change int          `json:"change"`
	Target EffectTarget `json:"target"`
	// Chance is the trigger probability. Zero means always.
	Chance float64 `json:"chance,omitempty"`
}

// TriggerChance returns Chance with the zero value meaning certain.
func (c StatChange) TriggerChance() float64 {
	if c.Chance <= 0 {
		return 1
	}
	return c.Chance
}

// StatusEffect inflicts a condition when a move lands.
type StatusEffect struct {
	Condition StatusCondition `json:"condition"`
	Chance    float64         `json:"chance"`
	Target    EffectTarget    `json:"target"`
	TurnsMin  int             `json:"turnsMin,omitempty"`
	TurnsMax  int             `json:"turnsMax,omitempty"`
}

// MoveDef defines a move loaded from JSON.
type MoveDef struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Type         ElementType   `json:"type"`
	Category     MoveCategory  `json:"category"`
	Power        *int          `json:"power,omitempty"`
	Accuracy     *int          `json:"accuracy,omitempty"`
	PP           int           `json:"pp"`
	Priority     int           `json:"priority,omitempty"`
	StatChanges  []StatChange  `json:"statChanges,omitempty"`
	StatusEffect *StatusEffect `json:"statusEffect,omitempty"`
	Contact      bool          `json:"contact,omitempty"`
	Description  string        `json:"description"`
}

// Key returns the registry key.
func (m MoveDef) Key() string { return m.ID }

// IsStatus reports whether the move deals no direct damage.
func (m *MoveDef) IsStatus() bool {
	return m.Category == CategoryStatus
}

// BasePower returns the move power, or 0 when the move has none.
func (m *MoveDef) BasePower() int {
	if m.Power == nil {
		return 0
	}
	return *m.Power
}

// LoadMoves loads move definitions from the embedded moves.json.
func LoadMoves() ([]MoveDef, error) {
	return Load[[]MoveDef]("moves.json")
}
