package gamedata

// DropDef is a possible item drop from a defeated enemy.
type DropDef struct {
	ItemID      string  `json:"itemId"`
	DropRate    float64 `json:"dropRate"`
	QuantityMin int     `json:"quantityMin"`
	QuantityMax int     `json:"quantityMax"`
}

// SpawnEntry is one row of an area's encounter table.
type SpawnEntry struct {
	SpeciesID     string    `json:"speciesId"`
	Level         int       `json:"level"`
	SpawnWeight   float64   `json:"spawnWeight"`
	BaseCatchRate float64   `json:"baseCatchRate,omitempty"`
	IsBoss        bool      `json:"isBoss,omitempty"`
	IsGymLeader   bool      `json:"isGymLeader,omitempty"`
	Moves         []string  `json:"moves,omitempty"`
	Reward        *int      `json:"reward,omitempty"`
	Experience    *int      `json:"experience,omitempty"`
	Drops         []DropDef `json:"drops,omitempty"`
}

// UnlockType is how an area opens the next one.
type UnlockType string

const (
	UnlockDefeatCount UnlockType = "defeatCount"
	UnlockDefeatBoss  UnlockType = "defeatBoss"
)

// UnlockCondition is the requirement for moving on from an area.
type UnlockCondition struct {
	Type          UnlockType `json:"type"`
	Count         int        `json:"count,omitempty"`
	BossSpeciesID string     `json:"bossSpeciesId,omitempty"`
}

// AreaDef defines an explorable area loaded from JSON.
type AreaDef struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	IsGym             bool             `json:"isGym,omitempty"`
	Encounters        []SpawnEntry     `json:"encounters"`
	DefaultReward     int              `json:"defaultReward"`
	DefaultExperience int              `json:"defaultExperience"`
	Unlock            *UnlockCondition `json:"unlock,omitempty"`
	NextAreaID        string           `json:"nextAreaId,omitempty"`
}

// Key returns the registry key.
func (a AreaDef) Key() string { return a.ID }

// Leader returns the gym leader entry, or nil if the area has none.
func (a *AreaDef) Leader() *SpawnEntry {
	for i := range a.Encounters {
		if a.Encounters[i].IsGymLeader {
			return &a.Encounters[i]
		}
	}
	return nil
}

// WildEntries returns every entry that is not a gym leader.
func (a *AreaDef) WildEntries() []*SpawnEntry {
	entries := make([]*SpawnEntry, 0, len(a.Encounters))
	for i := range a.Encounters {
		if !a.Encounters[i].IsGymLeader {
			entries = append(entries, &a.Encounters[i])
		}
	}
	return entries
}

// RewardFor returns the entry's money reward or the area default.
func (a *AreaDef) RewardFor(e *SpawnEntry) int {
	if e.Reward != nil {
		return *e.Reward
	}
	return a.DefaultReward
}

// ExperienceFor returns the entry's experience yield or the area default.
func (a *AreaDef) ExperienceFor(e *SpawnEntry) int {
	if e.Experience != nil {
		return *e.Experience
	}
	return a.DefaultExperience
}

// LoadAreas loads area definitions from the embedded areas.json.
func LoadAreas() ([]AreaDef, error) {
	return Load[[]AreaDef]("areas.json")
}
