package entity

import "github.com/samdwyer/critterquest/internal/gamedata"

// MaxStage bounds every stat stage to [-MaxStage, MaxStage].
const MaxStage = 6

// Stats are the six derived values for a combatant at its level.
// HP is the maximum HP.
type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
	Speed          int `json:"speed"`
}

// CalculateStats derives stats from species base values and level.
//
//	HP:    floor(base*2*level/100 + level + 10)
//	other: floor(base*2*level/100 + 5)
func CalculateStats(base gamedata.BaseStats, level int) Stats {
	other := func(b int) int {
		return b*2*level/100 + 5
	}
	return Stats{
		HP:             base.HP*2*level/100 + level + 10,
		Attack:         other(base.Attack),
		Defense:        other(base.Defense),
		SpecialAttack:  other(base.SpecialAttack),
		SpecialDefense: other(base.SpecialDefense),
		Speed:          other(base.Speed),
	}
}

// Get returns the named stat, or 0 for an unknown name.
func (s Stats) Get(name gamedata.StatName) int {
	switch name {
	case gamedata.StatHP:
		return s.HP
	case gamedata.StatAttack:
		return s.Attack
	case gamedata.StatDefense:
		return s.Defense
	case gamedata.StatSpecialAttack:
		return s.SpecialAttack
	case gamedata.StatSpecialDefense:
		return s.SpecialDefense
	case gamedata.StatSpeed:
		return s.Speed
	default:
		return 0
	}
}

// StatStages holds one stage per stat, indexed in gamedata.AllStats order.
type StatStages [6]int

func stageIndex(name gamedata.StatName) int {
	for i, s := range gamedata.AllStats {
		if s == name {
			return i
		}
	}
	return -1
}

// Get returns the stage for a stat.
func (s StatStages) Get(name gamedata.StatName) int {
	i := stageIndex(name)
	if i < 0 {
		return 0
	}
	return s[i]
}

// Set stores a stage clamped to [-MaxStage, MaxStage] and returns the stored value.
func (s *StatStages) Set(name gamedata.StatName, value int) int {
	i := stageIndex(name)
	if i < 0 {
		return 0
	}
	s[i] = clampStage(value)
	return s[i]
}

// Reset returns every stage to neutral.
func (s *StatStages) Reset() {
	*s = StatStages{}
}

// IsNeutral reports whether every stage is zero.
func (s StatStages) IsNeutral() bool {
	return s == StatStages{}
}

// NonZero returns the stages that differ from neutral.
func (s StatStages) NonZero() map[gamedata.StatName]int {
	out := make(map[gamedata.StatName]int)
	for i, name := range gamedata.AllStats {
		if s[i] != 0 {
			out[name] = s[i]
		}
	}
	return out
}

func clampStage(v int) int {
	if v > MaxStage {
		return MaxStage
	}
	if v < -MaxStage {
		return -MaxStage
	}
	return v
}
