package combat

import "fmt"

// Category classifies a battle log entry for presentation.
type Category string

const (
	CategoryInfo              Category = "info"
	CategoryPlayerAttack      Category = "player_attack"
	CategoryEnemyAttack       Category = "enemy_attack"
	CategoryPlayerDamage      Category = "player_damage"
	CategoryEnemyDamage       Category = "enemy_damage"
	CategoryBuff              Category = "buff"
	CategoryDebuff            Category = "debuff"
	CategorySystem            Category = "system"
	CategoryVictory           Category = "victory"
	CategoryDefeat            Category = "defeat"
	CategoryCatchSuccess      Category = "catch_success"
	CategoryCatchFail         Category = "catch_fail"
	CategoryMapProgress       Category = "map_progress"
	CategoryGymLeaderIntro    Category = "gym_leader_intro"
	CategoryGymLeaderDefeat   Category = "gym_leader_defeat"
	CategoryEvolution         Category = "evolution"
	CategoryStatusInflicted   Category = "status_inflicted"
	CategoryStatusEffect      Category = "status_effect"
	CategoryStatusCured       Category = "status_cured"
	CategoryAbilityActivation Category = "ability_activation"
	CategoryItem              Category = "item"
)

// Entry is one line of the battle log.
type Entry struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Log collects entries in the order they happen.
type Log struct {
	entries []Entry
}

// Add appends a formatted entry.
func (l *Log) Add(cat Category, format string, args ...any) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, Entry{Category: cat, Text: fmt.Sprintf(format, args...)})
}

// Entries returns the collected entries.
func (l *Log) Entries() []Entry {
	if l == nil {
		return nil
	}
	return l.entries
}

// Len returns the number of entries.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Drain returns the collected entries and empties the log.
func (l *Log) Drain() []Entry {
	if l == nil {
		return nil
	}
	out := l.entries
	l.entries = nil
	return out
}
