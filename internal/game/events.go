package game

import (
	"github.com/samdwyer/critterquest/internal/combat"
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
)

// EventType identifies a battle event.
type EventType string

const (
	EventEnemySpawned     EventType = "enemy_spawned"
	EventNoEncounter      EventType = "no_encounter"
	EventMoveUsed         EventType = "move_used"
	EventDamage           EventType = "damage"
	EventFainted          EventType = "fainted"
	EventVictory          EventType = "victory"
	EventDefeat           EventType = "defeat"
	EventLevelUp          EventType = "level_up"
	EventMoveLearned      EventType = "move_learned"
	EventEvolutionStarted EventType = "evolution_started"
	EventEvolved          EventType = "evolved"
	EventCaptureShake     EventType = "capture_shake"
	EventCaptureSuccess   EventType = "capture_success"
	EventCaptureFailure   EventType = "capture_failure"
	EventFleeSuccess      EventType = "flee_success"
	EventFleeFailure      EventType = "flee_failure"
	EventSwitched         EventType = "switched"
	EventAreaCleared      EventType = "area_cleared"
	EventItemObtained     EventType = "item_obtained"
	EventItemUsed         EventType = "item_used"
)

// Event is a typed record of something that happened. Only the fields
// relevant to Type are set.
type Event struct {
	Type          EventType `json:"type"`
	Side          string    `json:"side,omitempty"`
	SpeciesID     string    `json:"speciesId,omitempty"`
	MoveID        string    `json:"moveId,omitempty"`
	ItemID        string    `json:"itemId,omitempty"`
	AreaID        string    `json:"areaId,omitempty"`
	Amount        int       `json:"amount,omitempty"`
	Critical      bool      `json:"critical,omitempty"`
	Effectiveness float64   `json:"effectiveness,omitempty"`
	Chance        float64   `json:"chance,omitempty"`
}

// Snapshot is a creature's visible battle state.
type Snapshot struct {
	SpeciesID      string                    `json:"speciesId"`
	Name           string                    `json:"name"`
	Level          int                       `json:"level"`
	HP             int                       `json:"hp"`
	MaxHP          int                       `json:"maxHp"`
	HPFraction     float64                   `json:"hpFraction"`
	Status         gamedata.StatusCondition  `json:"status"`
	StatusTurns    int                       `json:"statusTurns,omitempty"`
	ConfusionTurns int                       `json:"confusionTurns,omitempty"`
	Stages         map[gamedata.StatName]int `json:"stages,omitempty"`
	Moves          []entity.LearnedMove      `json:"moves,omitempty"`
	Types          []gamedata.ElementType    `json:"types"`
}

func snapshot(c *entity.Combatant) *Snapshot {
	if c == nil {
		return nil
	}
	moves := make([]entity.LearnedMove, len(c.Moves))
	copy(moves, c.Moves)
	return &Snapshot{
		SpeciesID:      c.SpeciesID,
		Name:           c.Name,
		Level:          c.Level,
		HP:             c.CurrentHP,
		MaxHP:          c.MaxHP(),
		HPFraction:     c.HPFraction(),
		Status:         c.Status,
		StatusTurns:    c.StatusTurns,
		ConfusionTurns: c.ConfusionTurns,
		Stages:         c.Stages.NonZero(),
		Moves:          moves,
		Types:          c.Types,
	}
}

// Outcome is everything a command or deferred step produced.
type Outcome struct {
	Log    []combat.Entry `json:"log"`
	Events []Event        `json:"events"`
	Player *Snapshot      `json:"player,omitempty"`
	Enemy  *Snapshot      `json:"enemy,omitempty"`
	State  string         `json:"state"`
	Money  int            `json:"money"`
}

// Has reports whether an event of type t occurred.
func (o *Outcome) Has(t EventType) bool {
	for _, ev := range o.Events {
		if ev.Type == t {
			return true
		}
	}
	return false
}

// step accumulates log entries and events for one outcome.
type step struct {
	log    combat.Log
	events []Event
}

func (s *step) emit(ev Event) {
	s.events = append(s.events, ev)
}
