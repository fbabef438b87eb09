package game

import (
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/world"
)

// Sink receives outcomes produced by deferred steps.
type Sink func(*Outcome)

// Session is the whole mutable state of one player's game. The engine
// reads and mutates it; nothing is kept in globals.
type Session struct {
	ID string

	Roster       *entity.Roster
	Enemy        *entity.Combatant
	AreaID       string
	Progress     world.Progress
	DefeatedGyms map[string]bool
	Inventory    Inventory
	Money        int

	// AutoBattle lets the background tick choose moves.
	AutoBattle bool
	// Turns counts turns in the current battle.
	Turns int

	busy    bool
	pending int
	sink    Sink
}

// NewSession creates a session around a roster.
func NewSession(id string, roster *entity.Roster, areaID string) *Session {
	return &Session{
		ID:           id,
		Roster:       roster,
		AreaID:       areaID,
		Progress:     world.Progress{},
		DefeatedGyms: make(map[string]bool),
		Inventory:    Inventory{},
	}
}

// SetSink sets where deferred outcomes are delivered.
func (s *Session) SetSink(sink Sink) { s.sink = sink }

// Busy reports whether a command is still resolving.
func (s *Session) Busy() bool { return s.busy }

// Active returns the player's creature in battle.
func (s *Session) Active() *entity.Combatant {
	return s.Roster.ActiveMember()
}

// HasEnemy reports whether a living enemy is present.
func (s *Session) HasEnemy() bool {
	return s.Enemy != nil && s.Enemy.IsAlive()
}

// State returns the current battle state.
func (s *Session) State() State {
	switch {
	case s.busy:
		return StateBusy
	case s.Roster.Len() == 0 || s.Roster.AllFainted():
		return StateDefeated
	case s.HasEnemy():
		return StateBattle
	default:
		return StateIdle
	}
}

func (s *Session) deliver(o *Outcome) {
	if s.sink != nil {
		s.sink(o)
	}
}
