// Package game runs battle sessions: the command-style engine, its
// scheduler, save mapping and the terminal game loop.
package game

// State represents the session's battle state.
type State int

const (
	// StateIdle means no enemy is present.
	StateIdle State = iota
	// StateBattle means an enemy is present and the player may act.
	StateBattle
	// StateBusy means a turn, capture or evolution is still resolving.
	StateBusy
	// StateDefeated means every owned creature has fainted.
	StateDefeated
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBattle:
		return "battle"
	case StateBusy:
		return "busy"
	case StateDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}
