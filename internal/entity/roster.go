package entity

import (
	"errors"
	"time"
)

var (
	// ErrRosterFull is returned when adding past capacity.
	ErrRosterFull = errors.New("roster is full")
	// ErrInvalidIndex is returned for an index outside the roster.
	ErrInvalidIndex = errors.New("invalid roster index")
)

// Roster is the player's collection of owned creatures.
// Exactly one member is active in battle.
type Roster struct {
	Members  []*Combatant
	Active   int
	Capacity int

	// FirstAcquired records when each species was first owned.
	FirstAcquired map[string]time.Time
}

// NewRoster creates an empty roster. A capacity of zero means unlimited.
func NewRoster(capacity int) *Roster {
	return &Roster{
		Capacity:      capacity,
		FirstAcquired: make(map[string]time.Time),
	}
}

// Len returns the number of owned creatures.
func (r *Roster) Len() int { return len(r.Members) }

// IsFull reports whether the roster is at capacity.
func (r *Roster) IsFull() bool {
	return r.Capacity > 0 && len(r.Members) >= r.Capacity
}

// Add appends a creature as player-side and records first acquisition.
func (r *Roster) Add(c *Combatant, at time.Time) (int, error) {
	if r.IsFull() {
		return -1, ErrRosterFull
	}
	c.Side = SidePlayer
	c.Encounter = nil
	r.Members = append(r.Members, c)
	r.markAcquired(c.SpeciesID, at)
	return len(r.Members) - 1, nil
}

// Replace swaps the member at i, used by evolution.
func (r *Roster) Replace(i int, c *Combatant, at time.Time) error {
	if i < 0 || i >= len(r.Members) {
		return ErrInvalidIndex
	}
	c.Side = SidePlayer
	r.Members[i] = c
	r.markAcquired(c.SpeciesID, at)
	return nil
}

func (r *Roster) markAcquired(speciesID string, at time.Time) {
	if r.FirstAcquired == nil {
		r.FirstAcquired = make(map[string]time.Time)
	}
	if _, ok := r.FirstAcquired[speciesID]; !ok {
		r.FirstAcquired[speciesID] = at
	}
}

// ActiveMember returns the active creature, or nil for an empty roster.
func (r *Roster) ActiveMember() *Combatant {
	if r.Active < 0 || r.Active >= len(r.Members) {
		return nil
	}
	return r.Members[r.Active]
}

// Get returns the member at i, or nil.
func (r *Roster) Get(i int) *Combatant {
	if i < 0 || i >= len(r.Members) {
		return nil
	}
	return r.Members[i]
}

// SetActive changes the active index.
func (r *Roster) SetActive(i int) error {
	if i < 0 || i >= len(r.Members) {
		return ErrInvalidIndex
	}
	r.Active = i
	return nil
}

// NextAlive finds the next conscious member after the active one, wrapping
// around the roster.
func (r *Roster) NextAlive() (int, bool) {
	n := len(r.Members)
	for step := 1; step <= n; step++ {
		i := (r.Active + step) % n
		if r.Members[i].IsAlive() {
			return i, true
		}
	}
	return -1, false
}

// AllFainted reports whether no member can battle.
func (r *Roster) AllFainted() bool {
	for _, m := range r.Members {
		if m.IsAlive() {
			return false
		}
	}
	return true
}

// Owns reports whether any member is of the species.
func (r *Roster) Owns(speciesID string) bool {
	return r.IndexOf(speciesID) >= 0
}

// IndexOf returns the first member of the species, or -1.
func (r *Roster) IndexOf(speciesID string) int {
	for i, m := range r.Members {
		if m.SpeciesID == speciesID {
			return i
		}
	}
	return -1
}
