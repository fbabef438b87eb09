package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/world"
)

// SaveVersion is the current save format.
const SaveVersion = 1

// ErrEmptySave is returned when restoring a save with no creatures.
var ErrEmptySave = errors.New("save has no creatures")

// SaveData is the persisted form of a Session. Enemies, stat stages and
// battle flags are not saved.
type SaveData struct {
	Version       int                  `json:"version"`
	SessionID     string               `json:"sessionId"`
	Creatures     []entity.Record      `json:"creatures"`
	Active        int                  `json:"active"`
	Inventory     map[string]int       `json:"inventory"`
	Money         int                  `json:"money"`
	AreaID        string               `json:"areaId"`
	Progress      world.Progress       `json:"progress"`
	DefeatedGyms  []string             `json:"defeatedGyms"`
	FirstAcquired map[string]time.Time `json:"firstAcquired"`
	AutoBattle    bool                 `json:"autoBattle"`
	SavedAt       time.Time            `json:"savedAt"`
}

// Saver persists sessions. internal/storage provides implementations.
type Saver interface {
	Save(ctx context.Context, slot string, data *SaveData) error
	Load(ctx context.Context, slot string) (*SaveData, error)
}

// Snapshot captures the session for saving.
func (e *Engine) Snapshot(sess *Session) *SaveData {
	save := &SaveData{
		Version:       SaveVersion,
		SessionID:     sess.ID,
		Active:        sess.Roster.Active,
		Inventory:     make(map[string]int, len(sess.Inventory)),
		Money:         sess.Money,
		AreaID:        sess.AreaID,
		Progress:      world.Progress{},
		FirstAcquired: make(map[string]time.Time, len(sess.Roster.FirstAcquired)),
		AutoBattle:    sess.AutoBattle,
		SavedAt:       e.sched.Now().UTC(),
	}
	for _, c := range sess.Roster.Members {
		save.Creatures = append(save.Creatures, c.ToRecord())
	}
	for id, n := range sess.Inventory {
		save.Inventory[id] = n
	}
	for id, ap := range sess.Progress {
		cp := *ap
		save.Progress[id] = &cp
	}
	for id, ok := range sess.DefeatedGyms {
		if ok {
			save.DefeatedGyms = append(save.DefeatedGyms, id)
		}
	}
	for id, at := range sess.Roster.FirstAcquired {
		save.FirstAcquired[id] = at
	}
	return save
}

// Restore rebuilds a session from a save. Stats are re-derived from the
// species data and HP is clamped to the recomputed maximum.
func (e *Engine) Restore(save *SaveData) (*Session, error) {
	if len(save.Creatures) == 0 {
		return nil, ErrEmptySave
	}
	roster := entity.NewRoster(e.cfg.RosterCapacity)
	for i, rec := range save.Creatures {
		c, err := entity.FromRecord(rec, e.data.Species, e.data.Moves)
		if err != nil {
			return nil, fmt.Errorf("restore creature %d: %w", i, err)
		}
		roster.Members = append(roster.Members, c)
	}
	if err := roster.SetActive(save.Active); err != nil {
		roster.Active = 0
	}
	for id, at := range save.FirstAcquired {
		roster.FirstAcquired[id] = at
	}

	areaID := save.AreaID
	if e.data.Areas.GetByID(areaID) == nil {
		areaID = e.data.Areas.First().ID
	}
	sess := NewSession(save.SessionID, roster, areaID)
	sess.Money = save.Money
	sess.AutoBattle = save.AutoBattle
	for id, n := range save.Inventory {
		if n > 0 {
			sess.Inventory[id] = n
		}
	}
	for id, ap := range save.Progress {
		if ap != nil {
			cp := *ap
			sess.Progress[id] = &cp
		}
	}
	for _, id := range save.DefeatedGyms {
		sess.DefeatedGyms[id] = true
	}
	return sess, nil
}
