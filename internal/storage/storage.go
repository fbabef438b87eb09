// Package storage defines how game sessions are persisted. Drivers live
// in subpackages.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/samdwyer/critterquest/internal/game"
)

// ErrNotFound is returned when a save slot does not exist.
var ErrNotFound = errors.New("save not found")

// Slot summarizes one stored save.
type Slot struct {
	Name      string    `json:"name"`
	SessionID string    `json:"sessionId"`
	AreaID    string    `json:"areaId"`
	Money     int       `json:"money"`
	SavedAt   time.Time `json:"savedAt"`
}

// Store persists session saves by slot name.
type Store interface {
	Save(ctx context.Context, slot string, data *game.SaveData) error
	Load(ctx context.Context, slot string) (*game.SaveData, error)
	List(ctx context.Context) ([]Slot, error)
	Close() error
}
