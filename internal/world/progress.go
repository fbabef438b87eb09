package world

import (
	"errors"

	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
)

var (
	// ErrAreaLocked is returned when leaving an area before its unlock
	// condition holds.
	ErrAreaLocked = errors.New("area is not cleared yet")
	// ErrLastArea is returned when there is no area after the current one.
	ErrLastArea = errors.New("no further areas")
)

// AreaLookup resolves area definitions by ID.
type AreaLookup interface {
	GetByID(id string) *gamedata.AreaDef
}

// AreaProgress is what the player has achieved in one area.
type AreaProgress struct {
	DefeatCount  int  `json:"defeatCount"`
	BossDefeated bool `json:"bossDefeated"`
}

// Progress maps area IDs to progress.
type Progress map[string]*AreaProgress

// Get returns the progress for an area, creating it if needed.
func (p Progress) Get(areaID string) *AreaProgress {
	ap, ok := p[areaID]
	if !ok {
		ap = &AreaProgress{}
		p[areaID] = ap
	}
	return ap
}

// IsCleared reports whether an area's unlock condition holds. Areas
// without a condition are always cleared.
func (p Progress) IsCleared(area *gamedata.AreaDef) bool {
	cond := area.Unlock
	if cond == nil {
		return true
	}
	ap := p[area.ID]
	if ap == nil {
		return false
	}
	switch cond.Type {
	case gamedata.UnlockDefeatCount:
		return ap.DefeatCount >= cond.Count
	case gamedata.UnlockDefeatBoss:
		return ap.BossDefeated
	default:
		return false
	}
}

// RecordDefeat counts a defeated enemy and reports whether this defeat
// cleared the area.
func (p Progress) RecordDefeat(area *gamedata.AreaDef, enemy *entity.Combatant) bool {
	before := p.IsCleared(area)
	ap := p.Get(area.ID)
	ap.DefeatCount++

	if cond := area.Unlock; cond != nil && cond.Type == gamedata.UnlockDefeatBoss {
		isBoss := enemy.Encounter != nil && (enemy.Encounter.IsBoss || enemy.Encounter.IsGymLeader)
		if isBoss && enemy.SpeciesID == cond.BossSpeciesID {
			ap.BossDefeated = true
		}
	}
	return !before && p.IsCleared(area)
}

// NextArea returns the area after current if current is cleared.
func (p Progress) NextArea(areas AreaLookup, current *gamedata.AreaDef) (*gamedata.AreaDef, error) {
	if current.NextAreaID == "" {
		return nil, ErrLastArea
	}
	if !p.IsCleared(current) {
		return nil, ErrAreaLocked
	}
	next := areas.GetByID(current.NextAreaID)
	if next == nil {
		return nil, ErrLastArea
	}
	return next, nil
}
