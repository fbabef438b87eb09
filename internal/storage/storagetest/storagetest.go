// Package storagetest holds behavior every storage.Store must share.
package storagetest

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/game"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/storage"
	"github.com/samdwyer/critterquest/internal/world"
)

// Sample returns a save exercising every field.
func Sample(savedAt time.Time) *game.SaveData {
	return &game.SaveData{
		Version:   game.SaveVersion,
		SessionID: "c0ffee",
		Creatures: []entity.Record{
			{
				SpeciesID:  "pikachu",
				Level:      12,
				Experience: 300,
				CurrentHP:  20,
				Moves: []entity.MoveRecord{
					{MoveID: "thundershock", PP: 12},
					{MoveID: "growl", PP: 40},
					{MoveID: "quick-attack", PP: 30},
					{MoveID: "thunder-wave", PP: 0},
				},
				Status:      gamedata.StatusPoison,
				StatusTurns: 0,
				Ability:     gamedata.AbilityStatic,
			},
			{
				SpeciesID:      "bulbasaur",
				Level:          7,
				CurrentHP:      0,
				Moves:          []entity.MoveRecord{{MoveID: "tackle", PP: 35}},
				Status:         gamedata.StatusNone,
				ConfusionTurns: 2,
				Ability:        gamedata.AbilityOvergrow,
			},
		},
		Active:    1,
		Inventory: map[string]int{"poke-ball": 4, "boulder-badge": 1},
		Money:     275,
		AreaID:    "route-3",
		Progress: world.Progress{
			"tokiwa-forest": {DefeatCount: 12},
			"route-3":       {DefeatCount: 3, BossDefeated: true},
		},
		DefeatedGyms:  []string{"pewter-city-gym"},
		FirstAcquired: map[string]time.Time{"pikachu": savedAt.Add(-time.Hour), "bulbasaur": savedAt},
		AutoBattle:    true,
		SavedAt:       savedAt,
	}
}

// Run exercises a store created by open.
func Run(t *testing.T, open func(t *testing.T) storage.Store) {
	ctx := context.Background()
	now := time.Date(2026, 1, 23, 12, 0, 0, 0, time.UTC)

	t.Run("round trip", func(t *testing.T) {
		store := open(t)
		want := Sample(now)
		if err := store.Save(ctx, "main", want); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := store.Load(ctx, "main")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("load mismatch:\ngot  %+v\nwant %+v", got, want)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		store := open(t)
		first := Sample(now)
		if err := store.Save(ctx, "main", first); err != nil {
			t.Fatalf("save: %v", err)
		}
		second := Sample(now.Add(time.Minute))
		second.Creatures = second.Creatures[:1]
		second.Money = 10
		if err := store.Save(ctx, "main", second); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := store.Load(ctx, "main")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(got.Creatures) != 1 || got.Money != 10 {
			t.Fatalf("expected overwritten save, got %d creatures and $%d", len(got.Creatures), got.Money)
		}
	})

	t.Run("missing slot", func(t *testing.T) {
		store := open(t)
		if _, err := store.Load(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list", func(t *testing.T) {
		store := open(t)
		if err := store.Save(ctx, "old", Sample(now)); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := store.Save(ctx, "new", Sample(now.Add(time.Hour))); err != nil {
			t.Fatalf("save: %v", err)
		}
		slots, err := store.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(slots) != 2 || slots[0].Name != "new" || slots[1].Name != "old" {
			t.Fatalf("expected [new old], got %+v", slots)
		}
		if slots[0].Money != 275 || slots[0].AreaID != "route-3" {
			t.Fatalf("unexpected slot summary %+v", slots[0])
		}
	})

	t.Run("validation", func(t *testing.T) {
		store := open(t)
		if err := store.Save(ctx, " ", Sample(now)); err == nil {
			t.Fatal("expected error for blank slot")
		}
		if err := store.Save(ctx, "main", nil); err == nil {
			t.Fatal("expected error for nil save")
		}
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		if err := store.Save(cancelled, "main", Sample(now)); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}
