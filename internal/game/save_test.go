package game

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
)

func TestSnapshotRestore(t *testing.T) {
	h := newHarness(t, script())
	sess := h.session
	h.addMember(t, "charmander", 9)

	pikachu := sess.Active()
	pikachu.CurrentHP = 7
	pikachu.Experience = 40
	pikachu.Moves[0].PP = 3
	pikachu.SetStatus(gamedata.StatusParalysis, 0)
	pikachu.Stages.Set(gamedata.StatAttack, 2)
	sess.Money = 120
	sess.AutoBattle = true
	sess.Progress.Get("tokiwa-forest").DefeatCount = 4
	sess.DefeatedGyms["pewter-city-gym"] = true
	if err := sess.Roster.SetActive(1); err != nil {
		t.Fatal(err)
	}
	h.placeEnemy(t, "rattata", 3)

	save := h.engine.Snapshot(sess)

	// Saves travel as JSON through every store.
	raw, err := json.Marshal(save)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded SaveData
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	restored, err := h.engine.Restore(&decoded)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	if restored.Enemy != nil {
		t.Error("enemies are not saved")
	}
	if restored.Roster.Active != 1 || restored.Money != 120 || !restored.AutoBattle {
		t.Errorf("restored = active %d money %d auto %v", restored.Roster.Active, restored.Money, restored.AutoBattle)
	}
	if restored.Progress.Get("tokiwa-forest").DefeatCount != 4 || !restored.DefeatedGyms["pewter-city-gym"] {
		t.Error("area progress lost")
	}
	if !reflect.DeepEqual(map[string]int(restored.Inventory), map[string]int(sess.Inventory)) {
		t.Errorf("Inventory = %v, want %v", restored.Inventory, sess.Inventory)
	}

	got := restored.Roster.Get(0)
	if got.CurrentHP != 7 || got.Experience != 40 || got.Moves[0].PP != 3 {
		t.Errorf("pikachu = hp %d exp %d pp %d", got.CurrentHP, got.Experience, got.Moves[0].PP)
	}
	if got.Stats != pikachu.Stats {
		t.Errorf("Stats = %+v, want %+v", got.Stats, pikachu.Stats)
	}
	if got.Status != gamedata.StatusParalysis {
		t.Errorf("Status = %s, want paralysis", got.Status)
	}
	if !got.Stages.IsNeutral() {
		t.Error("stat stages should load neutral")
	}
	if !restored.Roster.FirstAcquired["charmander"].Equal(testStart) {
		t.Errorf("FirstAcquired = %v", restored.Roster.FirstAcquired)
	}
}

func TestRestoreErrors(t *testing.T) {
	h := newHarness(t, script())

	if _, err := h.engine.Restore(&SaveData{}); !errors.Is(err, ErrEmptySave) {
		t.Errorf("err = %v, want ErrEmptySave", err)
	}

	save := &SaveData{Creatures: []entity.Record{{SpeciesID: "missingno", Level: 5}}}
	if _, err := h.engine.Restore(save); !errors.Is(err, entity.ErrUnknownSpecies) {
		t.Errorf("err = %v, want ErrUnknownSpecies", err)
	}

	save = &SaveData{Creatures: []entity.Record{{SpeciesID: "pikachu", Level: 5, CurrentHP: 999}}, Active: 4, AreaID: "gone"}
	sess, err := h.engine.Restore(save)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	c := sess.Active()
	if c == nil || c.CurrentHP != c.MaxHP() {
		t.Error("HP should clamp to the derived maximum")
	}
	if sess.AreaID != "tokiwa-forest" {
		t.Errorf("AreaID = %q, want fallback to the first area", sess.AreaID)
	}
}
