package combat

import (
	"testing"

	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
)

func newTestProcessor(src Source) *StatusProcessor {
	return newTestResolver(src).Status()
}

func TestStartOfTurnSleep(t *testing.T) {
	c := testMon(entity.SidePlayer, 10, 50, 20, gamedata.TypeNormal)
	c.SetStatus(gamedata.StatusSleep, 2)
	p := newTestProcessor(script())
	log := &Log{}

	if p.StartOfTurn(c, log).CanAct {
		t.Fatal("sleeping creature should not act")
	}
	if c.StatusTurns != 1 || c.Status != gamedata.StatusSleep {
		t.Fatalf("after first turn: status %q turns %d, want sleep 1", c.Status, c.StatusTurns)
	}

	// Waking up still costs the turn.
	if p.StartOfTurn(c, log).CanAct {
		t.Error("creature should not act on the turn it wakes up")
	}
	if c.Status != gamedata.StatusNone {
		t.Errorf("status = %q, want none after waking", c.Status)
	}
	if !logContains(log, "woke up") {
		t.Errorf("log = %v, want wake message", log.Entries())
	}

	if !p.StartOfTurn(c, log).CanAct {
		t.Error("awake creature should act")
	}
}

func TestStartOfTurnParalysis(t *testing.T) {
	tests := []struct {
		draw   float64
		canAct bool
	}{
		{0.1, false},
		{0.24, false},
		{0.25, true},
		{0.9, true},
	}
	for _, tt := range tests {
		c := testMon(entity.SidePlayer, 10, 50, 20, gamedata.TypeNormal)
		c.SetStatus(gamedata.StatusParalysis, 0)

		got := newTestProcessor(script(tt.draw)).StartOfTurn(c, &Log{})
		if got.CanAct != tt.canAct {
			t.Errorf("draw %v: CanAct = %v, want %v", tt.draw, got.CanAct, tt.canAct)
		}
		if c.Status != gamedata.StatusParalysis {
			t.Errorf("draw %v: paralysis should persist", tt.draw)
		}
	}
}

func TestStartOfTurnConfusion(t *testing.T) {
	t.Run("self hit", func(t *testing.T) {
		c := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeFire)
		c.SetConfusion(3)

		got := newTestProcessor(script(0.1, 0.5, 0.5)).StartOfTurn(c, &Log{})
		if got.CanAct {
			t.Error("self hit should forfeit the turn")
		}
		// 40 power normal physical, no same-type bonus for a fire type.
		if got.SelfDamage != 19 || c.CurrentHP != 181 {
			t.Errorf("self damage %d, hp %d; want 19 and 181", got.SelfDamage, c.CurrentHP)
		}
		if c.ConfusionTurns != 2 {
			t.Errorf("ConfusionTurns = %d, want 2", c.ConfusionTurns)
		}
	})

	t.Run("self hit can faint", func(t *testing.T) {
		c := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeFire)
		c.SetConfusion(3)
		c.SetStatus(gamedata.StatusPoison, 0)
		c.Stages.Set(gamedata.StatDefense, -2)
		c.CurrentHP = 5

		got := newTestProcessor(script(0.1)).StartOfTurn(c, &Log{})
		if got.CanAct || !c.IsFainted() {
			t.Fatalf("CanAct=%v fainted=%v, want forfeited faint", got.CanAct, c.IsFainted())
		}
		if c.Status != gamedata.StatusNone || c.IsConfused() || !c.Stages.IsNeutral() {
			t.Error("fainted creature should be reset to neutral")
		}
	})

	t.Run("no self hit", func(t *testing.T) {
		c := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeNormal)
		c.SetConfusion(3)

		got := newTestProcessor(script(0.9)).StartOfTurn(c, &Log{})
		if !got.CanAct || got.SelfDamage != 0 {
			t.Errorf("TurnCheck = %+v, want act without damage", got)
		}
	})

	t.Run("snaps out", func(t *testing.T) {
		c := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeNormal)
		c.SetConfusion(1)
		src := script(0.0)
		log := &Log{}

		got := newTestProcessor(src).StartOfTurn(c, log)
		if !got.CanAct || c.IsConfused() {
			t.Errorf("TurnCheck = %+v confused=%v, want free to act", got, c.IsConfused())
		}
		if len(src.floats) != 1 {
			t.Error("snapping out should not roll for a self hit")
		}
		if !logContains(log, "snapped out") {
			t.Errorf("log = %v", log.Entries())
		}
	})
}

func TestEndOfTurn(t *testing.T) {
	tests := []struct {
		name   string
		status gamedata.StatusCondition
		hp     int
		maxHP  int
		want   int
	}{
		{"poison", gamedata.StatusPoison, 200, 200, 12},
		{"burn", gamedata.StatusBurn, 160, 160, 10},
		{"minimum one", gamedata.StatusPoison, 10, 10, 1},
		{"capped at current hp", gamedata.StatusBurn, 3, 200, 3},
		{"paralysis deals nothing", gamedata.StatusParalysis, 200, 200, 0},
		{"fainted takes nothing", gamedata.StatusPoison, 0, 200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testMon(entity.SideEnemy, 10, tt.maxHP, 20, gamedata.TypeNormal)
			c.CurrentHP = tt.hp
			c.Status = tt.status

			got := newTestProcessor(script()).EndOfTurn(c, &Log{})
			if got != tt.want {
				t.Errorf("EndOfTurn() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEndOfTurnFaintResetsState(t *testing.T) {
	c := testMon(entity.SideEnemy, 10, 200, 20, gamedata.TypeNormal)
	c.CurrentHP = 5
	c.SetStatus(gamedata.StatusPoison, 0)
	c.SetConfusion(2)
	c.Stages.Set(gamedata.StatAttack, 3)
	c.Flags.FlashFire = true
	log := &Log{}

	newTestProcessor(script()).EndOfTurn(c, log)

	if !c.IsFainted() {
		t.Fatal("creature should have fainted")
	}
	if c.Status != gamedata.StatusNone || c.IsConfused() || !c.Stages.IsNeutral() || c.Flags.FlashFire {
		t.Errorf("fainted creature not reset: %+v", c)
	}
	if !logContains(log, "fainted") {
		t.Errorf("log = %v, want faint message", log.Entries())
	}
}

func TestApplyStatus(t *testing.T) {
	t.Run("sleep rolls turns", func(t *testing.T) {
		c := testMon(entity.SideEnemy, 10, 50, 20, gamedata.TypeNormal)
		src := &scriptedSource{ints: []int{2}}

		ok := newTestProcessor(src).ApplyStatus(c, *move("hypnosis").StatusEffect, &Log{})
		if !ok || c.Status != gamedata.StatusSleep || c.StatusTurns != 3 {
			t.Errorf("ok=%v status=%q turns=%d, want sleep for 3", ok, c.Status, c.StatusTurns)
		}
	})

	t.Run("major statuses are exclusive", func(t *testing.T) {
		c := testMon(entity.SideEnemy, 10, 50, 20, gamedata.TypeNormal)
		c.SetStatus(gamedata.StatusPoison, 0)
		log := &Log{}

		ok := newTestProcessor(script()).ApplyStatus(c, *move("thunder-wave").StatusEffect, log)
		if ok || c.Status != gamedata.StatusPoison {
			t.Errorf("ok=%v status=%q, want poison unchanged", ok, c.Status)
		}
		if !logContains(log, "already") {
			t.Errorf("log = %v, want already-affected message", log.Entries())
		}
	})

	t.Run("confusion coexists with major status", func(t *testing.T) {
		c := testMon(entity.SideEnemy, 10, 50, 20, gamedata.TypeNormal)
		c.SetStatus(gamedata.StatusBurn, 0)
		src := &scriptedSource{ints: []int{0}}

		ok := newTestProcessor(src).ApplyStatus(c, *move("supersonic").StatusEffect, &Log{})
		if !ok || c.ConfusionTurns != 2 || c.Status != gamedata.StatusBurn {
			t.Errorf("ok=%v confusion=%d status=%q", ok, c.ConfusionTurns, c.Status)
		}
	})

	t.Run("already confused", func(t *testing.T) {
		c := testMon(entity.SideEnemy, 10, 50, 20, gamedata.TypeNormal)
		c.SetConfusion(4)

		ok := newTestProcessor(script()).ApplyStatus(c, *move("supersonic").StatusEffect, &Log{})
		if ok || c.ConfusionTurns != 4 {
			t.Errorf("ok=%v confusion=%d, want unchanged 4", ok, c.ConfusionTurns)
		}
	})

	t.Run("chance fails", func(t *testing.T) {
		c := testMon(entity.SideEnemy, 10, 50, 20, gamedata.TypeNormal)

		ok := newTestProcessor(script(0.5)).ApplyStatus(c, *move("ember").StatusEffect, &Log{})
		if ok || c.Status != gamedata.StatusNone {
			t.Errorf("ok=%v status=%q, want no burn", ok, c.Status)
		}
	})
}

func TestApplyStatChangeClamps(t *testing.T) {
	c := testMon(entity.SidePlayer, 10, 50, 20, gamedata.TypeNormal)
	c.Stages.Set(gamedata.StatAttack, 4)
	p := newTestProcessor(script())
	log := &Log{}

	if !p.ApplyStatChange(c, gamedata.StatAttack, 2, log) {
		t.Fatal("first raise should apply")
	}
	if got := c.Stages.Get(gamedata.StatAttack); got != 6 {
		t.Fatalf("attack stage = %d, want 6", got)
	}
	if !logContains(log, "Attack rose sharply") {
		t.Errorf("log = %v, want sharp rise", log.Entries())
	}

	if p.ApplyStatChange(c, gamedata.StatAttack, 2, log) {
		t.Error("raise at +6 should be a no-op")
	}
	if !logContains(log, "won't go any higher") {
		t.Errorf("log = %v, want clamp message", log.Entries())
	}

	c.Stages.Set(gamedata.StatDefense, -5)
	p.ApplyStatChange(c, gamedata.StatDefense, -2, log)
	if got := c.Stages.Get(gamedata.StatDefense); got != -6 {
		t.Errorf("defense stage = %d, want -6", got)
	}
	if p.ApplyStatChange(c, gamedata.StatDefense, -1, log) {
		t.Error("lower at -6 should be a no-op")
	}
}

func TestCure(t *testing.T) {
	c := testMon(entity.SidePlayer, 10, 50, 20, gamedata.TypeNormal)
	c.SetStatus(gamedata.StatusPoison, 0)
	c.SetConfusion(2)
	p := newTestProcessor(script())

	if p.Cure(c, gamedata.StatusBurn, nil) {
		t.Error("burn cure should not cure poison")
	}
	if !p.Cure(c, gamedata.StatusPoison, nil) || c.Status != gamedata.StatusNone {
		t.Error("poison cure should clear poison")
	}
	if !c.IsConfused() {
		t.Error("curing poison should leave confusion")
	}
	if !p.Cure(c, gamedata.StatusConfusion, nil) || c.IsConfused() {
		t.Error("confusion cure should clear confusion")
	}

	c.SetStatus(gamedata.StatusSleep, 2)
	if !p.CureMajor(c, nil) || c.Status != gamedata.StatusNone {
		t.Error("CureMajor should clear sleep")
	}
	if p.CureMajor(c, nil) {
		t.Error("CureMajor on a healthy creature should report false")
	}
}
