package entity

import (
	"testing"

	"github.com/samdwyer/critterquest/internal/gamedata"
)

func newTestSpecies() *gamedata.SpeciesDef {
	return &gamedata.SpeciesDef{
		ID:        "pikachu",
		Name:      "Pikachu",
		Types:     []gamedata.ElementType{gamedata.TypeElectric},
		BaseStats: pikachuBase,
		Abilities: []gamedata.AbilityID{gamedata.AbilityStatic},
	}
}

func newTestCombatant(level int) *Combatant {
	moves := []LearnedMove{
		{MoveID: "thundershock", PP: 30, MaxPP: 30},
		{MoveID: "growl", PP: 40, MaxPP: 40},
	}
	return NewCombatant(newTestSpecies(), level, SidePlayer, moves)
}

func TestNewCombatant(t *testing.T) {
	c := newTestCombatant(10)

	if c.CurrentHP != c.MaxHP() || c.MaxHP() != 27 {
		t.Errorf("HP = %d/%d, want 27/27", c.CurrentHP, c.MaxHP())
	}
	if c.Ability != gamedata.AbilityStatic {
		t.Errorf("Ability = %q, want static", c.Ability)
	}
	if c.Status != gamedata.StatusNone {
		t.Errorf("Status = %q, want none", c.Status)
	}

	clamped := NewCombatant(newTestSpecies(), 250, SideEnemy, nil)
	if clamped.Level != MaxLevel {
		t.Errorf("Level = %d, want %d", clamped.Level, MaxLevel)
	}
}

func TestTakeDamageClampsAndFaints(t *testing.T) {
	c := newTestCombatant(10)
	c.SetStatus(gamedata.StatusBurn, 0)
	c.SetConfusion(3)
	c.Stages.Set(gamedata.StatAttack, 2)
	c.Flags.FlashFire = true

	if got := c.TakeDamage(5); got != 5 {
		t.Errorf("TakeDamage(5) = %d, want 5", got)
	}
	if got := c.TakeDamage(-3); got != 0 {
		t.Errorf("TakeDamage(-3) = %d, want 0", got)
	}

	got := c.TakeDamage(1000)
	if got != 22 {
		t.Errorf("TakeDamage(1000) = %d, want 22", got)
	}
	if c.CurrentHP != 0 || !c.IsFainted() {
		t.Fatalf("CurrentHP = %d, want 0", c.CurrentHP)
	}
	if c.Status != gamedata.StatusNone || c.ConfusionTurns != 0 {
		t.Errorf("faint should clear status, got %q confusion %d", c.Status, c.ConfusionTurns)
	}
	if !c.Stages.IsNeutral() || c.Flags.FlashFire {
		t.Error("faint should reset stages and flags")
	}
}

func TestHealAndRevive(t *testing.T) {
	c := newTestCombatant(10)
	c.TakeDamage(10)

	if got := c.Heal(100); got != 10 {
		t.Errorf("Heal(100) = %d, want 10", got)
	}
	if c.CurrentHP != c.MaxHP() {
		t.Errorf("CurrentHP = %d, want %d", c.CurrentHP, c.MaxHP())
	}

	c.TakeDamage(c.MaxHP())
	if got := c.Heal(10); got != 0 {
		t.Errorf("Heal on fainted = %d, want 0", got)
	}
	if !c.Revive(c.MaxHP() / 2) {
		t.Fatal("Revive should succeed on fainted combatant")
	}
	if c.CurrentHP != 13 {
		t.Errorf("CurrentHP after revive = %d, want 13", c.CurrentHP)
	}
	if c.Revive(5) {
		t.Error("Revive should fail on a conscious combatant")
	}
}

func TestMoveUses(t *testing.T) {
	c := newTestCombatant(5)

	if !c.ConsumePP("growl") {
		t.Fatal("ConsumePP(growl) should succeed")
	}
	if c.Move("growl").PP != 39 {
		t.Errorf("growl PP = %d, want 39", c.Move("growl").PP)
	}
	if c.ConsumePP("tackle") {
		t.Error("ConsumePP on unknown move should fail")
	}

	c.Move("thundershock").PP = 0
	if len(c.UsableMoves()) != 1 {
		t.Errorf("UsableMoves() = %v, want one move", c.UsableMoves())
	}
	if c.ConsumePP("thundershock") {
		t.Error("ConsumePP with zero PP should fail")
	}

	c.RestoreAllPP()
	if c.Move("thundershock").PP != 30 || c.Move("growl").PP != 40 {
		t.Error("RestoreAllPP should refill every move")
	}
}

func TestLearnMoveCap(t *testing.T) {
	c := newTestCombatant(5)

	if !c.LearnMove(LearnedMove{MoveID: "quick-attack", PP: 30, MaxPP: 30}) {
		t.Error("LearnMove should succeed with room")
	}
	if c.LearnMove(LearnedMove{MoveID: "growl"}) {
		t.Error("LearnMove should refuse a known move")
	}
	c.LearnMove(LearnedMove{MoveID: "agility"})
	if c.LearnMove(LearnedMove{MoveID: "thunderbolt"}) {
		t.Error("LearnMove should refuse past MaxMoves")
	}
	if len(c.Moves) != MaxMoves {
		t.Errorf("len(Moves) = %d, want %d", len(c.Moves), MaxMoves)
	}
}

func TestSideString(t *testing.T) {
	if SidePlayer.String() != "player" || SideEnemy.String() != "enemy" {
		t.Error("unexpected side names")
	}
}

type moveTable map[string]*gamedata.MoveDef

func (m moveTable) GetByID(id string) *gamedata.MoveDef { return m[id] }

func TestBuildMoves(t *testing.T) {
	moves := moveTable{
		"tackle": {ID: "tackle", PP: 35},
		"growl":  {ID: "growl", PP: 40},
	}

	got := BuildMoves([]string{"tackle", "growl", "tackle", "lick"}, moves)
	if len(got) != 3 {
		t.Fatalf("BuildMoves() = %v, want 3 moves", got)
	}
	if got[0].PP != 35 || got[1].PP != 40 {
		t.Errorf("BuildMoves() PP = %d/%d, want 35/40", got[0].PP, got[1].PP)
	}
	if got[2].MoveID != "lick" || got[2].PP != 0 {
		t.Errorf("unknown move = %+v, want lick with zero PP", got[2])
	}

	if tail := LastN([]string{"a", "b", "c", "d", "e"}, 4); len(tail) != 4 || tail[0] != "b" {
		t.Errorf("LastN() = %v, want [b c d e]", tail)
	}
}
