package combat

import (
	"strings"
	"testing"

	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
)

func TestResolveMiss(t *testing.T) {
	user := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeGrass)
	target := testMon(entity.SideEnemy, 50, 200, 100, gamedata.TypeNormal)
	log := &Log{}

	res := newTestResolver(script(0.95)).Resolve(move("razor-leaf"), user, target, log)
	if res.Hit || res.Damage != 0 {
		t.Errorf("Resolve() = %+v, want miss", res)
	}
	if target.CurrentHP != 200 {
		t.Errorf("target hp = %d, want untouched", target.CurrentHP)
	}
	if !logContains(log, "missed") {
		t.Errorf("log = %v, want miss message", log.Entries())
	}
}

func TestResolveNullAccuracyNeverMisses(t *testing.T) {
	user := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeNormal)
	src := script(0.999)

	res := newTestResolver(src).Resolve(move("swords-dance"), user, user, &Log{})
	if !res.Hit {
		t.Error("move without accuracy should always hit")
	}
	if len(src.floats) != 1 {
		t.Error("move without accuracy should not draw")
	}
}

func TestResolveStatusMoveTwiceCapsStage(t *testing.T) {
	user := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeNormal)
	target := testMon(entity.SideEnemy, 50, 200, 100, gamedata.TypeNormal)
	user.Stages.Set(gamedata.StatAttack, 4)
	r := newTestResolver(script())
	log := &Log{}

	r.Resolve(move("swords-dance"), user, target, log)
	r.Resolve(move("swords-dance"), user, target, log)

	if got := user.Stages.Get(gamedata.StatAttack); got != 6 {
		t.Errorf("attack stage = %d, want 6", got)
	}
	if !logContains(log, "won't go any higher") {
		t.Errorf("log = %v, want no-op message", log.Entries())
	}
}

func TestResolveDamageAndFaint(t *testing.T) {
	user := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeNormal)
	target := testMon(entity.SideEnemy, 50, 200, 100, gamedata.TypeNormal)
	target.SetStatus(gamedata.StatusBurn, 0)
	target.CurrentHP = 20
	log := &Log{}

	res := newTestResolver(script()).Resolve(move("tackle"), user, target, log)
	if !res.Hit || res.Damage != 20 || !res.TargetFainted {
		t.Errorf("Resolve() = %+v, want 20 damage and faint", res)
	}
	if target.CurrentHP != 0 || target.Status != gamedata.StatusNone {
		t.Errorf("target hp=%d status=%q, want 0 and none", target.CurrentHP, target.Status)
	}
	if !logContains(log, "Wild Testmon fainted!") {
		t.Errorf("log = %v, want faint message", log.Entries())
	}
}

func TestResolveStaticParalyzesAttacker(t *testing.T) {
	user := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeNormal)
	target := testMon(entity.SideEnemy, 50, 200, 100, gamedata.TypeElectric)
	target.Ability = gamedata.AbilityStatic

	// accuracy, crit, variance, static roll
	res := newTestResolver(script(0.5, 0.5, 0.5, 0.1)).Resolve(move("tackle"), user, target, &Log{})
	if res.Damage != 28 {
		t.Errorf("damage = %d, want 28", res.Damage)
	}
	if user.Status != gamedata.StatusParalysis {
		t.Errorf("attacker status = %q, want paralysis", user.Status)
	}

	// Non-contact moves never trigger it.
	other := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeWater)
	newTestResolver(script(0.5, 0.5, 0.5, 0.0)).Resolve(move("water-gun"), other, target, &Log{})
	if other.Status != gamedata.StatusNone {
		t.Errorf("non-contact attacker status = %q, want none", other.Status)
	}
}

func TestResolveSecondaryStatus(t *testing.T) {
	user := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeFire)
	target := testMon(entity.SideEnemy, 50, 200, 100, gamedata.TypeNormal)

	newTestResolver(script(0.5, 0.5, 0.5, 0.05)).Resolve(move("ember"), user, target, &Log{})
	if target.Status != gamedata.StatusBurn {
		t.Errorf("target status = %q, want burn", target.Status)
	}
}

func TestTurn(t *testing.T) {
	t.Run("consumes pp when acting", func(t *testing.T) {
		actor := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeNormal)
		actor.Moves = []entity.LearnedMove{{MoveID: "tackle", PP: 35, MaxPP: 35}}
		opp := testMon(entity.SideEnemy, 50, 200, 100, gamedata.TypeNormal)

		res := newTestResolver(script()).Turn(TurnRequest{Actor: actor, Opponent: opp, MoveID: "tackle", ConsumePP: true}, &Log{})
		if !res.Acted || res.Move.Damage != 28 {
			t.Errorf("Turn() = %+v, want acted for 28", res)
		}
		if actor.Moves[0].PP != 34 {
			t.Errorf("PP = %d, want 34", actor.Moves[0].PP)
		}
	})

	t.Run("sleeping actor keeps pp", func(t *testing.T) {
		actor := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeNormal)
		actor.Moves = []entity.LearnedMove{{MoveID: "tackle", PP: 35, MaxPP: 35}}
		actor.SetStatus(gamedata.StatusSleep, 3)
		opp := testMon(entity.SideEnemy, 50, 200, 100, gamedata.TypeNormal)

		res := newTestResolver(script()).Turn(TurnRequest{Actor: actor, Opponent: opp, MoveID: "tackle", ConsumePP: true}, &Log{})
		if res.Acted || actor.Moves[0].PP != 35 || opp.CurrentHP != 200 {
			t.Errorf("Turn() = %+v pp=%d opp=%d, want forfeited turn", res, actor.Moves[0].PP, opp.CurrentHP)
		}
	})

	t.Run("forfeited turn still applies residuals", func(t *testing.T) {
		actor := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeNormal)
		actor.SetStatus(gamedata.StatusSleep, 3)
		opp := testMon(entity.SideEnemy, 50, 160, 100, gamedata.TypeNormal)
		opp.SetStatus(gamedata.StatusPoison, 0)

		res := newTestResolver(script()).Turn(TurnRequest{Actor: actor, Opponent: opp, MoveID: "tackle"}, &Log{})
		if res.Acted {
			t.Error("sleeping actor should not act")
		}
		if res.OpponentResidual != 10 || opp.CurrentHP != 150 {
			t.Errorf("opponent residual = %d hp=%d, want 10 and 150", res.OpponentResidual, opp.CurrentHP)
		}
		if res.ActorResidual != 0 {
			t.Errorf("actor residual = %d, want 0", res.ActorResidual)
		}
	})

	t.Run("confusion self-hit faint skips actor residual", func(t *testing.T) {
		actor := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeNormal)
		actor.CurrentHP = 1
		actor.SetStatus(gamedata.StatusPoison, 0)
		actor.SetConfusion(3)
		actor.Stages.Set(gamedata.StatAttack, 2)
		opp := testMon(entity.SideEnemy, 50, 160, 100, gamedata.TypeNormal)
		opp.SetStatus(gamedata.StatusBurn, 0)
		log := &Log{}

		res := newTestResolver(script(0.0)).Turn(TurnRequest{Actor: actor, Opponent: opp, MoveID: "tackle"}, log)
		if res.Acted || res.SelfDamage != 1 || !actor.IsFainted() {
			t.Fatalf("Turn() = %+v, want a fainting self-hit", res)
		}
		if res.ActorResidual != 0 {
			t.Errorf("actor residual = %d, want 0", res.ActorResidual)
		}
		if res.OpponentResidual != 10 {
			t.Errorf("opponent residual = %d, want 10", res.OpponentResidual)
		}
		if actor.Status != gamedata.StatusNone || actor.IsConfused() || actor.Stages.Get(gamedata.StatAttack) != 0 {
			t.Errorf("fainted actor kept state: status=%q confusion=%d attack=%d",
				actor.Status, actor.ConfusionTurns, actor.Stages.Get(gamedata.StatAttack))
		}
		if logContains(log, "Testmon is hurt by its poison") {
			t.Errorf("log = %v, fainted actor should take no residual", log.Entries())
		}
	})

	t.Run("unknown move forfeits", func(t *testing.T) {
		actor := testMon(entity.SideEnemy, 50, 200, 100, gamedata.TypeNormal)
		opp := testMon(entity.SidePlayer, 50, 200, 100, gamedata.TypeNormal)
		log := &Log{}

		res := newTestResolver(script()).Turn(TurnRequest{Actor: actor, Opponent: opp, MoveID: "splash"}, log)
		if res.Acted {
			t.Error("unknown move should forfeit the turn")
		}
		entries := log.Entries()
		if len(entries) != 1 || !strings.Contains(entries[0].Text, "watches carefully") {
			t.Fatalf("log = %v, want one diagnostic", entries)
		}
		if entries[0].Category != CategorySystem {
			t.Errorf("diagnostic category = %q, want %q", entries[0].Category, CategorySystem)
		}
	})

	t.Run("end of turn hits enemy first", func(t *testing.T) {
		player := testMon(entity.SidePlayer, 50, 160, 100, gamedata.TypeNormal)
		player.Name = "Pika"
		player.SetStatus(gamedata.StatusPoison, 0)
		enemy := testMon(entity.SideEnemy, 50, 160, 100, gamedata.TypeNormal)
		enemy.SetStatus(gamedata.StatusBurn, 0)
		log := &Log{}

		newTestResolver(script()).Turn(TurnRequest{Actor: player, Opponent: enemy, MoveID: "growl"}, log)

		enemyIdx, playerIdx := -1, -1
		for i, e := range log.Entries() {
			switch e.Text {
			case "Wild Testmon is hurt by its burn! (10 damage)":
				enemyIdx = i
			case "Pika is hurt by its poison! (10 damage)":
				playerIdx = i
			}
		}
		if enemyIdx < 0 || playerIdx < 0 || enemyIdx > playerIdx {
			t.Errorf("log = %v, want enemy residual before player", log.Entries())
		}
	})
}

func TestAbilityHooks(t *testing.T) {
	r := newTestResolver(script())

	t.Run("intimidate", func(t *testing.T) {
		self := testMon(entity.SideEnemy, 20, 80, 40, gamedata.TypeWater)
		self.Ability = gamedata.AbilityIntimidate
		opp := testMon(entity.SidePlayer, 20, 80, 40, gamedata.TypeNormal)

		r.Abilities().SwitchIn(r.Hook(self, opp, nil, &Log{}))
		if got := opp.Stages.Get(gamedata.StatAttack); got != -1 {
			t.Errorf("opponent attack stage = %d, want -1", got)
		}
	})

	t.Run("moxie", func(t *testing.T) {
		self := testMon(entity.SidePlayer, 20, 80, 40, gamedata.TypeDark)
		self.Ability = gamedata.AbilityMoxie

		r.Abilities().Kill(r.Hook(self, nil, nil, &Log{}))
		if got := self.Stages.Get(gamedata.StatAttack); got != 1 {
			t.Errorf("attack stage = %d, want 1", got)
		}
	})

	t.Run("no ability is inert", func(t *testing.T) {
		self := testMon(entity.SidePlayer, 20, 80, 40, gamedata.TypeNormal)
		opp := testMon(entity.SideEnemy, 20, 80, 40, gamedata.TypeNormal)

		r.Abilities().SwitchIn(r.Hook(self, opp, nil, &Log{}))
		r.Abilities().Kill(r.Hook(self, opp, nil, &Log{}))
		if !self.Stages.IsNeutral() || !opp.Stages.IsNeutral() {
			t.Error("creatures without abilities should be unaffected")
		}
		if got := r.Abilities().ModifyPower(r.Hook(self, opp, move("tackle"), nil), 40); got != 40 {
			t.Errorf("ModifyPower() = %d, want 40", got)
		}
	})
}

func TestDisplayName(t *testing.T) {
	c := testMon(entity.SidePlayer, 5, 20, 10, gamedata.TypeRock)
	c.Name = "Onix"
	if got := DisplayName(c); got != "Onix" {
		t.Errorf("player DisplayName = %q", got)
	}
	c.Side = entity.SideEnemy
	if got := DisplayName(c); got != "Wild Onix" {
		t.Errorf("wild DisplayName = %q", got)
	}
	c.Encounter = &entity.Encounter{IsGymLeader: true}
	if got := DisplayName(c); got != "Leader's Onix" {
		t.Errorf("leader DisplayName = %q", got)
	}
}

func TestLabels(t *testing.T) {
	if got := StatLabel(gamedata.StatSpecialDefense); got != "Special Defense" {
		t.Errorf("StatLabel = %q", got)
	}
	if got := AbilityLabel(gamedata.AbilityFlashFire); got != "Flash Fire" {
		t.Errorf("AbilityLabel = %q", got)
	}
}

func TestSentence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"there is no enemy", "There is no enemy"},
		{"Already upper", "Already upper"},
		{"énergie basse", "Énergie basse"},
		{"42 left", "42 left"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Sentence(tt.in); got != tt.want {
			t.Errorf("Sentence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
