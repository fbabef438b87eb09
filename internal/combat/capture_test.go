package combat

import (
	"math"
	"math/rand"
	"testing"

	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
)

func captureTarget(rate float64) *entity.Combatant {
	c := testMon(entity.SideEnemy, 10, 100, 20, gamedata.TypeNormal)
	c.Encounter = &entity.Encounter{BaseCatchRate: rate}
	return c
}

func TestCatchChance(t *testing.T) {
	tests := []struct {
		name   string
		rate   float64
		hp     int
		status gamedata.StatusCondition
		bonus  float64
		ball   float64
		want   float64
	}{
		{"full hp", 0.2, 100, gamedata.StatusNone, 1, 1, 0.5},
		{"default rate", 0, 100, gamedata.StatusNone, 1, 1, 0.5},
		{"asleep", 0.2, 100, gamedata.StatusSleep, 1, 1, 0.75},
		{"burned", 0.2, 100, gamedata.StatusBurn, 1, 1, 0.6},
		{"super ball", 0.2, 100, gamedata.StatusNone, 1, 1.5, 0.75},
		{"species bonus", 0.1, 100, gamedata.StatusNone, 1.2, 1, 0.3},
		{"clamped high", 0.2, 1, gamedata.StatusNone, 1, 1, MaxCatchChance},
		{"clamped low", 0.001, 100, gamedata.StatusNone, 0.4, 1, MinCatchChance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := captureTarget(tt.rate)
			c.CurrentHP = tt.hp
			c.Status = tt.status

			got := CatchChance(c, tt.bonus, tt.ball)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CatchChance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCatchChanceAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	statuses := []gamedata.StatusCondition{
		gamedata.StatusNone, gamedata.StatusSleep, gamedata.StatusPoison, gamedata.StatusParalysis, gamedata.StatusBurn,
	}
	for i := 0; i < 1000; i++ {
		c := captureTarget(rng.Float64())
		c.Stats.HP = 1 + rng.Intn(500)
		c.CurrentHP = rng.Intn(c.Stats.HP + 1)
		c.Status = statuses[rng.Intn(len(statuses))]

		got := CatchChance(c, rng.Float64()*3, 1+rng.Float64())
		if got < MinCatchChance || got > MaxCatchChance {
			t.Fatalf("CatchChance() = %v, outside [%v, %v]", got, MinCatchChance, MaxCatchChance)
		}
	}
}

func TestCaptureAttempt(t *testing.T) {
	tests := []struct {
		name   string
		draws  []float64
		caught bool
		shakes int
	}{
		{"first shake", []float64{0.1}, true, 1},
		{"boundary draw succeeds", []float64{0.9, 0.5}, true, 2},
		{"third shake", []float64{0.9, 0.9, 0.4}, true, 3},
		{"all fail", []float64{0.9, 0.9, 0.9, 0.0}, false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewCaptureSimulator(script(tt.draws...)).Attempt(captureTarget(0.2), 1, 1)
			if res.Caught != tt.caught || len(res.Shakes) != tt.shakes {
				t.Errorf("Attempt() caught=%v shakes=%d, want %v and %d", res.Caught, len(res.Shakes), tt.caught, tt.shakes)
			}
			if math.Abs(res.Chance-0.5) > 1e-9 {
				t.Errorf("Chance = %v, want 0.5", res.Chance)
			}
		})
	}
}
