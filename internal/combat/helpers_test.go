package combat

import (
	"strings"

	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
)

var testData = gamedata.MustLoadData()

// scriptedSource replays fixed draws. Once exhausted, Float64 returns 0.5
// and Intn returns 0.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func script(floats ...float64) *scriptedSource {
	return &scriptedSource{floats: floats}
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func move(id string) *gamedata.MoveDef {
	m := testData.Moves.GetByID(id)
	if m == nil {
		panic("unknown test move " + id)
	}
	return m
}

// testMon builds a combatant with every non-HP stat set to v.
func testMon(side entity.Side, level, hp, v int, types ...gamedata.ElementType) *entity.Combatant {
	return &entity.Combatant{
		Side:      side,
		SpeciesID: "testmon",
		Name:      "Testmon",
		Types:     types,
		Level:     level,
		Stats: entity.Stats{
			HP: hp, Attack: v, Defense: v, SpecialAttack: v, SpecialDefense: v, Speed: v,
		},
		CurrentHP: hp,
		Status:    gamedata.StatusNone,
		Ability:   gamedata.AbilityNone,
	}
}

func newTestResolver(rng Source) *Resolver {
	return NewResolver(testData.Types, testData.Moves, DefaultAbilities(), rng)
}

func logContains(log *Log, substr string) bool {
	for _, e := range log.Entries() {
		if strings.Contains(e.Text, substr) {
			return true
		}
	}
	return false
}
