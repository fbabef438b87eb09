package game

import (
	"testing"
	"time"

	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
)

var testData = gamedata.MustLoadData()

var testStart = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

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

// harness bundles an engine, a session and the outcomes its deferred
// steps delivered.
type harness struct {
	engine    *Engine
	session   *Session
	sched     *Scheduler
	delivered []*Outcome
}

func newHarness(t *testing.T, rng *scriptedSource) *harness {
	t.Helper()
	sched := NewScheduler(NewVirtualClock(testStart))
	e := NewEngine(testData, DefaultConfig(), rng, sched)
	sess, err := e.NewSession("test")
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	h := &harness{engine: e, session: sess, sched: sched}
	sess.SetSink(func(o *Outcome) { h.delivered = append(h.delivered, o) })
	return h
}

// addMember adds a player creature and returns its roster index.
func (h *harness) addMember(t *testing.T, species string, level int) int {
	t.Helper()
	c, err := h.engine.prog.NewCreature(species, level, entity.SidePlayer)
	if err != nil {
		t.Fatalf("NewCreature(%s) error = %v", species, err)
	}
	i, err := h.session.Roster.Add(c, testStart)
	if err != nil {
		t.Fatalf("Roster.Add() error = %v", err)
	}
	return i
}

// placeEnemy puts an enemy in front of the player that only knows growl.
func (h *harness) placeEnemy(t *testing.T, species string, level int) *entity.Combatant {
	t.Helper()
	c, err := h.engine.prog.NewCreature(species, level, entity.SideEnemy)
	if err != nil {
		t.Fatalf("NewCreature(%s) error = %v", species, err)
	}
	c.Moves = []entity.LearnedMove{entity.NewLearnedMove(testData.Moves.GetByID("growl"))}
	c.Encounter = &entity.Encounter{
		AreaID:        h.session.AreaID,
		BaseCatchRate: 0.2,
		Reward:        6,
		Experience:    8,
	}
	h.session.Enemy = c
	return c
}

func (h *harness) lastDelivered(t *testing.T) *Outcome {
	t.Helper()
	if len(h.delivered) == 0 {
		t.Fatal("no deferred outcome delivered")
	}
	return h.delivered[len(h.delivered)-1]
}
