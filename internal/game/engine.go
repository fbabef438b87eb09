package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/critterquest/internal/combat"
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/progression"
	"github.com/samdwyer/critterquest/internal/telemetry"
	"github.com/samdwyer/critterquest/internal/world"
)

// Engine executes player commands against a Session. It holds no session
// state of its own; one engine may drive many sessions from one goroutine.
type Engine struct {
	data     *gamedata.Data
	cfg      Config
	rng      combat.Source
	sched    *Scheduler
	resolver *combat.Resolver
	capture  *combat.CaptureSimulator
	prog     *progression.Manager
	gen      *world.Generator
}

// NewEngine wires the battle components around one random source.
func NewEngine(data *gamedata.Data, cfg Config, rng combat.Source, sched *Scheduler) *Engine {
	resolver := combat.NewResolver(data.Types, data.Moves, combat.DefaultAbilities(), rng)
	prog := progression.NewManager(data.Species, data.Moves)
	return &Engine{
		data:     data,
		cfg:      cfg,
		rng:      rng,
		sched:    sched,
		resolver: resolver,
		capture:  combat.NewCaptureSimulator(rng),
		prog:     prog,
		gen:      world.NewGenerator(data.Species, data.Moves, prog, resolver, rng),
	}
}

// Data returns the loaded game data.
func (e *Engine) Data() *gamedata.Data { return e.data }

// Scheduler returns the scheduler deferred steps are queued on.
func (e *Engine) Scheduler() *Scheduler { return e.sched }

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// NewSession starts a fresh game with the configured starter and
// starting inventory.
func (e *Engine) NewSession(id string) (*Session, error) {
	starter, err := e.prog.NewCreature(e.cfg.StarterSpecies, e.cfg.StarterLevel, entity.SidePlayer)
	if err != nil {
		return nil, fmt.Errorf("create starter: %w", err)
	}
	roster := entity.NewRoster(e.cfg.RosterCapacity)
	if _, err := roster.Add(starter, e.sched.Now()); err != nil {
		return nil, err
	}

	areaID := e.cfg.StartArea
	if areaID == "" {
		first := e.data.Areas.First()
		if first == nil {
			return nil, errors.New("no areas loaded")
		}
		areaID = first.ID
	}
	if e.data.Areas.GetByID(areaID) == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArea, areaID)
	}

	sess := NewSession(id, roster, areaID)
	for itemID, qty := range StartingInventory {
		if item := e.data.Items.GetByID(itemID); item != nil {
			sess.Inventory.Add(item, qty)
		}
	}
	return sess, nil
}

// =============================================================================
// Outcome plumbing
// =============================================================================

func (e *Engine) outcome(sess *Session, st *step) *Outcome {
	return &Outcome{
		Log:    st.log.Entries(),
		Events: st.events,
		Player: snapshot(sess.Active()),
		Enemy:  snapshot(sess.Enemy),
		State:  sess.State().String(),
		Money:  sess.Money,
	}
}

// View returns the session's current state without running anything.
func (e *Engine) View(sess *Session) *Outcome {
	return e.outcome(sess, &step{})
}

// reject reports a precondition failure without touching the session.
func (e *Engine) reject(sess *Session, err error) (*Outcome, error) {
	st := &step{}
	st.log.Add(combat.CategorySystem, "%s", combat.Sentence(err.Error()))
	return e.outcome(sess, st), err
}

// schedule queues a deferred step. The session stays busy until the last
// queued step has run; each step's outcome goes to the session sink.
func (e *Engine) schedule(ctx context.Context, sess *Session, d time.Duration, fn func(ctx context.Context, st *step)) {
	ctx = context.WithoutCancel(ctx)
	sess.busy = true
	sess.pending++
	e.sched.After(d, func() {
		st := &step{}
		fn(ctx, st)
		sess.pending--
		e.settle(sess)
		sess.deliver(e.outcome(sess, st))
	})
}

// settle clears the busy flag once nothing is pending.
func (e *Engine) settle(sess *Session) {
	if sess.pending == 0 {
		sess.busy = false
	}
}

// checkIdle rejects commands while a turn resolves or the team is down.
func (e *Engine) checkIdle(sess *Session) error {
	if sess.busy {
		return ErrBusy
	}
	if sess.Active() == nil || sess.Roster.AllFainted() {
		return ErrAllFainted
	}
	return nil
}

// checkBattle additionally requires a living enemy.
func (e *Engine) checkBattle(sess *Session) error {
	if err := e.checkIdle(sess); err != nil {
		return err
	}
	if !sess.HasEnemy() {
		return ErrNoEnemy
	}
	if sess.Active().IsFainted() {
		return ErrFainted
	}
	return nil
}

// =============================================================================
// Encounters
// =============================================================================

// StartEncounter spawns the next enemy in areaID, or the current area when
// areaID is empty.
func (e *Engine) StartEncounter(ctx context.Context, sess *Session, areaID string) (*Outcome, error) {
	if err := e.checkIdle(sess); err != nil {
		return e.reject(sess, err)
	}
	if sess.HasEnemy() {
		return e.reject(sess, ErrEnemyPresent)
	}
	if areaID == "" {
		areaID = sess.AreaID
	}
	area := e.data.Areas.GetByID(areaID)
	if area == nil {
		return e.reject(sess, fmt.Errorf("%w: %s", ErrUnknownArea, areaID))
	}
	if !e.areaUnlocked(sess, area) {
		return e.reject(sess, ErrAreaLocked)
	}

	st := &step{}
	sess.AreaID = area.ID
	sess.Enemy = nil

	spawn, err := e.gen.Generate(ctx, area, sess.DefeatedGyms[area.ID], sess.Active(), &st.log)
	switch {
	case errors.Is(err, world.ErrNoEncounter):
		st.log.Add(combat.CategorySystem, "There is nothing left to battle in %s.", area.Name)
		st.emit(Event{Type: EventNoEncounter, AreaID: area.ID})
		return e.outcome(sess, st), nil
	case err != nil:
		st.log.Add(combat.CategorySystem, "Encounter skipped: %v", err)
		return e.outcome(sess, st), nil
	}

	sess.Enemy = spawn.Enemy
	sess.Turns = 0
	st.emit(Event{
		Type:      EventEnemySpawned,
		Side:      entity.SideEnemy.String(),
		SpeciesID: spawn.Enemy.SpeciesID,
		AreaID:    area.ID,
		Amount:    spawn.Enemy.Level,
	})
	return e.outcome(sess, st), nil
}

// areaUnlocked reports whether the player may battle in area: the start
// area, the current area, and any area whose predecessor is cleared.
func (e *Engine) areaUnlocked(sess *Session, area *gamedata.AreaDef) bool {
	if area.ID == sess.AreaID {
		return true
	}
	if first := e.data.Areas.First(); first != nil && first.ID == area.ID {
		return true
	}
	for _, a := range e.data.Areas.All() {
		if a.NextAreaID == area.ID && sess.Progress.IsCleared(&a) {
			return true
		}
	}
	return false
}

// MoveToNextArea travels onward once the current area is cleared. Any
// enemy present is left behind.
func (e *Engine) MoveToNextArea(ctx context.Context, sess *Session) (*Outcome, error) {
	if sess.busy {
		return e.reject(sess, ErrBusy)
	}
	current := e.data.Areas.GetByID(sess.AreaID)
	if current == nil {
		return e.reject(sess, fmt.Errorf("%w: %s", ErrUnknownArea, sess.AreaID))
	}
	next, err := sess.Progress.NextArea(e.data.Areas, current)
	switch {
	case errors.Is(err, world.ErrAreaLocked):
		return e.reject(sess, ErrAreaNotCleared)
	case err != nil:
		return e.reject(sess, err)
	}

	_, span := telemetry.Tracer("game").Start(ctx, "area.travel")
	span.SetAttributes(attribute.String("from", current.ID), attribute.String("to", next.ID))
	span.End()

	st := &step{}
	sess.AreaID = next.ID
	sess.Enemy = nil
	if active := sess.Active(); active != nil {
		active.ResetBattleState()
	}
	st.log.Add(combat.CategoryMapProgress, "You traveled from %s to %s.", current.Name, next.Name)
	return e.outcome(sess, st), nil
}

// HealAll fully restores every owned creature.
func (e *Engine) HealAll(ctx context.Context, sess *Session) *Outcome {
	if sess.busy {
		out, _ := e.reject(sess, ErrBusy)
		return out
	}
	st := &step{}
	for _, c := range sess.Roster.Members {
		c.FullRestore()
	}
	st.log.Add(combat.CategoryStatusCured, "Your creatures were fully healed.")
	return e.outcome(sess, st)
}

// Tick is the background heartbeat. It spawns an encounter when none is
// present and, with auto battle on, submits a move for the player. It does
// nothing while a turn is resolving.
func (e *Engine) Tick(ctx context.Context, sess *Session) *Outcome {
	if sess.busy || sess.Active() == nil || sess.Roster.AllFainted() {
		return &Outcome{State: sess.State().String(), Money: sess.Money}
	}
	if !sess.HasEnemy() {
		out, _ := e.StartEncounter(ctx, sess, "")
		return out
	}
	if !sess.AutoBattle {
		return &Outcome{State: sess.State().String(), Money: sess.Money}
	}
	moveID := e.autoMove(sess.Active())
	if moveID == "" {
		return &Outcome{State: sess.State().String(), Money: sess.Money}
	}
	out, _ := e.SubmitPlayerMove(ctx, sess, moveID)
	return out
}

// autoMove picks a random move with uses left, falling back to the basic
// move when the creature knows it.
func (e *Engine) autoMove(c *entity.Combatant) string {
	usable := c.UsableMoves()
	if len(usable) == 0 {
		if m := c.Move(progression.FallbackMove); m != nil && m.PP > 0 {
			return m.MoveID
		}
		return ""
	}
	return usable[e.rng.Intn(len(usable))].MoveID
}
