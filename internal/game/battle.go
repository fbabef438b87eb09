package game

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/critterquest/internal/combat"
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/progression"
	"github.com/samdwyer/critterquest/internal/telemetry"
)

// SubmitPlayerMove runs the player's turn with moveID. When both sides are
// still standing the enemy's reply is queued after the pacing delay and
// the session stays busy until it resolves.
func (e *Engine) SubmitPlayerMove(ctx context.Context, sess *Session, moveID string) (*Outcome, error) {
	if err := e.checkBattle(sess); err != nil {
		return e.reject(sess, err)
	}
	active := sess.Active()
	known := active.Move(moveID)
	if known == nil {
		return e.reject(sess, ErrUnknownMove)
	}
	if known.PP <= 0 {
		return e.reject(sess, ErrNoUsesLeft)
	}

	sess.busy = true
	sess.Turns++
	st := &step{}
	res := e.runTurn(ctx, st, active, sess.Enemy, moveID, true)
	playerDown := e.resolveFaints(ctx, sess, st, res.KO)

	if !playerDown && sess.HasEnemy() {
		e.queueEnemyTurn(ctx, sess, e.cfg.PacingDelay)
	}
	e.settle(sess)
	return e.outcome(sess, st), nil
}

// queueEnemyTurn schedules the enemy's reactive turn.
func (e *Engine) queueEnemyTurn(ctx context.Context, sess *Session, d time.Duration) {
	e.schedule(ctx, sess, d, func(ctx context.Context, st *step) {
		e.enemyTurn(ctx, sess, st)
	})
}

func (e *Engine) enemyTurn(ctx context.Context, sess *Session, st *step) {
	enemy, active := sess.Enemy, sess.Active()
	if !sess.HasEnemy() || active == nil || active.IsFainted() {
		return
	}
	res := e.runTurn(ctx, st, enemy, active, e.enemyMove(enemy), false)
	e.resolveFaints(ctx, sess, st, res.KO)
}

// enemyMove picks uniformly among the enemy's moves. Enemies never run out
// of uses.
func (e *Engine) enemyMove(enemy *entity.Combatant) string {
	if len(enemy.Moves) == 0 {
		return progression.FallbackMove
	}
	return enemy.Moves[e.rng.Intn(len(enemy.Moves))].MoveID
}

// runTurn resolves one side's turn and records its events.
func (e *Engine) runTurn(ctx context.Context, st *step, actor, opponent *entity.Combatant, moveID string, consume bool) combat.TurnResult {
	_, span := telemetry.Tracer("game").Start(ctx, "battle.turn")
	defer span.End()

	res := e.resolver.Turn(combat.TurnRequest{
		Actor:     actor,
		Opponent:  opponent,
		MoveID:    moveID,
		ConsumePP: consume,
	}, &st.log)

	if res.SelfDamage > 0 {
		e.damageEvent(st, actor, res.SelfDamage, false, 0)
	}
	if res.Acted {
		st.emit(Event{Type: EventMoveUsed, Side: actor.Side.String(), SpeciesID: actor.SpeciesID, MoveID: moveID})
		if res.Move.Damage > 0 {
			e.damageEvent(st, opponent, res.Move.Damage, res.Move.Critical, res.Move.Effectiveness)
		}
	}
	// Residual damage lands enemy first.
	first, second := opponent, actor
	firstDmg, secondDmg := res.OpponentResidual, res.ActorResidual
	if actor.Side == entity.SideEnemy {
		first, second = actor, opponent
		firstDmg, secondDmg = res.ActorResidual, res.OpponentResidual
	}
	if firstDmg > 0 {
		e.damageEvent(st, first, firstDmg, false, 0)
	}
	if secondDmg > 0 {
		e.damageEvent(st, second, secondDmg, false, 0)
	}

	span.SetAttributes(
		attribute.String("actor", actor.SpeciesID),
		attribute.String("side", actor.Side.String()),
		attribute.String("move", moveID),
		attribute.Bool("acted", res.Acted),
		attribute.Int("damage", res.Move.Damage),
		attribute.Bool("critical", res.Move.Critical),
		attribute.Float64("effectiveness", res.Move.Effectiveness),
		attribute.Bool("fainted", res.KO),
	)
	return res
}

func (e *Engine) damageEvent(st *step, target *entity.Combatant, amount int, crit bool, eff float64) {
	st.emit(Event{
		Type:          EventDamage,
		Side:          target.Side.String(),
		SpeciesID:     target.SpeciesID,
		Amount:        amount,
		Critical:      crit,
		Effectiveness: eff,
	})
}

// resolveFaints handles whoever fainted this turn, enemy first, and
// reports whether the player's active creature went down.
func (e *Engine) resolveFaints(ctx context.Context, sess *Session, st *step, ko bool) bool {
	if enemy := sess.Enemy; enemy != nil && enemy.IsFainted() {
		st.emit(Event{Type: EventFainted, Side: enemy.Side.String(), SpeciesID: enemy.SpeciesID})
		e.defeatEnemy(ctx, sess, st, enemy, ko)
	}
	active := sess.Active()
	if active == nil || active.IsAlive() {
		return false
	}
	st.emit(Event{Type: EventFainted, Side: active.Side.String(), SpeciesID: active.SpeciesID})
	e.forceSwitch(ctx, sess, st)
	return true
}

// defeatEnemy pays out for a defeated enemy: money, drops, gym and area
// bookkeeping, then experience for the active creature. ko is set when
// the player's move landed the final blow.
func (e *Engine) defeatEnemy(ctx context.Context, sess *Session, st *step, enemy *entity.Combatant, ko bool) {
	_, span := telemetry.Tracer("game").Start(ctx, "battle.end")
	defer span.End()

	enc := enemy.Encounter
	if enc == nil {
		enc = &entity.Encounter{AreaID: sess.AreaID}
	}

	sess.Money += enc.Reward
	st.log.Add(combat.CategoryVictory, "You earned $%d.", enc.Reward)
	st.emit(Event{Type: EventVictory, SpeciesID: enemy.SpeciesID, Amount: enc.Reward})

	e.rollDrops(sess, st, enc)

	area := e.data.Areas.GetByID(enc.AreaID)
	if enc.IsGymLeader {
		sess.DefeatedGyms[enc.AreaID] = true
		st.log.Add(combat.CategoryGymLeaderDefeat, "You defeated the gym leader's %s!", enemy.Name)
	}
	if area != nil {
		e.recordProgress(sess, st, area, enemy)
	}

	sess.Enemy = nil

	active := sess.Active()
	if active != nil && active.IsAlive() {
		e.gainExperience(ctx, sess, st, sess.Roster.Active, enc.Experience)
		active = sess.Active()
		active.ResetBattleState()
		if ko {
			e.resolver.Abilities().Kill(e.resolver.Hook(active, enemy, nil, &st.log))
		}
	}

	span.SetAttributes(
		attribute.String("outcome", "victory"),
		attribute.String("species", enemy.SpeciesID),
		attribute.Int("turns", sess.Turns),
		attribute.Int("reward", enc.Reward),
	)
}

// recordProgress counts a defeat toward the area's unlock condition.
func (e *Engine) recordProgress(sess *Session, st *step, area *gamedata.AreaDef, enemy *entity.Combatant) {
	if !sess.Progress.RecordDefeat(area, enemy) {
		return
	}
	if next := e.data.Areas.GetByID(area.NextAreaID); next != nil {
		st.log.Add(combat.CategoryMapProgress, "%s is cleared! The way to %s is open.", area.Name, next.Name)
	} else {
		st.log.Add(combat.CategoryMapProgress, "%s is cleared!", area.Name)
	}
	st.emit(Event{Type: EventAreaCleared, AreaID: area.ID})
}

func (e *Engine) rollDrops(sess *Session, st *step, enc *entity.Encounter) {
	for _, drop := range enc.Drops {
		if !combat.Roll(e.rng, drop.DropRate) {
			continue
		}
		item := e.data.Items.GetByID(drop.ItemID)
		if item == nil {
			st.log.Add(combat.CategorySystem, "Unknown drop %q skipped.", drop.ItemID)
			continue
		}
		lo, hi := drop.QuantityMin, drop.QuantityMax
		if lo < 1 {
			lo = 1
		}
		if hi < lo {
			hi = lo
		}
		added := sess.Inventory.Add(item, combat.RollRange(e.rng, lo, hi))
		if added == 0 {
			continue
		}
		st.log.Add(combat.CategoryItem, "Obtained %d %s!", added, item.Name)
		st.emit(Event{Type: EventItemObtained, ItemID: item.ID, Amount: added})
	}
}

// gainExperience awards experience to the roster member at index and
// queues a level evolution if one became due.
func (e *Engine) gainExperience(ctx context.Context, sess *Session, st *step, index, amount int) {
	c := sess.Roster.Get(index)
	if c == nil || amount <= 0 {
		return
	}
	res := e.prog.GainExperience(ctx, c, amount, &st.log)
	for _, up := range res.LevelUps {
		st.emit(Event{Type: EventLevelUp, Side: c.Side.String(), SpeciesID: c.SpeciesID, Amount: up.Level})
		for _, id := range up.Learned {
			st.emit(Event{Type: EventMoveLearned, SpeciesID: c.SpeciesID, MoveID: id})
		}
	}
	if res.Evolution != nil {
		e.scheduleEvolution(ctx, sess, st, index, c, res.Evolution.ToSpeciesID)
	}
}

// scheduleEvolution announces an evolution now and completes it after the
// evolution delay.
func (e *Engine) scheduleEvolution(ctx context.Context, sess *Session, st *step, index int, c *entity.Combatant, toID string) {
	st.log.Add(combat.CategoryEvolution, "What? %s is evolving!", c.Name)
	st.emit(Event{Type: EventEvolutionStarted, SpeciesID: c.SpeciesID})

	e.schedule(ctx, sess, e.cfg.EvolutionDelay, func(ctx context.Context, st *step) {
		if sess.Roster.Get(index) != c {
			return
		}
		evolved, err := e.prog.Evolve(ctx, c, toID, &st.log)
		if err != nil {
			st.log.Add(combat.CategorySystem, "Evolution failed: %v", err)
			return
		}
		if err := sess.Roster.Replace(index, evolved, e.sched.Now()); err != nil {
			st.log.Add(combat.CategorySystem, "Evolution failed: %v", err)
			return
		}
		st.emit(Event{Type: EventEvolved, SpeciesID: evolved.SpeciesID, Amount: evolved.Level})
	})
}

// forceSwitch sends out the next conscious creature after the active one
// fainted. With none left the battle is lost.
func (e *Engine) forceSwitch(ctx context.Context, sess *Session, st *step) {
	idx, ok := sess.Roster.NextAlive()
	if !ok {
		_, span := telemetry.Tracer("game").Start(ctx, "battle.end")
		span.SetAttributes(attribute.String("outcome", "defeat"), attribute.Int("turns", sess.Turns))
		span.End()

		st.log.Add(combat.CategoryDefeat, "All of your creatures have fainted!")
		st.emit(Event{Type: EventDefeat})
		sess.Enemy = nil
		return
	}
	e.sendOut(sess, st, idx)
}

// sendOut makes the member at idx active and fires switch-in abilities.
func (e *Engine) sendOut(sess *Session, st *step, idx int) {
	_ = sess.Roster.SetActive(idx)
	next := sess.Active()
	next.ResetBattleState()
	st.log.Add(combat.CategoryInfo, "Go, %s!", next.Name)
	st.emit(Event{Type: EventSwitched, SpeciesID: next.SpeciesID, Amount: idx})
	if sess.HasEnemy() {
		e.gen.Enter(next, sess.Enemy, &st.log)
	}
}
