package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/critterquest/internal/combat"
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/telemetry"
)

// AttemptFlee tries to escape the battle. On failure the enemy still gets
// its turn.
func (e *Engine) AttemptFlee(ctx context.Context, sess *Session) (*Outcome, error) {
	if err := e.checkBattle(sess); err != nil {
		return e.reject(sess, err)
	}
	_, span := telemetry.Tracer("game").Start(ctx, "battle.flee")
	defer span.End()

	st := &step{}
	escaped := combat.Roll(e.rng, e.cfg.FleeChance)
	span.SetAttributes(attribute.Bool("escaped", escaped), attribute.String("enemy", sess.Enemy.SpeciesID))

	if escaped {
		st.log.Add(combat.CategoryInfo, "Got away safely!")
		st.emit(Event{Type: EventFleeSuccess, SpeciesID: sess.Enemy.SpeciesID})
		sess.Enemy = nil
		sess.Active().ResetBattleState()
		return e.outcome(sess, st), nil
	}

	st.log.Add(combat.CategoryInfo, "Couldn't get away!")
	st.emit(Event{Type: EventFleeFailure, SpeciesID: sess.Enemy.SpeciesID})
	sess.busy = true
	sess.Turns++
	e.queueEnemyTurn(ctx, sess, e.cfg.PacingDelay)
	e.settle(sess)
	return e.outcome(sess, st), nil
}

// SwitchActive makes the roster member at index the active creature. In
// battle the switch uses the player's turn.
func (e *Engine) SwitchActive(ctx context.Context, sess *Session, index int) (*Outcome, error) {
	if err := e.checkIdle(sess); err != nil {
		return e.reject(sess, err)
	}
	member := sess.Roster.Get(index)
	switch {
	case member == nil:
		return e.reject(sess, entity.ErrInvalidIndex)
	case index == sess.Roster.Active:
		return e.reject(sess, ErrAlreadyActive)
	case member.IsFainted():
		return e.reject(sess, ErrFainted)
	}

	st := &step{}
	prev := sess.Active()
	prev.ResetBattleState()
	st.log.Add(combat.CategoryInfo, "Come back, %s!", prev.Name)
	e.sendOut(sess, st, index)

	if sess.HasEnemy() {
		sess.busy = true
		sess.Turns++
		e.queueEnemyTurn(ctx, sess, e.cfg.PacingDelay)
		e.settle(sess)
	}
	return e.outcome(sess, st), nil
}
