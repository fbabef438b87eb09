package game

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/critterquest/internal/combat"
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/telemetry"
)

// DefaultBall is thrown by AttemptCapture.
const DefaultBall = "poke-ball"

// AttemptCapture throws a standard ball at the enemy.
func (e *Engine) AttemptCapture(ctx context.Context, sess *Session) (*Outcome, error) {
	return e.AttemptCaptureWith(ctx, sess, DefaultBall)
}

// AttemptCaptureWith throws ballID at the enemy. Each shake is reported as
// an event. A failed capture hands the turn to the enemy once the shakes
// have played out.
func (e *Engine) AttemptCaptureWith(ctx context.Context, sess *Session, ballID string) (*Outcome, error) {
	if err := e.checkBattle(sess); err != nil {
		return e.reject(sess, err)
	}
	enemy := sess.Enemy
	if enemy.Encounter != nil && enemy.Encounter.IsGymLeader {
		return e.reject(sess, ErrCannotCaptureLeader)
	}
	ball := e.data.Items.GetByID(ballID)
	if ball == nil || !ball.IsBall() {
		return e.reject(sess, ErrUnknownItem)
	}
	if !sess.Inventory.Remove(ball.ID, 1) {
		return e.reject(sess, ErrNoCaptureItem)
	}

	_, span := telemetry.Tracer("game").Start(ctx, "capture.attempt")
	defer span.End()

	sess.busy = true
	st := &step{}
	st.log.Add(combat.CategoryItem, "You threw a %s!", ball.Name)

	bonus := 1.0
	if species := e.data.Species.GetByID(enemy.SpeciesID); species != nil {
		bonus = species.CatchBonus()
	}
	res := e.capture.Attempt(enemy, bonus, ball.CatchModifier)
	for _, shake := range res.Shakes {
		st.emit(Event{Type: EventCaptureShake, SpeciesID: enemy.SpeciesID, Amount: shake.Attempt, Chance: res.Chance})
		if !shake.Caught {
			st.log.Add(combat.CategoryInfo, "The ball shook... (%d)", shake.Attempt)
		}
	}

	span.SetAttributes(
		attribute.String("species", enemy.SpeciesID),
		attribute.String("ball", ball.ID),
		attribute.Float64("chance", res.Chance),
		attribute.Int("shakes", len(res.Shakes)),
		attribute.Bool("caught", res.Caught),
	)

	if res.Caught {
		st.log.Add(combat.CategoryCatchSuccess, "Gotcha! %s was caught!", enemy.Name)
		st.emit(Event{Type: EventCaptureSuccess, SpeciesID: enemy.SpeciesID, Chance: res.Chance})
		e.completeCapture(ctx, sess, st, enemy)
	} else {
		st.log.Add(combat.CategoryCatchFail, "Oh no! %s broke free!", combat.DisplayName(enemy))
		st.emit(Event{Type: EventCaptureFailure, SpeciesID: enemy.SpeciesID, Chance: res.Chance})
		sess.Turns++
		e.queueEnemyTurn(ctx, sess, e.cfg.ShakeDelay*time.Duration(combat.CaptureShakes))
	}

	e.settle(sess)
	return e.outcome(sess, st), nil
}

// completeCapture ends the battle with the enemy caught. A new species
// joins the roster at the enemy's level; otherwise the active creature
// gets the encounter's experience instead.
func (e *Engine) completeCapture(ctx context.Context, sess *Session, st *step, enemy *entity.Combatant) {
	enc := enemy.Encounter
	if enc == nil {
		enc = &entity.Encounter{AreaID: sess.AreaID}
	}

	if area := e.data.Areas.GetByID(enc.AreaID); area != nil {
		e.recordProgress(sess, st, area, enemy)
	}
	reward := enc.Reward / 2
	if reward > 0 {
		sess.Money += reward
		st.log.Add(combat.CategoryVictory, "You earned $%d.", reward)
	}
	sess.Enemy = nil

	joined := false
	if !sess.Roster.Owns(enemy.SpeciesID) && !sess.Roster.IsFull() {
		caught, err := e.prog.NewCreature(enemy.SpeciesID, enemy.Level, entity.SidePlayer)
		if err != nil {
			st.log.Add(combat.CategorySystem, "Capture bookkeeping failed: %v", err)
		} else if _, err := sess.Roster.Add(caught, e.sched.Now()); err == nil {
			st.log.Add(combat.CategoryCatchSuccess, "%s was added to your team!", caught.Name)
			joined = true
		}
	}
	if !joined {
		st.log.Add(combat.CategoryInfo, "You already have %s, so your team learned from the battle instead.", enemy.Name)
		e.gainExperience(ctx, sess, st, sess.Roster.Active, enc.Experience)
	}
	if active := sess.Active(); active != nil {
		active.ResetBattleState()
	}
}
