package game

import (
	"context"
	"fmt"

	"github.com/samdwyer/critterquest/internal/combat"
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/progression"
)

// UseItem uses one of itemID on the roster member at index. Items that
// would do nothing are rejected and not consumed.
func (e *Engine) UseItem(ctx context.Context, sess *Session, itemID string, index int) (*Outcome, error) {
	if sess.busy {
		return e.reject(sess, ErrBusy)
	}
	item := e.data.Items.GetByID(itemID)
	if item == nil {
		return e.reject(sess, fmt.Errorf("%w: %s", ErrUnknownItem, itemID))
	}
	if sess.Inventory.Count(item.ID) == 0 {
		return e.reject(sess, ErrNoItem)
	}
	target := sess.Roster.Get(index)
	if target == nil {
		return e.reject(sess, entity.ErrInvalidIndex)
	}
	if item.Effect == nil {
		return e.reject(sess, ErrItemHasNoEffect)
	}

	st := &step{}
	if err := e.applyItem(ctx, sess, st, item, index, target); err != nil {
		return e.reject(sess, err)
	}
	sess.Inventory.Remove(item.ID, 1)
	st.emit(Event{Type: EventItemUsed, ItemID: item.ID, SpeciesID: target.SpeciesID, Amount: index})
	return e.outcome(sess, st), nil
}

// applyItem performs the item's effect. It must not mutate anything when
// it returns an error.
func (e *Engine) applyItem(ctx context.Context, sess *Session, st *step, item *gamedata.ItemDef, index int, target *entity.Combatant) error {
	eff := item.Effect
	switch eff.Type {
	case gamedata.EffectHealFlat:
		if target.IsFainted() || target.CurrentHP >= target.MaxHP() {
			return ErrItemHasNoEffect
		}
		healed := target.Heal(eff.Value)
		st.log.Add(combat.CategoryItem, "%s recovered %d HP!", target.Name, healed)

	case gamedata.EffectRevive:
		if !target.Revive(target.MaxHP() / 2) {
			return ErrItemHasNoEffect
		}
		st.log.Add(combat.CategoryItem, "%s was revived!", target.Name)

	case gamedata.EffectCureStatus:
		if !e.resolver.Status().Cure(target, eff.CureCondition, &st.log) {
			return ErrItemHasNoEffect
		}

	case gamedata.EffectCureAllStatus:
		cured := e.resolver.Status().CureMajor(target, &st.log)
		if target.IsConfused() {
			cured = e.resolver.Status().Cure(target, gamedata.StatusConfusion, &st.log) || cured
		}
		if !cured {
			return ErrItemHasNoEffect
		}

	case gamedata.EffectExpGain:
		if target.IsFainted() || target.Level >= entity.MaxLevel {
			return ErrItemHasNoEffect
		}
		amount := eff.Value
		if amount <= 0 {
			amount = progression.ExperienceToNext(target.Level) - target.Experience
		}
		st.log.Add(combat.CategoryItem, "You used %s on %s.", item.Name, target.Name)
		e.gainExperience(ctx, sess, st, index, amount)

	case gamedata.EffectEvolve:
		evolved, err := e.prog.EvolveWithItem(ctx, target, item, &st.log)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrItemHasNoEffect, err)
		}
		if err := sess.Roster.Replace(index, evolved, e.sched.Now()); err != nil {
			return err
		}
		st.emit(Event{Type: EventEvolved, SpeciesID: evolved.SpeciesID, Amount: evolved.Level})

	case gamedata.EffectTeachMove:
		if err := e.prog.TeachMove(target, item, &st.log); err != nil {
			return fmt.Errorf("%w: %w", ErrItemHasNoEffect, err)
		}
		st.emit(Event{Type: EventMoveLearned, SpeciesID: target.SpeciesID, MoveID: eff.MoveID})

	default:
		return ErrItemHasNoEffect
	}
	return nil
}
