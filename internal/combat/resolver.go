package combat

import (
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
)

// MoveResult is the outcome of executing one move.
type MoveResult struct {
	MoveID        string
	Hit           bool
	Damage        int
	Critical      bool
	Effectiveness float64
	Blocked       bool
	TargetFainted bool
}

// Resolver executes moves and turns.
type Resolver struct {
	moves     entity.MoveLookup
	abilities *AbilityRegistry
	calc      *Calculator
	status    *StatusProcessor
	rng       Source
}

// NewResolver wires a calculator and status processor around one random
// source.
func NewResolver(chart gamedata.TypeChart, moves entity.MoveLookup, abilities *AbilityRegistry, rng Source) *Resolver {
	calc := NewCalculator(chart, abilities, rng)
	return &Resolver{
		moves:     moves,
		abilities: abilities,
		calc:      calc,
		status:    NewStatusProcessor(rng, calc),
		rng:       rng,
	}
}

// Status returns the status processor.
func (r *Resolver) Status() *StatusProcessor { return r.status }

// Calculator returns the damage calculator.
func (r *Resolver) Calculator() *Calculator { return r.calc }

// Abilities returns the ability registry.
func (r *Resolver) Abilities() *AbilityRegistry { return r.abilities }

// Hook builds an ability context for self facing opponent.
func (r *Resolver) Hook(self, opponent *entity.Combatant, move *gamedata.MoveDef, log *Log) *HookContext {
	return &HookContext{
		Self:     self,
		Opponent: opponent,
		Move:     move,
		Log:      log,
		Effects:  r.status,
		RNG:      r.rng,
	}
}

// Resolve executes move from user against target.
func (r *Resolver) Resolve(move *gamedata.MoveDef, user, target *entity.Combatant, log *Log) MoveResult {
	res := MoveResult{MoveID: move.ID, Effectiveness: 1}
	log.Add(attackCategory(user.Side), "%s used %s!", DisplayName(user), move.Name)

	if move.Accuracy != nil && r.rng.Float64() >= float64(*move.Accuracy)/100 {
		log.Add(CategoryInfo, "%s's attack missed!", DisplayName(user))
		return res
	}
	res.Hit = true

	if move.IsStatus() {
		r.applyStatChanges(move, user, target, log)
		r.applyStatusEffect(move, user, target, log)
		return res
	}

	dmg := r.calc.Calculate(user, target, move, log)
	res.Critical = dmg.Critical
	res.Effectiveness = dmg.Effectiveness
	res.Blocked = dmg.Blocked
	if dmg.Blocked || dmg.Damage == 0 {
		return res
	}

	res.Damage = target.TakeDamage(dmg.Damage)
	log.Add(damageCategory(target.Side), "%s took %d damage!", DisplayName(target), res.Damage)
	if target.IsFainted() {
		res.TargetFainted = true
		log.Add(faintCategory(target.Side), "%s fainted!", DisplayName(target))
		return res
	}

	if move.Contact {
		r.abilities.ContactReceived(r.Hook(target, user, move, log))
	}
	r.applyStatChanges(move, user, target, log)
	r.applyStatusEffect(move, user, target, log)
	return res
}

func (r *Resolver) applyStatChanges(move *gamedata.MoveDef, user, target *entity.Combatant, log *Log) {
	for _, sc := range move.StatChanges {
		if !Roll(r.rng, sc.TriggerChance()) {
			continue
		}
		who := target
		if sc.Target == gamedata.TargetSelf {
			who = user
		}
		r.status.ApplyStatChange(who, sc.Stat, sc.Change, log)
	}
}

func (r *Resolver) applyStatusEffect(move *gamedata.MoveDef, user, target *entity.Combatant, log *Log) {
	if move.StatusEffect == nil {
		return
	}
	who := target
	if move.StatusEffect.Target == gamedata.TargetSelf {
		who = user
	}
	r.status.ApplyStatus(who, *move.StatusEffect, log)
}

// TurnRequest describes one side's action.
type TurnRequest struct {
	Actor    *entity.Combatant
	Opponent *entity.Combatant
	MoveID   string
	// ConsumePP spends a use of the move once the actor is able to act.
	ConsumePP bool
}

// TurnResult is the outcome of one side's turn.
type TurnResult struct {
	Acted bool
	Move  MoveResult
	// SelfDamage is confusion damage the actor dealt to itself.
	SelfDamage int
	// KO is set when the actor's move knocked out the opponent.
	KO bool
	// Residual poison and burn damage taken at end of turn.
	ActorResidual    int
	OpponentResidual int
}

// Turn runs one side's turn: start-of-turn status checks, the move, then
// end-of-turn poison and burn for both creatures, enemy first.
func (r *Resolver) Turn(req TurnRequest, log *Log) TurnResult {
	var out TurnResult
	actor, opp := req.Actor, req.Opponent

	check := r.status.StartOfTurn(actor, log)
	out.SelfDamage = check.SelfDamage
	if check.CanAct && actor.IsAlive() {
		move := r.moves.GetByID(req.MoveID)
		if move == nil {
			log.Add(CategorySystem, "%s doesn't know how to do that and watches carefully.", DisplayName(actor))
		} else {
			if req.ConsumePP {
				actor.ConsumePP(req.MoveID)
			}
			out.Acted = true
			out.Move = r.Resolve(move, actor, opp, log)
			out.KO = out.Move.TargetFainted
		}
	}

	out.ActorResidual, out.OpponentResidual = r.EndOfTurn(actor, opp, log)
	return out
}

// EndOfTurn applies residual damage to the enemy, then the player, and
// returns the damage taken by a and b respectively.
func (r *Resolver) EndOfTurn(a, b *entity.Combatant, log *Log) (int, int) {
	if b.Side == entity.SideEnemy {
		db := r.status.EndOfTurn(b, log)
		return r.status.EndOfTurn(a, log), db
	}
	da := r.status.EndOfTurn(a, log)
	return da, r.status.EndOfTurn(b, log)
}
