package combat

import (
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
)

const (
	// StaticChance is the chance a contact move paralyzes the attacker.
	StaticChance = 0.3
	// PinchBoost multiplies power for overgrow, blaze and torrent.
	PinchBoost = 1.5
	// FlashFireBoost multiplies fire power once flash fire has absorbed a hit.
	FlashFireBoost = 1.5
)

// HookContext is passed to ability hooks. Self owns the ability.
type HookContext struct {
	Self     *entity.Combatant
	Opponent *entity.Combatant
	Move     *gamedata.MoveDef
	Log      *Log
	Effects  *StatusProcessor
	RNG      Source
}

// AbilityHooks are the points at which an ability can act. Nil hooks are skipped.
type AbilityHooks struct {
	// OnSwitchIn fires when Self enters battle facing Opponent.
	OnSwitchIn func(h *HookContext)
	// OnDamageReceived fires before damage is computed against Self.
	// Returning true cancels the hit.
	OnDamageReceived func(h *HookContext) bool
	// OnContactReceived fires after Self survives a contact move from Opponent.
	OnContactReceived func(h *HookContext)
	// OnKill fires after Self knocks out Opponent.
	OnKill func(h *HookContext)
	// ModifyPower adjusts the power of a move Self is using.
	ModifyPower func(h *HookContext, power int) int
}

// AbilityRegistry maps ability IDs to their hooks.
type AbilityRegistry struct {
	hooks map[gamedata.AbilityID]AbilityHooks
}

// NewAbilityRegistry creates an empty registry.
func NewAbilityRegistry() *AbilityRegistry {
	return &AbilityRegistry{hooks: make(map[gamedata.AbilityID]AbilityHooks)}
}

// DefaultAbilities returns a registry with every built-in ability.
func DefaultAbilities() *AbilityRegistry {
	r := NewAbilityRegistry()
	r.Register(gamedata.AbilityIntimidate, AbilityHooks{OnSwitchIn: intimidate})
	r.Register(gamedata.AbilityStatic, AbilityHooks{OnContactReceived: static})
	r.Register(gamedata.AbilityLevitate, AbilityHooks{OnDamageReceived: levitate})
	r.Register(gamedata.AbilityMoxie, AbilityHooks{OnKill: moxie})
	r.Register(gamedata.AbilityFlashFire, AbilityHooks{
		OnDamageReceived: flashFireAbsorb,
		ModifyPower:      flashFireBoost,
	})
	r.Register(gamedata.AbilityOvergrow, AbilityHooks{ModifyPower: pinch(gamedata.TypeGrass)})
	r.Register(gamedata.AbilityBlaze, AbilityHooks{ModifyPower: pinch(gamedata.TypeFire)})
	r.Register(gamedata.AbilityTorrent, AbilityHooks{ModifyPower: pinch(gamedata.TypeWater)})
	return r
}

// Register sets the hooks for an ability, replacing any existing entry.
func (r *AbilityRegistry) Register(id gamedata.AbilityID, hooks AbilityHooks) {
	r.hooks[id] = hooks
}

// Hooks returns the hooks for an ability.
func (r *AbilityRegistry) Hooks(id gamedata.AbilityID) (AbilityHooks, bool) {
	if r == nil {
		return AbilityHooks{}, false
	}
	h, ok := r.hooks[id]
	return h, ok
}

// SwitchIn runs Self's switch-in hook.
func (r *AbilityRegistry) SwitchIn(h *HookContext) {
	if hooks, ok := r.Hooks(h.Self.Ability); ok && hooks.OnSwitchIn != nil {
		hooks.OnSwitchIn(h)
	}
}

// DamageReceived runs Self's damage-received hook and reports whether the
// hit is cancelled.
func (r *AbilityRegistry) DamageReceived(h *HookContext) bool {
	if hooks, ok := r.Hooks(h.Self.Ability); ok && hooks.OnDamageReceived != nil {
		return hooks.OnDamageReceived(h)
	}
	return false
}

// ContactReceived runs Self's contact hook.
func (r *AbilityRegistry) ContactReceived(h *HookContext) {
	if hooks, ok := r.Hooks(h.Self.Ability); ok && hooks.OnContactReceived != nil {
		hooks.OnContactReceived(h)
	}
}

// Kill runs Self's on-kill hook.
func (r *AbilityRegistry) Kill(h *HookContext) {
	if hooks, ok := r.Hooks(h.Self.Ability); ok && hooks.OnKill != nil {
		hooks.OnKill(h)
	}
}

// ModifyPower runs Self's power hook.
func (r *AbilityRegistry) ModifyPower(h *HookContext, power int) int {
	if hooks, ok := r.Hooks(h.Self.Ability); ok && hooks.ModifyPower != nil {
		return hooks.ModifyPower(h, power)
	}
	return power
}

// =============================================================================
// Built-in abilities
// =============================================================================

func announce(h *HookContext) {
	h.Log.Add(CategoryAbilityActivation, "%s's %s!", DisplayName(h.Self), AbilityLabel(h.Self.Ability))
}

func intimidate(h *HookContext) {
	if h.Opponent == nil || h.Opponent.IsFainted() || h.Effects == nil {
		return
	}
	announce(h)
	h.Effects.ApplyStatChange(h.Opponent, gamedata.StatAttack, -1, h.Log)
}

func static(h *HookContext) {
	if h.Self.IsFainted() || h.Opponent == nil || h.Opponent.IsFainted() || h.Effects == nil {
		return
	}
	if !Roll(h.RNG, StaticChance) {
		return
	}
	announce(h)
	h.Effects.ApplyStatus(h.Opponent, gamedata.StatusEffect{
		Condition: gamedata.StatusParalysis,
		Chance:    1,
		Target:    gamedata.TargetOpponent,
	}, h.Log)
}

func levitate(h *HookContext) bool {
	if h.Move == nil || h.Move.Type != gamedata.TypeGround {
		return false
	}
	announce(h)
	h.Log.Add(CategoryInfo, "It doesn't affect %s...", DisplayName(h.Self))
	return true
}

func moxie(h *HookContext) {
	if h.Self.IsFainted() || h.Effects == nil {
		return
	}
	announce(h)
	h.Effects.ApplyStatChange(h.Self, gamedata.StatAttack, 1, h.Log)
}

func flashFireAbsorb(h *HookContext) bool {
	if h.Move == nil || h.Move.Type != gamedata.TypeFire {
		return false
	}
	h.Self.Flags.FlashFire = true
	announce(h)
	h.Log.Add(CategoryBuff, "%s's fire power rose!", DisplayName(h.Self))
	return true
}

func flashFireBoost(h *HookContext, power int) int {
	if h.Self.Flags.FlashFire && h.Move != nil && h.Move.Type == gamedata.TypeFire {
		return int(float64(power) * FlashFireBoost)
	}
	return power
}

// pinch boosts moves of one type while HP is at or below a third.
func pinch(t gamedata.ElementType) func(h *HookContext, power int) int {
	return func(h *HookContext, power int) int {
		if h.Move == nil || h.Move.Type != t {
			return power
		}
		if h.Self.CurrentHP*3 > h.Self.MaxHP() {
			return power
		}
		announce(h)
		return int(float64(power) * PinchBoost)
	}
}
