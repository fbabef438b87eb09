package gamedata

// =============================================================================
// BATTLE DATA DESIGN
// =============================================================================
//
// Overview:
// ---------
// Every rule-relevant number lives in JSON and is loaded at startup. Code in
// combat, world and progression reads these definitions but never mutates them.
//
// Core Concepts:
// --------------
//
// 1. ElementType - The eighteen elemental types. A move has one, a species
//    has one or two. types.json holds the attack -> defend multiplier chart.
//
// 2. MoveCategory - physical (attack vs defense), special (specialAttack vs
//    specialDefense) or status (no damage; stat changes and status effects).
//
// 3. StatusCondition - none, poison, paralysis, burn, sleep are the major
//    conditions and are mutually exclusive. confusion is tracked separately
//    and may coexist with a major condition.
//
// 4. AbilityID - Passive traits. Hooks are implemented in combat; this file
//    only carries names and descriptions for display.
//
// JSON Schema (move):
// -------------------
// {
//   "id": "ember",
//   "type": "fire",
//   "category": "special",
//   "power": 40,
//   "accuracy": 100,
//   "pp": 25,
//   "statusEffect": { "condition": "burn", "chance": 0.1, "target": "opponent" }
// }
//
// Telemetry:
// ----------
// - encounter.spawn: area, species, level, gym_leader
// - battle.turn: actor, move, damage, critical, effectiveness
// - battle.end: outcome, turns

// ElementType is an elemental type shared by moves and species.
type ElementType string

const (
	TypeNormal   ElementType = "normal"
	TypeFire     ElementType = "fire"
	TypeWater    ElementType = "water"
	TypeGrass    ElementType = "grass"
	TypeElectric ElementType = "electric"
	TypeIce      ElementType = "ice"
	TypeFighting ElementType = "fighting"
	TypePoison   ElementType = "poison"
	TypeGround   ElementType = "ground"
	TypeFlying   ElementType = "flying"
	TypePsychic  ElementType = "psychic"
	TypeBug      ElementType = "bug"
	TypeRock     ElementType = "rock"
	TypeGhost    ElementType = "ghost"
	TypeDragon   ElementType = "dragon"
	TypeDark     ElementType = "dark"
	TypeSteel    ElementType = "steel"
	TypeFairy    ElementType = "fairy"
)

// MoveCategory selects which stats a move uses, or none for status moves.
type MoveCategory string

const (
	CategoryPhysical MoveCategory = "physical"
	CategorySpecial  MoveCategory = "special"
	CategoryStatus   MoveCategory = "status"
)

// StatusCondition is a major status or confusion.
type StatusCondition string

const (
	StatusNone      StatusCondition = "none"
	StatusPoison    StatusCondition = "poison"
	StatusParalysis StatusCondition = "paralysis"
	StatusBurn      StatusCondition = "burn"
	StatusSleep     StatusCondition = "sleep"
	StatusConfusion StatusCondition = "confusion"
)

// IsMajor reports whether the condition occupies the exclusive status slot.
func (s StatusCondition) IsMajor() bool {
	switch s {
	case StatusPoison, StatusParalysis, StatusBurn, StatusSleep:
		return true
	default:
		return false
	}
}

// StatName names one of the six stats.
type StatName string

const (
	StatHP             StatName = "hp"
	StatAttack         StatName = "attack"
	StatDefense        StatName = "defense"
	StatSpecialAttack  StatName = "specialAttack"
	StatSpecialDefense StatName = "specialDefense"
	StatSpeed          StatName = "speed"
)

// AllStats lists the stats in display order.
var AllStats = []StatName{StatHP, StatAttack, StatDefense, StatSpecialAttack, StatSpecialDefense, StatSpeed}

// EffectTarget says who a move's secondary effect lands on.
type EffectTarget string

const (
	TargetSelf     EffectTarget = "self"
	TargetOpponent EffectTarget = "opponent"
)

// AbilityID identifies a passive ability.
type AbilityID string

const (
	AbilityNone       AbilityID = "none"
	AbilityIntimidate AbilityID = "intimidate"
	AbilityStatic     AbilityID = "static"
	AbilityLevitate   AbilityID = "levitate"
	AbilityMoxie      AbilityID = "moxie"
	AbilityFlashFire  AbilityID = "flash-fire"
	AbilityOvergrow   AbilityID = "overgrow"
	AbilityBlaze      AbilityID = "blaze"
	AbilityTorrent    AbilityID = "torrent"
)

// AbilityDef is the display data for an ability loaded from abilities.json.
type AbilityDef struct {
	ID          AbilityID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// Key returns the registry key.
func (a AbilityDef) Key() string { return string(a.ID) }

// LoadAbilities loads ability definitions from the embedded abilities.json.
func LoadAbilities() ([]AbilityDef, error) {
	return Load[[]AbilityDef]("abilities.json")
}
