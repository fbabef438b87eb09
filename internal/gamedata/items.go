package gamedata

// ItemCategory groups items for inventory display.
type ItemCategory string

const (
	CategoryBall           ItemCategory = "ball"
	CategoryMedicine       ItemCategory = "medicine"
	CategoryGeneral        ItemCategory = "general"
	CategoryEvolutionStone ItemCategory = "evolution_stone"
	CategoryGymBadge       ItemCategory = "gym_badge"
	CategoryValuable       ItemCategory = "valuable"
	CategoryBerry          ItemCategory = "berry"
	CategoryTM             ItemCategory = "tm"
)

// ItemEffectType is what using an item does.
type ItemEffectType string

const (
	EffectHealFlat      ItemEffectType = "heal_hp_flat"
	EffectRevive        ItemEffectType = "revive"
	EffectCureStatus    ItemEffectType = "cure_status"
	EffectCureAllStatus ItemEffectType = "cure_all_major_status"
	EffectExpGain       ItemEffectType = "exp_gain"
	EffectEvolve        ItemEffectType = "evolve"
	EffectTeachMove     ItemEffectType = "teach_move"
)

// ItemEffect is the usable effect of an item.
type ItemEffect struct {
	Type               ItemEffectType  `json:"type"`
	Value              int             `json:"value,omitempty"`
	CureCondition      StatusCondition `json:"cureCondition,omitempty"`
	MoveID             string          `json:"moveId,omitempty"`
	CompatibleTypes    []ElementType   `json:"compatibleTypes,omitempty"`
	RequiredSpeciesID  string          `json:"requiredSpeciesId,omitempty"`
	EvolvesToSpeciesID string          `json:"evolvesToSpeciesId,omitempty"`
}

// ItemDef defines an item loaded from JSON.
type ItemDef struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Category      ItemCategory `json:"category"`
	Description   string       `json:"description"`
	Effect        *ItemEffect  `json:"effect,omitempty"`
	CatchModifier float64      `json:"catchModifier,omitempty"`
	MaxStack      int          `json:"maxStack,omitempty"`
	BuyPrice      int          `json:"buyPrice,omitempty"`
	SellPrice     int          `json:"sellPrice,omitempty"`
}

// DefaultMaxStack applies when an item does not set one.
const DefaultMaxStack = 99

// Key returns the registry key.
func (i ItemDef) Key() string { return i.ID }

// IsBall reports whether the item can be thrown at a wild enemy.
func (i *ItemDef) IsBall() bool {
	return i.Category == CategoryBall
}

// StackLimit returns MaxStack, or DefaultMaxStack when unset.
func (i *ItemDef) StackLimit() int {
	if i.MaxStack <= 0 {
		return DefaultMaxStack
	}
	return i.MaxStack
}

// LoadItems loads item definitions from the embedded items.json.
func LoadItems() ([]ItemDef, error) {
	return Load[[]ItemDef]("items.json")
}
