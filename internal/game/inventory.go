package game

import "github.com/samdwyer/critterquest/internal/gamedata"

// Inventory maps item IDs to quantities.
type Inventory map[string]int

// Count returns how many of an item are held.
func (inv Inventory) Count(id string) int {
	return inv[id]
}

// Add stores up to qty of item, respecting its stack limit, and returns
// how many were actually added.
func (inv Inventory) Add(item *gamedata.ItemDef, qty int) int {
	if qty <= 0 {
		return 0
	}
	room := item.StackLimit() - inv[item.ID]
	if room <= 0 {
		return 0
	}
	if qty > room {
		qty = room
	}
	inv[item.ID] += qty
	return qty
}

// Remove takes qty of an item. It fails without change if too few are held.
func (inv Inventory) Remove(id string, qty int) bool {
	if qty <= 0 || inv[id] < qty {
		return false
	}
	inv[id] -= qty
	if inv[id] == 0 {
		delete(inv, id)
	}
	return true
}
