// Package inventory provides item definitions, the player's ordered
// inventory and the alchemy recipe book.
package inventory

import "github.com/zyedidia/generic/mapset"

// Inventory is an ordered set of item IDs. Acquisition order is preserved
// and duplicates are never stored.
type Inventory struct {
	order []string
	held  mapset.Set[string]
}

// New returns an inventory seeded with items, skipping duplicates.
func New(items ...string) *Inventory {
	inv := &Inventory{held: mapset.New[string]()}
	for _, it := range items {
		inv.Add(it)
	}
	return inv
}

// Add appends item unless it is already held.
//
// Postcondition: returns true iff item was not held before the call.
func (inv *Inventory) Add(item string) bool {
	if item == "" || inv.held.Has(item) {
		return false
	}
	inv.held.Put(item)
	inv.order = append(inv.order, item)
	return true
}

// Remove drops item if held.
//
// Postcondition: returns true iff item was held before the call.
func (inv *Inventory) Remove(item string) bool {
	if !inv.held.Has(item) {
		return false
	}
	inv.held.Remove(item)
	for i, it := range inv.order {
		if it == item {
			inv.order = append(inv.order[:i], inv.order[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether item is held.
func (inv *Inventory) Has(item string) bool {
	return inv.held.Has(item)
}

// Items returns a copy of the held items in acquisition order.
func (inv *Inventory) Items() []string {
	return append([]string(nil), inv.order...)
}

// Len returns the number of held items.
func (inv *Inventory) Len() int {
	return len(inv.order)
}
