package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/rasaratnakara/internal/game/inventory"
)

func TestInventory_AddPreservesOrder(t *testing.T) {
	inv := inventory.New("copper")
	assert.True(t, inv.Add("elephant_stone"))
	assert.True(t, inv.Add("fish"))
	assert.Equal(t, []string{"copper", "elephant_stone", "fish"}, inv.Items())
}

func TestInventory_AddIdempotent(t *testing.T) {
	inv := inventory.New()
	assert.True(t, inv.Add("gold"))
	assert.False(t, inv.Add("gold"))
	assert.Equal(t, 1, inv.Len())
}

func TestInventory_NewSkipsDuplicates(t *testing.T) {
	inv := inventory.New("copper", "copper", "fish")
	assert.Equal(t, []string{"copper", "fish"}, inv.Items())
}

func TestInventory_AddEmptyIgnored(t *testing.T) {
	inv := inventory.New()
	assert.False(t, inv.Add(""))
	assert.Equal(t, 0, inv.Len())
}

func TestInventory_Remove(t *testing.T) {
	inv := inventory.New("a", "b", "c")
	assert.True(t, inv.Remove("b"))
	assert.False(t, inv.Remove("b"))
	assert.False(t, inv.Has("b"))
	assert.Equal(t, []string{"a", "c"}, inv.Items())
}

func TestInventory_ItemsIsCopy(t *testing.T) {
	inv := inventory.New("a")
	items := inv.Items()
	items[0] = "z"
	assert.Equal(t, []string{"a"}, inv.Items())
}

func TestPropertyAddTwiceLeavesLengthUnchanged(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.SliceOf(rapid.StringMatching(`[a-z]{1,6}`)).Draw(t, "seed")
		item := rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "item")
		inv := inventory.New(seed...)
		inv.Add(item)
		n := inv.Len()
		inv.Add(item)
		if inv.Len() != n {
			t.Fatalf("second Add(%q) changed length %d -> %d", item, n, inv.Len())
		}
	})
}

func TestPropertyNoDuplicates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ops := rapid.SliceOf(rapid.SampledFrom([]string{"a", "b", "c", "d"})).Draw(t, "ops")
		removes := rapid.SliceOf(rapid.Bool()).Draw(t, "removes")
		inv := inventory.New()
		for i, it := range ops {
			if i < len(removes) && removes[i] {
				inv.Remove(it)
			} else {
				inv.Add(it)
			}
		}
		seen := map[string]bool{}
		for _, it := range inv.Items() {
			if seen[it] {
				t.Fatalf("duplicate %q in %v", it, inv.Items())
			}
			seen[it] = true
			if !inv.Has(it) {
				t.Fatalf("Items lists %q but Has is false", it)
			}
		}
	})
}
