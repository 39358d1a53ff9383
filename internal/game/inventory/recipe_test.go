package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/rasaratnakara/internal/game/inventory"
)

const testItemsYAML = `
items:
  - id: copper
    name: Copper
    description: Base metal.
  - id: elephant_stone
    name: Elephant Stone
  - id: gold
    name: Divine Gold
  - id: fish
    name: Blue Fish
  - id: tamarind_wood
    name: Tamarind Wood
  - id: adamantine_body
    name: Adamantine Body
    on_produce:
      max_health: 6
`

const testRecipesYAML = `
recipes:
  - inputs: [copper, elephant_stone]
    output: gold
    message: "TRANSMUTATION COMPLETE!"
  - inputs: [fish, tamarind_wood]
    output: adamantine_body
    message: "ELIXIR CONSUMED!"
`

func loadTestBook(t testing.TB) (*inventory.Registry, *inventory.RecipeBook) {
	t.Helper()
	defs, err := inventory.LoadItemsFromBytes([]byte(testItemsYAML))
	require.NoError(t, err)
	reg, err := inventory.NewRegistryFrom(defs)
	require.NoError(t, err)
	book, err := inventory.LoadRecipesFromBytes([]byte(testRecipesYAML), reg)
	require.NoError(t, err)
	return reg, book
}

func TestRecipeBook_MatchEitherOrder(t *testing.T) {
	_, book := loadTestBook(t)
	r1, ok := book.Match("copper", "elephant_stone")
	require.True(t, ok)
	r2, ok := book.Match("elephant_stone", "copper")
	require.True(t, ok)
	assert.Same(t, r1, r2)
	assert.Equal(t, "gold", r1.Output)
}

func TestRecipeBook_MatchRejectsEmptyAndRepeated(t *testing.T) {
	_, book := loadTestBook(t)
	_, ok := book.Match("", "copper")
	assert.False(t, ok)
	_, ok = book.Match("copper", "")
	assert.False(t, ok)
	_, ok = book.Match("copper", "copper")
	assert.False(t, ok)
	_, ok = book.Match("copper", "fish")
	assert.False(t, ok)
}

func TestRecipeBook_Craft(t *testing.T) {
	_, book := loadTestBook(t)
	inv := inventory.New("copper", "elephant_stone")
	r, ok := book.Craft(inv, "elephant_stone", "copper")
	require.True(t, ok)
	assert.Equal(t, "TRANSMUTATION COMPLETE!", r.Message)
	assert.Equal(t, []string{"gold"}, inv.Items())
}

func TestRecipeBook_CraftRequiresBothHeld(t *testing.T) {
	_, book := loadTestBook(t)
	inv := inventory.New("copper")
	_, ok := book.Craft(inv, "copper", "elephant_stone")
	assert.False(t, ok)
	assert.Equal(t, []string{"copper"}, inv.Items())
}

func TestNewRecipeBook_Rejects(t *testing.T) {
	_, err := inventory.NewRecipeBook([]*inventory.Recipe{{Inputs: [2]string{"a", "a"}, Output: "b"}})
	assert.Error(t, err)

	_, err = inventory.NewRecipeBook([]*inventory.Recipe{
		{Inputs: [2]string{"a", "b"}, Output: "c"},
		{Inputs: [2]string{"b", "a"}, Output: "d"},
	})
	assert.Error(t, err)
}

func TestLoadRecipes_UnknownItem(t *testing.T) {
	reg, _ := loadTestBook(t)
	_, err := inventory.LoadRecipesFromBytes([]byte(`
recipes:
  - inputs: [copper, unobtainium]
    output: gold
`), reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unobtainium")
}

func TestLoadRecipes_WrongArity(t *testing.T) {
	reg, _ := loadTestBook(t)
	_, err := inventory.LoadRecipesFromBytes([]byte(`
recipes:
  - inputs: [copper]
    output: gold
`), reg)
	assert.Error(t, err)
}

func TestPropertyRecipeSymmetry(t *testing.T) {
	_, book := loadTestBook(t)
	ids := []string{"", "copper", "elephant_stone", "gold", "fish", "tamarind_wood", "adamantine_body"}
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.SampledFrom(ids).Draw(t, "a")
		b := rapid.SampledFrom(ids).Draw(t, "b")
		r1, ok1 := book.Match(a, b)
		r2, ok2 := book.Match(b, a)
		if ok1 != ok2 || r1 != r2 {
			t.Fatalf("Match(%q,%q) != Match(%q,%q)", a, b, b, a)
		}
	})
}
