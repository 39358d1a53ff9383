package hint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/rasaratnakara/internal/game/hint"
)

const testHintsYAML = `
hints:
  - room: hub
    lacks: [elephant_stone]
    text: "Seek the stone."
  - room: hub
    lacks: [gold]
    text: "Perform alchemy."
  - room: hub
    text: "Go forth."
  - region: south
    text: "Ring the bell."
  - text: "Clear your mind..."
`

func holding(items ...string) func(string) bool {
	set := map[string]bool{}
	for _, it := range items {
		set[it] = true
	}
	return func(it string) bool { return set[it] }
}

func TestTable_FirstMatchWins(t *testing.T) {
	tbl, err := hint.LoadTableFromBytes([]byte(testHintsYAML))
	require.NoError(t, err)

	ctx := hint.Context{Room: "hub", Region: "hub", Holds: holding("copper")}
	assert.Equal(t, "Seek the stone.", tbl.Evaluate(ctx))

	ctx.Holds = holding("copper", "elephant_stone")
	assert.Equal(t, "Perform alchemy.", tbl.Evaluate(ctx))

	ctx.Holds = holding("gold", "elephant_stone")
	assert.Equal(t, "Go forth.", tbl.Evaluate(ctx))
}

func TestTable_RegionAndDefault(t *testing.T) {
	tbl, err := hint.LoadTableFromBytes([]byte(testHintsYAML))
	require.NoError(t, err)

	assert.Equal(t, "Ring the bell.", tbl.Evaluate(hint.Context{Room: "south_2", Region: "south", Holds: holding()}))
	assert.Equal(t, "Clear your mind...", tbl.Evaluate(hint.Context{Room: "void", Region: "void", Holds: holding()}))
}

func TestNewTable_RequiresDefault(t *testing.T) {
	_, err := hint.NewTable([]hint.Rule{{Room: "hub", Text: "x"}})
	assert.Error(t, err)
	_, err = hint.NewTable(nil)
	assert.Error(t, err)
	_, err = hint.NewTable([]hint.Rule{{Text: "  "}})
	assert.Error(t, err)
}

func TestPropertyAlwaysYieldsText(t *testing.T) {
	tbl, err := hint.LoadTableFromBytes([]byte(testHintsYAML))
	require.NoError(t, err)
	rapid.Check(t, func(t *rapid.T) {
		room := rapid.SampledFrom([]string{"hub", "south_1", "east_2", "sky_1", ""}).Draw(t, "room")
		region := rapid.SampledFrom([]string{"hub", "south", "east", "sky", ""}).Draw(t, "region")
		items := rapid.SliceOf(rapid.SampledFrom([]string{"copper", "gold", "elephant_stone"})).Draw(t, "items")
		if tbl.Evaluate(hint.Context{Room: room, Region: region, Holds: holding(items...)}) == "" {
			t.Fatalf("no hint for room=%q region=%q items=%v", room, region, items)
		}
	})
}
