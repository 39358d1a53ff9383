package session_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/rasaratnakara/internal/config"
	"github.com/cory-johannsen/rasaratnakara/internal/game/hint"
	"github.com/cory-johannsen/rasaratnakara/internal/game/inventory"
	"github.com/cory-johannsen/rasaratnakara/internal/game/session"
	"github.com/cory-johannsen/rasaratnakara/internal/game/world"
)

// Layout notes for testWorldYAML (7x5):
//   - hub: start (2,2) facing down; sign on a temple tile (2,1); cache elephant_stone (1,2);
//     water (4,2); temple (4,1); mist (0,2). West to grove, south to shrine
//     at x=3, east to walled at y=3.
//   - grove (gated on gold): entered at (5,2); npc (3,2); gatherable on a
//     sacred tree at (5,1).
//   - shrine: entered at (3,1); bell tile at (3,2).
//   - sky: flight lands at (3,2); altar at (3,1).
//   - walled: its entry tile (1,3) is a tree.
const testWorldYAML = `
world:
  width: 7
  height: 5
  start:
    room: hub
    x: 2
    y: 2
    facing: down
    health: 2
    max_health: 3
    inventory: [copper]
  flight:
    requires: siddhi_flight
    room: sky
    x: 3
    y: 2
  gates:
    - region: west
      requires: gold
      message: "Mist blocks the path."
  rooms:
    - key: hub
      name: Temple
      region: hub
      verse: "Verse 2: a stone."
      layout:
        - [1, 1, 1, 1, 1, 1, 1]
        - [0, 0, 3, 0, 3, 0, 1]
        - [0, 4, 0, 0, 2, 0, 1]
        - [1, 0, 0, 0, 0, 0, 0]
        - [1, 1, 1, 0, 1, 1, 1]
      exits:
        west: grove
        south: shrine
        east: walled
      objects:
        - kind: sign
          x: 2
          y: 1
          message: "Temple of the Jasmine Lord."
        - id: elephant_stone
          kind: hidden-cache
          x: 1
          y: 2
          item: elephant_stone
        - id: west-mist
          kind: mist
          x: 0
          y: 2
          requires: gold
          message: "A barrier of mist."
    - key: grove
      name: Glade
      region: west
      layout:
        - [1, 1, 1, 1, 1, 1, 1]
        - [0, 0, 0, 0, 0, 6, 0]
        - [0, 0, 0, 0, 0, 0, 0]
        - [0, 0, 0, 0, 0, 0, 0]
        - [1, 1, 1, 1, 1, 1, 1]
      exits:
        east: hub
      objects:
        - id: yakshini
          kind: npc
          x: 3
          y: 2
          message: "This is my son."
          followup: "You are worthy."
          item: baby
        - id: tamarind
          kind: gatherable
          x: 5
          y: 1
          item: tamarind_wood
          message: "Got Tamarind Wood."
    - key: shrine
      name: Bell Shrine
      region: south
      layout:
        - [1, 1, 1, 0, 1, 1, 1]
        - [1, 0, 0, 0, 0, 0, 1]
        - [1, 0, 0, 5, 0, 0, 1]
        - [1, 0, 0, 0, 0, 0, 1]
        - [1, 1, 1, 1, 1, 1, 1]
      exits:
        north: hub
      objects:
        - id: bell
          kind: bell
          x: 3
          y: 2
          message: "BONG!"
          item: siddhi_flight
          threshold: 3
          counter: bell_rung
          reward_message: "Shambhu grants you FLIGHT!"
    - key: sky
      name: Altar
      region: sky
      layout:
        - [0, 0, 0, 0, 0, 0, 0]
        - [0, 0, 0, 8, 0, 0, 0]
        - [0, 0, 0, 0, 0, 0, 0]
        - [7, 7, 7, 7, 7, 7, 7]
        - [9, 9, 9, 9, 9, 9, 9]
      objects:
        - id: altar
          kind: altar
          x: 3
          y: 1
          message: "Chanting..."
          requires: adamantine_body
          rejection: "You need the Adamantine Body first."
    - key: walled
      name: Walled
      layout:
        - [0, 0, 0, 0, 0, 0, 0]
        - [0, 0, 0, 0, 0, 0, 0]
        - [0, 0, 0, 0, 0, 0, 0]
        - [0, 1, 0, 0, 0, 0, 0]
        - [0, 0, 0, 0, 0, 0, 0]
      exits:
        west: hub
`

const testItemsYAML = `
items:
  - id: copper
    name: Copper
  - id: elephant_stone
    name: Elephant Stone
    icon: "E"
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
  - id: baby
    name: Yakshini Child
  - id: siddhi_flight
    name: Flight
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

const testHintsYAML = `
hints:
  - room: hub
    lacks: [elephant_stone]
    text: "Seek the stone."
  - room: hub
    text: "Go forth."
  - region: south
    text: "Ring the bell."
  - text: "Clear your mind..."
`

type fixture struct {
	sess *session.Session
	cues *[]session.Cue
}

func loadDeps(t testing.TB, worldYAML string) session.Deps {
	t.Helper()
	w, err := world.LoadWorldFromBytes([]byte(worldYAML))
	require.NoError(t, err)
	wm, err := world.NewManager(w)
	require.NoError(t, err)
	defs, err := inventory.LoadItemsFromBytes([]byte(testItemsYAML))
	require.NoError(t, err)
	reg, err := inventory.NewRegistryFrom(defs)
	require.NoError(t, err)
	book, err := inventory.LoadRecipesFromBytes([]byte(testRecipesYAML), reg)
	require.NoError(t, err)
	hints, err := hint.LoadTableFromBytes([]byte(testHintsYAML))
	require.NoError(t, err)
	return session.Deps{World: wm, Items: reg, Recipes: book, Hints: hints}
}

// newFixture builds a started session. startItems replaces the starting
// inventory when non-empty.
func newFixture(t testing.TB, startItems ...string) fixture {
	t.Helper()
	return newFixtureFrom(t, loadDeps(t, worldStarting(startItems...)))
}

// worldStarting returns testWorldYAML with the starting inventory replaced.
func worldStarting(items ...string) string {
	if len(items) == 0 {
		return testWorldYAML
	}
	return strings.Replace(testWorldYAML, "inventory: [copper]", "inventory: ["+strings.Join(items, ", ")+"]", 1)
}

func newFixtureFrom(t testing.TB, deps session.Deps) fixture {
	t.Helper()
	cues := &[]session.Cue{}
	deps.Audio = session.AudioFunc(func(c session.Cue) { *cues = append(*cues, c) })
	sess, err := session.NewSession(deps, config.Defaults().Timing, zap.NewNop())
	require.NoError(t, err)
	sess.Start()
	return fixture{sess: sess, cues: cues}
}

// walk applies the moves in order and fails if any expected step is refused.
func (f fixture) walk(t testing.TB, steps ...[2]int) {
	t.Helper()
	for i, st := range steps {
		require.True(t, f.sess.Move(st[0], st[1]), "step %d (%d,%d) refused at %+v in %s", i, st[0], st[1], f.sess.Player(), f.sess.RoomKey())
	}
}

var (
	up    = [2]int{0, -1}
	down  = [2]int{0, 1}
	left  = [2]int{-1, 0}
	right = [2]int{1, 0}
)

// gotoShrine walks from the start to the tile above the bell, facing it.
func (f fixture) gotoShrine(t testing.TB) {
	t.Helper()
	f.walk(t, right, down, down, down)
	require.Equal(t, "shrine", f.sess.RoomKey())
	require.Equal(t, world.FacingDown, f.sess.Player().Facing)
}

// gotoGrove walks from the start into the grove.
func (f fixture) gotoGrove(t testing.TB) {
	t.Helper()
	f.walk(t, left, left)
	f.sess.Move(-1, 0)
	require.Equal(t, "grove", f.sess.RoomKey())
}

func (f fixture) lastCue() session.Cue {
	if len(*f.cues) == 0 {
		return ""
	}
	return (*f.cues)[len(*f.cues)-1]
}
