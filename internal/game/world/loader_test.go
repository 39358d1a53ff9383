package world

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validWorldYAML = `
world:
  width: 5
  height: 4
  start:
    room: center
    x: 2
    y: 1
    facing: down
    health: 3
    max_health: 3
    inventory: [copper]
  flight:
    requires: wings
    room: sky
    x: 2
    y: 2
  gates:
    - region: east
      requires: gold
      message: "Mist blocks the path."
  rooms:
    - key: center
      name: "Center"
      region: hub
      verse: |
        A verse for the center.
      layout:
        - [1, 1, 0, 1, 1]
        - [0, 0, 0, 2, 0]
        - [1, 4, 3, 0, 0]
        - [1, 1, 0, 1, 1]
      exits:
        north: sky
        east: east_room
      objects:
        - kind: sign
          x: 1
          y: 1
          message: "Welcome."
        - kind: hidden-cache
          x: 1
          y: 2
          item: stone
        - id: east-mist
          kind: mist
          x: 4
          y: 1
          requires: gold
          message: "A barrier of mist."
    - key: east_room
      name: "East"
      region: east
      layout:
        - [1, 1, 1, 1, 1]
        - [0, 0, 0, 0, 1]
        - [0, 0, 0, 0, 1]
        - [1, 1, 1, 1, 1]
      exits:
        west: center
    - key: sky
      name: "Sky"
      layout:
        - [0, 0, 0, 0, 0]
        - [0, 0, 0, 0, 0]
        - [0, 0, 8, 0, 0]
        - [9, 9, 9, 9, 9]
      exits:
        south: center
      objects:
        - kind: altar
          x: 2
          y: 2
          message: "Chanting..."
          requires: body
          rejection: "Not yet."
`

func TestLoadWorldFromBytes_Valid(t *testing.T) {
	w, err := LoadWorldFromBytes([]byte(validWorldYAML))
	require.NoError(t, err)

	assert.Equal(t, 5, w.Width)
	assert.Equal(t, 4, w.Height)
	assert.Len(t, w.Rooms, 3)
	assert.Equal(t, "center", w.Start.Room)
	assert.Equal(t, FacingDown, w.Start.Facing)
	assert.Equal(t, []string{"copper"}, w.Start.Inventory)
	require.NotNil(t, w.Flight)
	assert.Equal(t, "wings", w.Flight.Requires)

	center := w.Rooms["center"]
	assert.Equal(t, "Center", center.Name)
	assert.Equal(t, "hub", center.Region)
	assert.Equal(t, "A verse for the center.", center.Verse)
	assert.Nil(t, center.Gate)
	tile, ok := center.TileAt(3, 1)
	require.True(t, ok)
	assert.Equal(t, TileWater, tile)

	// Generated and explicit object IDs.
	_, ok = center.Object("sign-1-1")
	assert.True(t, ok)
	_, ok = center.Object("hidden-cache-1-2")
	assert.True(t, ok)
	mist, ok := center.Object("east-mist")
	require.True(t, ok)
	assert.Equal(t, KindMist, mist.Kind)

	// Region gate is attached to every room of the region.
	east := w.Rooms["east_room"]
	require.NotNil(t, east.Gate)
	assert.Equal(t, "gold", east.Gate.Requires)
	assert.Equal(t, "Mist blocks the path.", east.Gate.Message)

	// Region defaults to the room key.
	assert.Equal(t, "sky", w.Rooms["sky"].Region)
}

func TestLoadWorldFromBytes_InvalidYAML(t *testing.T) {
	_, err := LoadWorldFromBytes([]byte("not: [valid yaml"))
	assert.Error(t, err)
}

func TestLoadWorldFromBytes_Malformed(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "short row",
			mutate:  func(s string) string { return strings.Replace(s, "- [0, 0, 0, 2, 0]", "- [0, 0, 0, 2]", 1) },
			wantErr: "columns",
		},
		{
			name:    "unknown tile",
			mutate:  func(s string) string { return strings.Replace(s, "- [0, 0, 0, 2, 0]", "- [0, 0, 0, 42, 0]", 1) },
			wantErr: "unknown tile",
		},
		{
			name:    "dangling exit",
			mutate:  func(s string) string { return strings.Replace(s, "east: east_room", "east: nowhere", 1) },
			wantErr: "unknown room",
		},
		{
			name:    "start on obstacle",
			mutate:  func(s string) string { return strings.Replace(s, "    x: 2\n    y: 1\n", "    x: 0\n    y: 0\n", 1) },
			wantErr: "not a passable tile",
		},
		{
			name:    "object outside grid",
			mutate:  func(s string) string { return strings.Replace(s, "x: 4\n          y: 1\n", "x: 9\n          y: 1\n", 1) },
			wantErr: "outside",
		},
		{
			name:    "altar without rejection",
			mutate:  func(s string) string { return strings.Replace(s, `rejection: "Not yet."`, "", 1) },
			wantErr: "rejection",
		},
		{
			name:    "gate for unknown region",
			mutate:  func(s string) string { return strings.Replace(s, "region: east\n      requires", "region: north\n      requires", 1) },
			wantErr: "unknown region",
		},
		{
			name:    "bad exit direction",
			mutate:  func(s string) string { return strings.Replace(s, "south: center", "down: center", 1) },
			wantErr: "unknown exit direction",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := tc.mutate(validWorldYAML)
			require.NotEqual(t, validWorldYAML, data, "mutation did not apply")
			_, err := LoadWorldFromBytes([]byte(data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadWorldFromBytes_DuplicateObjectID(t *testing.T) {
	data := strings.Replace(validWorldYAML, "- id: east-mist", "- id: sign-1-1", 1)
	_, err := LoadWorldFromBytes([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate object id")
}

func TestLoadWorldFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validWorldYAML), 0644))

	w, err := LoadWorldFromFile(path)
	require.NoError(t, err)
	assert.Len(t, w.Rooms, 3)
}

func TestLoadWorldFromFile_Missing(t *testing.T) {
	_, err := LoadWorldFromFile("/nonexistent/world.yaml")
	assert.Error(t, err)
}
