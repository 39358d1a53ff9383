package world

import (
	"fmt"
	"sort"
)

// Manager provides read-only lookups over a validated World. It holds no
// mutable state and is safe for concurrent use.
type Manager struct {
	world *World
	keys  []string
}

// NewManager creates a Manager from a world.
//
// Precondition: w must be non-nil.
// Postcondition: Returns a Manager or an error when w fails validation.
func NewManager(w *World) (*Manager, error) {
	if w == nil {
		return nil, fmt.Errorf("world must not be nil")
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("validating world: %w", err)
	}
	keys := make([]string, 0, len(w.Rooms))
	for k := range w.Rooms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &Manager{world: w, keys: keys}, nil
}

// RoomByKey returns the room with the given key.
//
// Postcondition: Returns (room, true) if found, or (nil, false) otherwise.
func (m *Manager) RoomByKey(key string) (*Room, bool) {
	r, ok := m.world.Rooms[key]
	return r, ok
}

// ExitFor resolves the room reached by leaving roomKey through dir. An absent
// exit is a normal state and yields ("", false).
func (m *Manager) ExitFor(roomKey string, dir Direction) (string, bool) {
	r, ok := m.world.Rooms[roomKey]
	if !ok {
		return "", false
	}
	return r.ExitFor(dir)
}

// Start returns the initial player state.
func (m *Manager) Start() PlayerStart {
	s := m.world.Start
	s.Inventory = append([]string(nil), s.Inventory...)
	return s
}

// Flight returns the fly shortcut, if the world defines one.
func (m *Manager) Flight() (Flight, bool) {
	if m.world.Flight == nil {
		return Flight{}, false
	}
	return *m.world.Flight, true
}

// Dimensions returns the shared grid width and height.
func (m *Manager) Dimensions() (width, height int) {
	return m.world.Width, m.world.Height
}

// RoomKeys returns all room keys in lexicographic order.
func (m *Manager) RoomKeys() []string {
	return append([]string(nil), m.keys...)
}

// RoomCount returns the number of rooms.
func (m *Manager) RoomCount() int {
	return len(m.keys)
}

// EntryPoint returns where the player appears when leaving a room through
// dir from (x, y): the opposite edge of the destination, inset by one tile,
// with the perpendicular coordinate preserved.
func (m *Manager) EntryPoint(dir Direction, x, y int) (int, int) {
	switch dir {
	case West:
		return m.world.Width - 2, y
	case East:
		return 1, y
	case North:
		return x, m.world.Height - 2
	case South:
		return x, 1
	}
	return x, y
}
