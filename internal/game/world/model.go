// Package world provides the static game world: tile grids, rooms,
// interactive objects, exits, gates and the per-session object overlay.
package world

import (
	"errors"
	"fmt"
)

// Tile is a single grid cell type. Numeric values are fixed by content files.
type Tile int

// Tile values as they appear in room layouts.
const (
	TileEmpty Tile = iota
	TileTree
	TileWater
	TileTemple
	TileDirt
	TileBell
	TileSacredTree
	TileCloud
	TileAltar
	TileBoundary
	TileBridge
)

var tileNames = [...]string{
	TileEmpty:      "empty",
	TileTree:       "tree",
	TileWater:      "water",
	TileTemple:     "temple",
	TileDirt:       "dirt",
	TileBell:       "bell",
	TileSacredTree: "sacred-tree",
	TileCloud:      "cloud",
	TileAltar:      "altar",
	TileBoundary:   "boundary",
	TileBridge:     "bridge",
}

// Valid reports whether t is a known tile type.
func (t Tile) Valid() bool {
	return t >= TileEmpty && t <= TileBridge
}

// Passable reports whether the player may stand on t.
func (t Tile) Passable() bool {
	switch t {
	case TileEmpty, TileWater, TileDirt, TileCloud, TileBoundary, TileBridge:
		return true
	default:
		return false
	}
}

func (t Tile) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tile(%d)", int(t))
	}
	return tileNames[t]
}

// Direction names a room edge and the exit leading through it.
type Direction string

// Compass directions used for exits.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// StandardDirections contains the four exit directions.
var StandardDirections = []Direction{North, South, East, West}

// IsStandard reports whether d is one of the four exit directions.
func (d Direction) IsStandard() bool {
	for _, sd := range StandardDirections {
		if d == sd {
			return true
		}
	}
	return false
}

// Opposite returns the opposite compass direction, or "" for unknown values.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return ""
	}
}

// Facing is the direction the player sprite points.
type Facing string

// Player facings.
const (
	FacingUp    Facing = "up"
	FacingDown  Facing = "down"
	FacingLeft  Facing = "left"
	FacingRight Facing = "right"
)

// Valid reports whether f is one of the four facings.
func (f Facing) Valid() bool {
	switch f {
	case FacingUp, FacingDown, FacingLeft, FacingRight:
		return true
	}
	return false
}

// Delta returns the unit step for f.
func (f Facing) Delta() (dx, dy int) {
	switch f {
	case FacingUp:
		return 0, -1
	case FacingDown:
		return 0, 1
	case FacingLeft:
		return -1, 0
	case FacingRight:
		return 1, 0
	}
	return 0, 0
}

// FacingFor derives a facing from a movement delta. Horizontal movement wins
// when both components are non-zero; a zero delta keeps current.
func FacingFor(dx, dy int, current Facing) Facing {
	switch {
	case dx > 0:
		return FacingRight
	case dx < 0:
		return FacingLeft
	case dy > 0:
		return FacingDown
	case dy < 0:
		return FacingUp
	}
	return current
}

// ObjectKind classifies an interactive object.
type ObjectKind string

// Object kinds.
const (
	KindSign        ObjectKind = "sign"
	KindHiddenCache ObjectKind = "hidden-cache"
	KindMist        ObjectKind = "mist"
	KindBell        ObjectKind = "bell"
	KindNPC         ObjectKind = "npc"
	KindGatherable  ObjectKind = "gatherable"
	KindAltar       ObjectKind = "altar"
)

var validKinds = map[ObjectKind]bool{
	KindSign:        true,
	KindHiddenCache: true,
	KindMist:        true,
	KindBell:        true,
	KindNPC:         true,
	KindGatherable:  true,
	KindAltar:       true,
}

// Object is an interactive entity placed at a fixed tile. Objects are
// immutable templates; per-session state lives in an Overlay.
type Object struct {
	// ID is unique within the owning room.
	ID   string
	Kind ObjectKind
	X, Y int
	// Message is the text shown on interaction (sign, bell, npc first stage,
	// gatherable pickup, altar chant, mist description).
	Message string
	// Item is the concealed, gathered or rewarded item.
	Item string
	// Requires is the altar prerequisite or the item that dispels a mist.
	Requires string
	// FollowUp is the npc cutscene's second line.
	FollowUp string
	// RewardMessage is shown when a bell grants its reward.
	RewardMessage string
	// Rejection is shown when an altar's prerequisite is missing.
	Rejection string
	// Threshold is the ring count at which a bell grants its reward.
	Threshold int
	// Counter names the session flag a bell increments.
	Counter string
}

func (o *Object) validate(width, height int) error {
	if !validKinds[o.Kind] {
		return fmt.Errorf("object %q: unknown kind %q", o.ID, o.Kind)
	}
	if o.X < 0 || o.X >= width || o.Y < 0 || o.Y >= height {
		return fmt.Errorf("object %q: position (%d,%d) outside %dx%d grid", o.ID, o.X, o.Y, width, height)
	}
	var errs []error
	need := func(field, v string) {
		if v == "" {
			errs = append(errs, fmt.Errorf("%s kind requires %s", o.Kind, field))
		}
	}
	switch o.Kind {
	case KindSign:
		need("message", o.Message)
	case KindHiddenCache, KindGatherable:
		need("item", o.Item)
	case KindMist:
		need("requires", o.Requires)
	case KindBell:
		need("message", o.Message)
		need("item", o.Item)
		need("counter", o.Counter)
		if o.Threshold < 1 {
			errs = append(errs, errors.New("bell kind requires threshold >= 1"))
		}
	case KindNPC:
		need("message", o.Message)
		need("followup", o.FollowUp)
		need("item", o.Item)
	case KindAltar:
		need("message", o.Message)
		need("requires", o.Requires)
		need("rejection", o.Rejection)
	}
	if len(errs) > 0 {
		return fmt.Errorf("object %q: %w", o.ID, errors.Join(errs...))
	}
	return nil
}

// Gate blocks entry into a room until the player holds an item.
type Gate struct {
	Requires string
	Message  string
}

// Room is one screen of tiles with its objects and exits.
type Room struct {
	Key    string
	Name   string
	Region string
	// Tiles is indexed [y][x].
	Tiles   [][]Tile
	Objects []*Object
	Exits   map[Direction]string
	// Gate is nil for ungated rooms.
	Gate *Gate
	// Verse is shown on the overlay when the room is entered. May be empty.
	Verse string
}

// Width returns the number of columns.
func (r *Room) Width() int {
	if len(r.Tiles) == 0 {
		return 0
	}
	return len(r.Tiles[0])
}

// Height returns the number of rows.
func (r *Room) Height() int { return len(r.Tiles) }

// InBounds reports whether (x, y) lies on the grid.
func (r *Room) InBounds(x, y int) bool {
	return y >= 0 && y < len(r.Tiles) && x >= 0 && x < len(r.Tiles[y])
}

// TileAt returns the tile at (x, y).
//
// Postcondition: Returns (tile, true) when in bounds, or (TileEmpty, false).
func (r *Room) TileAt(x, y int) (Tile, bool) {
	if !r.InBounds(x, y) {
		return TileEmpty, false
	}
	return r.Tiles[y][x], true
}

// Passable reports whether the player may stand at (x, y).
func (r *Room) Passable(x, y int) bool {
	t, ok := r.TileAt(x, y)
	return ok && t.Passable()
}

// Object returns the template object with the given id.
func (r *Room) Object(id string) (*Object, bool) {
	for _, o := range r.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// ExitFor returns the room key reached by leaving through dir.
//
// Postcondition: Returns (key, true) if an exit exists, or ("", false).
func (r *Room) ExitFor(dir Direction) (string, bool) {
	key, ok := r.Exits[dir]
	return key, ok && key != ""
}

// Placement is a room and a coordinate inside it.
type Placement struct {
	Room string
	X, Y int
}

// PlayerStart describes the initial player state for a new session.
type PlayerStart struct {
	Placement
	Facing    Facing
	Health    int
	MaxHealth int
	Inventory []string
}

// Flight is the destination of the fly shortcut and the item that enables it.
type Flight struct {
	Placement
	Requires string
}

// World is the full immutable template set.
type World struct {
	Width  int
	Height int
	Start  PlayerStart
	// Flight is nil when the world has no fly shortcut.
	Flight *Flight
	Rooms  map[string]*Room
}

// Validate checks grid dimensions, tiles, objects, exits and placements.
//
// Postcondition: Returns nil if valid, or an error joining every violation.
func (w *World) Validate() error {
	var errs []error
	if w.Width < 1 || w.Height < 1 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", w.Width, w.Height)
	}
	if len(w.Rooms) == 0 {
		return errors.New("world must contain at least one room")
	}
	for key, room := range w.Rooms {
		if err := w.validateRoom(key, room); err != nil {
			errs = append(errs, err)
		}
	}
	if err := w.validatePlacement("start", w.Start.Placement); err != nil {
		errs = append(errs, err)
	}
	if !w.Start.Facing.Valid() {
		errs = append(errs, fmt.Errorf("start: unknown facing %q", w.Start.Facing))
	}
	if w.Start.MaxHealth < 1 || w.Start.Health < 1 || w.Start.Health > w.Start.MaxHealth {
		errs = append(errs, fmt.Errorf("start: health %d/%d out of range", w.Start.Health, w.Start.MaxHealth))
	}
	if w.Flight != nil {
		if err := w.validatePlacement("flight", w.Flight.Placement); err != nil {
			errs = append(errs, err)
		}
		if w.Flight.Requires == "" {
			errs = append(errs, errors.New("flight: requires must not be empty"))
		}
	}
	return errors.Join(errs...)
}

func (w *World) validateRoom(key string, r *Room) error {
	if r.Key != key {
		return fmt.Errorf("room key %q does not match room %q", key, r.Key)
	}
	if r.Name == "" {
		return fmt.Errorf("room %q: name must not be empty", key)
	}
	if len(r.Tiles) != w.Height {
		return fmt.Errorf("room %q: layout has %d rows, want %d", key, len(r.Tiles), w.Height)
	}
	for y, row := range r.Tiles {
		if len(row) != w.Width {
			return fmt.Errorf("room %q: row %d has %d columns, want %d", key, y, len(row), w.Width)
		}
		for x, t := range row {
			if !t.Valid() {
				return fmt.Errorf("room %q: unknown tile %d at (%d,%d)", key, int(t), x, y)
			}
		}
	}
	seen := make(map[string]bool, len(r.Objects))
	for _, o := range r.Objects {
		if seen[o.ID] {
			return fmt.Errorf("room %q: duplicate object id %q", key, o.ID)
		}
		seen[o.ID] = true
		if err := o.validate(w.Width, w.Height); err != nil {
			return fmt.Errorf("room %q: %w", key, err)
		}
	}
	for dir, target := range r.Exits {
		if !dir.IsStandard() {
			return fmt.Errorf("room %q: unknown exit direction %q", key, dir)
		}
		if _, ok := w.Rooms[target]; !ok {
			return fmt.Errorf("room %q: exit %q targets unknown room %q", key, dir, target)
		}
	}
	if r.Gate != nil && r.Gate.Requires == "" {
		return fmt.Errorf("room %q: gate requires must not be empty", key)
	}
	return nil
}

func (w *World) validatePlacement(label string, p Placement) error {
	room, ok := w.Rooms[p.Room]
	if !ok {
		return fmt.Errorf("%s: unknown room %q", label, p.Room)
	}
	if !room.Passable(p.X, p.Y) {
		return fmt.Errorf("%s: (%d,%d) in room %q is not a passable tile", label, p.X, p.Y, p.Room)
	}
	return nil
}
