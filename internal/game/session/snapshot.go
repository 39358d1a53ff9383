package session

import (
	"time"

	"github.com/cory-johannsen/rasaratnakara/internal/game/world"
)

// ObjectView is an object as the renderer should draw it.
type ObjectView struct {
	ID         string
	Kind       world.ObjectKind
	X, Y       int
	Discovered bool
	Fading     bool
	// Active is false for a dispelled mist or a dug cache.
	Active bool
}

// ItemView is a held item with its display data.
type ItemView struct {
	ID   string
	Name string
	Icon string
}

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	SessionID string
	State     State
	Room      string
	RoomName  string
	Region    string
	// Tiles is indexed [y][x] and owned by the snapshot.
	Tiles     [][]world.Tile
	Objects   []ObjectView
	Player    Player
	Dialogue  string
	Overlay   string
	Inventory []ItemView
	Slots     [2]string
	Locked    bool
	Now       time.Duration
}

// Snapshot captures the current frame.
func (s *Session) Snapshot() Snapshot {
	r := s.room()
	tiles := make([][]world.Tile, len(r.Tiles))
	for y, row := range r.Tiles {
		tiles[y] = append([]world.Tile(nil), row...)
	}
	objs := s.overlay.Objects(r)
	views := make([]ObjectView, 0, len(objs))
	for _, obj := range objs {
		st := s.overlay.State(world.ObjectRef{Room: r.Key, ID: obj.ID})
		views = append(views, ObjectView{
			ID:         obj.ID,
			Kind:       obj.Kind,
			X:          obj.X,
			Y:          obj.Y,
			Discovered: st.Discovered,
			Fading:     st.Fading,
			Active:     s.active(obj, st),
		})
	}
	items := s.inv.Items()
	inv := make([]ItemView, 0, len(items))
	for _, id := range items {
		v := ItemView{ID: id, Name: s.deps.Items.DisplayName(id)}
		if d, ok := s.deps.Items.Item(id); ok {
			v.Icon = d.Icon
		}
		inv = append(inv, v)
	}
	return Snapshot{
		SessionID: s.id.String(),
		State:     s.state,
		Room:      r.Key,
		RoomName:  r.Name,
		Region:    r.Region,
		Tiles:     tiles,
		Objects:   views,
		Player:    s.player,
		Dialogue:  s.dialogue,
		Overlay:   s.overlayText,
		Inventory: inv,
		Slots:     s.slots,
		Locked:    s.locked,
		Now:       s.runner.Now(),
	}
}

// MistActive reports whether a mist requiring item still stands. It is
// derived from the inventory on every call and never stored.
func (s *Session) MistActive(requires string) bool {
	return !s.inv.Has(requires)
}

func (s *Session) active(obj *world.Object, st world.ObjectState) bool {
	switch obj.Kind {
	case world.KindMist:
		return s.MistActive(obj.Requires)
	case world.KindHiddenCache:
		return !st.Discovered
	}
	return true
}
