package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/rasaratnakara/internal/game/hint"
	"github.com/cory-johannsen/rasaratnakara/internal/game/sequence"
	"github.com/cory-johannsen/rasaratnakara/internal/game/world"
	"github.com/cory-johannsen/rasaratnakara/internal/scripting"
)

// Move steps the player by (dx, dy). Leaving the grid attempts a room
// transition toward that edge.
//
// Precondition: state is playing and the player is not meditating; otherwise
// Move is a no-op.
// Postcondition: returns true when the player's position or room changed.
// Facing follows the delta even when the move is blocked.
func (s *Session) Move(dx, dy int) bool {
	if !s.canAct() || (dx == 0 && dy == 0) {
		return false
	}
	s.player.Facing = world.FacingFor(dx, dy, s.player.Facing)

	r := s.room()
	nx, ny := s.player.X+dx, s.player.Y+dy
	switch {
	case nx < 0:
		return s.transition(world.West)
	case nx >= r.Width():
		return s.transition(world.East)
	case ny < 0:
		return s.transition(world.North)
	case ny >= r.Height():
		return s.transition(world.South)
	}

	tile, _ := r.TileAt(nx, ny)
	if !tile.Passable() {
		return false
	}
	s.player.X, s.player.Y = nx, ny
	s.player.Swimming = tile == world.TileWater
	s.setWalking()
	if s.player.Swimming {
		s.audio.Play(CueSplash)
	} else {
		s.audio.Play(CueStep)
	}
	return true
}

func (s *Session) setWalking() {
	s.player.Walking = true
	s.runner.Cancel(tagWalk)
	s.runner.Start(tagWalk, sequence.After(s.timing.Walk, func() {
		s.player.Walking = false
	}))
}

// transition leaves the active room through dir.
func (s *Session) transition(dir world.Direction) bool {
	dest, ok := s.deps.World.ExitFor(s.roomKey, dir)
	if !ok {
		return false
	}
	next, ok := s.deps.World.RoomByKey(dest)
	if !ok {
		return false
	}
	if g := next.Gate; g != nil && !s.inv.Has(g.Requires) {
		s.logger.Debug("gated transition refused",
			zap.String("room", s.roomKey),
			zap.String("destination", dest),
			zap.String("requires", g.Requires),
		)
		s.show(g.Message)
		return false
	}
	x, y := s.deps.World.EntryPoint(dir, s.player.X, s.player.Y)
	if !next.Passable(x, y) {
		return false
	}
	s.relocate(dest, x, y)
	return true
}

func (s *Session) relocate(roomKey string, x, y int) {
	from := s.roomKey
	s.roomKey = roomKey
	s.player.X, s.player.Y = x, y
	s.player.Swimming = false
	s.logger.Info("room changed",
		zap.String("from", from),
		zap.String("room", roomKey),
		zap.Int("x", x),
		zap.Int("y", y),
	)
	s.enterRoom()
}

// Fly jumps to the world's flight destination.
//
// Precondition: the flight item is held, state is playing and the player is
// not meditating.
// Postcondition: returns true when the player was moved.
func (s *Session) Fly() bool {
	if !s.canAct() {
		return false
	}
	f, ok := s.deps.World.Flight()
	if !ok || !s.inv.Has(f.Requires) {
		return false
	}
	s.relocate(f.Room, f.X, f.Y)
	return true
}

// ToggleMeditation enters or leaves meditation. Entering shows the hint for
// the current context and restores one health point up to the maximum.
//
// Precondition: state is playing.
func (s *Session) ToggleMeditation() bool {
	if s.state != StatePlaying {
		return false
	}
	s.player.Meditating = !s.player.Meditating
	if !s.player.Meditating {
		s.setOverlayText("")
		return true
	}
	s.audio.Play(CueText)
	s.setOverlayText(s.hint())
	if s.player.Health < s.player.MaxHealth {
		s.player.Health++
	}
	return true
}

func (s *Session) hint() string {
	r := s.room()
	if s.deps.Scripts != nil {
		if h, ok := s.deps.Scripts.Text(r.Region, scripting.HookOnMeditate, r.Key, r.Region); ok {
			return h
		}
	}
	return s.deps.Hints.Evaluate(hint.Context{
		Room:   r.Key,
		Region: r.Region,
		Holds:  s.inv.Has,
	})
}

// Dig uncovers a hidden cache on the player's own tile.
//
// Precondition: state is playing and the player is not meditating.
// Postcondition: returns true when an undiscovered cache was dug; the cache
// stays discovered for the rest of the session.
func (s *Session) Dig() bool {
	if !s.canAct() {
		return false
	}
	r := s.room()
	for _, obj := range s.overlay.Objects(r) {
		if obj.Kind != world.KindHiddenCache || obj.X != s.player.X || obj.Y != s.player.Y {
			continue
		}
		ref := world.ObjectRef{Room: r.Key, ID: obj.ID}
		if s.overlay.State(ref).Discovered {
			continue
		}
		s.overlay.Update(ref, func(st *world.ObjectState) { st.Discovered = true })
		s.inv.Add(obj.Item)
		s.logger.Debug("cache dug", zap.String("room", r.Key), zap.String("object", obj.ID), zap.String("item", obj.Item))
		s.show(fmt.Sprintf(msgDugUpFormat, s.deps.Items.DisplayName(obj.Item)))
		s.audio.Play(CueGet)
		return true
	}
	return false
}
