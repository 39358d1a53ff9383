package session

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/rasaratnakara/internal/game/sequence"
	"github.com/cory-johannsen/rasaratnakara/internal/game/world"
)

// Interact dismisses an open dialogue, or otherwise acts on the object
// directly in front of the player.
//
// Postcondition: returns true when the dialogue was dismissed or an object
// reacted.
func (s *Session) Interact() bool {
	if s.state == StateDialogue {
		return s.dismiss()
	}
	if !s.canAct() {
		return false
	}
	r := s.room()
	dx, dy := s.player.Facing.Delta()
	obj, ok := s.overlay.ObjectAt(r, s.player.X+dx, s.player.Y+dy)
	if !ok {
		return false
	}
	ref := world.ObjectRef{Room: r.Key, ID: obj.ID}
	s.logger.Debug("interact",
		zap.String("room", ref.Room),
		zap.String("object", ref.ID),
		zap.String("kind", string(obj.Kind)),
	)
	switch obj.Kind {
	case world.KindSign:
		s.show(obj.Message)
		return true
	case world.KindBell:
		return s.ringBell(ref, obj)
	case world.KindNPC:
		return s.startCutscene(ref, obj)
	case world.KindGatherable:
		return s.gather(obj)
	case world.KindAltar:
		return s.chant(ref, obj)
	}
	return false
}

func (s *Session) ringBell(ref world.ObjectRef, obj *world.Object) bool {
	rings := s.flags.inc(obj.Counter)
	s.show(obj.Message)
	if rings < obj.Threshold {
		return true
	}
	item, msg := obj.Item, obj.RewardMessage
	s.runner.Start("bell:"+ref.Room+"/"+ref.ID, sequence.After(s.timing.BellReward, func() {
		if !s.inv.Add(item) {
			return
		}
		s.logger.Info("bell reward granted", zap.String("object", ref.ID), zap.String("item", item))
		if msg != "" {
			s.show(msg)
		}
		s.audio.Play(CueGet)
	}))
	return true
}

// startCutscene runs the one-time npc sequence: first line, then after a
// pause the second line with the reward, then the npc vanishes.
func (s *Session) startCutscene(ref world.ObjectRef, obj *world.Object) bool {
	if s.inv.Has(obj.Item) || s.overlay.State(ref).Triggered {
		return false
	}
	s.overlay.Update(ref, func(st *world.ObjectState) { st.Triggered = true })
	s.show(obj.Message)
	s.locked = true
	followUp, item := obj.FollowUp, obj.Item
	s.runner.Start("npc:"+ref.Room+"/"+ref.ID,
		sequence.After(s.timing.CutsceneReveal, func() {
			s.show(followUp)
			s.audio.Play(CueVanish)
			s.overlay.Update(ref, func(st *world.ObjectState) { st.Fading = true })
			s.inv.Add(item)
		}),
		sequence.After(s.timing.CutsceneVanish, func() {
			s.overlay.Update(ref, func(st *world.ObjectState) {
				st.Fading = false
				st.Removed = true
			})
			s.locked = false
			if s.state == StateDialogue {
				s.dialogue = ""
				s.state = StatePlaying
			}
			s.logger.Info("cutscene finished", zap.String("room", ref.Room), zap.String("object", ref.ID))
		}),
	)
	return true
}

func (s *Session) gather(obj *world.Object) bool {
	if !s.inv.Add(obj.Item) {
		return false
	}
	s.show(obj.Message)
	s.audio.Play(CueGet)
	return true
}

func (s *Session) chant(ref world.ObjectRef, obj *world.Object) bool {
	if s.overlay.State(ref).Triggered {
		return false
	}
	if !s.inv.Has(obj.Requires) {
		s.show(obj.Rejection)
		return true
	}
	s.overlay.Update(ref, func(st *world.ObjectState) { st.Triggered = true })
	s.show(obj.Message)
	s.runner.Start(tagAltar, sequence.After(s.timing.AltarChant, s.win))
	return true
}

// win enters the win state once and schedules the credits.
func (s *Session) win() {
	if s.won {
		return
	}
	s.won = true
	s.locked = false
	s.dialogue = ""
	s.state = StateWin
	s.logger.Info("playthrough won", zap.String("room", s.roomKey))
	s.runner.Start(tagCredits, sequence.After(s.timing.Credits, func() {
		s.state = StateCredits
	}))
}
