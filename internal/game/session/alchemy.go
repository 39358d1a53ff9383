package session

import (
	"go.uber.org/zap"
)

// ToggleAlchemy opens or closes the alchemy menu.
//
// Precondition: state is playing (not meditating) or alchemy.
func (s *Session) ToggleAlchemy() bool {
	switch {
	case s.state == StateAlchemy:
		s.state = StatePlaying
		return true
	case s.canAct():
		s.state = StateAlchemy
		return true
	}
	return false
}

// PlaceInSlot puts a held item into the first empty slot.
//
// Precondition: state is alchemy.
// Postcondition: returns false when item is not held, already slotted, or
// both slots are full.
func (s *Session) PlaceInSlot(item string) bool {
	if s.state != StateAlchemy || !s.inv.Has(item) {
		return false
	}
	if s.slots[0] == item || s.slots[1] == item {
		return false
	}
	for i := range s.slots {
		if s.slots[i] == "" {
			s.slots[i] = item
			return true
		}
	}
	return false
}

// ClearSlot empties slot i. Out-of-range indexes are ignored.
func (s *Session) ClearSlot(i int) bool {
	if s.state != StateAlchemy || i < 0 || i >= len(s.slots) || s.slots[i] == "" {
		return false
	}
	s.slots[i] = ""
	return true
}

// Mix combines both slotted items. A match consumes the inputs, adds the
// output, applies its production effect and shows the recipe message; a
// mismatch shows a failure message. Slots are cleared either way.
//
// Precondition: state is alchemy and both slots are filled; otherwise a no-op.
// Postcondition: returns true when a recipe matched.
func (s *Session) Mix() bool {
	a, c := s.slots[0], s.slots[1]
	if s.state != StateAlchemy || a == "" || c == "" {
		return false
	}
	s.slots = [2]string{}
	recipe, ok := s.deps.Recipes.Craft(s.inv, a, c)
	if !ok {
		s.show(msgFailedCombination)
		return false
	}
	s.logger.Info("alchemy succeeded",
		zap.String("a", a),
		zap.String("b", c),
		zap.String("output", recipe.Output),
	)
	s.show(recipe.Message)
	s.audio.Play(CueAlchemySuccess)
	if eff, ok := s.deps.Items.ProduceEffect(recipe.Output); ok && eff.MaxHealth > 0 {
		s.player.MaxHealth = eff.MaxHealth
		s.player.Health = eff.MaxHealth
	}
	return true
}
