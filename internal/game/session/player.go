package session

import (
	"sort"

	"github.com/cory-johannsen/rasaratnakara/internal/game/world"
)

// Player is the avatar's pose and vitals.
type Player struct {
	X, Y      int
	Facing    world.Facing
	Health    int
	MaxHealth int
	// Meditating suppresses movement and interaction.
	Meditating bool
	// Walking is set for a short while after each successful step.
	Walking bool
	// Swimming is true while the player stands on water.
	Swimming bool
}

// Flags holds named progress counters that inventory cannot express.
// Only the interaction controller writes them.
type Flags struct {
	counters map[string]int
}

func newFlags() Flags {
	return Flags{counters: make(map[string]int)}
}

// Get returns the counter's value; unknown names read as zero.
func (f Flags) Get(name string) int {
	return f.counters[name]
}

func (f Flags) inc(name string) int {
	f.counters[name]++
	return f.counters[name]
}

// Names returns the set counter names in lexicographic order.
func (f Flags) Names() []string {
	out := make([]string, 0, len(f.counters))
	for k := range f.counters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
