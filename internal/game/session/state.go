// Package session implements the single-player state machine: player
// movement and room transitions, the interaction controller, alchemy and the
// timed sequences that drive cutscenes.
//
// A Session is owned by one goroutine. Every mutation happens inside an
// exported method call or inside a sequence step fired by Tick.
package session

import (
	"fmt"

	"go.uber.org/zap"
)

// State is the top-level game mode.
type State int

// Game modes.
const (
	StateStart State = iota
	StatePlaying
	StateDialogue
	StateAlchemy
	StateWin
	StateCredits
)

var stateNames = [...]string{
	StateStart:    "start",
	StatePlaying:  "playing",
	StateDialogue: "dialogue",
	StateAlchemy:  "alchemy",
	StateWin:      "win",
	StateCredits:  "credits",
}

func (s State) String() string {
	if s < StateStart || s > StateCredits {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether s ends the playthrough.
func (s State) Terminal() bool {
	return s == StateWin || s == StateCredits
}

// Cue identifies a sound effect.
type Cue string

// Audio cues emitted by the session.
const (
	CueStep           Cue = "step"
	CueSplash         Cue = "splash"
	CueText           Cue = "text"
	CueGet            Cue = "get"
	CueAlchemySuccess Cue = "alchemy_success"
	CueVanish         Cue = "vanish"
)

// AudioSink receives cues. Play must not block.
type AudioSink interface {
	Play(cue Cue)
}

// AudioFunc adapts a function to AudioSink.
type AudioFunc func(Cue)

// Play calls f(cue).
func (f AudioFunc) Play(cue Cue) { f(cue) }

// LogSink is the default AudioSink; it records cues at debug level.
type LogSink struct {
	Logger *zap.Logger
}

// Play logs cue.
func (s LogSink) Play(cue Cue) {
	s.Logger.Debug("audio cue", zap.String("cue", string(cue)))
}
