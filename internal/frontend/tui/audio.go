package tui

import (
	"io"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/cory-johannsen/rasaratnakara/internal/game/session"
)

// BellSink plays cues on a text terminal: reward cues ring the bell, every
// cue is logged at debug level.
type BellSink struct {
	out    io.Writer
	logger *zap.Logger
	ring   mapset.Set[session.Cue]
}

// NewBellSink creates a BellSink writing BEL to out. A nil out only logs.
//
// Precondition: logger must be non-nil.
func NewBellSink(out io.Writer, logger *zap.Logger) *BellSink {
	ring := mapset.New[session.Cue]()
	ring.Put(session.CueGet)
	ring.Put(session.CueAlchemySuccess)
	return &BellSink{out: out, logger: logger, ring: ring}
}

// Play implements session.AudioSink.
func (b *BellSink) Play(cue session.Cue) {
	b.logger.Debug("audio cue", zap.String("cue", string(cue)))
	if b.out != nil && b.ring.Has(cue) {
		// Write errors are ignored.
		_, _ = io.WriteString(b.out, "\a")
	}
}

var _ session.AudioSink = (*BellSink)(nil)
