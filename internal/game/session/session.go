package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/rasaratnakara/internal/config"
	"github.com/cory-johannsen/rasaratnakara/internal/game/hint"
	"github.com/cory-johannsen/rasaratnakara/internal/game/inventory"
	"github.com/cory-johannsen/rasaratnakara/internal/game/sequence"
	"github.com/cory-johannsen/rasaratnakara/internal/game/world"
	"github.com/cory-johannsen/rasaratnakara/internal/scripting"
)

// Narrative text produced by the core rather than by content.
const (
	msgFailedCombination = "Failed combination."
	msgDugUpFormat       = "You dug up: %s!"
)

// Sequence tags.
const (
	tagWalk    = "walk"
	tagVerse   = "verse"
	tagCredits = "credits"
	tagAltar   = "altar"
)

// Deps are the read-only collaborators a Session consults.
type Deps struct {
	World   *world.Manager
	Items   *inventory.Registry
	Recipes *inventory.RecipeBook
	Hints   *hint.Table
	// Scripts is optional. When set, on_enter and on_meditate hooks may
	// override the verse and the hint.
	Scripts *scripting.Manager
	// Audio is optional; nil logs cues.
	Audio AudioSink
}

func (d Deps) validate() error {
	var errs []error
	if d.World == nil {
		errs = append(errs, errors.New("world must not be nil"))
	}
	if d.Items == nil {
		errs = append(errs, errors.New("item registry must not be nil"))
	}
	if d.Recipes == nil {
		errs = append(errs, errors.New("recipe book must not be nil"))
	}
	if d.Hints == nil {
		errs = append(errs, errors.New("hint table must not be nil"))
	}
	return errors.Join(errs...)
}

// Session is one playthrough. It is not safe for concurrent use.
type Session struct {
	id     uuid.UUID
	deps   Deps
	audio  AudioSink
	timing config.TimingConfig
	logger *zap.Logger
	runner *sequence.Runner

	state    State
	roomKey  string
	player   Player
	inv      *inventory.Inventory
	flags    Flags
	overlay  *world.Overlay
	dialogue string
	// overlayText is the verse or meditation hint drawn over the room.
	overlayText string
	// locked blocks dialogue dismissal while a cutscene runs.
	locked bool
	slots  [2]string
	won    bool
}

// NewSession creates a session in the start state.
//
// Precondition: logger must be non-nil; deps must carry world, items,
// recipes and hints.
// Postcondition: Returns a Session positioned at the world's start, or an
// error naming every missing dependency.
func NewSession(deps Deps, timing config.TimingConfig, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		return nil, errors.New("session: logger must not be nil")
	}
	if err := deps.validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	id := uuid.New()
	logger = logger.With(zap.String("session_id", id.String()))
	s := &Session{
		id:      id,
		deps:    deps,
		audio:   deps.Audio,
		timing:  timing,
		logger:  logger,
		runner:  sequence.NewRunner(logger),
		overlay: world.NewOverlay(),
	}
	if s.audio == nil {
		s.audio = LogSink{Logger: logger}
	}
	if deps.Scripts != nil {
		deps.Scripts.HasItem = func(item string) bool { return s.inv.Has(item) }
		deps.Scripts.Flag = func(name string) int { return s.flags.Get(name) }
		deps.Scripts.CurrentRoom = func() string { return s.roomKey }
	}
	s.reset()
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the current game mode.
func (s *Session) State() State { return s.state }

// RoomKey returns the active room's key.
func (s *Session) RoomKey() string { return s.roomKey }

// Player returns a copy of the player.
func (s *Session) Player() Player { return s.player }

// Inventory returns the held items in acquisition order.
func (s *Session) Inventory() []string { return s.inv.Items() }

// Has reports whether item is held.
func (s *Session) Has(item string) bool { return s.inv.Has(item) }

// Flag returns a progress counter.
func (s *Session) Flag(name string) int { return s.flags.Get(name) }

// Dialogue returns the modal text, or "" outside the dialogue state.
func (s *Session) Dialogue() string { return s.dialogue }

// OverlayText returns the verse or hint currently drawn over the room.
func (s *Session) OverlayText() string { return s.overlayText }

// Slots returns the alchemy slots; "" marks an empty slot.
func (s *Session) Slots() [2]string { return s.slots }

// Locked reports whether a cutscene holds the input lock.
func (s *Session) Locked() bool { return s.locked }

// Now returns the session clock.
func (s *Session) Now() time.Duration { return s.runner.Now() }

// Pending returns the number of scheduled sequences.
func (s *Session) Pending() int { return s.runner.Pending() }

// Start leaves the title screen.
//
// Postcondition: state is playing and the start room's verse is shown.
func (s *Session) Start() {
	if s.state != StateStart {
		return
	}
	s.state = StatePlaying
	s.logger.Info("session started", zap.String("room", s.roomKey))
	s.enterRoom()
}

// Reset discards the playthrough and returns to the title screen. Every
// pending sequence is cancelled.
func (s *Session) Reset() {
	s.runner.CancelAll()
	s.reset()
	s.logger.Info("session reset")
}

func (s *Session) reset() {
	start := s.deps.World.Start()
	s.state = StateStart
	s.roomKey = start.Room
	s.player = Player{
		X:         start.X,
		Y:         start.Y,
		Facing:    start.Facing,
		Health:    start.Health,
		MaxHealth: start.MaxHealth,
	}
	s.inv = inventory.New(start.Inventory...)
	s.flags = newFlags()
	s.overlay.Reset()
	s.dialogue = ""
	s.overlayText = ""
	s.locked = false
	s.slots = [2]string{}
	s.won = false
}

// Tick advances the session clock by dt and fires every due sequence step.
//
// Postcondition: returns the number of steps fired.
func (s *Session) Tick(dt time.Duration) int {
	return s.runner.Advance(dt)
}

func (s *Session) room() *world.Room {
	r, _ := s.deps.World.RoomByKey(s.roomKey)
	return r
}

// show opens the dialogue with text. From the terminal states it is ignored.
func (s *Session) show(text string) {
	if s.state.Terminal() || s.state == StateStart {
		return
	}
	s.audio.Play(CueText)
	s.dialogue = text
	s.state = StateDialogue
}

// dismiss closes the dialogue unless a cutscene holds the lock.
func (s *Session) dismiss() bool {
	if s.state != StateDialogue || s.locked {
		return false
	}
	s.dialogue = ""
	s.state = StatePlaying
	return true
}

// canAct reports whether a new action may be initiated.
func (s *Session) canAct() bool {
	return s.state == StatePlaying && !s.player.Meditating
}

// setOverlayText replaces the overlay. A pending verse timeout is dropped so
// it cannot clear newer text.
func (s *Session) setOverlayText(text string) {
	s.runner.Cancel(tagVerse)
	s.overlayText = text
}

// enterRoom shows the active room's verse for the configured duration.
func (s *Session) enterRoom() {
	r := s.room()
	verse := r.Verse
	if s.deps.Scripts != nil {
		if v, ok := s.deps.Scripts.Text(r.Region, scripting.HookOnEnter, r.Key, r.Region); ok {
			verse = v
		}
	}
	s.setOverlayText(verse)
	if verse == "" {
		return
	}
	s.runner.Start(tagVerse, sequence.After(s.timing.Verse, func() {
		s.overlayText = ""
	}))
}
