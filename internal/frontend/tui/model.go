// Package tui is the terminal frontend: a bubbletea program that feeds key
// presses to the command dispatcher, advances the session clock on a fixed
// tick and renders session snapshots.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cory-johannsen/rasaratnakara/internal/game/command"
	"github.com/cory-johannsen/rasaratnakara/internal/game/session"
)

// tickMsg advances the session clock by one step.
type tickMsg time.Time

// Model is the bubbletea model wrapping one session.
type Model struct {
	sess     *session.Session
	registry *command.Registry
	renderer *Renderer
	step     time.Duration
	logger   *zap.Logger
	showHelp bool
}

// NewModel creates a Model.
//
// Precondition: sess, registry and logger must be non-nil; step > 0.
func NewModel(sess *session.Session, registry *command.Registry, renderer *Renderer, step time.Duration, logger *zap.Logger) Model {
	if renderer == nil {
		renderer = NewRenderer(0)
	}
	return Model{
		sess:     sess,
		registry: registry,
		renderer: renderer,
		step:     step,
		logger:   logger,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.step, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the clock.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles key presses and clock ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.sess.Tick(m.step)
		return m, m.tick()

	case tea.KeyMsg:
		line := command.NormalizeKey(msg.String())
		res := command.Dispatch(m.registry, m.sess, line)
		if res.Command == nil {
			return m, nil
		}
		m.logger.Debug("key dispatched",
			zap.String("key", line),
			zap.String("command", res.Command.Name),
			zap.Bool("changed", res.Changed),
			zap.Stringer("state", m.sess.State()),
		)
		if res.Quit {
			return m, tea.Quit
		}
		if res.Help {
			m.showHelp = !m.showHelp
		} else if res.Changed {
			m.showHelp = false
		}
		return m, nil
	}
	return m, nil
}

// View renders the current frame.
func (m Model) View() string {
	var help []*command.Command
	if m.showHelp {
		help = m.registry.Commands()
	}
	return m.renderer.View(m.sess.Snapshot(), help) + "\n"
}
