package command

import (
	"strconv"

	"github.com/cory-johannsen/rasaratnakara/internal/game/session"
)

// Actor is the subset of a session that commands drive.
type Actor interface {
	State() session.State
	Inventory() []string
	Start()
	Reset()
	Move(dx, dy int) bool
	Interact() bool
	Dig() bool
	ToggleMeditation() bool
	Fly() bool
	ToggleAlchemy() bool
	PlaceInSlot(item string) bool
	ClearSlot(i int) bool
	Mix() bool
}

// Result reports what a dispatched line did.
type Result struct {
	// Command is the resolved command, nil when the line was not recognised.
	Command *Command
	// Changed is true when the session reacted.
	Changed bool
	// Quit asks the frontend to exit.
	Quit bool
	// Help asks the frontend to show the command list.
	Help bool
}

// Dispatch resolves line against r and applies it to a.
//
// On the title screen the interact and alchemy bindings start the game.
// Unknown input yields a zero Result.
func Dispatch(r *Registry, a Actor, line string) Result {
	parsed := Parse(line)
	cmd, ok := r.Resolve(parsed.Command)
	if !ok {
		return Result{}
	}
	res := Result{Command: cmd}

	if a.State() == session.StateStart {
		switch cmd.Handler {
		case HandlerStart, HandlerInteract, HandlerAlchemy:
			a.Start()
			res.Changed = true
			return res
		}
	}

	switch cmd.Handler {
	case HandlerMove:
		res.Changed = a.Move(Delta(cmd.Name))
	case HandlerInteract:
		res.Changed = a.Interact()
	case HandlerDig:
		res.Changed = a.Dig()
	case HandlerMeditate:
		res.Changed = a.ToggleMeditation()
	case HandlerFly:
		res.Changed = a.Fly()
	case HandlerAlchemy:
		res.Changed = a.ToggleAlchemy()
	case HandlerSlot:
		res.Changed = placeSlot(a, parsed.Args)
	case HandlerClear:
		c0 := a.ClearSlot(0)
		c1 := a.ClearSlot(1)
		res.Changed = c0 || c1
	case HandlerMix:
		res.Changed = a.Mix()
	case HandlerReset:
		a.Reset()
		res.Changed = true
	case HandlerQuit:
		res.Quit = true
	case HandlerHelp:
		res.Help = true
	}
	return res
}

// placeSlot slots the inventory item at the 1-based index in args.
func placeSlot(a Actor, args []string) bool {
	if len(args) != 1 {
		return false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return false
	}
	items := a.Inventory()
	if n < 1 || n > len(items) {
		return false
	}
	return a.PlaceInSlot(items[n-1])
}

var _ Actor = (*session.Session)(nil)
