// Package command provides the input surface: the command registry, key
// normalization and dispatch of resolved commands onto a game session.
package command

// Categories for organizing commands.
const (
	CategoryMovement = "movement"
	CategoryAction   = "action"
	CategoryAlchemy  = "alchemy"
	CategorySystem   = "system"
)

// Handler identifiers mapping commands to session operations.
const (
	HandlerMove     = "move"
	HandlerInteract = "interact"
	HandlerDig      = "dig"
	HandlerMeditate = "meditate"
	HandlerFly      = "fly"
	HandlerAlchemy  = "alchemy"
	HandlerSlot     = "slot"
	HandlerClear    = "clear"
	HandlerMix      = "mix"
	HandlerStart    = "start"
	HandlerReset    = "reset"
	HandlerQuit     = "quit"
	HandlerHelp     = "help"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names and key bindings for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (movement, action, alchemy, system).
	Category string
	// Handler maps to the session operation.
	Handler string
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Movement commands
		{Name: "north", Aliases: []string{"up", "w", "k"}, Help: "Walk up", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "south", Aliases: []string{"down", "s", "j"}, Help: "Walk down", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "east", Aliases: []string{"right", "d", "l"}, Help: "Walk right", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "west", Aliases: []string{"left", "a", "h"}, Help: "Walk left", Category: CategoryMovement, Handler: HandlerMove},

		// Action commands
		{Name: "interact", Aliases: []string{"space", "z", "talk"}, Help: "Interact with what you face, or close the text", Category: CategoryAction, Handler: HandlerInteract},
		{Name: "dig", Aliases: []string{"x"}, Help: "Dig at your feet", Category: CategoryAction, Handler: HandlerDig},
		{Name: "meditate", Aliases: []string{"m"}, Help: "Meditate for a hint and a point of health", Category: CategoryAction, Handler: HandlerMeditate},
		{Name: "fly", Aliases: []string{"f"}, Help: "Fly to the sky realm", Category: CategoryAction, Handler: HandlerFly},

		// Alchemy commands
		{Name: "alchemy", Aliases: []string{"enter", "menu"}, Help: "Open or close the alchemy menu", Category: CategoryAlchemy, Handler: HandlerAlchemy},
		{Name: "slot", Aliases: nil, Help: "Place inventory item N into a slot (slot <N>, or press 1-9)", Category: CategoryAlchemy, Handler: HandlerSlot},
		{Name: "clear", Aliases: []string{"c"}, Help: "Empty both alchemy slots", Category: CategoryAlchemy, Handler: HandlerClear},
		{Name: "mix", Aliases: []string{"b", "brew"}, Help: "Combine the slotted items", Category: CategoryAlchemy, Handler: HandlerMix},

		// System commands
		{Name: "start", Aliases: nil, Help: "Begin the journey", Category: CategorySystem, Handler: HandlerStart},
		{Name: "reset", Aliases: []string{"ctrl+r"}, Help: "Return to the title screen", Category: CategorySystem, Handler: HandlerReset},
		{Name: "quit", Aliases: []string{"q", "ctrl+c", "esc"}, Help: "Quit the game", Category: CategorySystem, Handler: HandlerQuit},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
	}
}

// IsMovementCommand reports whether the command name is a movement direction.
func IsMovementCommand(name string) bool {
	switch name {
	case "north", "south", "east", "west":
		return true
	default:
		return false
	}
}

// Delta returns the grid step for a movement command name.
func Delta(name string) (dx, dy int) {
	switch name {
	case "north":
		return 0, -1
	case "south":
		return 0, 1
	case "east":
		return 1, 0
	case "west":
		return -1, 0
	}
	return 0, 0
}
