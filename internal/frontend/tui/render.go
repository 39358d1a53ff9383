package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/cory-johannsen/rasaratnakara/internal/game/command"
	"github.com/cory-johannsen/rasaratnakara/internal/game/session"
	"github.com/cory-johannsen/rasaratnakara/internal/game/world"
)

// Title is the game's display name.
const Title = "Rasaratnākara: The Eighth Instruction"

// Glyphs drawn on the grid. Every cell is two columns wide.
const (
	glyphPlayer     = "@ "
	glyphMeditating = "☯ "
	glyphSign       = "¶ "
	glyphSparkle    = "* "
	glyphMist       = "▒▒"
	glyphNPC        = "Y "
	glyphFading     = "y "
)

var tileGlyphs = map[world.Tile]string{
	world.TileEmpty:      ". ",
	world.TileTree:       "♣ ",
	world.TileWater:      "~ ",
	world.TileTemple:     "▓▓",
	world.TileDirt:       ": ",
	world.TileBell:       "Ω ",
	world.TileSacredTree: "♠ ",
	world.TileCloud:      "░░",
	world.TileAltar:      "▲ ",
	world.TileBoundary:   "· ",
	world.TileBridge:     "= ",
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")). // gold
			Bold(true)

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("255")).
			Background(lipgloss.Color("19")). // deep blue
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	overlayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Italic(true)

	heartStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	playerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
	objectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	winStyle    = lipgloss.NewStyle().
			Background(lipgloss.Color("255")).
			Foreground(lipgloss.Color("0")).
			Bold(true).
			Padding(1, 4)
)

var tileStyles = map[world.Tile]lipgloss.Style{
	world.TileEmpty:      lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	world.TileTree:       lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	world.TileWater:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	world.TileTemple:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	world.TileDirt:       lipgloss.NewStyle().Foreground(lipgloss.Color("136")),
	world.TileBell:       lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	world.TileSacredTree: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	world.TileCloud:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	world.TileAltar:      lipgloss.NewStyle().Foreground(lipgloss.Color("201")),
	world.TileBoundary:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	world.TileBridge:     lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
}

// Renderer turns session snapshots into terminal frames.
type Renderer struct {
	// WrapWidth is the column at which dialogue and overlay text wrap.
	WrapWidth int
}

// NewRenderer creates a Renderer. wrap <= 0 selects 60 columns.
func NewRenderer(wrap int) *Renderer {
	if wrap <= 0 {
		wrap = 60
	}
	return &Renderer{WrapWidth: wrap}
}

// View renders snap. When help is non-empty it replaces the status footer.
func (r *Renderer) View(snap session.Snapshot, help []*command.Command) string {
	switch snap.State {
	case session.StateStart:
		return r.startScreen()
	case session.StateWin:
		return r.winScreen()
	case session.StateCredits:
		return r.creditsScreen()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(snap.RoomName))
	b.WriteString("  ")
	b.WriteString(r.hearts(snap.Player))
	b.WriteString("\n\n")
	b.WriteString(r.Grid(snap))
	b.WriteString("\n")
	if snap.Overlay != "" {
		b.WriteString(overlayStyle.Render(wordwrap.String(snap.Overlay, r.WrapWidth)))
		b.WriteString("\n")
	}
	b.WriteString(r.inventoryLine(snap.Inventory))
	b.WriteString("\n")

	switch snap.State {
	case session.StateDialogue:
		b.WriteString(r.dialogue(snap))
		b.WriteString("\n")
	case session.StateAlchemy:
		b.WriteString(r.alchemy(snap))
		b.WriteString("\n")
	}

	if len(help) > 0 {
		b.WriteString(r.help(help))
	} else {
		b.WriteString(subtleStyle.Render(tr("arrows move · space talk · x dig · m meditate · enter alchemy · f fly · ? help · q quit")))
	}
	return b.String()
}

// Grid draws the room with its objects and the player.
func (r *Renderer) Grid(snap session.Snapshot) string {
	cells := make([][]string, len(snap.Tiles))
	for y, row := range snap.Tiles {
		cells[y] = make([]string, len(row))
		for x, t := range row {
			cells[y][x] = tileStyles[t].Render(tileGlyphs[t])
		}
	}
	for _, o := range snap.Objects {
		if o.Y < 0 || o.Y >= len(cells) || o.X < 0 || o.X >= len(cells[o.Y]) {
			continue
		}
		if g := objectGlyph(o); g != "" {
			cells[o.Y][o.X] = objectStyle.Render(g)
		}
	}
	p := snap.Player
	if p.Y >= 0 && p.Y < len(cells) && p.X >= 0 && p.X < len(cells[p.Y]) {
		g := glyphPlayer
		if p.Meditating {
			g = glyphMeditating
		}
		cells[p.Y][p.X] = playerStyle.Render(g)
	}

	lines := make([]string, len(cells))
	for y, row := range cells {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// objectGlyph returns the overlay glyph for o, or "" to show the tile.
// Bells, gatherables and altars sit on their own tile types.
func objectGlyph(o session.ObjectView) string {
	switch o.Kind {
	case world.KindSign:
		return glyphSign
	case world.KindHiddenCache:
		if o.Active {
			return glyphSparkle
		}
	case world.KindMist:
		if o.Active {
			return glyphMist
		}
	case world.KindNPC:
		if o.Fading {
			return glyphFading
		}
		return glyphNPC
	}
	return ""
}

func (r *Renderer) hearts(p session.Player) string {
	full := strings.Repeat("♥", max(p.Health, 0))
	empty := strings.Repeat("♡", max(p.MaxHealth-p.Health, 0))
	return heartStyle.Render(full + empty)
}

func (r *Renderer) inventoryLine(items []session.ItemView) string {
	parts := make([]string, 0, len(items))
	for i, it := range items {
		parts = append(parts, fmt.Sprintf("%d:%s%s", i+1, iconPrefix(it.Icon), it.Name))
	}
	return subtleStyle.Render(tr("Inventory")+": ") + strings.Join(parts, "  ")
}

func iconPrefix(icon string) string {
	if icon == "" {
		return ""
	}
	return icon + " "
}

func (r *Renderer) dialogue(snap session.Snapshot) string {
	text := wordwrap.String(snap.Dialogue, r.WrapWidth)
	if !snap.Locked {
		text += "\n" + subtleStyle.Render("▼")
	}
	return panelStyle.Render(text)
}

func (r *Renderer) alchemy(snap session.Snapshot) string {
	names := make(map[string]string, len(snap.Inventory))
	for _, it := range snap.Inventory {
		names[it.ID] = iconPrefix(it.Icon) + it.Name
	}
	slot := func(id string) string {
		if id == "" {
			return "[    ]"
		}
		return "[" + names[id] + "]"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(tr("ALCHEMY")))
	b.WriteString("\n")
	b.WriteString(slot(snap.Slots[0]) + " + " + slot(snap.Slots[1]))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(tr("1-9 place item · c clear · b mix · enter exit")))
	return panelStyle.Render(b.String())
}

func (r *Renderer) help(cmds []*command.Command) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(tr("Commands")))
	for _, c := range cmds {
		keys := c.Name
		if len(c.Aliases) > 0 {
			keys += " (" + strings.Join(c.Aliases, ", ") + ")"
		}
		fmt.Fprintf(&b, "\n  %-32s %s", keys, tr(c.Help))
	}
	return b.String()
}

func (r *Renderer) startScreen() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(Title),
		"",
		subtleStyle.Render(tr("PRESS START TO BEGIN")),
		panelStyle.Render(tr("START GAME")+" (space)"),
	)
}

func (r *Renderer) winScreen() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		winStyle.Render(tr("SIDDHI ATTAINED")),
		tr("You have conquered death."),
	)
}

func (r *Renderer) creditsScreen() string {
	lines := []string{
		tr("Game created by Keith Edward Cantú."),
		tr("Translations of Rasaratnākara by Keith Edward Cantú,"),
		tr("published in Indian Alchemy: Sources and Contexts,"),
		tr("edited by Dagmar Wujastyk,"),
		tr("South Asia Research Series (Oxford University Press, 2025)."),
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(Title),
		"",
		subtleStyle.Render(strings.Join(lines, "\n")),
		"",
		tr("ctrl+r to play again · q to quit"),
	)
}
