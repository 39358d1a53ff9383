// Package content bundles the default game data and loads it, or an
// on-disk replacement with the same layout, into validated domain objects.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/rasaratnakara/internal/game/hint"
	"github.com/cory-johannsen/rasaratnakara/internal/game/inventory"
	"github.com/cory-johannsen/rasaratnakara/internal/game/world"
	"github.com/cory-johannsen/rasaratnakara/internal/scripting"
)

// File names inside a content tree.
const (
	WorldFile   = "world.yaml"
	ItemsFile   = "items.yaml"
	RecipesFile = "recipes.yaml"
	HintsFile   = "hints.yaml"
	ScriptsDir  = "scripts"
)

//go:embed world.yaml items.yaml recipes.yaml hints.yaml scripts
var embedded embed.FS

// Embedded returns the built-in content tree.
func Embedded() fs.FS { return embedded }

// Bundle is a fully loaded and cross-checked content tree.
type Bundle struct {
	World   *world.Manager
	Items   *inventory.Registry
	Recipes *inventory.RecipeBook
	Hints   *hint.Table
	// Scripts is rooted at the scripts directory. nil when the tree has none.
	Scripts fs.FS
}

// Load reads content from dir, or the embedded tree when dir is empty.
//
// Postcondition: returns a Bundle whose every item reference resolves, or an error.
func Load(dir string) (*Bundle, error) {
	if dir == "" {
		return LoadFS(embedded)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content: %q is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads content from the root of fsys.
func LoadFS(fsys fs.FS) (*Bundle, error) {
	read := func(name string) ([]byte, error) {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("content: reading %s: %w", name, err)
		}
		return data, nil
	}

	data, err := read(WorldFile)
	if err != nil {
		return nil, err
	}
	w, err := world.LoadWorldFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", WorldFile, err)
	}
	wm, err := world.NewManager(w)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", WorldFile, err)
	}

	if data, err = read(ItemsFile); err != nil {
		return nil, err
	}
	defs, err := inventory.LoadItemsFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", ItemsFile, err)
	}
	reg, err := inventory.NewRegistryFrom(defs)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", ItemsFile, err)
	}

	if data, err = read(RecipesFile); err != nil {
		return nil, err
	}
	book, err := inventory.LoadRecipesFromBytes(data, reg)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", RecipesFile, err)
	}

	if data, err = read(HintsFile); err != nil {
		return nil, err
	}
	table, err := hint.LoadTableFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", HintsFile, err)
	}

	b := &Bundle{World: wm, Items: reg, Recipes: book, Hints: table}
	if err := b.checkItemRefs(); err != nil {
		return nil, err
	}
	if sub, err := fs.Sub(fsys, ScriptsDir); err == nil {
		if _, statErr := fs.Stat(sub, "."); statErr == nil {
			b.Scripts = sub
		}
	}
	return b, nil
}

// checkItemRefs verifies every item the world names is defined.
func (b *Bundle) checkItemRefs() error {
	var errs []error
	check := func(where, id string) {
		if id == "" {
			return
		}
		if _, ok := b.Items.Item(id); !ok {
			errs = append(errs, fmt.Errorf("%s: unknown item %q", where, id))
		}
	}
	for _, id := range b.World.Start().Inventory {
		check("start inventory", id)
	}
	if f, ok := b.World.Flight(); ok {
		check("flight", f.Requires)
	}
	for _, key := range b.World.RoomKeys() {
		r, _ := b.World.RoomByKey(key)
		if r.Gate != nil {
			check(fmt.Sprintf("room %q gate", key), r.Gate.Requires)
		}
		for _, o := range r.Objects {
			where := fmt.Sprintf("room %q object %q", key, o.ID)
			check(where, o.Item)
			check(where, o.Requires)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("content: %w", errors.Join(errs...))
	}
	return nil
}

// CheckEntries reports exits that can never be used: no passable tile on
// the leaving edge maps to a passable entry tile in the destination room.
//
// Postcondition: returns one description per dead exit, sorted.
func CheckEntries(m *world.Manager) []string {
	var problems []string
	width, height := m.Dimensions()
	for _, key := range m.RoomKeys() {
		r, _ := m.RoomByKey(key)
		for _, dir := range []world.Direction{world.North, world.South, world.East, world.West} {
			dest, ok := m.ExitFor(key, dir)
			if !ok {
				continue
			}
			next, ok := m.RoomByKey(dest)
			if !ok {
				continue
			}
			usable := false
			for _, p := range edge(dir, width, height) {
				if t, _ := r.TileAt(p[0], p[1]); !t.Passable() {
					continue
				}
				ex, ey := m.EntryPoint(dir, p[0], p[1])
				if t, ok := next.TileAt(ex, ey); ok && t.Passable() {
					usable = true
					break
				}
			}
			if !usable {
				problems = append(problems, fmt.Sprintf("room %q: exit %s to %q has no passable entry", key, dir, dest))
			}
		}
	}
	sort.Strings(problems)
	return problems
}

// edge lists the cells along the side of the grid facing dir.
func edge(dir world.Direction, width, height int) [][2]int {
	var cells [][2]int
	switch dir {
	case world.North, world.South:
		y := 0
		if dir == world.South {
			y = height - 1
		}
		for x := 0; x < width; x++ {
			cells = append(cells, [2]int{x, y})
		}
	default:
		x := 0
		if dir == world.East {
			x = width - 1
		}
		for y := 0; y < height; y++ {
			cells = append(cells, [2]int{x, y})
		}
	}
	return cells
}

// LoadScripts loads fsys into mgr. Files at the root form the global scope;
// each subdirectory becomes a scope named after it, matching room regions.
//
// Precondition: mgr and fsys must be non-nil.
// Postcondition: returns the loaded scope names, or the first load error.
func LoadScripts(mgr *scripting.Manager, fsys fs.FS, logger *zap.Logger) ([]string, error) {
	if err := mgr.Load(scripting.GlobalScope, fsys, "."); err != nil {
		return nil, err
	}
	scopes := []string{scripting.GlobalScope}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("content: reading scripts: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := mgr.Load(e.Name(), fsys, e.Name()); err != nil {
			return nil, err
		}
		scopes = append(scopes, e.Name())
	}
	logger.Info("scripts loaded", zap.Strings("scopes", scopes))
	return scopes, nil
}
