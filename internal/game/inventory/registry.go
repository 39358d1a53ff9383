package inventory

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Registry holds all loaded item definitions indexed by ID.
type Registry struct {
	items map[string]*ItemDef
	title cases.Caser
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{
		items: make(map[string]*ItemDef),
		title: cases.Title(language.English),
	}
}

// NewRegistryFrom builds a Registry from defs.
//
// Postcondition: returns an error on the first duplicate ID.
func NewRegistryFrom(defs []*ItemDef) (*Registry, error) {
	r := NewRegistry()
	for _, d := range defs {
		if err := r.RegisterItem(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RegisterItem adds d to the registry.
//
// Precondition:  d must not be nil.
// Postcondition: Item(d.ID) returns (d, true); returns error if d.ID already registered.
func (r *Registry) RegisterItem(d *ItemDef) error {
	if _, exists := r.items[d.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterItem: item ID %q already registered", d.ID)
	}
	r.items[d.ID] = d
	return nil
}

// Item returns the ItemDef for the given id and whether it was found.
//
// Postcondition: ok is true iff the id is registered.
func (r *Registry) Item(id string) (*ItemDef, bool) {
	d, ok := r.items[id]
	return d, ok
}

// DisplayName returns the item's configured name, or a title-cased form of
// the id when the item is unknown.
func (r *Registry) DisplayName(id string) string {
	if d, ok := r.items[id]; ok {
		return d.Name
	}
	return r.title.String(strings.ReplaceAll(id, "_", " "))
}

// ProduceEffect returns the effect applied when id is produced by alchemy.
//
// Postcondition: ok is false when the item has no effect.
func (r *Registry) ProduceEffect(id string) (Effect, bool) {
	d, ok := r.items[id]
	if !ok || d.OnProduce == nil || d.OnProduce.IsZero() {
		return Effect{}, false
	}
	return *d.OnProduce, true
}

// AllItems returns all registered ItemDefs sorted by ID.
//
// Postcondition: len(result) == number of registered items.
func (r *Registry) AllItems() []*ItemDef {
	out := make([]*ItemDef, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
