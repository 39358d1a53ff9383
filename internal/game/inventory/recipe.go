package inventory

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Recipe maps an unordered pair of distinct inputs to one output.
type Recipe struct {
	Inputs  [2]string
	Output  string
	Message string
}

// pairKey is the order-independent lookup key of two item IDs.
type pairKey struct{ lo, hi string }

func keyOf(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// RecipeBook is the static, read-only set of recipes.
type RecipeBook struct {
	byPair  map[pairKey]*Recipe
	recipes []*Recipe
}

// NewRecipeBook indexes recipes by their input pair.
//
// Postcondition: returns an error if a recipe repeats an input or two
// recipes share an input pair.
func NewRecipeBook(recipes []*Recipe) (*RecipeBook, error) {
	b := &RecipeBook{byPair: make(map[pairKey]*Recipe, len(recipes))}
	for _, r := range recipes {
		if r.Inputs[0] == "" || r.Inputs[1] == "" || r.Output == "" {
			return nil, fmt.Errorf("recipe %v -> %q: inputs and output must not be empty", r.Inputs, r.Output)
		}
		if r.Inputs[0] == r.Inputs[1] {
			return nil, fmt.Errorf("recipe %v -> %q: inputs must be distinct", r.Inputs, r.Output)
		}
		k := keyOf(r.Inputs[0], r.Inputs[1])
		if prev, dup := b.byPair[k]; dup {
			return nil, fmt.Errorf("recipes %q and %q share inputs %v", prev.Output, r.Output, r.Inputs)
		}
		b.byPair[k] = r
		b.recipes = append(b.recipes, r)
	}
	return b, nil
}

// Match finds the recipe whose input set equals {a, b} in either order.
//
// Postcondition: returns (nil, false) if either slot is empty or no recipe matches.
func (b *RecipeBook) Match(a, c string) (*Recipe, bool) {
	if a == "" || c == "" || a == c {
		return nil, false
	}
	r, ok := b.byPair[keyOf(a, c)]
	return r, ok
}

// Recipes returns the recipes in definition order.
func (b *RecipeBook) Recipes() []*Recipe {
	return append([]*Recipe(nil), b.recipes...)
}

// Craft consumes a and c from inv and adds the matching recipe's output.
//
// Postcondition: on success both inputs are gone and the output is held;
// on failure inv is unchanged.
func (b *RecipeBook) Craft(inv *Inventory, a, c string) (*Recipe, bool) {
	r, ok := b.Match(a, c)
	if !ok || !inv.Has(a) || !inv.Has(c) {
		return nil, false
	}
	inv.Remove(a)
	inv.Remove(c)
	inv.Add(r.Output)
	return r, true
}

type yamlRecipesFile struct {
	Recipes []yamlRecipe `yaml:"recipes"`
}

type yamlRecipe struct {
	Inputs  []string `yaml:"inputs"`
	Output  string   `yaml:"output"`
	Message string   `yaml:"message"`
}

// LoadRecipesFromBytes parses a recipes YAML document and cross-checks every
// item ID against reg.
//
// Precondition: reg is non-nil.
// Postcondition: returns a RecipeBook or an error listing every violation.
func LoadRecipesFromBytes(data []byte, reg *Registry) (*RecipeBook, error) {
	var file yamlRecipesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing recipes YAML: %w", err)
	}
	var errs []error
	recipes := make([]*Recipe, 0, len(file.Recipes))
	for i, yr := range file.Recipes {
		if len(yr.Inputs) != 2 {
			errs = append(errs, fmt.Errorf("recipe %d: want exactly 2 inputs, got %d", i, len(yr.Inputs)))
			continue
		}
		for _, id := range append(yr.Inputs, yr.Output) {
			if _, ok := reg.Item(id); !ok {
				errs = append(errs, fmt.Errorf("recipe %d: unknown item %q", i, id))
			}
		}
		recipes = append(recipes, &Recipe{
			Inputs:  [2]string{yr.Inputs[0], yr.Inputs[1]},
			Output:  yr.Output,
			Message: strings.TrimSpace(yr.Message),
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return NewRecipeBook(recipes)
}

// LoadRecipesFromFile reads a recipes YAML file.
func LoadRecipesFromFile(path string, reg *Registry) (*RecipeBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipes file %s: %w", path, err)
	}
	return LoadRecipesFromBytes(data, reg)
}
