// Package hint evaluates the meditation hint decision table.
package hint

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule is one row of the table. Empty conditions always match.
type Rule struct {
	Room   string   `yaml:"room"`
	Region string   `yaml:"region"`
	Has    []string `yaml:"has"`
	Lacks  []string `yaml:"lacks"`
	Text   string   `yaml:"text"`
}

// Unconditional reports whether r matches every context.
func (r Rule) Unconditional() bool {
	return r.Room == "" && r.Region == "" && len(r.Has) == 0 && len(r.Lacks) == 0
}

// Context is the player state a rule is tested against.
type Context struct {
	Room   string
	Region string
	// Holds reports whether the player holds an item.
	Holds func(item string) bool
}

func (r Rule) matches(ctx Context) bool {
	if r.Room != "" && r.Room != ctx.Room {
		return false
	}
	if r.Region != "" && r.Region != ctx.Region {
		return false
	}
	for _, it := range r.Has {
		if !ctx.Holds(it) {
			return false
		}
	}
	for _, it := range r.Lacks {
		if ctx.Holds(it) {
			return false
		}
	}
	return true
}

// Table is an ordered list of rules ending with an unconditional default.
type Table struct {
	rules []Rule
}

// NewTable validates and wraps rules.
//
// Postcondition: returns an error unless the last rule is unconditional and
// every rule has text.
func NewTable(rules []Rule) (*Table, error) {
	if len(rules) == 0 {
		return nil, errors.New("hint table must not be empty")
	}
	for i, r := range rules {
		if strings.TrimSpace(r.Text) == "" {
			return nil, fmt.Errorf("hint rule %d: text must not be empty", i)
		}
	}
	if !rules[len(rules)-1].Unconditional() {
		return nil, errors.New("hint table must end with an unconditional default rule")
	}
	return &Table{rules: append([]Rule(nil), rules...)}, nil
}

// Evaluate returns the text of the first matching rule.
//
// Precondition: ctx.Holds must be non-nil.
func (t *Table) Evaluate(ctx Context) string {
	for _, r := range t.rules {
		if r.matches(ctx) {
			return strings.TrimSpace(r.Text)
		}
	}
	// Unreachable: NewTable guarantees a default.
	return ""
}

// Len returns the number of rules.
func (t *Table) Len() int { return len(t.rules) }

type yamlHintsFile struct {
	Hints []Rule `yaml:"hints"`
}

// LoadTableFromBytes parses a hints YAML document.
func LoadTableFromBytes(data []byte) (*Table, error) {
	var file yamlHintsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing hints YAML: %w", err)
	}
	return NewTable(file.Hints)
}

// LoadTableFromFile reads a hints YAML file.
func LoadTableFromFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hints file %s: %w", path, err)
	}
	return LoadTableFromBytes(data)
}
