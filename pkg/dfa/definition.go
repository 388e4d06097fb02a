package dfa

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDefinition is wrapped by every error reported for a malformed definition.
var ErrInvalidDefinition = errors.New("invalid definition")

// Definition describes a machine in terms of named states. It is the YAML form an
// external builder hands to Build.
type Definition struct {
	Name        string                 `yaml:"name,omitempty"`
	Doc         string                 `yaml:"doc,omitempty"`
	Start       string                 `yaml:"start"`
	Accepting   []string               `yaml:"accepting"`
	Transitions []TransitionDefinition `yaml:"transitions"`
}

// TransitionDefinition adds a transition on every listed symbol and range.
type TransitionDefinition struct {
	From    string   `yaml:"from"`
	To      string   `yaml:"to"`
	Symbols string   `yaml:"symbols,omitempty"` // each rune is one symbol
	Ranges  []string `yaml:"ranges,omitempty"`  // "a-z" or a single rune
}

// ParseDefinition decodes and validates a YAML definition.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDefinition reads a YAML definition from path.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Validate checks the definition without building it.
func (d *Definition) Validate() error {
	if d.Start == "" {
		return fmt.Errorf("%w: start state is required", ErrInvalidDefinition)
	}
	if len(d.Accepting) == 0 {
		return fmt.Errorf("%w: at least one accepting state is required", ErrInvalidDefinition)
	}
	for i, name := range d.Accepting {
		if name == "" {
			return fmt.Errorf("%w: accepting state %d has no name", ErrInvalidDefinition, i)
		}
	}
	for i, tr := range d.Transitions {
		if tr.From == "" || tr.To == "" {
			return fmt.Errorf("%w: transition %d needs both from and to", ErrInvalidDefinition, i)
		}
		if tr.Symbols == "" && len(tr.Ranges) == 0 {
			return fmt.Errorf("%w: transition %d (%s -> %s) has no symbols", ErrInvalidDefinition, i, tr.From, tr.To)
		}
		for _, rg := range tr.Ranges {
			if _, _, err := parseRange(rg); err != nil {
				return fmt.Errorf("%w: transition %d (%s -> %s): %v", ErrInvalidDefinition, i, tr.From, tr.To, err)
			}
		}
	}
	return nil
}

// Build creates the machine described by d. States are numbered in order of first
// appearance, the start state being 0, and labelled with their names.
func (d *Definition) Build() (*Machine, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	ids := make(map[string]State)
	var order []string
	id := func(name string) State {
		if s, ok := ids[name]; ok {
			return s
		}
		s := State(len(order))
		ids[name] = s
		order = append(order, name)
		return s
	}

	start := id(d.Start)
	accepting := make([]State, len(d.Accepting))
	for i, name := range d.Accepting {
		accepting[i] = id(name)
	}

	m := New(start, accepting...)
	for _, tr := range d.Transitions {
		from, to := id(tr.From), id(tr.To)
		m.AddAll(from, []rune(tr.Symbols), to)
		for _, rg := range tr.Ranges {
			lo, hi, _ := parseRange(rg)
			m.AddRange(from, lo, hi, to)
		}
	}
	for i, name := range order {
		m.SetLabel(State(i), name)
	}
	return m, nil
}

// parseRange accepts "x" or "x-y" where x and y are single runes and x <= y.
func parseRange(s string) (lo, hi rune, err error) {
	runes := []rune(s)
	switch {
	case len(runes) == 1:
		return runes[0], runes[0], nil
	case len(runes) == 3 && runes[1] == '-':
		if runes[0] > runes[2] {
			return 0, 0, fmt.Errorf("range %q is reversed", s)
		}
		return runes[0], runes[2], nil
	default:
		return 0, 0, fmt.Errorf("malformed range %q", s)
	}
}
