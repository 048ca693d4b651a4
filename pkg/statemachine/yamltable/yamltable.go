package yamltable

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/beartools/pkg/statemachine"
)

var (
	ErrFailedToParseYAML = errors.New("failed to parse machine definition")
	ErrFailedToReadFile  = errors.New("failed to read machine definition file")
	ErrMissingInitial    = errors.New("machine definition has no initial state")
	ErrIncompleteRule    = errors.New("incomplete rule in machine definition")
)

// Definition is a string-typed machine described in YAML.
type Definition struct {
	Initial     string          `yaml:"initial"`
	Transitions []TransitionDef `yaml:"transitions"`
	Automatic   []AutomaticDef  `yaml:"automatic"`
}

// TransitionDef is one table entry.
type TransitionDef struct {
	From  string `yaml:"from"`
	Input string `yaml:"input"`
	To    string `yaml:"to"`
}

// AutomaticDef is an input-less edge.
type AutomaticDef struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Parse decodes and validates a definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads a definition from a file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Validate checks that the initial state and every rule are fully specified.
func (d *Definition) Validate() error {
	if d.Initial == "" {
		return ErrMissingInitial
	}
	for i, t := range d.Transitions {
		if t.From == "" || t.Input == "" || t.To == "" {
			return fmt.Errorf("%w: transitions[%d] needs from, input and to", ErrIncompleteRule, i)
		}
	}
	for i, a := range d.Automatic {
		if a.From == "" || a.To == "" {
			return fmt.Errorf("%w: automatic[%d] needs from and to", ErrIncompleteRule, i)
		}
	}
	return nil
}

// Table converts the transitions into a statemachine table.
func (d *Definition) Table() (statemachine.Table[string, string], error) {
	rules := make([]statemachine.Rule[string, string], 0, len(d.Transitions))
	for _, t := range d.Transitions {
		rules = append(rules, statemachine.Rule[string, string]{From: t.From, Input: t.Input, To: t.To})
	}
	return statemachine.FromRules(rules...)
}

// Machine builds a machine in the initial state with the definition's
// automatic transitions. Extra options are applied after them.
func (d *Definition) Machine(opts ...statemachine.Option[string, string]) (*statemachine.Machine[string, string], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	table, err := d.Table()
	if err != nil {
		return nil, err
	}

	all := make([]statemachine.Option[string, string], 0, len(d.Automatic)+len(opts))
	for _, a := range d.Automatic {
		all = append(all, statemachine.WithAutomatic[string, string](a.From, a.To))
	}
	all = append(all, opts...)

	return statemachine.New(d.Initial, table, all...), nil
}

// States lists every state named by the definition, initial first, in order of appearance.
func (d *Definition) States() []string {
	seen := make(map[string]struct{})
	var states []string
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		states = append(states, s)
	}

	add(d.Initial)
	for _, t := range d.Transitions {
		add(t.From)
		add(t.To)
	}
	for _, a := range d.Automatic {
		add(a.From)
		add(a.To)
	}
	return states
}
