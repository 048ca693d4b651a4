package statemachine

import (
	"errors"
	"fmt"
)

// Builder provides a fluent API for building transition tables.
//
//	table := statemachine.NewBuilder[State, Input]().
//	    From(Start).On(Begin).To(Processing).
//	    From(Processing).On(Finish).To(Complete).
//	    MustBuild()
type Builder[S, I comparable] struct {
	rules    []Rule[S, I]
	errs     []error
	from     S
	input    I
	hasFrom  bool
	hasInput bool
}

// NewBuilder creates an empty table builder.
func NewBuilder[S, I comparable]() *Builder[S, I] {
	return &Builder[S, I]{}
}

// From sets the source state for the next rule.
func (b *Builder[S, I]) From(state S) *Builder[S, I] {
	b.from = state
	b.hasFrom = true
	b.hasInput = false
	return b
}

// On sets the input for the next rule.
func (b *Builder[S, I]) On(input I) *Builder[S, I] {
	b.input = input
	b.hasInput = true
	return b
}

// To finalizes the current rule with its target state.
// The source state stays selected, so several inputs can be chained:
//
//	b.From(Idle).On(Start).To(Running).On(Fail).To(Broken)
func (b *Builder[S, I]) To(state S) *Builder[S, I] {
	if !b.hasFrom || !b.hasInput {
		b.errs = append(b.errs, fmt.Errorf("%w: rule[%d] to '%v'", ErrIncompleteRule, len(b.rules), state))
		return b
	}
	b.rules = append(b.rules, Rule[S, I]{From: b.from, Input: b.input, To: state})
	b.hasInput = false
	return b
}

// Rule appends a complete rule.
func (b *Builder[S, I]) Rule(from S, input I, to S) *Builder[S, I] {
	b.rules = append(b.rules, Rule[S, I]{From: from, Input: input, To: to})
	return b
}

// Build returns the table or every error collected while building it.
func (b *Builder[S, I]) Build() (Table[S, I], error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return FromRules(b.rules...)
}

// MustBuild is like Build but panics on error.
func (b *Builder[S, I]) MustBuild() Table[S, I] {
	table, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build transition table: %v", err))
	}
	return table
}
