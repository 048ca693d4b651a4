package statemachine

import "fmt"

// Option configures a machine during construction.
type Option[S, I comparable] func(*Machine[S, I])

// WithAutomatic adds an input-less transition from one state to another.
// Automatic transitions are followed right after every successful Transition,
// one after another, until the reached state has none left.
// A later call for the same from state replaces the earlier target.
func WithAutomatic[S, I comparable](from, to S) Option[S, I] {
	return func(m *Machine[S, I]) {
		if m.automatic == nil {
			m.automatic = make(map[S]S)
		}
		m.automatic[from] = to
	}
}

// WithHandler registers a handler that runs after each successful transition on input.
// Handlers for the same input run in registration order. Nil handlers are ignored.
func WithHandler[S, I comparable](input I, h Handler[S, I]) Option[S, I] {
	return func(m *Machine[S, I]) {
		if h == nil {
			return
		}
		if m.handlers == nil {
			m.handlers = make(map[I][]Handler[S, I])
		}
		m.handlers[input] = append(m.handlers[input], h)
	}
}

// WithHandlers registers several handlers for the same input.
func WithHandlers[S, I comparable](input I, hs ...Handler[S, I]) Option[S, I] {
	return func(m *Machine[S, I]) {
		for _, h := range hs {
			WithHandler(input, h)(m)
		}
	}
}

// MustNew builds the table from rules and creates a machine.
// Panics if the rules conflict, following the fail-fast pattern for static
// configuration that is wrong at startup.
func MustNew[S, I comparable](initial S, rules []Rule[S, I], opts ...Option[S, I]) *Machine[S, I] {
	table, err := FromRules(rules...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return New(initial, table, opts...)
}
