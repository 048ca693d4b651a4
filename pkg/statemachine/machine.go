package statemachine

import "maps"

// Machine is a finite state machine driven by a static transition table.
// It is not safe for concurrent use; wrap it with NewLocked when it is shared
// between goroutines.
type Machine[S, I comparable] struct {
	initial   S
	current   S
	table     Table[S, I]
	automatic map[S]S
	handlers  map[I][]Handler[S, I]
}

// New creates a machine in the initial state.
// The table is copied, so later changes to the caller's map have no effect.
// Partial tables are fine: a missing pair is simply an invalid transition.
func New[S, I comparable](initial S, table Table[S, I], opts ...Option[S, I]) *Machine[S, I] {
	m := &Machine[S, I]{
		initial: initial,
		current: initial,
		table:   maps.Clone(table),
	}
	if m.table == nil {
		m.table = make(Table[S, I])
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// State returns the current state.
func (m *Machine[S, I]) State() S {
	return m.current
}

// Transition applies input to the current state.
// On success the machine moves to the mapped state, follows automatic
// transitions and runs the handlers registered for input.
// When the pair is not in the table it returns the unchanged current state
// and an *InvalidTransitionError.
func (m *Machine[S, I]) Transition(input I) (S, error) {
	from := m.current

	next, ok := m.table[Key[S, I]{State: from, Input: input}]
	if !ok {
		return from, NewInvalidTransitionError(from, input)
	}

	next = m.settle(next)
	m.current = next

	if handlers := m.handlers[input]; len(handlers) > 0 {
		step := Step[S, I]{From: from, Input: input, To: next}
		for _, h := range handlers {
			h(step)
		}
	}

	return next, nil
}

// Can reports whether Transition(input) would succeed from the current state.
func (m *Machine[S, I]) Can(input I) bool {
	_, ok := m.table[Key[S, I]{State: m.current, Input: input}]
	return ok
}

// Reset moves the machine back to its initial state without running handlers.
func (m *Machine[S, I]) Reset() {
	m.current = m.initial
}

// settle follows automatic transitions starting at state and returns where
// the chain ends. A chain stops before revisiting a state.
func (m *Machine[S, I]) settle(state S) S {
	if len(m.automatic) == 0 {
		return state
	}

	seen := map[S]struct{}{state: {}}
	for {
		to, ok := m.automatic[state]
		if !ok {
			return state
		}
		if _, loop := seen[to]; loop {
			return state
		}
		seen[to] = struct{}{}
		state = to
	}
}
