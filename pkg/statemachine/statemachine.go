package statemachine

// Key identifies a single entry of a transition table: the state the machine
// is in and the input applied to it.
type Key[S, I comparable] struct {
	State S
	Input I
}

// Table maps (state, input) pairs to the next state.
// Pairs that are not present are invalid transitions.
type Table[S, I comparable] map[Key[S, I]]S

// Step describes a completed transition.
// To is the state the machine settled in, after any automatic transitions.
type Step[S, I comparable] struct {
	From  S
	Input I
	To    S
}

// Handler is called after a successful transition on the input it was registered for.
type Handler[S, I comparable] func(step Step[S, I])

// Rule is a single table entry in list form.
type Rule[S, I comparable] struct {
	From  S
	Input I
	To    S
}

// FromRules builds a table from a list of rules.
// Repeating an identical rule is allowed; mapping the same pair to two
// different states returns ErrConflictingRule.
func FromRules[S, I comparable](rules ...Rule[S, I]) (Table[S, I], error) {
	table := make(Table[S, I], len(rules))
	for i, r := range rules {
		key := Key[S, I]{State: r.From, Input: r.Input}
		if to, ok := table[key]; ok && to != r.To {
			return nil, newConflictError(i, key, to, r.To)
		}
		table[key] = r.To
	}
	return table, nil
}
