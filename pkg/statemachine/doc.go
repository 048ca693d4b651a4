// Package statemachine provides a small, generic finite-state machine driven
// by a static transition table.
//
// States and inputs are any comparable Go values, typically closed enums
// declared with iota. The table maps a (state, input) pair to the next state;
// pairs missing from the table are invalid transitions. Tables may be partial,
// may contain cycles and may map many pairs to the same state.
//
// # Usage
//
//	type State int
//	type Input int
//
//	const (
//	    Start State = iota
//	    Processing
//	    Complete
//	    Failed
//	)
//
//	const (
//	    StartProcessing Input = iota
//	    FinishProcessing
//	)
//
//	machine := statemachine.New(Start, statemachine.Table[State, Input]{
//	    {Start, StartProcessing}:       Processing,
//	    {Processing, FinishProcessing}: Complete,
//	    {Complete, StartProcessing}:    Failed,
//	    {Complete, FinishProcessing}:   Failed,
//	})
//
//	next, err := machine.Transition(StartProcessing) // Processing, nil
//
// Tables can also be assembled with FromRules or the fluent Builder, which
// reject a pair mapped to two different targets.
//
// # Error Handling
//
// Transition returns an *InvalidTransitionError carrying the current state and
// the rejected input when the pair is not in the table. The state is never
// changed in that case, so calling Transition again with the same input fails
// the same way. Use IsInvalidTransitionError or errors.Is with
// ErrInvalidTransition to detect it. No other error is ever returned by a
// Machine.
//
// # Automatic Transitions and Handlers
//
// WithAutomatic declares input-less edges that are followed immediately after
// a successful transition. WithHandler registers callbacks that observe every
// successful transition on a given input through a Step value. The machine
// itself never logs; callers that want a log of transitions do it from a
// handler or from the values Transition returns.
//
// # Concurrency
//
// A Machine holds no locks. Wrap it with NewLocked when several goroutines
// share one instance. Independent machines never share state, and the table
// copy held by a machine is never modified after New returns.
package statemachine
