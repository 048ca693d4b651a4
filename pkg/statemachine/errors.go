package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrConflictingRule   = errors.New("conflicting transition rule")
	ErrIncompleteRule    = errors.New("incomplete transition rule: from, input and to must all be set")
)

// InvalidTransitionError indicates the table has no entry for the current state and input.
// The machine state is left untouched when it is returned.
type InvalidTransitionError struct {
	State any
	Input any
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: no entry for state '%v' on input '%v'", e.State, e.Input)
}

// Is reports ErrInvalidTransition as a match so callers can use errors.Is.
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func NewInvalidTransitionError(state, input any) *InvalidTransitionError {
	return &InvalidTransitionError{
		State: state,
		Input: input,
	}
}

func IsInvalidTransitionError(err error) bool {
	var e *InvalidTransitionError
	return errors.As(err, &e)
}

func newConflictError[S, I comparable](index int, key Key[S, I], existing, next S) error {
	return fmt.Errorf("%w: rule[%d] maps state '%v' on input '%v' to '%v', already mapped to '%v'",
		ErrConflictingRule, index, key.State, key.Input, next, existing)
}
