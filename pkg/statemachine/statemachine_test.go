package statemachine_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/beartools/pkg/statemachine"
)

type orderState int

const (
	start orderState = iota
	processing
	complete
	failed
	archived
)

func (s orderState) String() string {
	switch s {
	case start:
		return "START"
	case processing:
		return "PROCESSING"
	case complete:
		return "COMPLETE"
	case failed:
		return "ERROR"
	case archived:
		return "ARCHIVED"
	default:
		return fmt.Sprintf("orderState(%d)", int(s))
	}
}

type orderInput int

const (
	startProcessing orderInput = iota
	finishProcessing
	cancel
)

func (i orderInput) String() string {
	switch i {
	case startProcessing:
		return "START_PROCESSING"
	case finishProcessing:
		return "FINISH_PROCESSING"
	case cancel:
		return "CANCEL"
	default:
		return fmt.Sprintf("orderInput(%d)", int(i))
	}
}

func orderTable() statemachine.Table[orderState, orderInput] {
	return statemachine.Table[orderState, orderInput]{
		{start, startProcessing}:       processing,
		{processing, finishProcessing}: complete,
		{complete, startProcessing}:    failed,
		{complete, finishProcessing}:   failed,
	}
}

func TestMachine(t *testing.T) {
	t.Parallel()

	t.Run("initial state", func(t *testing.T) {
		t.Parallel()
		m := statemachine.New(processing, orderTable())
		assert.Equal(t, processing, m.State())
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()
		m := statemachine.New[orderState, orderInput](start, nil)
		assert.Equal(t, start, m.State())
		assert.False(t, m.Can(startProcessing))

		_, err := m.Transition(startProcessing)
		require.Error(t, err)
		assert.True(t, statemachine.IsInvalidTransitionError(err))
	})

	t.Run("order processing walk", func(t *testing.T) {
		t.Parallel()
		m := statemachine.New(start, orderTable())

		next, err := m.Transition(startProcessing)
		require.NoError(t, err)
		assert.Equal(t, processing, next)
		assert.Equal(t, processing, m.State())

		next, err = m.Transition(finishProcessing)
		require.NoError(t, err)
		assert.Equal(t, complete, next)
		assert.Equal(t, complete, m.State())

		next, err = m.Transition(startProcessing)
		require.NoError(t, err)
		assert.Equal(t, failed, next)
		assert.Equal(t, failed, m.State())
	})

	t.Run("complete on finish fails the order", func(t *testing.T) {
		t.Parallel()
		m := statemachine.New(complete, orderTable())

		next, err := m.Transition(finishProcessing)
		require.NoError(t, err)
		assert.Equal(t, failed, next)
	})

	t.Run("every mapped pair yields its target", func(t *testing.T) {
		t.Parallel()
		for key, want := range orderTable() {
			m := statemachine.New(key.State, orderTable())
			got, err := m.Transition(key.Input)
			require.NoError(t, err, "%v on %v", key.State, key.Input)
			assert.Equal(t, want, got)
			assert.Equal(t, want, m.State())
		}
	})
}

func TestMachine_InvalidTransition(t *testing.T) {
	t.Parallel()

	t.Run("state is left unchanged", func(t *testing.T) {
		t.Parallel()
		m := statemachine.New(start, orderTable())

		got, err := m.Transition(finishProcessing)
		require.Error(t, err)
		assert.Equal(t, start, got)
		assert.Equal(t, start, m.State())

		// Repeating the rejected input fails the same way.
		_, again := m.Transition(finishProcessing)
		assert.Equal(t, err.Error(), again.Error())
		assert.Equal(t, start, m.State())
	})

	t.Run("error carries the rejected pair", func(t *testing.T) {
		t.Parallel()
		m := statemachine.New(processing, orderTable())

		_, err := m.Transition(cancel)
		require.Error(t, err)

		var invalid *statemachine.InvalidTransitionError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, processing, invalid.State)
		assert.Equal(t, cancel, invalid.Input)
		assert.True(t, errors.Is(err, statemachine.ErrInvalidTransition))
		assert.Contains(t, err.Error(), "PROCESSING")
		assert.Contains(t, err.Error(), "CANCEL")
	})

	t.Run("every unmapped pair is rejected", func(t *testing.T) {
		t.Parallel()
		table := orderTable()
		states := []orderState{start, processing, complete, failed, archived}
		inputs := []orderInput{startProcessing, finishProcessing, cancel}

		for _, s := range states {
			for _, i := range inputs {
				if _, ok := table[statemachine.Key[orderState, orderInput]{State: s, Input: i}]; ok {
					continue
				}
				m := statemachine.New(s, table)
				assert.False(t, m.Can(i))
				_, err := m.Transition(i)
				assert.True(t, statemachine.IsInvalidTransitionError(err), "%v on %v", s, i)
				assert.Equal(t, s, m.State())
			}
		}
	})
}

func TestMachine_Determinism(t *testing.T) {
	t.Parallel()

	inputs := []orderInput{startProcessing, cancel, finishProcessing, finishProcessing, startProcessing}
	run := func() []orderState {
		m := statemachine.New(start, orderTable())
		var out []orderState
		for _, in := range inputs {
			next, _ := m.Transition(in)
			out = append(out, next)
		}
		return out
	}

	first := run()
	for range 10 {
		assert.Equal(t, first, run())
	}
	assert.Equal(t, []orderState{processing, processing, complete, failed, failed}, first)
}

func TestMachine_TableIsCopied(t *testing.T) {
	t.Parallel()

	table := orderTable()
	m := statemachine.New(start, table)

	table[statemachine.Key[orderState, orderInput]{State: start, Input: startProcessing}] = archived
	table[statemachine.Key[orderState, orderInput]{State: start, Input: cancel}] = failed
	delete(table, statemachine.Key[orderState, orderInput]{State: processing, Input: finishProcessing})

	assert.False(t, m.Can(cancel))

	next, err := m.Transition(startProcessing)
	require.NoError(t, err)
	assert.Equal(t, processing, next)

	next, err = m.Transition(finishProcessing)
	require.NoError(t, err)
	assert.Equal(t, complete, next)
}

func TestMachine_IndependentInstances(t *testing.T) {
	t.Parallel()

	table := orderTable()
	a := statemachine.New(start, table)
	b := statemachine.New(start, table)

	_, err := a.Transition(startProcessing)
	require.NoError(t, err)

	assert.Equal(t, processing, a.State())
	assert.Equal(t, start, b.State())
}

func TestMachine_Reset(t *testing.T) {
	t.Parallel()

	m := statemachine.New(start, orderTable())
	_, err := m.Transition(startProcessing)
	require.NoError(t, err)

	m.Reset()
	assert.Equal(t, start, m.State())
	assert.True(t, m.Can(startProcessing))
}

func TestMachine_Cycles(t *testing.T) {
	t.Parallel()

	const (
		on  = "on"
		off = "off"
	)
	m := statemachine.New(off, statemachine.Table[string, string]{
		{off, "toggle"}: on,
		{on, "toggle"}:  off,
		{on, "noop"}:    on,
	})

	for i := range 5 {
		next, err := m.Transition("toggle")
		require.NoError(t, err)
		if i%2 == 0 {
			assert.Equal(t, on, next)
		} else {
			assert.Equal(t, off, next)
		}
	}

	next, err := m.Transition("noop")
	require.NoError(t, err)
	assert.Equal(t, on, next)
}

func TestMachine_Automatic(t *testing.T) {
	t.Parallel()

	t.Run("follows chain after transition", func(t *testing.T) {
		t.Parallel()
		m := statemachine.New(processing, orderTable(),
			statemachine.WithAutomatic[orderState, orderInput](complete, archived),
		)

		next, err := m.Transition(finishProcessing)
		require.NoError(t, err)
		assert.Equal(t, archived, next)
		assert.Equal(t, archived, m.State())
	})

	t.Run("not applied to initial state", func(t *testing.T) {
		t.Parallel()
		m := statemachine.New(complete, orderTable(),
			statemachine.WithAutomatic[orderState, orderInput](complete, archived),
		)
		assert.Equal(t, complete, m.State())
	})

	t.Run("self loop terminates", func(t *testing.T) {
		t.Parallel()
		m := statemachine.New(start, orderTable(),
			statemachine.WithAutomatic[orderState, orderInput](processing, processing),
		)

		next, err := m.Transition(startProcessing)
		require.NoError(t, err)
		assert.Equal(t, processing, next)
	})

	t.Run("cycle stops before revisiting", func(t *testing.T) {
		t.Parallel()
		m := statemachine.New(processing, orderTable(),
			statemachine.WithAutomatic[orderState, orderInput](complete, archived),
			statemachine.WithAutomatic[orderState, orderInput](archived, complete),
		)

		next, err := m.Transition(finishProcessing)
		require.NoError(t, err)
		assert.Equal(t, archived, next)
	})

	t.Run("rejected input does not move", func(t *testing.T) {
		t.Parallel()
		m := statemachine.New(start, orderTable(),
			statemachine.WithAutomatic[orderState, orderInput](start, failed),
		)

		_, err := m.Transition(cancel)
		require.Error(t, err)
		assert.Equal(t, start, m.State())
	})
}

func TestMachine_Handlers(t *testing.T) {
	t.Parallel()

	t.Run("called with the full step", func(t *testing.T) {
		t.Parallel()
		var steps []statemachine.Step[orderState, orderInput]
		record := func(step statemachine.Step[orderState, orderInput]) {
			steps = append(steps, step)
		}

		m := statemachine.New(start, orderTable(),
			statemachine.WithHandler(startProcessing, record),
			statemachine.WithHandler(finishProcessing, record),
			statemachine.WithAutomatic[orderState, orderInput](complete, archived),
		)

		_, err := m.Transition(startProcessing)
		require.NoError(t, err)
		_, err = m.Transition(finishProcessing)
		require.NoError(t, err)

		assert.Equal(t, []statemachine.Step[orderState, orderInput]{
			{From: start, Input: startProcessing, To: processing},
			{From: processing, Input: finishProcessing, To: archived},
		}, steps)
	})

	t.Run("run in registration order", func(t *testing.T) {
		t.Parallel()
		var order []string
		first := func(statemachine.Step[orderState, orderInput]) { order = append(order, "first") }
		second := func(statemachine.Step[orderState, orderInput]) { order = append(order, "second") }

		m := statemachine.New(start, orderTable(),
			statemachine.WithHandlers(startProcessing, first, second),
		)

		_, err := m.Transition(startProcessing)
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("not called for rejected input", func(t *testing.T) {
		t.Parallel()
		called := false
		m := statemachine.New(start, orderTable(),
			statemachine.WithHandler(finishProcessing, func(statemachine.Step[orderState, orderInput]) {
				called = true
			}),
		)

		_, err := m.Transition(finishProcessing)
		require.Error(t, err)
		assert.False(t, called)
	})

	t.Run("nil handler ignored", func(t *testing.T) {
		t.Parallel()
		m := statemachine.New(start, orderTable(),
			statemachine.WithHandler[orderState, orderInput](startProcessing, nil),
		)

		_, err := m.Transition(startProcessing)
		require.NoError(t, err)
	})

	t.Run("only the matching input", func(t *testing.T) {
		t.Parallel()
		calls := 0
		m := statemachine.New(start, orderTable(),
			statemachine.WithHandler(finishProcessing, func(statemachine.Step[orderState, orderInput]) {
				calls++
			}),
		)

		_, err := m.Transition(startProcessing)
		require.NoError(t, err)
		assert.Zero(t, calls)

		_, err = m.Transition(finishProcessing)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestFromRules(t *testing.T) {
	t.Parallel()

	t.Run("builds table", func(t *testing.T) {
		t.Parallel()
		table, err := statemachine.FromRules(
			statemachine.Rule[orderState, orderInput]{From: start, Input: startProcessing, To: processing},
			statemachine.Rule[orderState, orderInput]{From: processing, Input: finishProcessing, To: complete},
		)
		require.NoError(t, err)
		assert.Len(t, table, 2)
	})

	t.Run("identical duplicate allowed", func(t *testing.T) {
		t.Parallel()
		rule := statemachine.Rule[orderState, orderInput]{From: start, Input: startProcessing, To: processing}
		table, err := statemachine.FromRules(rule, rule)
		require.NoError(t, err)
		assert.Len(t, table, 1)
	})

	t.Run("conflict rejected", func(t *testing.T) {
		t.Parallel()
		_, err := statemachine.FromRules(
			statemachine.Rule[orderState, orderInput]{From: start, Input: startProcessing, To: processing},
			statemachine.Rule[orderState, orderInput]{From: start, Input: startProcessing, To: failed},
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, statemachine.ErrConflictingRule)
		assert.Contains(t, err.Error(), "rule[1]")
	})
}

func TestMustNew(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		m := statemachine.MustNew(start, []statemachine.Rule[orderState, orderInput]{
			{From: start, Input: startProcessing, To: processing},
		})
		assert.True(t, m.Can(startProcessing))
	})

	assert.Panics(t, func() {
		statemachine.MustNew(start, []statemachine.Rule[orderState, orderInput]{
			{From: start, Input: startProcessing, To: processing},
			{From: start, Input: startProcessing, To: complete},
		})
	})
}
