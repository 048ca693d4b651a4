package statemachine

import "sync"

// Locked serializes access to a Machine shared between goroutines.
// Queries take a read lock, Transition and Reset take the write lock.
// Handlers run while the write lock is held and must not call back into the
// same Locked value.
type Locked[S, I comparable] struct {
	mu sync.RWMutex
	m  *Machine[S, I]
}

// NewLocked wraps m. The caller should stop using m directly afterwards.
func NewLocked[S, I comparable](m *Machine[S, I]) *Locked[S, I] {
	return &Locked[S, I]{m: m}
}

func (l *Locked[S, I]) State() S {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.m.State()
}

func (l *Locked[S, I]) Can(input I) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.m.Can(input)
}

func (l *Locked[S, I]) Transition(input I) (S, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Transition(input)
}

func (l *Locked[S, I]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.m.Reset()
}
