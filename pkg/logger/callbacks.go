package logger

import (
	"log/slog"
	"strings"
	"sync"
)

// Callback receives the formatted text of a log record.
type Callback func(message string)

// CallbackOption configures how messages are formatted for one callback.
type CallbackOption func(*callbackEntry)

// CallbackTimestamps controls whether the message starts with the record time. Default true.
func CallbackTimestamps(enabled bool) CallbackOption {
	return func(e *callbackEntry) { e.timestamps = enabled }
}

// CallbackCaller controls whether the message names the level and caller. Default true.
func CallbackCaller(enabled bool) CallbackOption {
	return func(e *callbackEntry) { e.caller = enabled }
}

type callbackEntry struct {
	id         uint64
	fn         Callback
	timestamps bool
	caller     bool
}

// Callbacks is a registry of functions called for records of a given level.
// A callback fires only for records of exactly the level it was registered
// for, and only when the record passes the logger's level filter.
// Safe for concurrent use.
type Callbacks struct {
	mu      sync.RWMutex
	nextID  uint64
	byLevel map[slog.Level][]callbackEntry
}

func NewCallbacks() *Callbacks {
	return &Callbacks{byLevel: make(map[slog.Level][]callbackEntry)}
}

// Register adds fn for level and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (c *Callbacks) Register(level slog.Level, fn Callback, opts ...CallbackOption) (unregister func()) {
	if fn == nil {
		return func() {}
	}

	entry := callbackEntry{fn: fn, timestamps: true, caller: true}
	for _, opt := range opts {
		opt(&entry)
	}

	c.mu.Lock()
	c.nextID++
	entry.id = c.nextID
	c.byLevel[level] = append(c.byLevel[level], entry)
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { c.remove(level, entry.id) })
	}
}

// Len returns the number of callbacks registered for level.
func (c *Callbacks) Len(level slog.Level) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byLevel[level])
}

func (c *Callbacks) remove(level slog.Level, id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.byLevel[level]
	for i, e := range entries {
		if e.id == id {
			c.byLevel[level] = append(entries[:i:i], entries[i+1:]...)
			break
		}
	}
	if len(c.byLevel[level]) == 0 {
		delete(c.byLevel, level)
	}
}

// dispatch calls every callback registered for the record's level.
// Callbacks run outside the lock, so they may register or unregister others.
func (c *Callbacks) dispatch(r slog.Record, signature string) {
	c.mu.RLock()
	entries := c.byLevel[r.Level]
	c.mu.RUnlock()

	for _, e := range entries {
		e.fn(callbackMessage(r, signature, e))
	}
}

// callbackMessage builds "[signature] [timestamp] [Level in caller] message".
func callbackMessage(r slog.Record, signature string, e callbackEntry) string {
	parts := make([]string, 0, 4)
	if signature != "" {
		parts = append(parts, "["+signature+"]")
	}
	if e.timestamps {
		parts = append(parts, "["+r.Time.Format(consoleTimeFormat)+"]")
	}
	if e.caller {
		parts = append(parts, "["+source(r, true)+"]")
	}
	parts = append(parts, r.Message)
	return strings.Join(parts, " ")
}
