package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// LogHandlerDecorator wraps a slog.Handler, injects attributes from context
// and hands every record to the registered level callbacks.
type LogHandlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
	callbacks  *Callbacks
	signature  string
}

// NewLogHandlerDecorator creates a new decorated handler. Nil extractors are dropped.
func NewLogHandlerDecorator(next slog.Handler, extractors ...ContextExtractor) *LogHandlerDecorator {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &LogHandlerDecorator{next: next, extractors: clean}
}

// WithCallbacks returns a copy of the decorator that dispatches records to cbs.
// The signature is added to every callback message.
func (h *LogHandlerDecorator) WithCallbacks(cbs *Callbacks, signature string) *LogHandlerDecorator {
	h2 := *h
	h2.callbacks = cbs
	h2.signature = signature
	return &h2
}

func (h *LogHandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle extracts context attributes, runs callbacks and delegates to the
// underlying handler. slog only calls Handle for enabled levels, so callbacks
// never see records below the logger's level.
func (h *LogHandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}

	if h.callbacks != nil {
		h.callbacks.dispatch(rec, h.signature)
	}

	return h.next.Handle(ctx, rec)
}

func (h *LogHandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.next = h.next.WithAttrs(attrs)
	return &h2
}

func (h *LogHandlerDecorator) WithGroup(name string) slog.Handler {
	h2 := *h
	h2.next = h.next.WithGroup(name)
	return &h2
}
