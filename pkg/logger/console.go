package logger

import (
	"context"
	"io"
	"log/slog"
	"path"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
)

const consoleTimeFormat = "2006-01-02 15:04:05.000"

// ConsoleOptions configures a ConsoleHandler.
type ConsoleOptions struct {
	// Level is the minimum level to print. Defaults to slog.LevelInfo.
	Level slog.Leveler
	// Signature is printed in brackets after the caller, when set.
	Signature string
	// AddCaller prints the function and line that emitted the record.
	AddCaller bool
	// AddTimestamps prints the record time.
	AddTimestamps bool
	// DefaultColor is used for info records that carry no InColor attribute.
	DefaultColor Color
	// ColorMode decides which writers get ANSI colour. Defaults to ColorAuto.
	ColorMode ColorMode
}

type consoleSink struct {
	w     io.Writer
	color bool
}

// ConsoleHandler is a slog.Handler that writes one human-readable line per
// record to every sink:
//
//	[2006-01-02 15:04:05.000] [Info in main.run:42] [signature]: message key=value
//
// Colour is applied per sink, so a terminal and a log file can share a handler.
type ConsoleHandler struct {
	opts     ConsoleOptions
	sinks    []consoleSink
	mu       *sync.Mutex
	prefix   string
	attrs    string
	color    Color
	hasColor bool
}

// NewConsoleHandler creates a handler writing to the given writers.
func NewConsoleHandler(opts ConsoleOptions, writers ...io.Writer) *ConsoleHandler {
	if opts.ColorMode == "" {
		opts.ColorMode = ColorAuto
	}

	sinks := make([]consoleSink, 0, len(writers))
	for _, w := range writers {
		if w == nil {
			continue
		}
		cw, colored := colorSink(w, opts.ColorMode)
		sinks = append(sinks, consoleSink{w: cw, color: colored})
	}

	return &ConsoleHandler{
		opts:  opts,
		sinks: sinks,
		mu:    &sync.Mutex{},
	}
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	c, explicit := h.color, h.hasColor

	var b strings.Builder
	b.WriteString(header(r, h.opts.Signature, h.opts.AddTimestamps, h.opts.AddCaller))
	b.WriteString(": ")
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == colorKey {
			c, explicit = Color(a.Value.Int64()), true
			return true
		}
		appendAttr(&b, h.prefix, a)
		return true
	})

	if !explicit {
		c = colorForLevel(r.Level)
		if c == ColorDefault {
			c = h.opts.DefaultColor
		}
	}

	plain := b.String()
	colored := Paint(plain, c)

	h.mu.Lock()
	defer h.mu.Unlock()

	var firstErr error
	for _, s := range h.sinks {
		line := plain
		if s.color {
			line = colored
		}
		if _, err := io.WriteString(s.w, line+"\n"); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		if a.Key == colorKey {
			h2.color, h2.hasColor = Color(a.Value.Int64()), true
			continue
		}
		appendAttr(&b, h.prefix, a)
	}
	h2.attrs = b.String()
	return &h2
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

// header builds the bracketed part of a line: timestamp, level with caller, signature.
func header(r slog.Record, signature string, timestamps, caller bool) string {
	parts := make([]string, 0, 3)
	if timestamps {
		t := r.Time
		if t.IsZero() {
			t = time.Now()
		}
		parts = append(parts, "["+t.Format(consoleTimeFormat)+"]")
	}
	parts = append(parts, "["+source(r, caller)+"]")
	if signature != "" {
		parts = append(parts, "["+signature+"]")
	}
	return strings.Join(parts, " ")
}

// source renders "Info in pkg.Func:42", or just "Info" without caller details.
func source(r slog.Record, caller bool) string {
	label := levelLabel(r.Level)
	if !caller || r.PC == 0 {
		return label
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	if frame.Function == "" {
		return label + " on line " + strconv.Itoa(frame.Line)
	}
	return label + " in " + path.Base(frame.Function) + ":" + strconv.Itoa(frame.Line)
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) || a.Key == colorKey {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range group {
			appendAttr(b, p, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(quoteIfNeeded(a.Value.String()))
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	for _, r := range s {
		if unicode.IsSpace(r) || r == '"' || r == '=' || !unicode.IsPrint(r) {
			return strconv.Quote(s)
		}
	}
	return s
}
