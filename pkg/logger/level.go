package logger

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// LevelNoise is for very chatty diagnostics, below slog.LevelDebug.
	LevelNoise = slog.Level(-8)
	// LevelSilent is above every level a record can carry; a logger set to it prints nothing.
	LevelSilent = slog.Level(16)
)

// levelLabels holds title-cased labels for the console format.
// Built once because a cases.Caser must not be shared between goroutines.
var levelLabels = func() map[slog.Level]string {
	title := cases.Title(language.English)
	labels := make(map[slog.Level]string)
	for _, l := range []slog.Level{LevelNoise, slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError, LevelSilent} {
		labels[l] = title.String(LevelName(l))
	}
	return labels
}()

// LevelName returns the upper-case name of a level, including NOISE and SILENT.
func LevelName(l slog.Level) string {
	switch l {
	case LevelNoise:
		return "NOISE"
	case LevelSilent:
		return "SILENT"
	default:
		return l.String()
	}
}

func levelLabel(l slog.Level) string {
	if label, ok := levelLabels[l]; ok {
		return label
	}
	return cases.Title(language.English).String(LevelName(l))
}

// ParseLevel converts a level name into a slog.Level.
// Accepts noise, debug, info, warn, warning, error and silent, in any case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "noise":
		return LevelNoise, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "silent":
		return LevelSilent, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// replaceLevelNames renames custom levels in the built-in slog handlers and
// strips the console-only colour attribute.
func replaceLevelNames(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.LevelKey:
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(LevelName(l))
		}
	case colorKey:
		return slog.Attr{}
	}
	return a
}
