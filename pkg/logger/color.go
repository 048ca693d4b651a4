package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Color is a console text colour.
type Color int

const (
	ColorDefault Color = iota
	White
	Red
	Orange
	Green
	Yellow
	Cyan
	Blue
	Purple
	Brown
	Black
)

// High intensity variants; the regular ones are too dark on most terminals.
var palette = map[Color]*color.Color{
	White:  color.New(color.FgHiWhite),
	Red:    color.New(color.FgHiRed),
	Orange: color.New(38, 5, 208),
	Green:  color.New(color.FgHiGreen),
	Yellow: color.New(color.FgHiYellow),
	Cyan:   color.New(color.FgHiCyan),
	Blue:   color.New(color.FgHiBlue),
	Purple: color.New(color.FgHiMagenta),
	Brown:  color.New(38, 5, 94),
	Black:  color.New(color.FgHiBlack),
}

func init() {
	// Whether a sink gets colour is decided per sink, not by fatih/color's
	// stdout detection.
	for _, c := range palette {
		c.EnableColor()
	}
}

// Paint wraps s in the escape codes for c. ColorDefault returns s unchanged.
func Paint(s string, c Color) string {
	p, ok := palette[c]
	if !ok {
		return s
	}
	return p.Sprint(s)
}

// levelColors are the defaults used when a record carries no InColor attribute.
var levelColors = map[slog.Level]Color{
	LevelNoise:      Cyan,
	slog.LevelDebug: Cyan,
	slog.LevelWarn:  Yellow,
	slog.LevelError: Red,
}

func colorForLevel(l slog.Level) Color {
	switch {
	case l >= slog.LevelError:
		return levelColors[slog.LevelError]
	case l >= slog.LevelWarn:
		return levelColors[slog.LevelWarn]
	case l >= slog.LevelInfo:
		return ColorDefault
	case l >= slog.LevelDebug:
		return levelColors[slog.LevelDebug]
	default:
		return levelColors[LevelNoise]
	}
}

const colorKey = "!color"

// InColor returns an attribute that sets the console colour of one record.
// It is never printed; JSON and text formats drop it.
func InColor(c Color) slog.Attr {
	return slog.Int(colorKey, int(c))
}

// ColorMode decides whether console sinks receive ANSI colour codes.
type ColorMode string

const (
	// ColorAuto colours only sinks that are terminals.
	ColorAuto ColorMode = "auto"
	// ColorAlways colours every sink.
	ColorAlways ColorMode = "always"
	// ColorNever never colours.
	ColorNever ColorMode = "never"
)

// ParseColorMode converts a string into a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	default:
		return ColorAuto, fmt.Errorf("%w: %q", ErrUnknownColorMode, s)
	}
}

// colorSink decides whether w gets colour and, for terminals, wraps it so
// escape codes also render on Windows consoles.
func colorSink(w io.Writer, mode ColorMode) (io.Writer, bool) {
	switch w.(type) {
	case *fileSink, globalSink:
		return w, false
	}

	switch mode {
	case ColorNever:
		return w, false
	case ColorAlways:
		return w, true
	}

	f, ok := w.(*os.File)
	if !ok {
		return w, false
	}
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor || os.Getenv("TERM") == "dumb" {
		return w, false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return w, false
	}
	return colorable.NewColorable(f), true
}
