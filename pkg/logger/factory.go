package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/beartools/pkg/environment"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for production log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs slog key=value lines.
	FormatText Format = "text"
	// FormatConsole outputs coloured, human-readable lines for terminals.
	FormatConsole Format = "console"
)

// ParseFormat converts a string into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatText, FormatConsole:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Option configures logger creation.
type Option func(*config)

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets output format.
// Panics for invalid formats: misconfiguration should prevent startup rather
// than cause runtime errors.
func WithFormat(f Format) Option {
	return func(c *config) {
		if _, err := ParseFormat(string(f)); err != nil {
			panic(fmt.Errorf("invalid log format %q: must be %q, %q or %q", f, FormatJSON, FormatText, FormatConsole))
		}
		c.format = f
	}
}

func WithTextFormatter() Option {
	return func(c *config) {
		c.format = FormatText
	}
}

func WithJSONFormatter() Option {
	return func(c *config) {
		c.format = FormatJSON
	}
}

func WithConsoleFormatter() Option {
	return func(c *config) {
		c.format = FormatConsole
	}
}

// WithOutput adds an output sink. Nil writers are ignored.
// Without any sink the logger writes to stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.outputs = append(c.outputs, w)
		}
	}
}

// WithFile adds a file sink. The file is opened in append mode on every write.
func WithFile(paths ...string) Option {
	return func(c *config) {
		for _, p := range paths {
			if p != "" {
				c.outputs = append(c.outputs, newFileSink(p))
			}
		}
	}
}

// WithoutGlobalFiles opts the logger out of the files set with SetGlobalFiles.
func WithoutGlobalFiles() Option {
	return func(c *config) { c.ignoreGlobal = true }
}

// WithSignature prefixes console lines and callback messages with [signature].
func WithSignature(signature string) Option {
	return func(c *config) { c.signature = signature }
}

// WithCaller controls whether records carry the calling function and line.
// Console output shows them by default; JSON and text only when enabled here.
func WithCaller(enabled bool) Option {
	return func(c *config) { c.caller = &enabled }
}

// WithTimestamps controls whether console lines start with a timestamp. Default true.
func WithTimestamps(enabled bool) Option {
	return func(c *config) { c.timestamps = enabled }
}

// WithColor sets when console output is coloured.
func WithColor(mode ColorMode) Option {
	return func(c *config) { c.colorMode = mode }
}

// WithDefaultColor sets the console colour of info records.
func WithDefaultColor(color Color) Option {
	return func(c *config) { c.defaultColor = color }
}

// WithCallbacks dispatches every printed record to the callbacks registered for its level.
func WithCallbacks(cbs *Callbacks) Option {
	return func(c *config) { c.callbacks = cbs }
}

// WithHandlerOptions allows fine-grained control over the JSON and text handlers.
// Nil options are ignored.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) {
		if opts != nil {
			c.handlerOptions = opts
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

// WithContextExtractors registers functions that inject dynamic attributes from context.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithContextValue is a convenience wrapper adding a context value extractor.
func WithContextValue(name string, key any) Option {
	return func(c *config) {
		if name == "" || key == nil {
			return
		}
		c.extractors = append(c.extractors, func(ctx context.Context) (slog.Attr, bool) {
			if v := ctx.Value(key); v != nil {
				return slog.Any(name, v), true
			}
			return slog.Attr{}, false
		})
	}
}

// WithDevelopment configures development defaults: coloured console output at debug level.
func WithDevelopment(service string) Option {
	return func(c *config) {
		if service == "" {
			return
		}
		c.level = slog.LevelDebug
		c.format = FormatConsole
		c.attrs = append(c.attrs,
			slog.String("service", service),
			slog.String("env", string(environment.Development)),
		)
	}
}

// WithProduction configures production defaults.
// Uses JSON format for structured logging and info level to reduce noise.
func WithProduction(service string) Option {
	return func(c *config) {
		if service == "" {
			return
		}
		c.level = slog.LevelInfo
		c.format = FormatJSON
		c.attrs = append(c.attrs,
			slog.String("service", service),
			slog.String("env", string(environment.Production)),
		)
	}
}

func WithStaging(service string) Option {
	return func(c *config) {
		if service == "" {
			return
		}
		c.level = slog.LevelInfo
		c.format = FormatJSON
		c.attrs = append(c.attrs,
			slog.String("service", service),
			slog.String("env", string(environment.Staging)),
		)
	}
}

func WithEnvironment(env string, service string) Option {
	return func(c *config) {
		switch environment.Parse(env) {
		case environment.Production:
			WithProduction(service)(c)
		case environment.Staging:
			WithStaging(service)(c)
		default:
			WithDevelopment(service)(c)
		}
	}
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

type config struct {
	level          slog.Level
	format         Format
	outputs        []io.Writer
	ignoreGlobal   bool
	signature      string
	caller         *bool
	timestamps     bool
	colorMode      ColorMode
	defaultColor   Color
	callbacks      *Callbacks
	attrs          []slog.Attr
	handlerOptions *slog.HandlerOptions
	extractors     []ContextExtractor
}

// defaultConfig: JSON at INFO level with console decorations enabled should
// the format be switched.
func defaultConfig() *config {
	return &config{
		level:      slog.LevelInfo,
		format:     FormatJSON,
		timestamps: true,
		colorMode:  ColorAuto,
	}
}

// New creates a configured slog.Logger.
// It fans out to every sink, then wraps the handler with the decorator that
// injects context attributes and dispatches level callbacks.
func New(opts ...Option) *slog.Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	outputs := cfg.outputs
	if len(outputs) == 0 {
		outputs = []io.Writer{os.Stdout}
	}
	if !cfg.ignoreGlobal {
		outputs = append(outputs, globalSink{})
	}

	var handler slog.Handler
	switch cfg.format {
	case FormatConsole:
		handler = NewConsoleHandler(ConsoleOptions{
			Level:         cfg.level,
			Signature:     cfg.signature,
			AddCaller:     cfg.caller == nil || *cfg.caller,
			AddTimestamps: cfg.timestamps,
			DefaultColor:  cfg.defaultColor,
			ColorMode:     cfg.colorMode,
		}, outputs...)
	case FormatText:
		handler = slog.NewTextHandler(fanout(outputs), cfg.slogOptions())
	default:
		handler = slog.NewJSONHandler(fanout(outputs), cfg.slogOptions())
	}

	attrs := cfg.attrs
	if cfg.signature != "" && cfg.format != FormatConsole {
		attrs = append(attrs, slog.String("signature", cfg.signature))
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	decorated := NewLogHandlerDecorator(handler, cfg.extractors...)
	if cfg.callbacks != nil {
		decorated = decorated.WithCallbacks(cfg.callbacks, cfg.signature)
	}
	return slog.New(decorated)
}

// slogOptions builds options for the JSON and text handlers. Options given
// WithHandlerOptions are copied; level naming and InColor removal run before
// their ReplaceAttr, and a nil Level falls back to the configured level.
func (c *config) slogOptions() *slog.HandlerOptions {
	if c.handlerOptions != nil {
		opts := *c.handlerOptions
		if opts.Level == nil {
			opts.Level = c.level
		}
		opts.ReplaceAttr = chainReplaceAttr(replaceLevelNames, c.handlerOptions.ReplaceAttr)
		return &opts
	}
	return &slog.HandlerOptions{
		Level:       c.level,
		AddSource:   c.caller != nil && *c.caller,
		ReplaceAttr: replaceLevelNames,
	}
}

func chainReplaceAttr(first, next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	if next == nil {
		return first
	}
	return func(groups []string, a slog.Attr) slog.Attr {
		a = first(groups, a)
		if a.Key == "" {
			return a
		}
		return next(groups, a)
	}
}
