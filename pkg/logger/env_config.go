package logger

// Config describes a logger in environment variables.
// Load it with config.Load and turn it into options with Options.
type Config struct {
	Level      string   `env:"LOG_LEVEL" envDefault:"info"`
	Format     string   `env:"LOG_FORMAT" envDefault:"console"`
	Files      []string `env:"LOG_FILES" envSeparator:","`
	Signature  string   `env:"LOG_SIGNATURE"`
	Caller     bool     `env:"LOG_CALLER" envDefault:"true"`
	Timestamps bool     `env:"LOG_TIMESTAMPS" envDefault:"true"`
	Color      string   `env:"LOG_COLOR" envDefault:"auto"`
}

// Options validates the config and converts it into logger options.
func (c Config) Options() ([]Option, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	format := FormatConsole
	if c.Format != "" {
		if format, err = ParseFormat(c.Format); err != nil {
			return nil, err
		}
	}
	mode, err := ParseColorMode(c.Color)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithLevel(level),
		WithFormat(format),
		WithCaller(c.Caller),
		WithTimestamps(c.Timestamps),
		WithColor(mode),
	}
	if c.Signature != "" {
		opts = append(opts, WithSignature(c.Signature))
	}
	if len(c.Files) > 0 {
		opts = append(opts, WithFile(c.Files...))
	}
	return opts, nil
}
