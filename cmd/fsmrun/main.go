package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dmitrymomot/beartools/pkg/config"
	"github.com/dmitrymomot/beartools/pkg/environment"
	"github.com/dmitrymomot/beartools/pkg/logger"
	"github.com/dmitrymomot/beartools/pkg/statemachine"
	"github.com/dmitrymomot/beartools/pkg/statemachine/yamltable"
)

const (
	success = 0
	failure = 1
)

type appConfig struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"SERVICE_NAME" envDefault:"fsmrun"`
	Log     logger.Config
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	// Parse the command line arguments.
	var (
		flagTable   string
		flagEnvFile []string
		flagLevel   string
	)

	flags := pflag.NewFlagSet("fsmrun", pflag.ContinueOnError)
	flags.SetOutput(out)
	flags.StringVarP(&flagTable, "table", "t", "", "YAML transition table (built-in order machine if empty)")
	flags.StringSliceVarP(&flagEnvFile, "env-file", "e", nil, ".env files to load before reading configuration")
	flags.StringVarP(&flagLevel, "level", "l", "", "log output level, overrides LOG_LEVEL")

	err := flags.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return success
	}
	if err != nil {
		return failure
	}

	// Load the configuration from the environment.
	if len(flagEnvFile) > 0 {
		err = config.LoadEnv(flagEnvFile...)
		if err != nil {
			fmt.Fprintf(out, "could not load env files: %v\n", err)
			return failure
		}
	}
	var cfg appConfig
	err = config.Load(&cfg)
	if err != nil {
		fmt.Fprintf(out, "could not load configuration: %v\n", err)
		return failure
	}
	if flags.Changed("level") {
		cfg.Log.Level = flagLevel
	}

	// Initialize the logger.
	logOpts, err := cfg.Log.Options()
	if err != nil {
		fmt.Fprintf(out, "invalid log configuration: %v\n", err)
		return failure
	}

	failures := 0
	callbacks := logger.NewCallbacks()
	stop := callbacks.Register(slog.LevelError, func(string) { failures++ }, logger.CallbackTimestamps(false))
	defer stop()

	logOpts = append(logOpts,
		logger.WithOutput(out),
		logger.WithAttr(slog.String("service", cfg.Service)),
		logger.WithContextExtractors(environment.LoggerExtractor()),
		logger.WithCallbacks(callbacks),
	)
	log := logger.New(logOpts...)
	ctx := environment.WithContext(context.Background(), environment.Parse(cfg.Env))

	if flags.NArg() == 0 {
		log.ErrorContext(ctx, "no inputs given")
		return failure
	}

	// Build the machine.
	machine, name, err := buildMachine(flagTable)
	if err != nil {
		log.ErrorContext(ctx, "could not build state machine", logger.Error(err), slog.String("table", flagTable))
		return failure
	}

	logger.Banner(ctx, log, fmt.Sprintf("running %s machine from %v", name, machine.State()), "=")

	rejected := 0
	for _, input := range flags.Args() {
		from := machine.State()
		to, err := machine.Transition(input)
		if statemachine.IsInvalidTransitionError(err) {
			rejected++
			log.WarnContext(ctx, "input rejected", logger.State(from), logger.Input(input), logger.Error(err))
			continue
		}
		log.InfoContext(ctx, "transition", logger.Transition(from, input, to), logger.InColor(logger.Green))
	}

	if rejected > 0 {
		log.ErrorContext(ctx, "some inputs were rejected",
			logger.Count(rejected),
			logger.State(machine.State()),
		)
	}
	logger.Noise(ctx, log, "run finished", slog.Int("failures", failures))

	if rejected > 0 {
		return failure
	}
	return success
}

func buildMachine(path string) (*statemachine.Machine[string, string], string, error) {
	if path == "" {
		return orderMachine(), "order", nil
	}

	def, err := yamltable.Load(path)
	if err != nil {
		return nil, "", err
	}
	machine, err := def.Machine()
	if err != nil {
		return nil, "", fmt.Errorf("table %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return machine, name, nil
}

// orderMachine is the order-processing pipeline used when no table is given.
func orderMachine() *statemachine.Machine[string, string] {
	table := statemachine.NewBuilder[string, string]().
		From("START").On("START_PROCESSING").To("PROCESSING").
		From("PROCESSING").On("FINISH_PROCESSING").To("COMPLETE").
		From("COMPLETE").On("START_PROCESSING").To("ERROR").
		From("COMPLETE").On("FINISH_PROCESSING").To("ERROR").
		MustBuild()
	return statemachine.New("START", table)
}
