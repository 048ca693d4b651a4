package config_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/beartools/pkg/config"
	"github.com/dmitrymomot/beartools/pkg/logger"
)

type runnerConfig struct {
	Table   string `env:"RUNNER_TABLE" envDefault:"order.yaml"`
	Workers int    `env:"RUNNER_WORKERS" envDefault:"1"`
	Strict  bool   `env:"RUNNER_STRICT" envDefault:"true"`
}

type cachedConfig struct {
	Table string `env:"CACHED_TABLE" envDefault:"order.yaml"`
}

type firstConfig struct {
	Name string `env:"FIRST_NAME" envDefault:"first"`
}

type secondConfig struct {
	Name string `env:"SECOND_NAME" envDefault:"second"`
}

type requiredConfig struct {
	Initial string `env:"REQUIRED_INITIAL,required"`
}

type concurrentConfig struct {
	Value string `env:"CONCURRENT_VALUE" envDefault:"shared"`
}

func TestLoad(t *testing.T) {
	t.Run("reads environment", func(t *testing.T) {
		t.Setenv("RUNNER_TABLE", "archive.yaml")
		t.Setenv("RUNNER_WORKERS", "8")
		t.Setenv("RUNNER_STRICT", "false")
		config.ResetCache()

		var cfg runnerConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, runnerConfig{Table: "archive.yaml", Workers: 8, Strict: false}, cfg)
	})

	t.Run("falls back to defaults", func(t *testing.T) {
		clearEnv(t, "RUNNER_TABLE", "RUNNER_WORKERS", "RUNNER_STRICT")
		config.ResetCache()

		var cfg runnerConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, runnerConfig{Table: "order.yaml", Workers: 1, Strict: true}, cfg)
	})

	t.Run("missing required value", func(t *testing.T) {
		clearEnv(t, "REQUIRED_INITIAL")
		config.ResetCache()

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *runnerConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

func TestLoad_CachedPerType(t *testing.T) {
	config.ResetCache()
	t.Setenv("CACHED_TABLE", "first.yaml")

	var cfg cachedConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "first.yaml", cfg.Table)

	t.Setenv("CACHED_TABLE", "second.yaml")

	var again cachedConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "first.yaml", again.Table, "cached value is served until reload")

	require.NoError(t, config.ForceReloadConfig(&again))
	assert.Equal(t, "second.yaml", again.Table)
}

func TestLoad_DifferentTypes(t *testing.T) {
	config.ResetCache()
	t.Setenv("FIRST_NAME", "alpha")
	t.Setenv("SECOND_NAME", "beta")

	var a firstConfig
	var b secondConfig
	require.NoError(t, config.Load(&a))
	require.NoError(t, config.Load(&b))

	assert.Equal(t, "alpha", a.Name)
	assert.Equal(t, "beta", b.Name)
}

func TestLoad_CachedCopyIsIsolated(t *testing.T) {
	config.ResetCache()

	var cfg cachedConfig
	require.NoError(t, config.Load(&cfg))
	cfg.Table = "mutated"

	var again cachedConfig
	require.NoError(t, config.Load(&again))
	assert.NotEqual(t, "mutated", again.Table)
}

func TestLoad_Concurrent(t *testing.T) {
	config.ResetCache()

	var wg sync.WaitGroup
	results := make([]concurrentConfig, 16)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = config.Load(&results[i])
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i].Value)
	}
}

func TestLoad_LoggerConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "noise")
	t.Setenv("LOG_FILES", "a.log,b.log")
	t.Setenv("LOG_COLOR", "never")
	config.ResetCache()

	var cfg logger.Config
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "noise", cfg.Level)
	assert.Equal(t, []string{"a.log", "b.log"}, cfg.Files)
	assert.Equal(t, "console", cfg.Format)
	assert.True(t, cfg.Caller)
}

func TestMustLoad(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		config.ResetCache()
		var cfg runnerConfig
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
	})

	t.Run("panics on parse error", func(t *testing.T) {
		clearEnv(t, "REQUIRED_INITIAL")
		config.ResetCache()
		var cfg requiredConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}

func TestForceReloadConfig(t *testing.T) {
	clearEnv(t, "REQUIRED_INITIAL")
	config.ResetCache()

	var cfg requiredConfig
	require.Error(t, config.Load(&cfg))

	t.Setenv("REQUIRED_INITIAL", "START")
	require.NoError(t, config.ForceReloadConfig(&cfg))
	assert.Equal(t, "START", cfg.Initial)

	var nilCfg *requiredConfig
	assert.ErrorIs(t, config.ForceReloadConfig(nilCfg), config.ErrNilPointer)
}
