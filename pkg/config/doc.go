// Package config loads typed configuration from environment variables and
// .env files.
//
// Parsing is done by github.com/caarlos0/env/v11 using struct tags, and .env
// files are read with github.com/joho/godotenv. Each configuration type is
// parsed once and cached by type name for the life of the process.
//
// # Usage
//
//	type runnerConfig struct {
//	    Env     string `env:"APP_ENV" envDefault:"development"`
//	    Service string `env:"SERVICE_NAME" envDefault:"fsmrun"`
//	    Log     logger.Config
//	}
//
//	if err := config.LoadEnv("deploy/.env", "deploy/.env.local"); err != nil {
//	    return err
//	}
//	var cfg runnerConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// The default .env file in the working directory is loaded automatically on
// the first call to Load when it exists. LoadEnv applies files in order, and
// later files override earlier ones as well as the process environment.
//
// # Error Handling
//
// Errors can be compared with errors.Is:
//
//   - ErrParsingConfig: the environment could not be parsed into the struct.
//   - ErrConfigNotLoaded: a concurrent load of the same type failed.
//   - ErrNilPointer: nil pointer passed to Load or ForceReloadConfig.
//   - ErrLoadingEnvFile: a .env file could not be read.
//
// MustLoad and MustLoadEnv panic instead of returning an error.
//
// # Testing
//
// ResetCache clears every cached type. ForceReloadConfig re-parses a single
// type after the environment changed.
package config
