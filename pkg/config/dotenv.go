package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
)

// LoadEnv loads one or more .env files into the process environment.
// Files are applied in order and later files override earlier ones, as well
// as variables already set in the environment. Without arguments the .env
// file in the working directory is loaded.
//
// Configuration types already cached by Load are not refreshed; call
// ResetCache or ForceReloadConfig afterwards when that matters.
func LoadEnv(paths ...string) error {
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}
