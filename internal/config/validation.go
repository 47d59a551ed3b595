package config

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrInvalidMaxPerDay indicates the daily ceiling is out of range.
	ErrInvalidMaxPerDay = errors.New("invalid max per day")

	// ErrInvalidRequestsPerMinute indicates the request pace is out of range.
	ErrInvalidRequestsPerMinute = errors.New("invalid requests per minute")

	// ErrInvalidModelName indicates a model name is empty.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidDataDir indicates the data directory is empty.
	ErrInvalidDataDir = errors.New("invalid data directory")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Validate checks all configuration values and fails fast with a sentinel
// error. Provider keys are deliberately not required here: the CLI reports
// missing credentials at generation time, and read-only commands work
// without any key.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if c.MaxPerDay < 1 {
		return fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidMaxPerDay, c.MaxPerDay)
	}

	if c.RequestsPerMinute < 1 {
		return fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidRequestsPerMinute, c.RequestsPerMinute)
	}

	if c.GeminiModel == "" {
		return fmt.Errorf("%w: gemini_model is empty", ErrInvalidModelName)
	}
	if c.GroqModel == "" {
		return fmt.Errorf("%w: groq_model is empty", ErrInvalidModelName)
	}

	if c.DataDir == "" {
		return ErrInvalidDataDir
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q (expected debug, info, warn, or error)", ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}
