// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.kivosy/config.yaml)
//  3. Default values
//
// API keys additionally fall back to the provider's conventional variable
// names (GEMINI_API_KEY, GROQ_API_KEY) so existing shell setups keep
// working without a KIVOSY_ prefix.
//
// Security: API keys are never logged; config directory uses 0750
// permissions. Sensitive fields are masked in MarshalJSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// DefaultMaxPerDay is the default daily generation ceiling.
	DefaultMaxPerDay = 10

	// DefaultGeminiModel is the Gemini model used for code generation.
	DefaultGeminiModel = "gemini-2.5-flash"

	// DefaultGroqModel is the Groq model used for code generation.
	DefaultGroqModel = "llama-3.3-70b-versatile"

	// DefaultRequestsPerMinute paces provider calls client-side. Free-tier
	// Gemini allows 10 requests per minute; stay under it.
	DefaultRequestsPerMinute = 8
)

// Config stores application configuration.
// SECURITY: Sensitive fields are explicitly masked in MarshalJSON().
// When adding new sensitive fields (API keys, tokens), update MarshalJSON.
type Config struct {
	// Provider credentials. Either one is enough; both enables fallback.
	GeminiAPIKey string `mapstructure:"gemini_api_key" json:"gemini_api_key"` // SENSITIVE: masked in MarshalJSON
	GroqAPIKey   string `mapstructure:"groq_api_key" json:"groq_api_key"`     // SENSITIVE: masked in MarshalJSON

	// Model overrides
	GeminiModel string `mapstructure:"gemini_model" json:"gemini_model"`
	GroqModel   string `mapstructure:"groq_model" json:"groq_model"`

	// Generation limits
	MaxPerDay         int `mapstructure:"max_per_day" json:"max_per_day"`
	RequestsPerMinute int `mapstructure:"requests_per_minute" json:"requests_per_minute"`

	// Storage location for the app database and session state
	DataDir string `mapstructure:"data_dir" json:"data_dir"`

	// Logging
	LogLevel string `mapstructure:"log_level" json:"log_level"`
	LogJSON  bool   `mapstructure:"log_json" json:"log_json"`
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".kivosy")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")

	setDefaults(configDir)
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is not an error; defaults apply.
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."},
			"config_name", "config.yaml")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(configDir string) {
	viper.SetDefault("gemini_model", DefaultGeminiModel)
	viper.SetDefault("groq_model", DefaultGroqModel)
	viper.SetDefault("max_per_day", DefaultMaxPerDay)
	viper.SetDefault("requests_per_minute", DefaultRequestsPerMinute)
	viper.SetDefault("data_dir", configDir)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_json", false)
}

// bindEnvVariables binds environment variables explicitly. API keys accept
// both the KIVOSY_-prefixed name and the provider's conventional name.
func bindEnvVariables() {
	// Hardcoded strings can't fail to bind; a panic here is a bug.
	mustBind := func(key string, envVars ...string) {
		if err := viper.BindEnv(append([]string{key}, envVars...)...); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q: %v", key, err))
		}
	}

	mustBind("gemini_api_key", "KIVOSY_GEMINI_API_KEY", "GEMINI_API_KEY")
	mustBind("groq_api_key", "KIVOSY_GROQ_API_KEY", "GROQ_API_KEY")

	mustBind("gemini_model", "KIVOSY_GEMINI_MODEL")
	mustBind("groq_model", "KIVOSY_GROQ_MODEL")
	mustBind("max_per_day", "KIVOSY_MAX_PER_DAY")
	mustBind("requests_per_minute", "KIVOSY_REQUESTS_PER_MINUTE")
	mustBind("data_dir", "KIVOSY_DATA_DIR")
	mustBind("log_level", "KIVOSY_LOG_LEVEL")
	mustBind("log_json", "KIVOSY_LOG_JSON")
}

// HasCredentials reports whether at least one provider key is configured.
func (c *Config) HasCredentials() bool {
	return c.GeminiAPIKey != "" || c.GroqAPIKey != ""
}

// DatabasePath returns the SQLite database location inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "factory.db")
}

// SessionPath returns the session state file location inside DataDir.
func (c *Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session.json")
}

// SlogLevel maps LogLevel onto a slog level. Unknown values fall back to
// info; Validate rejects them before this is reached in normal operation.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// maskedValue is the placeholder for masked sensitive data.
// Full-width blocks (U+2588) avoid substring matching against real secrets.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging. Secrets of 8 chars or
// fewer are fully masked; longer ones show the first and last 2 characters.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with explicit sensitive field
// masking. When adding new sensitive fields, update this method.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.GeminiAPIKey = maskSecret(a.GeminiAPIKey)
	a.GroqAPIKey = maskSecret(a.GroqAPIKey)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
