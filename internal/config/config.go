// Package config resolves the settings of the aiforms binary from a .env file
// and the environment. Command-line flags are applied on top by cmd/aiforms.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel        = "AIFORMS_LOG_LEVEL"
	EnvFormsDir        = "AIFORMS_FORMS_DIR"
	EnvAddr            = "AIFORMS_ADDR"
	EnvProvider        = "AIFORMS_PROVIDER"
	EnvModel           = "AIFORMS_MODEL"
	EnvSessionCapacity = "AIFORMS_SESSION_CAPACITY"
	EnvOpenAIKey       = "OPENAI_API_KEY"
	EnvOpenAIBaseURL   = "OPENAI_BASE_URL"
	EnvGeminiKey       = "GEMINI_API_KEY"
	EnvGeminiBaseURL   = "GEMINI_BASE_URL"
)

// Providers accepted in Config.Provider. The empty provider uses the built-in
// template questions and type parsing only.
const (
	ProviderNone   = ""
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Defaults.
const (
	DefaultFormsDir        = "forms"
	DefaultAddr            = ":8080"
	DefaultSessionCapacity = 1024
)

// Config holds the resolved settings.
type Config struct {
	LogLevel        string
	FormsDir        string
	Addr            string
	Provider        string
	Model           string
	SessionCapacity int

	OpenAI Credentials
	Gemini Credentials
}

// Credentials of one model provider.
type Credentials struct {
	APIKey  string
	BaseURL string
}

// Load reads the given env files (".env" when none is given) and then the
// environment. A missing default .env is not an error; variables already set
// in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel: firstNonEmpty(env(EnvLogLevel), "info"),
		FormsDir: firstNonEmpty(env(EnvFormsDir), DefaultFormsDir),
		Addr:     firstNonEmpty(env(EnvAddr), DefaultAddr),
		Provider: strings.ToLower(env(EnvProvider)),
		Model:    env(EnvModel),
		OpenAI: Credentials{
			APIKey:  env(EnvOpenAIKey),
			BaseURL: env(EnvOpenAIBaseURL),
		},
		Gemini: Credentials{
			APIKey:  env(EnvGeminiKey),
			BaseURL: env(EnvGeminiBaseURL),
		},
		SessionCapacity: DefaultSessionCapacity,
	}

	if raw := env(EnvSessionCapacity); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvSessionCapacity, err)
		}
		cfg.SessionCapacity = n
	}
	return cfg, nil
}

// Validate checks the settings that can be wrong on their own.
// Missing API keys are reported by the provider adapters when used.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderNone, ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", c.Provider, ProviderOpenAI, ProviderGemini)
	}
	if c.SessionCapacity <= 0 {
		return fmt.Errorf("session capacity must be positive, got %d", c.SessionCapacity)
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
