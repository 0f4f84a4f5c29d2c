// Package config loads server configuration from an optional JSONC file and
// the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/jsonc"
)

// Env variable names recognized by Load. API keys are read from the
// environment only, never from config files.
const (
	EnvConfigFile   = "HYDRA_CONFIG"
	EnvPort         = "HYDRA_PORT"
	EnvLogLevel     = "HYDRA_LOG_LEVEL"
	EnvLogPretty    = "HYDRA_LOG_PRETTY"
	EnvBaseURL      = "ANTHROPIC_BASE_URL"
	EnvDefaultModel = "HYDRA_DEFAULT_MODEL"

	EnvAnthropicKey = "ANTHROPIC_API_KEY"
	EnvGoogleKey    = "GOOGLE_API_KEY"
)

// Config holds server configuration.
type Config struct {
	Port             int    `json:"port"`
	LogLevel         string `json:"logLevel"`
	LogPretty        bool   `json:"logPretty"`
	AnthropicBaseURL string `json:"anthropicBaseURL"`
	DefaultModel     string `json:"defaultModel"`

	// Settings seeds for the state store.
	Theme     string `json:"theme"`
	Language  string `json:"language"`
	AutoStart bool   `json:"autoStart"`

	// APIKeys maps provider name to secret key. Environment-only.
	APIKeys map[string]string `json:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:             8080,
		LogLevel:         "INFO",
		AnthropicBaseURL: "https://api.anthropic.com",
		DefaultModel:     "claude-sonnet-4-5-20250929",
		Theme:            "dark",
		Language:         "en",
		APIKeys:          map[string]string{},
	}
}

// Load builds the configuration (priority order):
//  1. Built-in defaults
//  2. Config file: explicit path argument, HYDRA_CONFIG, or ./hydra.json(c)
//  3. Environment variables
func Load(path string) (*Config, error) {
	cfg := Default()

	candidates := []string{}
	if path != "" {
		candidates = append(candidates, path)
	} else if envPath := os.Getenv(EnvConfigFile); envPath != "" {
		candidates = append(candidates, envPath)
	} else {
		candidates = append(candidates, "hydra.jsonc", "hydra.json")
	}

	for _, candidate := range candidates {
		if err := loadFile(candidate, cfg); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("config %s: %w", candidate, err)
		}
		break
	}

	applyEnvOverrides(cfg)
	loadAPIKeys(cfg)

	return cfg, nil
}

// loadFile merges a single JSONC config file into cfg.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Strip JSONC comments using tidwall/jsonc
	data = jsonc.ToJSON(data)

	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogPretty); v != "" {
		if pretty, err := strconv.ParseBool(v); err == nil {
			cfg.LogPretty = pretty
		}
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.AnthropicBaseURL = v
	}
	if v := os.Getenv(EnvDefaultModel); v != "" {
		cfg.DefaultModel = v
	}
}

// loadAPIKeys seeds the credential map from the environment, keyed by
// provider name.
func loadAPIKeys(cfg *Config) {
	if cfg.APIKeys == nil {
		cfg.APIKeys = map[string]string{}
	}
	if key := os.Getenv(EnvAnthropicKey); key != "" {
		cfg.APIKeys["anthropic"] = key
	}
	if key := os.Getenv(EnvGoogleKey); key != "" {
		cfg.APIKeys["google"] = key
	}
}
