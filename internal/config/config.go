// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-assistant/internal/llm"
	"github.com/jonathan/resume-assistant/internal/rendering"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults, environment variables or CLI flags.
type Config struct {
	// Storage
	DataDir     string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`         // Directory holding the JSON documents
	Storage     string `json:"storage,omitempty" yaml:"storage,omitempty"`           // "file" or "postgres"
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL

	// Generation
	Provider       string `json:"provider,omitempty" yaml:"provider,omitempty"`               // "together" or "gemini"
	Model          string `json:"model,omitempty" yaml:"model,omitempty"`                     // Provider model name
	APIBaseURL     string `json:"api_base_url,omitempty" yaml:"api_base_url,omitempty"`       // Override for the provider endpoint
	APIKey         string `json:"api_key,omitempty" yaml:"api_key,omitempty"`                 // Provider credential
	RequestTimeout string `json:"request_timeout,omitempty" yaml:"request_timeout,omitempty"` // Go duration, e.g. "60s"

	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Rendering
	ColorScheme string `json:"color_scheme,omitempty" yaml:"color_scheme,omitempty"`
	ChromePath  string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataDir:        ".",
		Storage:        StorageFile,
		Provider:       string(llm.ProviderTogether),
		RequestTimeout: llm.DefaultTimeout.String(),
		Port:           8080,
		ColorScheme:    rendering.SchemeProfessional,
	}
}

// LoadConfig loads configuration from a file. Files ending in .yaml or .yml are
// parsed as YAML; anything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Load reads path (when non-empty), fills defaults, applies environment overrides
// and validates the result.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(Defaults())
	merged.ApplyEnv(getenv)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Storage {
	case "", StorageFile:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for postgres storage")
		}
	default:
		return fmt.Errorf("config error: unknown storage %q (want %q or %q)", c.Storage, StorageFile, StoragePostgres)
	}

	if _, err := llm.ParseProvider(c.Provider); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.RequestTimeout != "" {
		d, err := time.ParseDuration(c.RequestTimeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'request_timeout': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'request_timeout' must be positive")
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.ColorScheme != "" {
		if _, ok := rendering.LookupColorScheme(c.ColorScheme); !ok {
			return fmt.Errorf("config error: unknown color scheme %q", c.ColorScheme)
		}
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome executable not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	for _, f := range []struct{ value, fallback *string }{
		{&result.DataDir, &defaults.DataDir},
		{&result.Storage, &defaults.Storage},
		{&result.DatabaseURL, &defaults.DatabaseURL},
		{&result.Provider, &defaults.Provider},
		{&result.Model, &defaults.Model},
		{&result.APIBaseURL, &defaults.APIBaseURL},
		{&result.APIKey, &defaults.APIKey},
		{&result.RequestTimeout, &defaults.RequestTimeout},
		{&result.ColorScheme, &defaults.ColorScheme},
		{&result.ChromePath, &defaults.ChromePath},
	} {
		if *f.value == "" {
			*f.value = *f.fallback
		}
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: true if either is true
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Environment variables read by ApplyEnv
const (
	EnvAPIKey         = "RESUME_API_KEY"
	EnvTogetherAPIKey = "TOGETHER_API_KEY"
	EnvGeminiAPIKey   = "GEMINI_API_KEY"
	EnvDatabaseURL    = "DATABASE_URL"
	EnvDataDir        = "RESUME_DATA_DIR"
	EnvPort           = "PORT"
)

// ApplyEnv overrides fields with any non-empty environment variables. The API key
// comes from the variable for the configured provider, then RESUME_API_KEY.
// An unparsable PORT is ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}

	providerKey := EnvTogetherAPIKey
	if p, _ := llm.ParseProvider(c.Provider); p == llm.ProviderGemini {
		providerKey = EnvGeminiAPIKey
	}
	for _, key := range []string{EnvAPIKey, providerKey} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			c.APIKey = v
		}
	}

	if v := getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

// Timeout returns RequestTimeout as a duration, or the provider default when unset or invalid.
func (c *Config) Timeout() time.Duration {
	if d, err := time.ParseDuration(c.RequestTimeout); err == nil && d > 0 {
		return d
	}
	return llm.DefaultTimeout
}

// LLMConfig returns the completion client configuration.
func (c *Config) LLMConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return nil, err
	}
	cfg := llm.ConfigFor(provider).WithModel(c.Model).WithBaseURL(c.APIBaseURL)
	cfg.Timeout = c.Timeout()
	return cfg, nil
}
