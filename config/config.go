// Package config loads settings for the lexicon command line tool.
// Values come from an optional YAML file, overridden by LEXICON_*
// environment variables, then by defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/poiesic/lexicon/ai"
	"github.com/poiesic/lexicon/search"
)

// Config holds all configuration values for the CLI.
type Config struct {
	// Storage
	DBPath string `koanf:"db"`

	// Dictionary lookup
	AIHost    string `koanf:"ai_host"`
	AIModel   string `koanf:"ai_model"`
	AIToken   string `koanf:"ai_token"`
	MaxSenses int    `koanf:"max_senses"`

	// Search
	PageSize int `koanf:"page_size"`
	PoolSize int `koanf:"pool_size"` // ranking worker pool size
}

// Environment variables consulted by Load.
const (
	EnvDB        = "LEXICON_DB"
	EnvAIHost    = "LEXICON_AI_HOST"
	EnvAIModel   = "LEXICON_AI_MODEL"
	EnvAIToken   = "LEXICON_AI_TOKEN"
	EnvMaxSenses = "LEXICON_MAX_SENSES"
	EnvPageSize  = "LEXICON_PAGE_SIZE"
	EnvPoolSize  = "LEXICON_POOL_SIZE"
)

// Default values.
const (
	DefaultPageSize = search.DefaultLimit
	DefaultPoolSize = 4
)

// Configuration validation errors.
var (
	ErrMissingDBPath    = errors.New("db path is required")
	ErrInvalidPageSize  = errors.New("page_size must be between 1 and 100")
	ErrInvalidPoolSize  = errors.New("pool_size must be positive")
	ErrInvalidMaxSenses = errors.New("max_senses must be between 1 and 10")
	ErrInvalidInteger   = errors.New("must be a valid integer")
)

// DefaultDBPath returns ~/.lexicon/db, or a relative path when the home
// directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".lexicon", "db")
	}
	return filepath.Join(home, ".lexicon", "db")
}

// Load reads configuration from an optional config file and environment
// variables. Environment variables take precedence over file values.
// Returns the loaded config and a slice of validation errors (empty if valid).
// If a config file path is provided and the file cannot be loaded, only that
// error is returned.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	defaults := ai.DefaultConfig()

	intSetting := func(envKey, koanfKey string, defaultVal int) int {
		v, err := getEnvIntOrDefault(envKey, k, koanfKey, defaultVal)
		if err != nil {
			loadErrs = append(loadErrs, err)
		}
		return v
	}

	cfg := &Config{
		DBPath:    getEnvOrDefault(EnvDB, k.String("db"), DefaultDBPath()),
		AIHost:    getEnvOrDefault(EnvAIHost, k.String("ai_host"), defaults.Host),
		AIModel:   getEnvOrDefault(EnvAIModel, k.String("ai_model"), defaults.Model),
		AIToken:   getEnvOrDefault(EnvAIToken, k.String("ai_token"), defaults.Token),
		MaxSenses: intSetting(EnvMaxSenses, "max_senses", defaults.MaxSenses),
		PageSize:  intSetting(EnvPageSize, "page_size", DefaultPageSize),
		PoolSize:  intSetting(EnvPoolSize, "pool_size", DefaultPoolSize),
	}

	return cfg, append(loadErrs, cfg.Validate()...)
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() []error {
	var errs []error

	if c.DBPath == "" {
		errs = append(errs, ErrMissingDBPath)
	}
	if c.PageSize < 1 || c.PageSize > search.MaxLimit {
		errs = append(errs, fmt.Errorf("%w, got %d", ErrInvalidPageSize, c.PageSize))
	}
	if c.PoolSize < 1 {
		errs = append(errs, fmt.Errorf("%w, got %d", ErrInvalidPoolSize, c.PoolSize))
	}
	if c.MaxSenses < 1 || c.MaxSenses > ai.MaxSensesLimit {
		errs = append(errs, fmt.Errorf("%w, got %d", ErrInvalidMaxSenses, c.MaxSenses))
	}

	return errs
}

// AIConfig converts the lookup settings into an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.AIHost),
		ai.WithModel(c.AIModel),
		ai.WithToken(c.AIToken),
		ai.WithMaxSenses(c.MaxSenses),
	)
}

// getEnvOrDefault returns the environment variable value if set, otherwise the koanf value, or default.
func getEnvOrDefault(envKey string, koanfVal string, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvIntOrDefault returns the environment variable as int if set, otherwise the koanf value, or default.
// Returns an error if the environment variable is set but cannot be parsed as an integer.
func getEnvIntOrDefault(envKey string, k *koanf.Koanf, koanfKey string, defaultVal int) (int, error) {
	if val := os.Getenv(envKey); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return defaultVal, fmt.Errorf("%s %w: %q", envKey, ErrInvalidInteger, val)
		}
		return i, nil
	}
	if k.Exists(koanfKey) {
		return k.Int(koanfKey), nil
	}
	return defaultVal, nil
}
