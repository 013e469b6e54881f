package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, "qwen2.5:3b", cfg.Model)
	assert.Equal(t, "none", cfg.Token)
	assert.Equal(t, 3, cfg.MaxSenses)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with options", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://custom:8080"),
			WithModel("gpt-4o-mini"),
			WithToken("secret"),
			WithMaxSenses(5),
		)

		assert.Equal(t, "http://custom:8080", cfg.Host)
		assert.Equal(t, "gpt-4o-mini", cfg.Model)
		assert.Equal(t, "secret", cfg.Token)
		assert.Equal(t, 5, cfg.MaxSenses)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected string
	}{
		{"already has /v1", "http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"missing /v1", "http://localhost:11434", "http://localhost:11434/v1"},
		{"has trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"surrounding whitespace", "  http://embed:8080 ", "http://embed:8080/v1"},
		{"empty host", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Host: tt.host}

			cfg.Normalize()

			assert.Equal(t, tt.expected, cfg.Host)
			assert.Equal(t, "none", cfg.Token)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Host:      "http://localhost:11434",
			Model:     "qwen2.5:3b",
			MaxSenses: 3,
		}
	}

	t.Run("valid config", func(t *testing.T) {
		cfg := valid()

		require.NoError(t, cfg.Validate())

		// Should also normalize
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing host", func(c *Config) { c.Host = "" }, "Host"},
		{"missing model", func(c *Config) { c.Model = "" }, "Model"},
		{"max senses too low", func(c *Config) { c.MaxSenses = 0 }, "MaxSenses"},
		{"max senses too high", func(c *Config) { c.MaxSenses = 11 }, "MaxSenses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	t.Run("max senses at boundaries", func(t *testing.T) {
		cfg := valid()
		cfg.MaxSenses = 1
		assert.NoError(t, cfg.Validate())

		cfg.MaxSenses = MaxSensesLimit
		assert.NoError(t, cfg.Validate())
	})
}

func TestConfigValidate_Integration(t *testing.T) {
	require.NoError(t, NewConfig().Validate())
	require.NoError(t, DefaultConfig().Validate())
}

func TestNormalizePartOfSpeech(t *testing.T) {
	assert.Equal(t, "noun", NormalizePartOfSpeech(" Noun "))
	assert.Equal(t, "idiom", NormalizePartOfSpeech("IDIOM"))
	assert.Equal(t, "other", NormalizePartOfSpeech("gerund"))
	assert.Equal(t, "other", NormalizePartOfSpeech(""))
}
