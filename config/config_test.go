package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every LEXICON_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvDB, EnvAIHost, EnvAIModel, EnvAIToken, EnvMaxSenses, EnvPageSize, EnvPoolSize} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, errs := Load("")
	require.Empty(t, errs)

	assert.Equal(t, DefaultDBPath(), cfg.DBPath)
	assert.Equal(t, "http://localhost:11434/v1", cfg.AIHost)
	assert.Equal(t, "qwen2.5:3b", cfg.AIModel)
	assert.Equal(t, "none", cfg.AIToken)
	assert.Equal(t, 3, cfg.MaxSenses)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, DefaultPoolSize, cfg.PoolSize)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
db: /tmp/lexicon-db
ai_host: http://dict:8080
ai_model: llama3
max_senses: 5
page_size: 50
pool_size: 8
`)

	cfg, errs := Load(path)
	require.Empty(t, errs)

	assert.Equal(t, "/tmp/lexicon-db", cfg.DBPath)
	assert.Equal(t, "http://dict:8080", cfg.AIHost)
	assert.Equal(t, "llama3", cfg.AIModel)
	assert.Equal(t, 5, cfg.MaxSenses)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 8, cfg.PoolSize)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "db: /from/file\npage_size: 50\n")
	t.Setenv(EnvDB, "/from/env")
	t.Setenv(EnvPageSize, "10")
	t.Setenv(EnvAIModel, "mistral")

	cfg, errs := Load(path)
	require.Empty(t, errs)

	assert.Equal(t, "/from/env", cfg.DBPath)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "mistral", cfg.AIModel)
}

func TestLoad_InvalidInteger(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPoolSize, "lots")

	cfg, errs := Load("")
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrInvalidInteger)
	assert.Contains(t, errs[0].Error(), EnvPoolSize)
	assert.Equal(t, DefaultPoolSize, cfg.PoolSize)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	cfg, errs := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Nil(t, cfg)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "failed to load config file")
}

func TestLoad_ValidationErrors(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "page_size: 0\npool_size: -1\nmax_senses: 11\n")

	_, errs := Load(path)
	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], ErrInvalidPageSize)
	assert.ErrorIs(t, errs[1], ErrInvalidPoolSize)
	assert.ErrorIs(t, errs[2], ErrInvalidMaxSenses)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{DBPath: "db", MaxSenses: 3, PageSize: 20, PoolSize: 4}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"missing db", func(c *Config) { c.DBPath = "" }, ErrMissingDBPath},
		{"page size too large", func(c *Config) { c.PageSize = 101 }, ErrInvalidPageSize},
		{"zero pool", func(c *Config) { c.PoolSize = 0 }, ErrInvalidPoolSize},
		{"zero senses", func(c *Config) { c.MaxSenses = 0 }, ErrInvalidMaxSenses},
	}

	require.Empty(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			errs := cfg.Validate()
			require.Len(t, errs, 1)
			assert.ErrorIs(t, errs[0], tt.want)
		})
	}
}

func TestAIConfig(t *testing.T) {
	cfg := &Config{AIHost: "http://dict:8080", AIModel: "llama3", AIToken: "secret", MaxSenses: 2}

	aiCfg := cfg.AIConfig()
	require.NoError(t, aiCfg.Validate())
	assert.Equal(t, "http://dict:8080/v1", aiCfg.Host)
	assert.Equal(t, "llama3", aiCfg.Model)
	assert.Equal(t, "secret", aiCfg.Token)
	assert.Equal(t, 2, aiCfg.MaxSenses)
}
