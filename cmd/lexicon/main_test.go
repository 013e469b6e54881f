package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/lexicon/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	t  *testing.T
	db string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, key := range []string{config.EnvDB, config.EnvAIHost, config.EnvAIModel, config.EnvAIToken,
		config.EnvMaxSenses, config.EnvPageSize, config.EnvPoolSize} {
		t.Setenv(key, "")
	}
	return &testEnv{t: t, db: filepath.Join(t.TempDir(), "db")}
}

// run executes the CLI against the test database and returns stdout.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	var out bytes.Buffer
	argv := append([]string{"lexicon", "--db", e.db}, args...)
	err := newApp(&out).RunContext(context.Background(), argv)
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "lexicon %s", strings.Join(args, " "))
	return out
}

func TestAddShowRemove(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("add", "--definition", "a fortunate accident", "--tag", "luck", "--tag", "Favorite", "word", "Serendipity")
	assert.Equal(t, "added word 1\n", out)

	out = env.mustRun("show", "1")
	assert.Contains(t, out, "Serendipity")
	assert.Contains(t, out, "a fortunate accident")
	assert.Contains(t, out, "favorite, luck")

	_, err := env.run("add", "word", "serendipity")
	assert.ErrorContains(t, err, "duplicate")

	out = env.mustRun("rm", "1")
	assert.Equal(t, "removed 1 entries\n", out)

	_, err = env.run("show", "1")
	assert.ErrorContains(t, err, "not found")
}

func TestAdd_Invalid(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing text", []string{"add", "word"}, "kind and text"},
		{"unknown kind", []string{"add", "limerick", "There once was"}, "invalid entry kind"},
		{"source on word", []string{"add", "--source", "me", "word", "luck"}, "--source"},
		{"definition on quote", []string{"add", "--definition", "x", "quote", "Hi."}, "--definition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := env.run("show", "abc")
	assert.ErrorContains(t, err, "invalid id")
}

func seedCLI(env *testEnv) {
	env.mustRun("add", "--definition", "success brought by chance", "--tag", "luck", "word", "luck")
	env.mustRun("add", "--definition", "a fortunate accident", "--tag", "luck", "word", "serendipity")
	env.mustRun("add", "--definition", "good luck", "--tag", "theatre", "phrase", "break a leg")
	env.mustRun("add", "--source", "Terence", "quote", "Fortune favours the bold.")
	env.mustRun("add", "hypothetical", "What if luck were measurable?")
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	seedCLI(env)

	out := env.mustRun("search", "luck")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"1", "word", "246", "luck"}, strings.Fields(lines[0]))
	assert.Contains(t, lines[1], "What if luck were measurable?")
	assert.Contains(t, lines[4], "Fortune favours the bold.")
	assert.Equal(t, "1-5 of 5", lines[5])

	out = env.mustRun("search", "--kind", "phrase", "luck")
	assert.Contains(t, out, "break a leg")
	assert.Contains(t, out, "1-1 of 1")

	out = env.mustRun("search", "--explain", "luck")
	assert.Contains(t, out, "+81")
	assert.Contains(t, out, "primary-exact")

	out = env.mustRun("search", "--limit", "2", "--offset", "2")
	assert.Contains(t, out, "3-4 of 5")

	out = env.mustRun("search", "--letter", "z")
	assert.Equal(t, "no entries found\n", out)

	_, err := env.run("search", "--kind", "limerick")
	assert.Error(t, err)

	_, err = env.run("search", "--limit", "-1")
	assert.Error(t, err)
}

func TestTags(t *testing.T) {
	env := newTestEnv(t)
	seedCLI(env)

	out := env.mustRun("tags")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"luck", "2"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"theatre", "1"}, strings.Fields(lines[1]))
}

func TestExportImport(t *testing.T) {
	env := newTestEnv(t)
	seedCLI(env)

	file := filepath.Join(t.TempDir(), "lexicon.cbor")
	out := env.mustRun("export", file)
	assert.Contains(t, out, "exported 5 entries")

	other := &testEnv{t: t, db: filepath.Join(t.TempDir(), "other")}
	out = other.mustRun("import", file)
	assert.Equal(t, "imported 5 entries, skipped 0 duplicates\n", out)

	out = other.mustRun("import", file)
	assert.Equal(t, "imported 0 entries, skipped 5 duplicates\n", out)
}

// chatServer fakes an OpenAI-compatible chat endpoint that always answers
// with reply.
func chatServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": reply},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDefineAndEnrich(t *testing.T) {
	env := newTestEnv(t)
	srv := chatServer(t, `{"senses":[{"part_of_speech":"noun","definition":"The smell of rain on dry earth.","example":"The petrichor after the storm."}]}`)
	t.Setenv(config.EnvAIHost, srv.URL)

	out := env.mustRun("define", "petrichor")
	assert.Equal(t, "1. (noun) The smell of rain on dry earth.\n   e.g. The petrichor after the storm.\n", out)

	env.mustRun("add", "word", "petrichor")
	env.mustRun("add", "--definition", "kept", "word", "irony")

	out = env.mustRun("enrich", "--retry-delay", "1ms")
	assert.Contains(t, out, "defined 1 of 1 entries (0 unknown, 0 failed)")

	out = env.mustRun("show", "1")
	assert.Contains(t, out, "The smell of rain on dry earth.")
	out = env.mustRun("show", "2")
	assert.Contains(t, out, "kept")

	_, err := env.run("enrich", "--batch-size", "0")
	assert.ErrorContains(t, err, "BatchSize")

	_, err = env.run("define")
	assert.ErrorContains(t, err, "requires a term")
}

func TestConfigFile(t *testing.T) {
	env := newTestEnv(t)
	seedCLI(env)

	cfgFile := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, writeFile(cfgFile, "page_size: 2\n"))

	out := env.mustRun("--config", cfgFile, "search")
	assert.Contains(t, out, "1-2 of 5")

	_, err := env.run("--config", filepath.Join(t.TempDir(), "missing.yaml"), "tags")
	assert.ErrorContains(t, err, "invalid configuration")

	t.Setenv(config.EnvPoolSize, "0")
	_, err = env.run("tags")
	assert.ErrorContains(t, err, "pool_size")
}

func TestSetupLogger(t *testing.T) {
	env := newTestEnv(t)

	for _, level := range []string{"debug", "INFO", "warn", "error"} {
		_, err := env.run("--log-level", level, "tags")
		assert.NoError(t, err, level)
	}

	_, err := env.run("--log-level", "loud", "tags")
	assert.ErrorContains(t, err, "invalid log level")
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
