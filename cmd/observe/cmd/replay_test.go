package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/observe/cmd/observe/internal/config"
	observeerrors "github.com/go-drift/observe/pkg/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestReplay_Journal(t *testing.T) {
	script := &config.Script{
		Name: "todo",
		Seed: []string{"write", "test"},
		Steps: []config.Step{
			{Op: config.OpAppend, Value: "ship"},
			{Op: config.OpMove, Index: 2, To: 0},
			{Op: config.OpSet, Index: 1, Value: "draft"},
			{Op: config.OpRemove, Index: 2},
			{Op: config.OpInsert, Index: 0, Value: "plan"},
			{Op: config.OpClear},
		},
	}

	journal, err := replay(script, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "todo", journal.Name)
	assert.NotEmpty(t, journal.Source)

	var actions []string
	for _, e := range journal.Entries {
		if e.Channel == "collection" {
			actions = append(actions, e.Action)
		}
	}
	assert.Equal(t, []string{"add", "move", "replace", "remove", "add", "reset"}, actions)
	// add, remove, add and reset also raise Count: 6 structural + 6 Item[] + 4 Count
	assert.Len(t, journal.Entries, 16)
}

func TestReplay_NilSeed(t *testing.T) {
	journal, err := replay(&config.Script{Steps: []config.Step{{Op: config.OpAppend, Value: "a"}}}, discardLogger())
	require.NoError(t, err)
	assert.Len(t, journal.Entries, 3)
}

func TestReplay_StepOutOfRange(t *testing.T) {
	var reported *observeerrors.ObserveError
	defer observeerrors.SetHandler(observeerrors.SetHandler(&captureHandler{onError: func(e *observeerrors.ObserveError) { reported = e }}))

	script := &config.Script{
		Seed:  []string{"a", "b", "c"},
		Steps: []config.Step{{Op: config.OpInsert, Index: 4, Value: "x"}},
	}

	_, err := replay(script, discardLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, observeerrors.ErrOutOfRange))
	assert.ErrorContains(t, err, "step 0 (insert)")
	require.NotNil(t, reported)
	assert.Equal(t, 4, reported.Index)
}

func TestRunReplay_EndToEnd(t *testing.T) {
	defer observeerrors.SetHandler(observeerrors.Handler())

	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "todo.yaml")
	require.NoError(t, os.WriteFile(scriptPath, []byte(`
name: todo
seed: [write]
steps:
  - op: append
    value: ship
`), 0o644))
	configPath := filepath.Join(dir, "observe.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log:\n  level: error\n"), 0o644))

	env, stdout, _ := newTestEnv()
	env.ConfigPath = configPath
	require.NoError(t, runReplay(env, []string{scriptPath}))
	assert.Contains(t, stdout.String(), `"name": "todo"`)
	assert.Contains(t, stdout.String(), `"action": "add"`)

	env, stdout, _ = newTestEnv()
	env.ConfigPath = configPath
	require.NoError(t, runReplay(env, []string{scriptPath, "--format", "yaml"}))
	assert.Contains(t, stdout.String(), "name: todo")
	assert.Contains(t, stdout.String(), "action: add")
}

func TestRunReplay_Arguments(t *testing.T) {
	env, _, _ := newTestEnv()
	assert.ErrorContains(t, runReplay(env, nil), "requires a script path")
	assert.ErrorContains(t, runReplay(env, []string{"a.yaml", "b.yaml"}), "unexpected argument")
	assert.ErrorContains(t, runReplay(env, []string{"--bogus"}), "unknown flag")
	assert.ErrorContains(t, runReplay(env, []string{"a.yaml", "--format"}), "--format requires")
}

func TestRunReplay_MissingScript(t *testing.T) {
	defer observeerrors.SetHandler(observeerrors.Handler())

	dir := t.TempDir()
	configPath := filepath.Join(dir, "observe.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log:\n  level: error\n  format: json\n"), 0o644))

	env, _, _ := newTestEnv()
	env.ConfigPath = configPath
	err := runReplay(env, []string{filepath.Join(dir, "absent.yaml")})
	assert.True(t, errors.Is(err, observeerrors.ErrConfig))
}

type captureHandler struct {
	onError func(*observeerrors.ObserveError)
}

func (h *captureHandler) HandleError(err *observeerrors.ObserveError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *captureHandler) HandlePanic(*observeerrors.PanicError) {}
