package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnv() (*Env, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Env{Stdout: &stdout, Stderr: &stderr}, &stdout, &stderr
}

func TestExecute_Help(t *testing.T) {
	for _, args := range [][]string{nil, {"help"}, {"--help"}, {"-h"}} {
		env, stdout, _ := newTestEnv()
		require.NoError(t, execute(env, args))
		assert.Contains(t, stdout.String(), "Commands:")
		assert.Contains(t, stdout.String(), "replay")
	}
}

func TestExecute_Version(t *testing.T) {
	for _, args := range [][]string{{"-v"}, {"--version"}, {"version"}} {
		env, stdout, _ := newTestEnv()
		require.NoError(t, execute(env, args))
		assert.Contains(t, stdout.String(), "observe version "+Version)
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	env, _, stderr := newTestEnv()
	err := execute(env, []string{"frobnicate"})
	assert.ErrorContains(t, err, "unknown command")
	assert.Contains(t, stderr.String(), `unknown command "frobnicate"`)
}

func TestExecute_SubcommandHelp(t *testing.T) {
	env, stdout, _ := newTestEnv()
	require.NoError(t, execute(env, []string{"replay", "--help"}))
	assert.Contains(t, stdout.String(), "observe replay <script.yaml>")
}

func TestExecute_ConfigFlag(t *testing.T) {
	env, _, _ := newTestEnv()
	err := execute(env, []string{"--config"})
	assert.ErrorContains(t, err, "--config requires")

	env, _, _ = newTestEnv()
	require.NoError(t, execute(env, []string{"--config=custom.yaml", "version"}))
	assert.Equal(t, "custom.yaml", env.ConfigPath)
}

func TestExecute_ConfigFromEnv(t *testing.T) {
	t.Setenv("OBSERVE_CONFIG", "from-env.yaml")
	env, _, _ := newTestEnv()
	require.NoError(t, execute(env, []string{"version"}))
	assert.Equal(t, "from-env.yaml", env.ConfigPath)
}
