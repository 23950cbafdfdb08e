package main

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"daydream/internal/config"
	"daydream/internal/narrative"
)

// execute runs the root command against a temp workspace.
func execute(t *testing.T, ws string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--workspace", ws}, args...))
	t.Cleanup(func() {
		workspace, configPath, verbose = "", "", false
		stateFormat, configForce = "yaml", false
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestStateDefaults(t *testing.T) {
	ws := t.TempDir()
	out, err := execute(t, ws, "state", "--format", "json")
	require.NoError(t, err)

	var got narrative.State
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	if diff := cmp.Diff(narrative.DefaultState(), got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestStateUnknownFormat(t *testing.T) {
	_, err := execute(t, t.TempDir(), "state", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestResetClearsState(t *testing.T) {
	ws := t.TempDir()
	workspace = ws
	env, err := boot()
	require.NoError(t, err)
	env.narrative.Login(narrative.Protagonist)
	require.NoError(t, env.shadows.Assign("Qterw-E-2884", narrative.Protagonist, narrative.ProtagonistTeam))
	env.close()
	workspace = ""

	out, err := execute(t, ws, "state")
	require.NoError(t, err)
	assert.Contains(t, out, "userName: "+narrative.Protagonist)

	out, err = execute(t, ws, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "state reset")

	out, err = execute(t, ws, "state", "--format", "json")
	require.NoError(t, err)
	var got narrative.State
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.IsLoggedIn)
	assert.Empty(t, got.UserName)

	workspace = ws
	env, err = boot()
	require.NoError(t, err)
	defer env.close()
	e, err := env.shadows.Get("Qterw-E-2884")
	require.NoError(t, err)
	assert.False(t, e.IsAssigned)
}

func TestShadowsCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(), "shadows")
	require.NoError(t, err)
	assert.Contains(t, out, "Qterw-E-63")
	assert.Contains(t, out, "박민성")
}

func TestConfigInitAndShow(t *testing.T) {
	ws := t.TempDir()
	out, err := execute(t, ws, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, config.DefaultPath(ws))
	_, err = os.Stat(config.DefaultPath(ws))
	require.NoError(t, err)

	_, err = execute(t, ws, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	out, err = execute(t, ws, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "security_delay: 30s")
	assert.Contains(t, out, "driver: sqlite")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "daydream "+version+"\n", out)
}

func TestMain(m *testing.M) {
	logger = zap.NewNop()
	os.Exit(m.Run())
}
