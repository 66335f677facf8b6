package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

// run executes a fresh command tree against a mock backend whose state
// lives in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg := "backend:\n  mode: mock\n  mock_latency: 1ms\n" +
			"storage:\n  driver: file\n  path: " + filepath.Join(dir, "state.json") + "\n" +
			"logging:\n  level: error\n"
		require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	}

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", cfgPath, "--output", "table"}, args...))

	err := root.Execute()
	return out.String() + errOut.String(), err
}

func TestCLI_SessionAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "whoami")
	require.ErrorIs(t, err, errNotLoggedIn)

	out, err := run(t, dir, "login", "--email", "me@bokdeok.com", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as 복덕이유저 (2 scraps)")

	out, err = run(t, dir, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "me@bokdeok.com")

	out, err = run(t, dir, "scraps", "toggle", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Scrap 4 added (3 total)")

	out, err = run(t, dir, "scraps", "list")
	require.NoError(t, err)
	assert.Equal(t, "1\n3\n4\n", out)

	out, err = run(t, dir, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	_, err = run(t, dir, "scraps", "sync")
	require.ErrorIs(t, err, errNotLoggedIn)
}

func TestCLI_ToggleRequiresLogin(t *testing.T) {
	out, err := run(t, t.TempDir(), "scraps", "toggle", "1")
	require.Error(t, err)
	assert.Contains(t, out, "Login required.")
}

func TestCLI_EstatesJSON(t *testing.T) {
	out, err := run(t, t.TempDir(), "estates", "list", "--output", "json")
	require.NoError(t, err)

	var estates []domain.Estate
	require.NoError(t, json.Unmarshal([]byte(out), &estates))
	assert.Len(t, estates, 4)

	_, err = run(t, t.TempDir(), "estates", "get", "nope")
	require.Error(t, err)
}
