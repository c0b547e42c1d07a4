package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlassist/internal/cli/config"
	"github.com/leapstack-labs/sqlassist/internal/cli/testutil"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	root := NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"validate", "complete", "context", "parse", "schema", "rules", "dialects", "watch", "shell", "version", "completion"} {
		assert.Contains(t, names, want)
	}
	for _, flag := range []string{"config", "dialect", "schema", "variables", "output", "verbose", "driver", "dsn", "database-name"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_FlagsReachConfig(t *testing.T) {
	p := testutil.SetupTestProject(t)

	out, err := run(t, "SELECT id FROM users;", "--config", p.Config, "-o", "json", "--dialect", "postgres", "parse")
	require.NoError(t, err)

	cfg := config.GetCurrentConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, p.Schema, cfg.Schema, "schema from the file resolves next to it")

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, true, got["success"])
}

func TestRootCmd_LocalFlagsAreNotConfig(t *testing.T) {
	p := testutil.SetupTestProject(t)

	out, err := run(t, "", "--config", p.Config, "-o", "json", "schema", "show", "--database", "shop")
	require.NoError(t, err)
	assert.Contains(t, out, `"users"`)
	assert.NotContains(t, out, `"events"`)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlassist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialect: cobol\n"), 0600))

	_, err := run(t, "", "--config", path, "dialects")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRootCmd_Version(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlassist v"+Version)
}

func TestCompletionCommand(t *testing.T) {
	out, err := run(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlassist")

	_, err = run(t, "", "completion", "tcsh")
	require.Error(t, err)
}
