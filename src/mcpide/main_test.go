package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/fs"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/lockfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func TestDependenciesAreSatisfied(t *testing.T) {
	assert.NoError(t, fx.ValidateApp(opts()))
}

func newTestStore(t *testing.T) (lockfile.Store, string) {
	dir := t.TempDir()
	store := lockfile.NewStore(dir, fs.New(), zap.NewNop().Sugar())

	_, err := store.Create(4100, "secret-token")
	require.NoError(t, err)

	stale, err := json.Marshal(entity.LockFile{PID: 999999999, Port: 4200, IDEName: "old", Transport: entity.TransportWebSocket, AuthToken: "stale-token"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "4200.lock"), stale, lockfile.FileMode))

	return store, dir
}

func TestListServers(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		store, _ := newTestStore(t)
		var out bytes.Buffer
		require.NoError(t, listServers(&out, store, false, "json"))

		var rows []serverRow
		require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, 4100, rows[0].Port)
		assert.True(t, rows[0].Running)
		assert.Equal(t, 4200, rows[1].Port)
		assert.False(t, rows[1].Running)
		assert.NotContains(t, out.String(), "token")
	})

	t.Run("yaml", func(t *testing.T) {
		store, _ := newTestStore(t)
		var out bytes.Buffer
		require.NoError(t, listServers(&out, store, false, "yaml"))

		var rows []serverRow
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &rows))
		assert.Len(t, rows, 2)
		assert.NotContains(t, out.String(), "token")
	})

	t.Run("table", func(t *testing.T) {
		store, _ := newTestStore(t)
		var out bytes.Buffer
		require.NoError(t, listServers(&out, store, false, "table"))

		assert.Contains(t, out.String(), "PORT")
		assert.Contains(t, out.String(), "running")
		assert.Contains(t, out.String(), "stale")
	})

	t.Run("clean removes stale lock files", func(t *testing.T) {
		store, dir := newTestStore(t)
		var out bytes.Buffer
		require.NoError(t, listServers(&out, store, true, "json"))

		var rows []serverRow
		require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, 4100, rows[0].Port)

		_, err := os.Stat(filepath.Join(dir, "4200.lock"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("unknown format", func(t *testing.T) {
		store, _ := newTestStore(t)
		assert.ErrorContains(t, listServers(&bytes.Buffer{}, store, false, "xml"), "unknown output format")
	})
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	names := []string{}
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "servers"}, names)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"servers", "--dir", t.TempDir(), "-o", "json"})
	require.NoError(t, cmd.Execute())
	assert.JSONEq(t, "[]", out.String())
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
