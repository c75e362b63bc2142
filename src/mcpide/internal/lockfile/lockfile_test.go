package lockfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/errors"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/fs"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T, dir string) *store {
	return &store{
		dir:       dir,
		ideName:   "Test IDE",
		version:   "1.2.3",
		logger:    zap.NewNop().Sugar(),
		fs:        fs.New(),
		workspace: workspace.NewFromPaths("/repo"),
		alive:     processAlive,
		created:   make(map[string]struct{}),
	}
}

func newConfig(t *testing.T, yaml string) config.Provider {
	provider, err := config.NewYAML(config.Source(strings.NewReader(yaml)))
	require.NoError(t, err)
	return provider
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid",
			yaml: "lockfile:\n  dir: " + dir + "\n  ideName: Test IDE\nserver:\n  version: 1.0.0\n",
		},
		{
			name:    "missing ide name",
			yaml:    "lockfile:\n  dir: " + dir + "\n",
			wantErr: `missing field "lockfile.ideName" in config`,
		},
		{
			name:    "malformed dir",
			yaml:    "lockfile:\n  dir:\n    a: b\n  ideName: x\n",
			wantErr: `getting config field "lockfile.dir"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(Params{
				Config:    newConfig(t, tt.yaml),
				Lifecycle: fxtest.NewLifecycle(t),
				Logger:    zap.NewNop().Sugar(),
				FS:        fs.New(),
				Workspace: workspace.NewFromPaths("/repo"),
			})
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, dir, s.Dir())
		})
	}
}

func TestNewDefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	s, err := New(Params{
		Config:    newConfig(t, "lockfile:\n  ideName: Test IDE\n"),
		Lifecycle: fxtest.NewLifecycle(t),
		Logger:    zap.NewNop().Sugar(),
		FS:        fs.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".claude", "ide"), s.Dir())
}

func TestCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "ide")
	s := newTestStore(t, dir)

	path, err := s.Create(41234, "token-abc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "41234.lock"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, float64(os.Getpid()), record["pid"])
	assert.Equal(t, []interface{}{"/repo"}, record["workspaceFolders"])
	assert.Equal(t, "Test IDE", record["ideName"])
	assert.Equal(t, "ws", record["transport"])
	assert.Equal(t, runtime.GOOS == "windows", record["runningInWindows"])
	assert.Equal(t, "token-abc", record["authToken"])
	assert.Equal(t, float64(41234), record["port"])
	assert.Equal(t, "1.2.3", record["version"])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, FileMode, info.Mode().Perm())

		dirInfo, err := os.Stat(dir)
		require.NoError(t, err)
		assert.Equal(t, DirMode, dirInfo.Mode().Perm())
	}
}

func TestCreateOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)

	_, err := s.Create(5000, "first")
	require.NoError(t, err)
	path, err := s.Create(5000, "second")
	require.NoError(t, err)

	record, err := s.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "second", record.AuthToken)
}

func TestCreateDirectoryFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := newTestStore(t, filepath.Join(blocker, "ide"))
	_, err := s.Create(1, "t")
	assert.ErrorContains(t, err, "creating lock directory")
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)

	_, err := s.Read(filepath.Join(dir, "missing.lock"))
	var nf *errors.LockFileNotFoundError
	require.ErrorAs(t, err, &nf)

	bad := filepath.Join(dir, "bad.lock")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = s.Read(bad)
	assert.ErrorContains(t, err, "decoding lock file")

	path, err := s.CreateIn(dir, 7777, "tok")
	require.NoError(t, err)
	record, err := s.Read(path)
	require.NoError(t, err)
	assert.Equal(t, &entity.LockFile{
		PID:              os.Getpid(),
		WorkspaceFolders: []string{"/repo"},
		IDEName:          "Test IDE",
		Transport:        entity.TransportWebSocket,
		RunningInWindows: runtime.GOOS == "windows",
		AuthToken:        "tok",
		Port:             7777,
		Version:          "1.2.3",
	}, record)
}

func TestIsServerRunning(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	assert.True(t, s.IsServerRunning(&entity.LockFile{PID: os.Getpid()}))
	assert.False(t, s.IsServerRunning(&entity.LockFile{PID: 0}))
	assert.False(t, s.IsServerRunning(&entity.LockFile{PID: -1}))
	assert.False(t, s.IsServerRunning(nil))
}

func TestCleanStale(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)

	path, err := s.Create(6000, "tok")
	require.NoError(t, err)

	removed, err := s.CleanStale(path)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.FileExists(t, path)

	s.alive = func(int) bool { return false }
	removed, err = s.CleanStale(path)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoFileExists(t, path)

	_, err = s.CleanStale(path)
	var nf *errors.LockFileNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)

	_, err := s.Create(9000, "a")
	require.NoError(t, err)
	_, err = s.Create(8000, "b")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".9100.lock-123"), []byte("{"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "7000.lock"), []byte("garbage"), 0o600))

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, filepath.Join(dir, "7000.lock"), entries[0].Path)
	assert.Error(t, entries[0].Err)
	assert.Equal(t, 8000, entries[1].Record.Port)
	assert.True(t, entries[1].Running)
	assert.Equal(t, 9000, entries[2].Record.Port)

	empty := newTestStore(t, filepath.Join(dir, "absent"))
	entries, err = empty.List()
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOnStop(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)

	first, err := s.Create(1001, "a")
	require.NoError(t, err)
	second, err := s.Create(1002, "b")
	require.NoError(t, err)
	require.NoError(t, s.Remove(second))

	other := filepath.Join(dir, "2000.lock")
	require.NoError(t, os.WriteFile(other, []byte("{}"), 0o600))

	require.NoError(t, s.OnStop(context.Background()))
	assert.NoFileExists(t, first)
	assert.FileExists(t, other, "lock files of other servers are left alone")
	assert.NoError(t, s.OnStop(context.Background()))
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, fs.New(), zap.NewNop().Sugar())

	path, err := s.Create(3000, "tok")
	require.NoError(t, err)
	record, err := s.Read(path)
	require.NoError(t, err)
	assert.Empty(t, record.WorkspaceFolders)
	assert.Equal(t, dir, s.Dir())
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
