// Package lockfile publishes the discovery record of a running server.
// Each listening server writes <dir>/<port>.lock, readable only by its owner since it carries the auth token.
package lockfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/errors"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/fs"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/workspace"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	_configKeyDir     = "lockfile.dir"
	_configKeyIDEName = "lockfile.ideName"
	_configKeyVersion = "server.version"

	_defaultDir = ".claude/ide"
	_suffix     = ".lock"

	// FileMode is the permission of every lock file.
	FileMode os.FileMode = 0o600
	// DirMode is the permission of a lock directory created by the store.
	DirMode os.FileMode = 0o700

	_errCreateDir = "creating lock directory %q: %w"
	_errWrite     = "writing lock file %q: %w"
)

// Module provides the lock file Store.
var Module = fx.Provide(New)

// Store manages lock files in a single directory.
type Store interface {
	// Create writes the lock file for a server listening on port and returns its path.
	Create(port int, authToken string) (string, error)
	// CreateIn is Create for an explicit directory.
	CreateIn(dir string, port int, authToken string) (string, error)
	Remove(path string) error
	Read(path string) (*entity.LockFile, error)
	// IsServerRunning reports whether the process that wrote record is still alive.
	IsServerRunning(record *entity.LockFile) bool
	// CleanStale removes the lock file at path when its process is gone. It reports whether the file was removed.
	CleanStale(path string) (bool, error)
	// List returns every lock file in the store directory, sorted by port.
	List() ([]Entry, error)
	Dir() string
}

// Entry is one lock file found by List.
type Entry struct {
	Path    string
	Record  *entity.LockFile
	Running bool
	Err     error
}

// Params define values to be used by Store.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
	FS        fs.FS
	Workspace workspace.Workspace
}

type store struct {
	dir       string
	ideName   string
	version   string
	logger    *zap.SugaredLogger
	fs        fs.FS
	workspace workspace.Workspace
	alive     func(pid int) bool

	mu      sync.Mutex
	created map[string]struct{}
}

// New creates the Store configured for this process. Lock files it creates are removed on stop.
func New(p Params) (Store, error) {
	s := &store{
		logger:    p.Logger,
		fs:        p.FS,
		workspace: p.Workspace,
		alive:     processAlive,
		created:   make(map[string]struct{}),
	}

	if err := s.processConfig(p.Config); err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: s.OnStop,
	})

	return s, nil
}

// NewStore creates a Store over dir without lifecycle hooks, for tooling that only inspects lock files.
func NewStore(dir string, fileSystem fs.FS, logger *zap.SugaredLogger) Store {
	return &store{
		dir:     dir,
		logger:  logger,
		fs:      fileSystem,
		alive:   processAlive,
		created: make(map[string]struct{}),
	}
}

// DefaultDir returns the lock directory used when none is configured.
func DefaultDir(fileSystem fs.FS) (string, error) {
	home, err := fileSystem.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, _defaultDir), nil
}

// OnStop removes every lock file created by this store.
func (s *store) OnStop(ctx context.Context) error {
	s.mu.Lock()
	paths := make([]string, 0, len(s.created))
	for p := range s.created {
		paths = append(paths, p)
	}
	s.mu.Unlock()

	var err error
	for _, p := range paths {
		err = multierr.Append(err, s.Remove(p))
	}
	return err
}

func (s *store) Dir() string {
	return s.dir
}

func (s *store) Create(port int, authToken string) (string, error) {
	return s.CreateIn(s.dir, port, authToken)
}

func (s *store) CreateIn(dir string, port int, authToken string) (string, error) {
	if err := s.fs.MkdirAll(dir, DirMode); err != nil {
		return "", fmt.Errorf(_errCreateDir, dir, err)
	}

	record := entity.LockFile{
		PID:              os.Getpid(),
		WorkspaceFolders: []string{},
		IDEName:          s.ideName,
		Transport:        entity.TransportWebSocket,
		RunningInWindows: runtime.GOOS == "windows",
		AuthToken:        authToken,
		Port:             port,
		Version:          s.version,
	}
	if s.workspace != nil {
		record.WorkspaceFolders = s.workspace.Paths()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encoding lock file: %w", err)
	}

	path := filepath.Join(dir, strconv.Itoa(port)+_suffix)
	if err := s.writeAtomic(dir, path, data); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.created[path] = struct{}{}
	s.mu.Unlock()

	s.logger.Infow("lock file created", zap.String("path", path), zap.Int("port", port))
	return path, nil
}

// writeAtomic writes data next to path and renames it into place, so readers never observe partial JSON
// or a file with wider permissions than FileMode.
func (s *store) writeAtomic(dir string, path string, data []byte) (err error) {
	tmp, err := s.fs.TempFile(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf(_errWrite, path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			s.fs.Remove(tmpName)
		}
	}()

	if err = s.fs.Chmod(tmpName, FileMode); err != nil {
		tmp.Close()
		return fmt.Errorf(_errWrite, path, err)
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf(_errWrite, path, err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf(_errWrite, path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf(_errWrite, path, err)
	}
	if err = s.fs.Rename(tmpName, path); err != nil {
		return fmt.Errorf(_errWrite, path, err)
	}
	return nil
}

func (s *store) Remove(path string) error {
	s.mu.Lock()
	delete(s.created, path)
	s.mu.Unlock()

	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing lock file %q: %w", path, err)
	}
	s.logger.Infow("lock file removed", zap.String("path", path))
	return nil
}

func (s *store) Read(path string) (*entity.LockFile, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.LockFileNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("reading lock file %q: %w", path, err)
	}

	var record entity.LockFile
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding lock file %q: %w", path, err)
	}
	return &record, nil
}

func (s *store) IsServerRunning(record *entity.LockFile) bool {
	if record == nil {
		return false
	}
	return s.alive(record.PID)
}

func (s *store) CleanStale(path string) (bool, error) {
	record, err := s.Read(path)
	if err != nil {
		return false, err
	}
	if s.IsServerRunning(record) {
		return false, nil
	}
	if err := s.Remove(path); err != nil {
		return false, err
	}
	s.logger.Infow("removed stale lock file", zap.String("path", path), zap.Int("pid", record.PID))
	return true, nil
}

func (s *store) List() ([]Entry, error) {
	entries, err := s.fs.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing lock directory %q: %w", s.dir, err)
	}

	var found []Entry
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), _suffix) || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		record, err := s.Read(path)
		entry := Entry{Path: path, Record: record, Err: err}
		if err == nil {
			entry.Running = s.IsServerRunning(record)
		}
		found = append(found, entry)
	}

	sort.Slice(found, func(i, j int) bool {
		return portOf(found[i]) < portOf(found[j])
	})
	return found, nil
}

func portOf(e Entry) int {
	if e.Record != nil {
		return e.Record.Port
	}
	port, _ := strconv.Atoi(strings.TrimSuffix(filepath.Base(e.Path), _suffix))
	return port
}

func (s *store) processConfig(cfg config.Provider) error {
	if err := cfg.Get(_configKeyDir).Populate(&s.dir); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyDir, err)
	}
	if s.dir == "" {
		dir, err := DefaultDir(s.fs)
		if err != nil {
			return err
		}
		s.dir = dir
	}

	if err := cfg.Get(_configKeyIDEName).Populate(&s.ideName); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyIDEName, err)
	}
	if s.ideName == "" {
		return fmt.Errorf("missing field %q in config", _configKeyIDEName)
	}

	if err := cfg.Get(_configKeyVersion).Populate(&s.version); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyVersion, err)
	}
	return nil
}
