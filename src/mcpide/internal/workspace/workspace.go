package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ideconnect/mcp-ide/src/mcpide/internal/fs"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _configKeyFolders = "workspace.folders"

// Module provides the workspace folders served by this process.
var Module = fx.Provide(New)

// Workspace describes the folders whose files the server exposes.
type Workspace interface {
	// Folders returns the workspace folders in configuration order.
	Folders() []protocol.WorkspaceFolder
	// Paths returns the absolute paths of the workspace folders.
	Paths() []string
	// Contains reports whether path is inside one of the workspace folders.
	Contains(path string) bool
	// Resolve makes path absolute, interpreting relative paths against the first folder.
	Resolve(path string) string
}

// Params are the parameters required to create a new Workspace.
type Params struct {
	fx.In

	Config config.Provider
	FS     fs.FS
	Logger *zap.SugaredLogger
}

type workspace struct {
	paths []string
}

// New creates a Workspace from the configured folders, falling back to the working directory.
func New(p Params) (Workspace, error) {
	var configured []string
	if err := p.Config.Get(_configKeyFolders).Populate(&configured); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyFolders, err)
	}

	w := &workspace{}
	for _, folder := range configured {
		if folder = strings.TrimSpace(folder); folder == "" {
			continue
		}
		abs, err := filepath.Abs(folder)
		if err != nil {
			return nil, fmt.Errorf("resolving workspace folder %q: %w", folder, err)
		}
		w.paths = append(w.paths, filepath.Clean(abs))
	}

	if len(w.paths) == 0 {
		wd, err := p.FS.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		w.paths = []string{filepath.Clean(wd)}
	}

	p.Logger.Infow("workspace folders", "folders", w.paths)
	return w, nil
}

// NewFromPaths creates a Workspace for already absolute folder paths.
func NewFromPaths(paths ...string) Workspace {
	w := &workspace{}
	for _, p := range paths {
		w.paths = append(w.paths, filepath.Clean(p))
	}
	return w
}

func (w *workspace) Folders() []protocol.WorkspaceFolder {
	folders := make([]protocol.WorkspaceFolder, 0, len(w.paths))
	for _, p := range w.paths {
		folders = append(folders, protocol.WorkspaceFolder{
			URI:  string(uri.File(p)),
			Name: filepath.Base(p),
		})
	}
	return folders
}

func (w *workspace) Paths() []string {
	return append([]string(nil), w.paths...)
}

func (w *workspace) Contains(path string) bool {
	path = filepath.Clean(w.Resolve(path))
	for _, root := range w.paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return true
		}
	}
	return false
}

func (w *workspace) Resolve(path string) string {
	if filepath.IsAbs(path) || len(w.paths) == 0 {
		return filepath.Clean(path)
	}
	return filepath.Join(w.paths[0], path)
}
