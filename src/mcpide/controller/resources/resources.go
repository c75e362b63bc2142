// Package resources exposes the files of the workspace folders as MCP resources.
package resources

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	mcpclient "github.com/ideconnect/mcp-ide/src/mcpide/gateway/mcp-client"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/errors"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/fs"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/workspace"
	"github.com/ideconnect/mcp-ide/src/mcpide/mapper"
	"github.com/ideconnect/mcp-ide/src/mcpide/repository/session"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey = "resources"

	_configKeyPageSize = "resources.pageSize"
	_configKeyMaxFiles = "resources.maxFiles"
	_configKeyMaxBytes = "resources.maxBytes"
	_configKeyWatch    = "resources.watch"

	_defaultMaxFiles = 1000
	_defaultMaxBytes = 1 << 20
)

var _skippedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"bazel-out":    true,
}

// Controller lists, reads and tracks subscriptions to workspace files.
type Controller interface {
	// List returns one page of the files under the workspace folders.
	List(ctx context.Context, cursor string) (*entity.ListResourcesResult, error)
	// Read returns the contents of a single file resource.
	Read(ctx context.Context, resourceURI string) (*entity.ReadResourceResult, error)
	// Subscribe records that the session in ctx wants notifications/resources/updated for resourceURI.
	Subscribe(ctx context.Context, resourceURI string) error
	// Unsubscribe removes a subscription. Unknown subscriptions are ignored.
	Unsubscribe(ctx context.Context, resourceURI string) error
	// FileChanged notifies sessions about a change to path. created is true when files were added or removed,
	// which also changes the resource list.
	FileChanged(ctx context.Context, path string, created bool) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Provider
	Workspace workspace.Workspace
	FS        fs.FS
	Sessions  session.Repository
	Client    mcpclient.Gateway
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

type settings struct {
	PageSize int  `yaml:"pageSize"`
	MaxFiles int  `yaml:"maxFiles"`
	MaxBytes int  `yaml:"maxBytes"`
	Watch    bool `yaml:"watch"`
}

type controller struct {
	workspace workspace.Workspace
	fs        fs.FS
	sessions  session.Repository
	client    mcpclient.Gateway
	logger    *zap.SugaredLogger
	stats     tally.Scope
	settings  settings
	watcher   *watcher
}

// New creates the resources controller and, when enabled, starts watching the workspace folders.
func New(p Params) (Controller, error) {
	s := settings{}
	for key, dst := range map[string]interface{}{
		_configKeyPageSize: &s.PageSize,
		_configKeyMaxFiles: &s.MaxFiles,
		_configKeyMaxBytes: &s.MaxBytes,
		_configKeyWatch:    &s.Watch,
	} {
		if err := p.Config.Get(key).Populate(dst); err != nil {
			return nil, fmt.Errorf("getting config field %q: %w", key, err)
		}
	}
	if s.PageSize < 0 {
		return nil, fmt.Errorf("invalid %q: %d", _configKeyPageSize, s.PageSize)
	}
	if s.MaxFiles <= 0 {
		s.MaxFiles = _defaultMaxFiles
	}
	if s.MaxBytes <= 0 {
		s.MaxBytes = _defaultMaxBytes
	}

	c := &controller{
		workspace: p.Workspace,
		fs:        p.FS,
		sessions:  p.Sessions,
		client:    p.Client,
		logger:    p.Logger.With("plugin", _nameKey),
		stats:     p.Stats.SubScope(_nameKey),
		settings:  s,
	}

	if s.Watch {
		c.watcher = newWatcher(c, c.fs.DirExists, c.logger)
		p.Lifecycle.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return c.watcher.start(c.watchedDirs())
			},
			OnStop: func(ctx context.Context) error {
				return c.watcher.stop()
			},
		})
	}

	return c, nil
}

func (c *controller) List(ctx context.Context, cursor string) (*entity.ListResourcesResult, error) {
	offset, err := mapper.CursorToOffset(cursor)
	if err != nil {
		return nil, err
	}

	all := c.collect()
	start, end, next := mapper.Page(len(all), offset, c.settings.PageSize)
	return &entity.ListResourcesResult{
		Resources:  all[start:end],
		NextCursor: next,
	}, nil
}

func (c *controller) Read(ctx context.Context, resourceURI string) (*entity.ReadResourceResult, error) {
	path, err := c.pathFromURI(resourceURI)
	if err != nil {
		return nil, err
	}

	info, err := c.fs.Stat(path)
	if err != nil || info.IsDir() {
		return nil, &errors.ResourceNotFoundError{URI: resourceURI}
	}
	if info.Size() > int64(c.settings.MaxBytes) {
		return nil, fmt.Errorf("resource %s is %d bytes, larger than the %d byte limit", resourceURI, info.Size(), c.settings.MaxBytes)
	}

	data, err := c.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.ResourceNotFoundError{URI: resourceURI}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c.stats.Counter("reads").Inc(1)

	contents := entity.ResourceContents{
		URI:      resourceURI,
		MimeType: mimeType(path, data),
	}
	if utf8.Valid(data) {
		contents.Text = string(data)
	} else {
		contents.Blob = base64.StdEncoding.EncodeToString(data)
	}
	return &entity.ReadResourceResult{Contents: []entity.ResourceContents{contents}}, nil
}

func (c *controller) Subscribe(ctx context.Context, resourceURI string) error {
	path, err := c.pathFromURI(resourceURI)
	if err != nil {
		return err
	}
	if exists, err := c.fs.FileExists(path); err != nil || !exists {
		return &errors.ResourceNotFoundError{URI: resourceURI}
	}

	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}
	if s.Subscriptions == nil {
		s.Subscriptions = make(map[string]bool)
	}
	s.Subscriptions[resourceURI] = true
	return c.sessions.Set(ctx, s)
}

func (c *controller) Unsubscribe(ctx context.Context, resourceURI string) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}
	if !s.Subscribed(resourceURI) {
		return nil
	}
	delete(s.Subscriptions, resourceURI)
	return c.sessions.Set(ctx, s)
}

func (c *controller) FileChanged(ctx context.Context, path string, created bool) error {
	if !c.workspace.Contains(path) {
		return nil
	}
	resourceURI := string(uri.File(path))

	sessions, err := c.sessions.All(ctx)
	if err != nil {
		return err
	}

	for _, s := range sessions {
		if !s.Initialized {
			continue
		}
		sessionCtx := context.WithValue(ctx, entity.SessionContextKey, s.UUID)

		if created {
			if err := c.client.ResourcesListChanged(sessionCtx); err != nil {
				c.logger.Debugw("notifying resource list change", zap.Stringer("uuid", s.UUID), zap.Error(err))
			}
		}
		if s.Subscribed(resourceURI) {
			c.stats.Counter("updates").Inc(1)
			if err := c.client.ResourceUpdated(sessionCtx, resourceURI); err != nil {
				c.logger.Debugw("notifying resource update", zap.Stringer("uuid", s.UUID), zap.Error(err))
			}
		}
	}
	return nil
}

// pathFromURI maps a file:// URI onto a path inside the workspace.
func (c *controller) pathFromURI(resourceURI string) (string, error) {
	if !strings.HasPrefix(resourceURI, uri.FileScheme+"://") {
		return "", &errors.ResourceNotFoundError{URI: resourceURI}
	}
	parsed, err := uri.Parse(resourceURI)
	if err != nil {
		return "", &errors.ResourceNotFoundError{URI: resourceURI}
	}
	path := filepath.Clean(parsed.Filename())
	if !c.workspace.Contains(path) {
		return "", &errors.ResourceNotFoundError{URI: resourceURI}
	}
	return path, nil
}

// collect walks the workspace folders in lexical order, stopping at the file limit.
func (c *controller) collect() []entity.Resource {
	var out []entity.Resource
	for _, root := range c.workspace.Paths() {
		c.walk(root, func(path string) bool {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = filepath.Base(path)
			}
			out = append(out, entity.Resource{
				URI:      string(uri.File(path)),
				Name:     filepath.ToSlash(rel),
				MimeType: mimeType(path, nil),
			})
			return len(out) < c.settings.MaxFiles
		}, nil)
		if len(out) >= c.settings.MaxFiles {
			break
		}
	}
	return out
}

func (c *controller) watchedDirs() []string {
	var dirs []string
	for _, root := range c.workspace.Paths() {
		dirs = append(dirs, root)
		c.walk(root, nil, func(dir string) {
			dirs = append(dirs, dir)
		})
	}
	return dirs
}

// walk visits files and directories below dir. Visiting stops once onFile returns false.
func (c *controller) walk(dir string, onFile func(path string) bool, onDir func(path string)) bool {
	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		c.logger.Debugw("reading directory", "dir", dir, zap.Error(err))
		return true
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			if _skippedDirs[name] {
				continue
			}
			if onDir != nil {
				onDir(path)
			}
			if !c.walk(path, onFile, onDir) {
				return false
			}
			continue
		}

		if onFile != nil && !onFile(path) {
			return false
		}
	}
	return true
}

// mimeType guesses by extension, falling back to content sniffing when data is available.
func mimeType(path string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	if data != nil {
		return mimetype.Detect(data).String()
	}
	return "text/plain"
}
