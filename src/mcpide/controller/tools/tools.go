// Package tools is the registry of tools exposed through tools/list and tools/call.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/ideconnect/mcp-ide/src/mcpide/controller/diffs"
	tooljobs "github.com/ideconnect/mcp-ide/src/mcpide/controller/tool-jobs"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	editorhost "github.com/ideconnect/mcp-ide/src/mcpide/gateway/editor-host"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/errors"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/workspace"
	"github.com/ideconnect/mcp-ide/src/mcpide/mapper"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey           = "tools"
	_configKeyPageSize = "tools.pageSize"
)

// Tool is a callable tool and its description.
type Tool struct {
	Definition entity.ToolDefinition
	Execute    tooljobs.Executor
}

// Controller holds the registered tools.
type Controller interface {
	// List returns one page of tool definitions in name order.
	List(ctx context.Context, cursor string) (*entity.ListToolsResult, error)
	// Get returns the executor of the named tool or an *errors.ToolNotFoundError.
	Get(name string) (tooljobs.Executor, error)
	// Register adds a tool. Names must be unique.
	Register(tool Tool) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Config    config.Provider
	Workspace workspace.Workspace
	Host      editorhost.Gateway
	Diffs     diffs.Controller
	Logger    *zap.SugaredLogger
}

type controller struct {
	workspace workspace.Workspace
	host      editorhost.Gateway
	diffs     diffs.Controller
	logger    *zap.SugaredLogger
	pageSize  int

	mu    sync.RWMutex
	tools map[string]Tool
}

// New creates the registry with the built-in tools.
func New(p Params) (Controller, error) {
	var pageSize int
	if err := p.Config.Get(_configKeyPageSize).Populate(&pageSize); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyPageSize, err)
	}
	if pageSize < 0 {
		return nil, fmt.Errorf("invalid %q: %d", _configKeyPageSize, pageSize)
	}

	c := &controller{
		workspace: p.Workspace,
		host:      p.Host,
		diffs:     p.Diffs,
		logger:    p.Logger.With("plugin", _nameKey),
		pageSize:  pageSize,
		tools:     make(map[string]Tool),
	}

	for _, t := range c.builtins() {
		if err := c.Register(t); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *controller) List(ctx context.Context, cursor string) (*entity.ListToolsResult, error) {
	offset, err := mapper.CursorToOffset(cursor)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defs := make([]entity.ToolDefinition, 0, len(c.tools))
	for _, t := range c.tools {
		defs = append(defs, t.Definition)
	}
	c.mu.RUnlock()
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })

	start, end, next := mapper.Page(len(defs), offset, c.pageSize)
	return &entity.ListToolsResult{Tools: defs[start:end], NextCursor: next}, nil
}

func (c *controller) Get(name string) (tooljobs.Executor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tools[name]
	if !ok {
		return nil, &errors.ToolNotFoundError{Name: name}
	}
	return t.Execute, nil
}

func (c *controller) Register(tool Tool) error {
	if tool.Definition.Name == "" || tool.Execute == nil {
		return errors.New("tool needs a name and an executor")
	}
	if !json.Valid(tool.Definition.InputSchema) {
		return fmt.Errorf("tool %q has an invalid input schema", tool.Definition.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tools[tool.Definition.Name]; ok {
		return fmt.Errorf("tool %q is already registered", tool.Definition.Name)
	}
	c.tools[tool.Definition.Name] = tool
	return nil
}
