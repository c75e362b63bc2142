// Package mcpserver implements the mcp-server business logic.
package mcpserver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/ideconnect/mcp-ide/src/mcpide/controller/diffs"
	"github.com/ideconnect/mcp-ide/src/mcpide/controller/resources"
	toolcache "github.com/ideconnect/mcp-ide/src/mcpide/controller/tool-cache"
	tooljobs "github.com/ideconnect/mcp-ide/src/mcpide/controller/tool-jobs"
	"github.com/ideconnect/mcp-ide/src/mcpide/controller/tools"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	mcpclient "github.com/ideconnect/mcp-ide/src/mcpide/gateway/mcp-client"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/clock"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/events"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/jsonrpc"
	"github.com/ideconnect/mcp-ide/src/mcpide/repository/session"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey = "mcp_server"

	// Configuration keys
	_serverKey   = "server"
	_sessionsKey = "sessions"

	_defaultRetentionHours = 24
	_defaultSweepMinutes   = 60

	// Error templates
	_errGetSession = "getting session from context: %w"
	_errSetSession = "setting updated session state: %w"
)

// Supported protocol versions, newest first.
var _supportedVersions = []string{"2025-06-18", "2025-03-26", "2024-11-05"}

// Controller orchestrates the business logic for each request.
type Controller interface {
	// MCP methods defined per protocol.
	Initialize(ctx context.Context, params *entity.InitializeParams) (*entity.InitializeResult, error)
	Initialized(ctx context.Context) error
	IDEConnected(ctx context.Context, params *entity.IDEConnectedParams) error

	ListTools(ctx context.Context, params *entity.PaginatedParams) (*entity.ListToolsResult, error)
	// CallTool validates the call and queues it. reply is called once the tool finishes, possibly after CallTool returns.
	CallTool(ctx context.Context, id jsonrpc2.ID, params *entity.CallToolParams, reply jsonrpc2.Replier) error

	ListResources(ctx context.Context, params *entity.PaginatedParams) (*entity.ListResourcesResult, error)
	ReadResource(ctx context.Context, params *entity.ResourceParams) (*entity.ReadResourceResult, error)
	Subscribe(ctx context.Context, params *entity.ResourceParams) error
	Unsubscribe(ctx context.Context, params *entity.ResourceParams) error

	// Custom methods for use within this service.
	InitSession(ctx context.Context, id uuid.UUID, conn jsonrpc.Conn) error
	EndSession(ctx context.Context, id uuid.UUID) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Provider
	Sessions  session.Repository
	Client    mcpclient.Gateway
	Tools     tools.Controller
	Queue     tooljobs.Queue
	Cache     toolcache.Cache
	Resources resources.Controller
	Diffs     diffs.Controller
	Events    events.Bus
	Clock     clock.Clock
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

type serverSettings struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	Instructions string `yaml:"instructions"`
}

type sessionSettings struct {
	RetentionHours int `yaml:"retentionHours"`
	SweepMinutes   int `yaml:"sweepMinutes"`
}

type controller struct {
	sessions  session.Repository
	client    mcpclient.Gateway
	tools     tools.Controller
	queue     tooljobs.Queue
	cache     toolcache.Cache
	resources resources.Controller
	diffs     diffs.Controller
	events    events.Bus
	clock     clock.Clock
	logger    *zap.SugaredLogger
	stats     tally.Scope

	server    serverSettings
	retention time.Duration
	sweep     time.Duration

	stop chan struct{}
	wg   sync.WaitGroup
}

// New constructs a new top-level controller for the service.
func New(p Params) (Controller, error) {
	server := serverSettings{}
	if err := p.Config.Get(_serverKey).Populate(&server); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _serverKey, err)
	}
	if server.Name == "" || server.Version == "" {
		return nil, fmt.Errorf("config field %q must set name and version", _serverKey)
	}

	sessions := sessionSettings{}
	if err := p.Config.Get(_sessionsKey).Populate(&sessions); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _sessionsKey, err)
	}
	if sessions.RetentionHours <= 0 {
		sessions.RetentionHours = _defaultRetentionHours
	}
	if sessions.SweepMinutes <= 0 {
		sessions.SweepMinutes = _defaultSweepMinutes
	}

	c := &controller{
		sessions:  p.Sessions,
		client:    p.Client,
		tools:     p.Tools,
		queue:     p.Queue,
		cache:     p.Cache,
		resources: p.Resources,
		diffs:     p.Diffs,
		events:    p.Events,
		clock:     p.Clock,
		logger:    p.Logger.With("plugin", _nameKey),
		stats:     p.Stats.SubScope(_nameKey),
		server:    server,
		retention: time.Duration(sessions.RetentionHours) * time.Hour,
		sweep:     time.Duration(sessions.SweepMinutes) * time.Minute,
		stop:      make(chan struct{}),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			c.wg.Add(1)
			go c.sweepSessions()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(c.stop)
			c.wg.Wait()
			return nil
		},
	})

	return c, nil
}

// sweepSessions drops sessions idle for longer than the retention window, along with expired cached tool results.
// Sessions of connected clients are never dropped.
func (c *controller) sweepSessions() {
	defer c.wg.Done()

	ticker := c.clock.NewTicker(c.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C():
			c.sweepOnce(context.Background())
		case <-c.stop:
			return
		}
	}
}

func (c *controller) sweepOnce(ctx context.Context) {
	c.cache.Purge()

	expired, err := c.sessions.Sweep(ctx, c.clock.Now().Add(-c.retention), c.client.Clients())
	if err != nil {
		c.logger.Warnf("sweeping sessions: %v", err)
		return
	}
	for _, id := range expired {
		c.logger.Infow("session expired", zap.Stringer("uuid", id))
	}
}
