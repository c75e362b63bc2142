// Package mcpserver implements the MCP JSON-RPC handlers served over the WebSocket transport.
package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	controller "github.com/ideconnect/mcp-ide/src/mcpide/controller/mcp-server"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/clock"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/jsonrpc"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/websocketfx"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _configKeyJSONRPC = "jsonrpc"

// Handler represents the mcp-server's connection handling.
type Handler = websocketfx.ConnectionManager

// Params define values to be used by Handler.
type Params struct {
	fx.In

	Controller controller.Controller
	WebSocket  websocketfx.WebSocketModule
	Config     config.Provider
	Clock      clock.Clock
	Logger     *zap.SugaredLogger
	Stats      tally.Scope
}

type dispatcherSettings struct {
	RequestTimeoutSeconds int `yaml:"requestTimeoutSeconds"`
	SweepSeconds          int `yaml:"sweepSeconds"`
	MaxPending            int `yaml:"maxPending"`
}

type jsonRPCConnectionManager struct {
	ctrl   controller.Controller
	opts   []jsonrpc.Option
	logger *zap.SugaredLogger
	stats  tally.Scope
}

// New constructs a new mcp-server Handler and registers it with the WebSocket module.
func New(p Params) (Handler, error) {
	s := dispatcherSettings{}
	if err := p.Config.Get(_configKeyJSONRPC).Populate(&s); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyJSONRPC, err)
	}

	opts := []jsonrpc.Option{
		jsonrpc.WithLogger(p.Logger),
		jsonrpc.WithClock(p.Clock),
	}
	if s.RequestTimeoutSeconds > 0 {
		opts = append(opts, jsonrpc.WithRequestTimeout(time.Duration(s.RequestTimeoutSeconds)*time.Second))
	}
	if s.SweepSeconds > 0 {
		opts = append(opts, jsonrpc.WithSweepInterval(time.Duration(s.SweepSeconds)*time.Second))
	}
	if s.MaxPending > 0 {
		opts = append(opts, jsonrpc.WithMaxPending(s.MaxPending))
	}

	c := &jsonRPCConnectionManager{
		ctrl:   p.Controller,
		opts:   opts,
		logger: p.Logger,
		stats:  p.Stats.SubScope("json_rpc"),
	}
	if err := p.WebSocket.RegisterConnectionManager(c); err != nil {
		return nil, err
	}
	return c, nil
}

// NewConnection creates the dispatcher and session of a new connection and returns a router that includes its UUID.
func (c *jsonRPCConnectionManager) NewConnection(ctx context.Context, id uuid.UUID, sender jsonrpc.Sender) (websocketfx.Router, error) {
	r := &jsonRPCRouter{
		mcpserver: c.ctrl,
		uuid:      id,
		stats:     c.stats,
	}
	r.dispatcher = jsonrpc.New(sender, r.HandleReq, c.opts...)

	if err := c.ctrl.InitSession(ctx, id, r.dispatcher); err != nil {
		r.dispatcher.Close()
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}
	return r, nil
}

// RemoveConnection cleans up a closed connection.
func (c *jsonRPCConnectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	ctx = context.WithValue(ctx, entity.SessionContextKey, id)
	if err := c.ctrl.EndSession(ctx, id); err != nil {
		c.logger.Warnw("ending session", zap.Stringer("uuid", id), zap.Error(err))
	}
}
