package mcpserver

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/jsonrpc"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Initialize negotiates the protocol version and stores the client's details in its session.
func (c *controller) Initialize(ctx context.Context, params *entity.InitializeParams) (*entity.InitializeResult, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf(_errGetSession, err)
	}

	version := negotiateVersion(params.ProtocolVersion)
	s.ProtocolVersion = version
	if params.ClientInfo != nil {
		s.ClientInfo = *params.ClientInfo
	}
	if len(params.Capabilities) > 0 {
		if s.Data == nil {
			s.Data = make(map[string]interface{})
		}
		s.Data[entity.SessionDataKeyCapabilities] = params.Capabilities
	}

	if err := c.sessions.Set(ctx, s); err != nil {
		return nil, fmt.Errorf(_errSetSession, err)
	}

	c.logger.Infow("session initialized",
		zap.Stringer("uuid", s.UUID),
		"client", s.ClientInfo.Name,
		"clientVersion", s.ClientInfo.Version,
		"requestedVersion", params.ProtocolVersion,
		"protocolVersion", version,
	)
	c.stats.Tagged(map[string]string{"protocol_version": version}).Counter("initialize").Inc(1)

	return &entity.InitializeResult{
		ProtocolVersion: version,
		Capabilities: entity.ServerCapabilities{
			Tools:     entity.ListChangedCapability{ListChanged: true},
			Resources: entity.ResourcesCapability{ListChanged: true, Subscribe: true},
		},
		ServerInfo: entity.Implementation{
			Name:    c.server.Name,
			Version: c.server.Version,
		},
		Instructions: c.server.Instructions,
	}, nil
}

// Initialized marks the session as ready for notifications.
func (c *controller) Initialized(ctx context.Context) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf(_errGetSession, err)
	}

	s.Initialized = true
	if err := c.sessions.Set(ctx, s); err != nil {
		return fmt.Errorf(_errSetSession, err)
	}
	return nil
}

// IDEConnected records the process id the client announced.
func (c *controller) IDEConnected(ctx context.Context, params *entity.IDEConnectedParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf(_errGetSession, err)
	}

	pid := 0
	if params.PID != nil {
		pid = *params.PID
		if s.Data == nil {
			s.Data = make(map[string]interface{})
		}
		s.Data[entity.SessionDataKeyIDEPid] = pid
		if err := c.sessions.Set(ctx, s); err != nil {
			return fmt.Errorf(_errSetSession, err)
		}
	}

	c.events.Emit(ctx, entity.IDEConnected{SessionUUID: s.UUID, PID: pid})
	return nil
}

// InitSession creates the session of a new connection and registers it for outbound messages.
func (c *controller) InitSession(ctx context.Context, id uuid.UUID, conn jsonrpc.Conn) error {
	if err := c.client.RegisterClient(ctx, id, conn); err != nil {
		return err
	}

	if _, err := c.sessions.GetOrCreate(ctx, id); err != nil {
		return err
	}
	return nil
}

// EndSession includes any cleanup at the end of the session, during or after the last JSON-RPC request.
func (c *controller) EndSession(ctx context.Context, id uuid.UUID) error {
	if n := c.queue.Abandon(ctx, id); n > 0 {
		c.logger.Infow("abandoned tool calls", zap.Stringer("uuid", id), "count", n)
	}
	c.diffs.Abandon(ctx, id)

	err := multierr.Append(c.client.DeregisterClient(ctx, id), c.sessions.Delete(ctx, id))
	if remaining, cerr := c.sessions.SessionCount(ctx); cerr == nil {
		c.logger.Infow("session ended", zap.Stringer("uuid", id), "remaining", remaining)
	}
	return err
}

// negotiateVersion accepts any supported version and answers anything else with the newest one.
func negotiateVersion(requested string) string {
	for _, v := range _supportedVersions {
		if v == requested {
			return v
		}
	}
	return _supportedVersions[0]
}
