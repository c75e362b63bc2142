package mcpclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/jsonrpc"
	"github.com/ideconnect/mcp-ide/src/mcpide/mapper"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

const _errSendToClient = "sending call/notification to MCP client: %w"

// Gateway is used to send outbound notifications and calls to MCP clients.
// All calls to the gateway should include a context with a session UUID, which will be used to route outbound calls and notifications to the correct connection.
type Gateway interface {
	// RegisterClient registers a new client with the gateway. Should be called each time a new connection completes its handshake.
	RegisterClient(ctx context.Context, id uuid.UUID, conn jsonrpc.Conn) error
	// DeregisterClient removes a client from the gateway. Should be called each time a connection is closed.
	DeregisterClient(ctx context.Context, id uuid.UUID) error
	// Clients returns the ids of every registered client.
	Clients() []uuid.UUID

	Notify(ctx context.Context, method string, params interface{}) error
	Request(ctx context.Context, method string, params interface{}, result interface{}) error

	StartProgress(ctx context.Context, token protocol.ProgressToken, message string) error
	UpdateProgress(ctx context.Context, token protocol.ProgressToken, progress float64, message string) error
	CompleteProgress(ctx context.Context, token protocol.ProgressToken, message string) error

	ResourcesListChanged(ctx context.Context) error
	ResourceUpdated(ctx context.Context, uri string) error
}

type gateway struct {
	connections map[uuid.UUID]jsonrpc.Conn
	clientsMu   sync.Mutex
	logger      *zap.Logger
}

// New returns a Gateway for sending MCP notifications and calls.
func New(logger *zap.Logger) Gateway {
	return &gateway{
		connections: make(map[uuid.UUID]jsonrpc.Conn),
		logger:      logger,
	}
}

func (g *gateway) RegisterClient(ctx context.Context, id uuid.UUID, conn jsonrpc.Conn) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	g.connections[id] = conn
	return nil
}

func (g *gateway) DeregisterClient(ctx context.Context, id uuid.UUID) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	delete(g.connections, id)
	return nil
}

func (g *gateway) Clients() []uuid.UUID {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	ids := make([]uuid.UUID, 0, len(g.connections))
	for id := range g.connections {
		ids = append(ids, id)
	}
	return ids
}

func (g *gateway) Notify(ctx context.Context, method string, params interface{}) error {
	c, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	return c.Notify(ctx, method, params)
}

func (g *gateway) Request(ctx context.Context, method string, params interface{}, result interface{}) error {
	c, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	return c.Request(ctx, method, params, result)
}

func (g *gateway) StartProgress(ctx context.Context, token protocol.ProgressToken, message string) error {
	c, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	return c.StartProgress(ctx, token, message)
}

func (g *gateway) UpdateProgress(ctx context.Context, token protocol.ProgressToken, progress float64, message string) error {
	c, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	return c.UpdateProgress(ctx, token, progress, message)
}

func (g *gateway) CompleteProgress(ctx context.Context, token protocol.ProgressToken, message string) error {
	c, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	return c.CompleteProgress(ctx, token, message)
}

func (g *gateway) ResourcesListChanged(ctx context.Context) error {
	return g.Notify(ctx, entity.MethodResourcesListChanged, struct{}{})
}

func (g *gateway) ResourceUpdated(ctx context.Context, uri string) error {
	return g.Notify(ctx, entity.MethodResourcesUpdated, &entity.ResourceUpdatedParams{URI: uri})
}

func (g *gateway) getClient(ctx context.Context) (jsonrpc.Conn, error) {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}

	conn, ok := g.connections[id]
	if !ok {
		return nil, fmt.Errorf("client with id %q not found", id)
	}
	return conn, nil
}
