package mcpserver

import (
	"context"

	"github.com/gofrs/uuid"
	controller "github.com/ideconnect/mcp-ide/src/mcpide/controller/mcp-server"
	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/jsonrpc"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
)

type jsonRPCRouter struct {
	mcpserver  controller.Controller
	dispatcher *jsonrpc.Dispatcher
	uuid       uuid.UUID
	stats      tally.Scope
}

// HandleMessage passes one text message of the connection to its dispatcher.
func (r *jsonRPCRouter) HandleMessage(ctx context.Context, payload []byte) {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)
	r.dispatcher.Handle(ctx, payload)
}

// Close rejects the requests still waiting on the client.
func (r *jsonRPCRouter) Close() {
	r.dispatcher.Close()
}

// HandleReq handles routing for a single request.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)

	switch req.Method() {
	// Lifecycle related methods.
	case entity.MethodInitialize:
		r.count(req)
		return r.Initialize(ctx, reply, req)

	case entity.MethodInitialized:
		r.count(req)
		return r.Initialized(ctx, reply, req)

	case entity.MethodPing:
		r.count(req)
		return r.Ping(ctx, reply, req)

	case entity.MethodIDEConnected:
		r.count(req)
		return r.IDEConnected(ctx, reply, req)

	// Tool related methods.
	case entity.MethodToolsList:
		r.count(req)
		return r.ListTools(ctx, reply, req)

	case entity.MethodToolsCall:
		r.count(req)
		return r.CallTool(ctx, reply, req)

	// Resource related methods.
	case entity.MethodResourcesList:
		r.count(req)
		return r.ListResources(ctx, reply, req)

	case entity.MethodResourcesRead:
		r.count(req)
		return r.ReadResource(ctx, reply, req)

	case entity.MethodResourcesSubscribe:
		r.count(req)
		return r.Subscribe(ctx, reply, req)

	case entity.MethodResourcesUnsubscribe:
		r.count(req)
		return r.Unsubscribe(ctx, reply, req)
	}

	r.stats.Counter("unknown_method").Inc(1)
	return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
}

// UUID returns the UUID of the connection served by this router.
func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}

func (r *jsonRPCRouter) count(req jsonrpc2.Request) {
	r.stats.Tagged(map[string]string{"method": req.Method()}).Counter("requests").Inc(1)
}
