package mcpserver

import (
	"context"

	"github.com/ideconnect/mcp-ide/src/mcpide/mapper"
	"go.lsp.dev/jsonrpc2"
)

// Initialize extracts entity.InitializeParams from the request and negotiates the session with the client.
func (r *jsonRPCRouter) Initialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToInitializeParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.mcpserver.Initialize(ctx, params)
	if err != nil {
		return reply(ctx, nil, mapper.ToJSONRPCError(err))
	}

	return reply(ctx, result, nil)
}

// Initialized is sent after the client received the result of initialize. It is a notification, so nothing is sent back.
func (r *jsonRPCRouter) Initialized(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.mcpserver.Initialized(ctx)
	return reply(ctx, nil, err)
}

// Ping answers with an empty object.
func (r *jsonRPCRouter) Ping(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	return reply(ctx, struct{}{}, nil)
}

// IDEConnected records the process id announced by the client.
func (r *jsonRPCRouter) IDEConnected(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToIDEConnectedParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.mcpserver.IDEConnected(ctx, params)
	return reply(ctx, nil, err)
}
