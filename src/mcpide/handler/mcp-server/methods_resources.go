package mcpserver

import (
	"context"

	"github.com/ideconnect/mcp-ide/src/mcpide/mapper"
	"go.lsp.dev/jsonrpc2"
)

// ListResources returns one page of workspace files.
func (r *jsonRPCRouter) ListResources(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToPaginatedParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.mcpserver.ListResources(ctx, params)
	if err != nil {
		return reply(ctx, nil, mapper.ToJSONRPCError(err))
	}

	return reply(ctx, result, nil)
}

// ReadResource returns the contents of one workspace file.
func (r *jsonRPCRouter) ReadResource(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToResourceParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.mcpserver.ReadResource(ctx, params)
	if err != nil {
		return reply(ctx, nil, mapper.ToJSONRPCError(err))
	}

	return reply(ctx, result, nil)
}

// Subscribe asks for notifications/resources/updated about one file.
func (r *jsonRPCRouter) Subscribe(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToResourceParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.mcpserver.Subscribe(ctx, params)
	return reply(ctx, nil, mapper.ToJSONRPCError(err))
}

// Unsubscribe stops notifications about one file.
func (r *jsonRPCRouter) Unsubscribe(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToResourceParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.mcpserver.Unsubscribe(ctx, params)
	return reply(ctx, nil, mapper.ToJSONRPCError(err))
}
