package mcpserver

import (
	"context"

	"github.com/ideconnect/mcp-ide/src/mcpide/mapper"
	"go.lsp.dev/jsonrpc2"
)

// ListTools returns one page of the registered tools.
func (r *jsonRPCRouter) ListTools(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToPaginatedParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.mcpserver.ListTools(ctx, params)
	if err != nil {
		return reply(ctx, nil, mapper.ToJSONRPCError(err))
	}

	return reply(ctx, result, nil)
}

// CallTool queues a tool call. The reply is sent once the tool finishes, which may be long after this returns.
func (r *jsonRPCRouter) CallTool(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	call, ok := req.(*jsonrpc2.Call)
	if !ok {
		return jsonrpc2.NewError(jsonrpc2.InvalidRequest, "tools/call must be sent as a request")
	}

	params, err := mapper.RequestToCallToolParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	if err := r.mcpserver.CallTool(ctx, call.ID(), params, reply); err != nil {
		return reply(ctx, nil, mapper.ToJSONRPCError(err))
	}
	return nil
}
