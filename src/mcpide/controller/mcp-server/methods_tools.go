package mcpserver

import (
	"context"

	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
	"github.com/ideconnect/mcp-ide/src/mcpide/mapper"
	"go.lsp.dev/jsonrpc2"
)

// ListTools returns one page of tool definitions.
func (c *controller) ListTools(ctx context.Context, params *entity.PaginatedParams) (*entity.ListToolsResult, error) {
	return c.tools.List(ctx, params.Cursor)
}

// CallTool resolves the tool and hands the call to the job queue.
// Unknown tools are reported immediately instead of as a failed tool result.
func (c *controller) CallTool(ctx context.Context, id jsonrpc2.ID, params *entity.CallToolParams, reply jsonrpc2.Replier) error {
	exec, err := c.tools.Get(params.Name)
	if err != nil {
		return err
	}

	sessionID, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return err
	}

	job := entity.ToolJob{
		Name:        params.Name,
		Arguments:   params.Arguments,
		RequestID:   id,
		SessionUUID: sessionID,
	}
	if params.Meta != nil {
		job.ProgressToken = params.Meta.ProgressToken
	}

	return c.queue.Add(ctx, job, exec, reply)
}
