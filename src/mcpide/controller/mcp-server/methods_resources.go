package mcpserver

import (
	"context"

	"github.com/ideconnect/mcp-ide/src/mcpide/entity"
)

// ListResources returns one page of workspace files.
func (c *controller) ListResources(ctx context.Context, params *entity.PaginatedParams) (*entity.ListResourcesResult, error) {
	return c.resources.List(ctx, params.Cursor)
}

// ReadResource returns the contents of a workspace file.
func (c *controller) ReadResource(ctx context.Context, params *entity.ResourceParams) (*entity.ReadResourceResult, error) {
	return c.resources.Read(ctx, params.URI)
}

// Subscribe asks for notifications/resources/updated about a file.
func (c *controller) Subscribe(ctx context.Context, params *entity.ResourceParams) error {
	return c.resources.Subscribe(ctx, params.URI)
}

// Unsubscribe stops notifications about a file.
func (c *controller) Unsubscribe(ctx context.Context, params *entity.ResourceParams) error {
	return c.resources.Unsubscribe(ctx, params.URI)
}
