package mapper

import (
	"errors"

	mcperrors "github.com/ideconnect/mcp-ide/src/mcpide/internal/errors"
	"go.lsp.dev/jsonrpc2"
)

// ResourceNotFound is the MCP error code for an unknown resource uri.
const ResourceNotFound jsonrpc2.Code = -32002

// ToJSONRPCError maps domain errors onto JSON-RPC error codes.
// Errors that already carry a code are returned unchanged; anything unrecognised is left for the dispatcher to report as an internal error.
func ToJSONRPCError(err error) error {
	if err == nil {
		return nil
	}

	var rpcErr *jsonrpc2.Error
	if errors.As(err, &rpcErr) {
		return err
	}

	var toolNotFound *mcperrors.ToolNotFoundError
	if errors.As(err, &toolNotFound) {
		return jsonrpc2.NewError(jsonrpc2.MethodNotFound, toolNotFound.Error())
	}

	var resourceNotFound *mcperrors.ResourceNotFoundError
	if errors.As(err, &resourceNotFound) {
		return jsonrpc2.NewError(ResourceNotFound, resourceNotFound.Error())
	}

	if mcperrors.IsBadRequest(err) {
		return jsonrpc2.NewError(jsonrpc2.InvalidRequest, err.Error())
	}

	return err
}
