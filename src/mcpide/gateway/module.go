package gateway

import (
	editorhost "github.com/ideconnect/mcp-ide/src/mcpide/gateway/editor-host"
	mcpclient "github.com/ideconnect/mcp-ide/src/mcpide/gateway/mcp-client"
	"go.uber.org/fx"
)

// Module provides the outbound gateways.
var Module = fx.Options(
	fx.Provide(mcpclient.New),
	fx.Provide(editorhost.New),
)
