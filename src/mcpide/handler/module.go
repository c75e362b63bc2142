package handler

import (
	controller "github.com/ideconnect/mcp-ide/src/mcpide/controller"
	mcpserver "github.com/ideconnect/mcp-ide/src/mcpide/controller/mcp-server"
	handler "github.com/ideconnect/mcp-ide/src/mcpide/handler/mcp-server"
	"github.com/ideconnect/mcp-ide/src/mcpide/repository/session"
	"go.uber.org/fx"
)

// Module provides the mcp-server handlers into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(session.New),
	fx.Provide(handler.New),
	fx.Invoke(func(m handler.Handler) {}),
	fx.Invoke(func(m mcpserver.Controller) {}),
)
