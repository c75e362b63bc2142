package controller

import (
	"github.com/ideconnect/mcp-ide/src/mcpide/controller/diffs"
	mcpserver "github.com/ideconnect/mcp-ide/src/mcpide/controller/mcp-server"
	"github.com/ideconnect/mcp-ide/src/mcpide/controller/resources"
	toolcache "github.com/ideconnect/mcp-ide/src/mcpide/controller/tool-cache"
	tooljobs "github.com/ideconnect/mcp-ide/src/mcpide/controller/tool-jobs"
	"github.com/ideconnect/mcp-ide/src/mcpide/controller/tools"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(mcpserver.New),
	fx.Provide(tools.New),
	fx.Provide(tooljobs.New),
	fx.Provide(toolcache.New),
	fx.Provide(diffs.New),
	fx.Provide(resources.New),
)
