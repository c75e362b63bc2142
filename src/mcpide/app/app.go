package app

import (
	"context"
	"time"

	"github.com/ideconnect/mcp-ide/src/mcpide/gateway"
	"github.com/ideconnect/mcp-ide/src/mcpide/handler"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/clock"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/core"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/events"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/fs"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/lockfile"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/websocketfx"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/workspace"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
)

// Module defines the mcpide application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	websocketfx.Module,
	lockfile.Module,
	events.Module,
	workspace.Module,
	fs.Module,
	clock.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "mcpide",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        EnvLocal,
			RuntimeEnvironment: EnvLocal,
		}
	}),
)
