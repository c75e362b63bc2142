package main

import (
	"os"

	"github.com/ideconnect/mcp-ide/src/mcpide/app"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const _version = "(to be added at build time)"

func opts() fx.Option {
	return fx.Options(
		app.Module,
	)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "mcpide",
		Short:   "MCP server exposing editor tools over a local WebSocket",
		Version: _version,
		Run: func(cmd *cobra.Command, args []string) {
			fx.New(opts()).Run()
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the server until interrupted",
		Run: func(cmd *cobra.Command, args []string) {
			fx.New(opts()).Run()
		},
	})
	root.AddCommand(newServersCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
