package cli

import (
	"github.com/spf13/cobra"

	"vocastant/internal/mcpserver"
)

func newMCPCommand() *cobra.Command {
	var room string
	var httpAddr string

	mcpCommand := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol server for voice assistant frameworks.

By default the server speaks JSON-RPC over stdio and is bound to --room
(or DEFAULT_ROOM). Logs go to stderr so stdout stays a clean transport.

Use --http to serve streamable HTTP instead; each session is bound to the
room named by the X-Room-Name header or room query parameter of its
initializing request, falling back to --room.

Examples:
  # Stdio mode for a single room
  vocastant mcp --room standup-42

  # HTTP mode
  vocastant mcp --http :8090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.ErrOrStderr(), room)
			if err != nil {
				return err
			}
			defer a.close()

			if httpAddr != "" {
				return mcpserver.RunHTTP(cmd.Context(), a.mcpDeps(), httpAddr)
			}

			server, err := mcpserver.NewServer(a.mcpDeps(), a.cfg.DefaultRoom)
			if err != nil {
				return err
			}
			return server.Run(cmd.Context())
		},
	}

	mcpCommand.Flags().StringVarP(&room, "room", "r", "", "room the session is bound to (default $DEFAULT_ROOM)")
	mcpCommand.Flags().StringVar(&httpAddr, "http", "", "serve streamable HTTP on this address instead of stdio")
	return mcpCommand
}
