// Package cli wires the document tools into the vocastant command line:
// an HTTP API server, an MCP server, and one-shot tool calls.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

const rootLongDescription = `vocastant gives a voice assistant access to the documents uploaded to a room.

The same eight tools are available over an HTTP JSON API (serve), over the
Model Context Protocol (mcp) and as one-shot calls from the shell (call).
Configuration is read from the environment and an optional .env file.`

// Execute runs the vocastant application.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:          "vocastant",
		Short:        "Document tools for voice assistant sessions",
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCommand.AddCommand(
		newServeCommand(),
		newMCPCommand(),
		newCallCommand(),
		newToolsCommand(),
	)
	return rootCommand
}
