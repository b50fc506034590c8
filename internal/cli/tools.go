package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"vocastant/internal/capabilities"
)

func newToolsCommand() *cobra.Command {
	var format string

	toolsCommand := &cobra.Command{
		Use:   "tools",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			definitions, err := capabilities.NewRegistry()
			if err != nil {
				return fmt.Errorf("loading tool definitions: %w", err)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				for _, spec := range definitions.Tools() {
					fmt.Fprintf(out, "%s\n  %s\n", spec.Name, spec.Description)
					if params := describeParameters(spec); params != "" {
						fmt.Fprintf(out, "  parameters: %s\n", params)
					}
				}
				return nil
			case "provider":
				providerTools, err := definitions.ProviderTools()
				if err != nil {
					return err
				}
				return writeJSON(out, providerTools)
			default:
				return fmt.Errorf("unsupported format %q (use text or provider)", format)
			}
		},
	}

	toolsCommand.Flags().StringVar(&format, "format", "text", "output format: text or provider (LLM tool JSON)")
	return toolsCommand
}

func describeParameters(spec capabilities.ToolSpec) string {
	names := spec.ParameterNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if spec.Parameters[name].Required {
			name += " (required)"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, ", ")
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
