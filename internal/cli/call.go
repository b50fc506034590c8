package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vocastant/internal/service/docaccess"
	"vocastant/internal/service/formatting"
	"vocastant/internal/service/tools"
)

func newCallCommand() *cobra.Command {
	var room string
	var args []string
	var speech bool

	callCommand := &cobra.Command{
		Use:   "call <tool>",
		Short: "Run one tool and print its result",
		Example: `  vocastant call list_uploaded_documents --room standup-42
  vocastant call analyze_specific_document --room standup-42 --arg document_id=report --arg question="what changed?"
  vocastant call get_document_help`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			input, err := parseArgs(args)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.ErrOrStderr(), room)
			if err != nil {
				return err
			}
			defer a.close()

			name := positional[0]
			if a.registry.Get(name) == nil {
				return &tools.ToolNotFoundError{Name: name}
			}

			ctx := cmd.Context()
			if a.cfg.DefaultRoom != "" {
				ctx = docaccess.WithRoom(ctx, a.cfg.DefaultRoom)
			}

			result := a.registry.Execute(ctx, tools.ToolCall{ID: "cli", Name: name, Input: input})
			if result.IsError {
				return fmt.Errorf("%s: %w", name, result.Error)
			}

			out := resultText(result.Result)
			if speech {
				out = formatting.CleanForSpeech(out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	callCommand.Flags().StringVarP(&room, "room", "r", "", "room to run the tool in (default $DEFAULT_ROOM)")
	callCommand.Flags().StringArrayVarP(&args, "arg", "a", nil, "tool parameter as key=value (repeatable)")
	callCommand.Flags().BoolVar(&speech, "speech", false, "clean the result for text-to-speech")
	return callCommand
}

// parseArgs turns key=value pairs into a tool input map.
func parseArgs(pairs []string) (map[string]interface{}, error) {
	input := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --arg %q: want key=value", pair)
		}
		input[key] = value
	}
	return input, nil
}

func resultText(result interface{}) string {
	if s, ok := result.(string); ok {
		return s
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprint(result)
	}
	return string(data)
}
