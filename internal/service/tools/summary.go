package tools

import (
	"context"
	"fmt"

	"vocastant/internal/service/formatting"
)

// SummaryTool implements 'get_document_summary'.
type SummaryTool struct {
	deps   Dependencies
	config *ToolConfig
}

// NewSummaryTool creates a new SummaryTool instance.
func NewSummaryTool(deps Dependencies, config *ToolConfig) *SummaryTool {
	if config == nil {
		config = DefaultToolConfig()
	}
	return &SummaryTool{deps: deps, config: config}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - document_id (string, required): id, name, partial name or "latest"
func (t *SummaryTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	identifier, ok := stringParam(input, "document_id")
	if !ok {
		return "Which document should I summarize? Tell me its name, or say \"latest\".", nil
	}

	room := t.deps.room(ctx)
	id, err := t.deps.Resolver.Resolve(ctx, room, identifier)
	if err != nil {
		return failureText("I'm having trouble finding that document for a summary.", err), nil
	}

	doc, err := t.deps.Repo.GetContent(ctx, room, id)
	if err != nil {
		t.deps.Logger.Warn("summary fetch failed", "room", room, "document_id", id, "error", err)
		return failureText("I'm having trouble accessing that document for a summary.", err), nil
	}

	content := formatting.Truncate(doc.Content, t.config.SummaryMaxLength, true)
	return fmt.Sprintf("DOCUMENT FOR SUMMARY:\n\nDocument: %s\n\nContent:\n%s\n\n"+
		"Please provide a comprehensive summary of this document, highlighting the key points and main themes.",
		doc.DisplayName(), content), nil
}
