package tools

import (
	"context"
	"fmt"
	"unicode/utf8"

	"vocastant/internal/service/formatting"
)

// InjectTool implements 'inject_document_to_context'.
type InjectTool struct {
	deps   Dependencies
	config *ToolConfig
}

// NewInjectTool creates a new InjectTool instance.
func NewInjectTool(deps Dependencies, config *ToolConfig) *InjectTool {
	if config == nil {
		config = DefaultToolConfig()
	}
	return &InjectTool{deps: deps, config: config}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - document_id (string, required): id, name, partial name or "latest"
func (t *InjectTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	identifier, ok := stringParam(input, "document_id")
	if !ok {
		return "Which document should I load? Tell me its name, or say \"latest\".", nil
	}

	room := t.deps.room(ctx)
	id, err := t.deps.Resolver.Resolve(ctx, room, identifier)
	if err != nil {
		return failureText("I'm having trouble finding that document.", err), nil
	}

	doc, err := t.deps.Repo.GetContent(ctx, room, id)
	if err != nil {
		t.deps.Logger.Warn("inject fetch failed", "room", room, "document_id", id, "error", err)
		return failureText("I'm having trouble accessing that document.", err), nil
	}

	length := utf8.RuneCountInString(doc.Content)
	content := formatting.Truncate(doc.Content, t.config.MaxContentSize, false)
	t.deps.Logger.Info("document injected", "room", room, "document_id", id, "characters", length)

	return fmt.Sprintf("DOCUMENT INJECTED INTO CONTEXT:\n\nDocument: %s\nContent Length: %d characters\n\n%s\n\n"+
		"This document content has been added to your context. You can now analyze it and answer questions based on this content.",
		doc.DisplayName(), length, content), nil
}
