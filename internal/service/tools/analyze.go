package tools

import (
	"context"
	"fmt"

	"vocastant/internal/domain/models"
	"vocastant/internal/service/formatting"
)

// AnalyzeTool implements 'analyze_specific_document'.
type AnalyzeTool struct {
	deps   Dependencies
	config *ToolConfig
}

// NewAnalyzeTool creates a new AnalyzeTool instance.
func NewAnalyzeTool(deps Dependencies, config *ToolConfig) *AnalyzeTool {
	if config == nil {
		config = DefaultToolConfig()
	}
	return &AnalyzeTool{deps: deps, config: config}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - document_id (string, required): id, name, partial name or "latest"
//   - question (string, optional): question to analyze the document for
func (t *AnalyzeTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	identifier, ok := stringParam(input, "document_id")
	if !ok {
		return "Which document should I open? Tell me its name, or say \"latest\" for the most recent upload.", nil
	}
	question, _ := stringParam(input, "question")

	room := t.deps.room(ctx)
	id, err := t.deps.Resolver.Resolve(ctx, room, identifier)
	if err != nil {
		t.deps.Logger.Warn("document resolution failed", "room", room, "identifier", identifier, "error", err)
		return failureText("I'm having trouble finding that document.", err), nil
	}

	return analyzeDocument(ctx, t.deps, t.config, room, id, question), nil
}

// LatestTool implements 'analyze_latest_document'.
type LatestTool struct {
	deps   Dependencies
	config *ToolConfig
}

// NewLatestTool creates a new LatestTool instance.
func NewLatestTool(deps Dependencies, config *ToolConfig) *LatestTool {
	if config == nil {
		config = DefaultToolConfig()
	}
	return &LatestTool{deps: deps, config: config}
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - question (string, optional): question to analyze the document for
func (t *LatestTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	question, _ := stringParam(input, "question")

	room := t.deps.room(ctx)
	id, err := t.deps.Resolver.Resolve(ctx, room, "latest")
	if err != nil {
		t.deps.Logger.Warn("latest document resolution failed", "room", room, "error", err)
		return failureText("I'm having trouble accessing the latest document.", err), nil
	}

	return analyzeDocument(ctx, t.deps, t.config, room, id, question), nil
}

// analyzeDocument fetches a resolved document, through the analyze endpoint
// when a question is given, and formats it within AnalyzeMaxLength.
func analyzeDocument(ctx context.Context, deps Dependencies, config *ToolConfig, room, id, question string) string {
	var name, content string
	if question != "" {
		analysis, err := deps.Repo.Analyze(ctx, room, id, question)
		if err != nil {
			deps.Logger.Warn("document analysis failed", "room", room, "document_id", id, "error", err)
			return failureText("I'm having trouble accessing that document.", err)
		}
		name, content = analysis.OriginalName, analysis.ExtractedText
	} else {
		doc, err := deps.Repo.GetContent(ctx, room, id)
		if err != nil {
			deps.Logger.Warn("document fetch failed", "room", room, "document_id", id, "error", err)
			return failureText("I'm having trouble accessing that document.", err)
		}
		name, content = doc.OriginalName, doc.Content
	}

	content = formatting.Truncate(content, config.AnalyzeMaxLength, true)
	deps.Logger.Info("document analyzed", "room", room, "document_id", id, "with_question", question != "")

	if question != "" {
		return fmt.Sprintf("DOCUMENT ANALYSIS:\n\nDocument: %s\nQuestion: %s\n\nContent:\n%s\n\n"+
			"Based on this document content, I can now answer your question.",
			models.ReadableName(name), question, content)
	}
	return fmt.Sprintf("DOCUMENT CONTENT:\n\nDocument: %s\n\nContent:\n%s\n\n"+
		"I now have access to this document. What would you like to know about it?",
		models.ReadableName(name), content)
}
