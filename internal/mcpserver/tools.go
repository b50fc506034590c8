package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"vocastant/internal/service/tools"
)

// DocumentInput is the input schema for tools that take a document and an optional question.
type DocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"document ID, file name, partial file name, or latest"`
	Question   string `json:"question,omitempty" jsonschema:"question to answer about the document"`
}

// DocumentRefInput is the input schema for tools that only take a document.
type DocumentRefInput struct {
	DocumentID string `json:"document_id" jsonschema:"document ID, file name, partial file name, or latest"`
}

// OptionalQuestionInput is the input schema for analyze_latest_document.
type OptionalQuestionInput struct {
	Question string `json:"question,omitempty" jsonschema:"question to answer about the document"`
}

// QuestionInput is the input schema for search_documents_for_question.
type QuestionInput struct {
	Question string `json:"question" jsonschema:"the question to search the documents for"`
}

// NoInput is the input schema for tools without parameters.
type NoInput struct{}

// registerTools registers every document tool with the MCP server.
// Descriptions come from the embedded tool definitions.
func (s *Server) registerTools() error {
	describe := func(name string) (*mcp.Tool, error) {
		spec, err := s.deps.Definitions.Get(name)
		if err != nil {
			return nil, fmt.Errorf("registering %s: %w", name, err)
		}
		return &mcp.Tool{Name: spec.Name, Description: spec.Description}, nil
	}

	for _, name := range tools.DocumentToolNames {
		tool, err := describe(name)
		if err != nil {
			return err
		}
		switch name {
		case tools.ToolAnalyzeDocument:
			mcp.AddTool(s.server, tool, s.handleDocument(name))
		case tools.ToolSummary, tools.ToolInject:
			mcp.AddTool(s.server, tool, s.handleDocumentRef(name))
		case tools.ToolAnalyzeLatest:
			mcp.AddTool(s.server, tool, s.handleOptionalQuestion(name))
		case tools.ToolSearch:
			mcp.AddTool(s.server, tool, s.handleQuestion(name))
		default:
			mcp.AddTool(s.server, tool, s.handleNoInput(name))
		}
	}
	return nil
}

func (s *Server) handleDocument(name string) func(context.Context, *mcp.CallToolRequest, DocumentInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in DocumentInput) (*mcp.CallToolResult, any, error) {
		input := map[string]interface{}{"document_id": in.DocumentID}
		if in.Question != "" {
			input["question"] = in.Question
		}
		return s.call(ctx, name, input), nil, nil
	}
}

func (s *Server) handleDocumentRef(name string) func(context.Context, *mcp.CallToolRequest, DocumentRefInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in DocumentRefInput) (*mcp.CallToolResult, any, error) {
		return s.call(ctx, name, map[string]interface{}{"document_id": in.DocumentID}), nil, nil
	}
}

func (s *Server) handleOptionalQuestion(name string) func(context.Context, *mcp.CallToolRequest, OptionalQuestionInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in OptionalQuestionInput) (*mcp.CallToolResult, any, error) {
		input := map[string]interface{}{}
		if in.Question != "" {
			input["question"] = in.Question
		}
		return s.call(ctx, name, input), nil, nil
	}
}

func (s *Server) handleQuestion(name string) func(context.Context, *mcp.CallToolRequest, QuestionInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in QuestionInput) (*mcp.CallToolResult, any, error) {
		return s.call(ctx, name, map[string]interface{}{"question": in.Question}), nil, nil
	}
}

func (s *Server) handleNoInput(name string) func(context.Context, *mcp.CallToolRequest, NoInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, any, error) {
		return s.call(ctx, name, map[string]interface{}{}), nil, nil
	}
}

// call dispatches through the registry and renders the result as text content.
func (s *Server) call(ctx context.Context, name string, input map[string]interface{}) *mcp.CallToolResult {
	result := s.deps.Registry.Execute(s.callContext(ctx), tools.ToolCall{Name: name, Input: input})
	if result.IsError {
		s.deps.Logger.Warn("mcp tool call failed", "tool", name, "room", s.room, "error", result.Error)
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: result.ErrorMessage()}},
		}
	}

	text, ok := result.Result.(string)
	if !ok {
		text = fmt.Sprint(result.Result)
	}
	s.deps.Logger.Debug("mcp tool call", "tool", name, "room", s.room, "chars", len(text))
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}
