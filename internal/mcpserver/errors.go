// Package mcpserver exposes the document tools over the Model Context Protocol,
// either on stdio or as a streamable HTTP handler.
package mcpserver

import "errors"

// ErrMissingRegistry is returned when no tool registry is provided.
var ErrMissingRegistry = errors.New("mcp: tool registry is required")

// ErrMissingDefinitions is returned when no tool definitions are provided.
var ErrMissingDefinitions = errors.New("mcp: tool definitions are required")
