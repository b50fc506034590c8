package tools

import "context"

// ToolExecutor defines the interface for executing a tool.
// Implementations must be thread-safe and respect context cancellation.
type ToolExecutor interface {
	// Execute runs the tool with the given input parameters.
	// The input map contains the tool-specific parameters as specified in the tool schema.
	// Document tools return a natural-language string and report failures inside it;
	// a non-nil error is reserved for programming errors and cancellation.
	Execute(ctx context.Context, input map[string]interface{}) (interface{}, error)
}

// ToolExecutorFunc adapts a plain function to the ToolExecutor interface.
type ToolExecutorFunc func(ctx context.Context, input map[string]interface{}) (interface{}, error)

// Execute implements ToolExecutor.
func (f ToolExecutorFunc) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	return f(ctx, input)
}
