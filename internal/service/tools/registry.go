package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// MaxParallelCalls bounds how many tools ExecuteParallel runs at once.
const MaxParallelCalls = 16

// ToolCall represents a single tool invocation request.
type ToolCall struct {
	ID    string                 `json:"id"`    // call id from the session framework
	Name  string                 `json:"name"`  // tool name
	Input map[string]interface{} `json:"input"` // tool parameters
}

// ToolResult represents the result of a tool execution.
type ToolResult struct {
	ID      string      `json:"id"`       // matches ToolCall.ID
	Name    string      `json:"name"`     // matches ToolCall.Name
	Result  interface{} `json:"result"`   // execution result (nil if error)
	Error   error       `json:"-"`        // execution error (nil if success)
	IsError bool        `json:"is_error"` // whether execution failed
}

// ErrorMessage returns the error text, or "" for successful results.
func (r ToolResult) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Error()
}

// ToolNotFoundError is reported when a call names an unregistered tool.
type ToolNotFoundError struct {
	Name string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool not found: %s", e.Name)
}

// ToolRegistry manages tool executors and handles tool execution.
// It is thread-safe and can be used concurrently.
type ToolRegistry struct {
	mu        sync.RWMutex
	executors map[string]ToolExecutor
}

// NewToolRegistry creates a new tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		executors: make(map[string]ToolExecutor),
	}
}

// Register adds a tool executor to the registry.
// If a tool with the same name already exists, it will be replaced.
func (r *ToolRegistry) Register(name string, executor ToolExecutor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executors[name] = executor
}

// Get retrieves a tool executor by name.
// Returns nil if the tool is not registered.
func (r *ToolRegistry) Get(name string) ToolExecutor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.executors[name]
}

// Names returns the registered tool names in sorted order.
func (r *ToolRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.executors))
	for name := range r.executors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs a single tool and returns the result.
// Unknown tools, execution errors and panics all produce an error result.
func (r *ToolRegistry) Execute(ctx context.Context, call ToolCall) ToolResult {
	result := ToolResult{ID: call.ID, Name: call.Name}

	executor := r.Get(call.Name)
	switch {
	case executor == nil:
		result.Error = &ToolNotFoundError{Name: call.Name}
	case ctx.Err() != nil:
		result.Error = ctx.Err()
	default:
		result.Result, result.Error = safeExecute(ctx, executor, call.Input)
	}

	if result.Error != nil {
		result.Result = nil
		result.IsError = true
	}
	return result
}

func safeExecute(ctx context.Context, executor ToolExecutor, input map[string]interface{}) (result interface{}, err error) {
	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = fmt.Errorf("tool panicked: %v", p)
		}
	}()
	if input == nil {
		input = map[string]interface{}{}
	}
	return executor.Execute(ctx, input)
}

// ExecuteParallel runs multiple tools concurrently and returns results in call order.
// At most MaxParallelCalls run at once. Calls not yet started when ctx is
// cancelled report the context error.
func (r *ToolRegistry) ExecuteParallel(ctx context.Context, calls []ToolCall) []ToolResult {
	results := make([]ToolResult, len(calls))

	var g errgroup.Group
	g.SetLimit(MaxParallelCalls)
	for i, call := range calls {
		g.Go(func() error {
			results[i] = r.Execute(ctx, call)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
