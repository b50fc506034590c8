package tools

// ToolRegistryBuilder provides a fluent API for building tool registries.
type ToolRegistryBuilder struct {
	registry *ToolRegistry
	config   *ToolConfig
}

// NewToolRegistryBuilder creates a new builder with a fresh registry.
func NewToolRegistryBuilder() *ToolRegistryBuilder {
	return &ToolRegistryBuilder{
		registry: NewToolRegistry(),
		config:   DefaultToolConfig(),
	}
}

// WithConfig sets custom tool configuration.
// If not called, defaults will be used.
func (b *ToolRegistryBuilder) WithConfig(config *ToolConfig) *ToolRegistryBuilder {
	if config != nil {
		b.config = config
	}
	return b
}

// WithDocumentTools registers the backend-facing document tools.
func (b *ToolRegistryBuilder) WithDocumentTools(deps Dependencies) *ToolRegistryBuilder {
	RegisterDocumentTools(b.registry, deps, b.config)
	return b
}

// WithHelp registers the static get_document_help tool.
func (b *ToolRegistryBuilder) WithHelp() *ToolRegistryBuilder {
	b.registry.Register(ToolHelp, HelpTool{})
	return b
}

// Build returns the constructed tool registry.
func (b *ToolRegistryBuilder) Build() *ToolRegistry {
	return b.registry
}

// BuildWithDefaults is a convenience method that builds a registry with every document tool.
// Equivalent to: NewToolRegistryBuilder().WithDocumentTools(deps).WithHelp().Build()
func BuildWithDefaults(deps Dependencies) *ToolRegistry {
	return NewToolRegistryBuilder().
		WithDocumentTools(deps).
		WithHelp().
		Build()
}
