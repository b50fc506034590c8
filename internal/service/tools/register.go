package tools

// RegisterDocumentTools creates the document tools and registers them under
// the names advertised in the tool definitions.
func RegisterDocumentTools(registry *ToolRegistry, deps Dependencies, config *ToolConfig) {
	if config == nil {
		config = DefaultToolConfig()
	}

	registry.Register(ToolListDocuments, NewListTool(deps))
	registry.Register(ToolAnalyzeDocument, NewAnalyzeTool(deps, config))
	registry.Register(ToolAnalyzeLatest, NewLatestTool(deps, config))
	registry.Register(ToolSummary, NewSummaryTool(deps, config))
	registry.Register(ToolSearch, NewSearchTool(deps, config))
	registry.Register(ToolTestAccess, NewDiagnoseTool(deps))
	registry.Register(ToolInject, NewInjectTool(deps, config))
}
