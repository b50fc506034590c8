package tools

import "vocastant/internal/config"

// ToolConfig centralizes configuration for all tools.
// Replaces magic numbers scattered throughout tool implementations.
type ToolConfig struct {
	// Inject tool configuration
	MaxContentSize int // Maximum document content size injected into the model context

	// Analyze tools configuration
	AnalyzeMaxLength int // Content budget for analyze_specific_document / analyze_latest_document

	// Summary tool configuration
	SummaryMaxLength int

	// Search tool configuration
	SearchPreviewLength int // Per-document budget when several documents match
	SearchMaxResults    int // Documents shown when several match
	SearchConcurrency   int // Simultaneous content fetches
}

// DefaultToolConfig returns the default tool configuration.
func DefaultToolConfig() *ToolConfig {
	return &ToolConfig{
		MaxContentSize: 20000, // 20k characters (~5k tokens)

		AnalyzeMaxLength: 3000,

		SummaryMaxLength: 2500,

		SearchPreviewLength: 1000,
		SearchMaxResults:    3,
		SearchConcurrency:   10,
	}
}

// ToolConfigFromApp returns the defaults with process-level overrides applied.
func ToolConfigFromApp(cfg *config.Config) *ToolConfig {
	tc := DefaultToolConfig()
	if cfg != nil && cfg.SearchConcurrency > 0 {
		tc.SearchConcurrency = cfg.SearchConcurrency
	}
	return tc
}
