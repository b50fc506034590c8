package cli

import (
	"fmt"
	"io"
	"log/slog"

	"vocastant/internal/capabilities"
	"vocastant/internal/config"
	"vocastant/internal/mcpserver"
	"vocastant/internal/repository/backend"
	"vocastant/internal/service/docaccess"
	"vocastant/internal/service/tools"
)

// app holds the wired collaborators shared by the subcommands.
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	client      *backend.Client
	registry    *tools.ToolRegistry
	definitions *capabilities.Registry
	closeLog    func() error
}

// newApp loads configuration and wires the backend client, tool registry and
// tool definitions. Logs go to logOut. defaultRoom overrides DEFAULT_ROOM
// when non-empty.
func newApp(logOut io.Writer, defaultRoom string) (*app, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if defaultRoom != "" {
		cfg.DefaultRoom = defaultRoom
	}

	logger, closeLog, err := config.NewLogger(cfg, logOut)
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	definitions, err := capabilities.NewRegistry()
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("loading tool definitions: %w", err)
	}

	client := backend.NewClient(backend.ConfigFromApp(cfg), logger)
	deps := tools.NewDependencies(client, docaccess.StaticRoom(cfg.DefaultRoom), logger)
	registry := tools.NewToolRegistryBuilder().
		WithConfig(tools.ToolConfigFromApp(cfg)).
		WithDocumentTools(deps).
		WithHelp().
		Build()

	return &app{
		cfg:         cfg,
		logger:      logger,
		client:      client,
		registry:    registry,
		definitions: definitions,
		closeLog:    closeLog,
	}, nil
}

func (a *app) mcpDeps() mcpserver.Deps {
	return mcpserver.Deps{
		Registry:    a.registry,
		Definitions: a.definitions,
		Logger:      a.logger,
	}
}

func (a *app) close() {
	if err := a.closeLog(); err != nil {
		a.logger.Warn("failed to close log file", "error", err)
	}
}
