package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"vocastant/internal/handler"
	"vocastant/internal/httputil"
	"vocastant/internal/mcpserver"
	"vocastant/internal/middleware"
)

func newServeCommand() *cobra.Command {
	var port string

	serveCommand := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP tool API",
		Long: `Start the HTTP server exposing the document tools.

Routes:
  GET  /health               service and backend health
  GET  /api/tools            tool definitions (?format=provider for LLM tool export)
  POST /api/tools/{name}     run one tool: {"id": "...", "input": {...}}
  POST /api/tool-calls       run several tools concurrently: {"calls": [...]}
  /mcp                       streamable MCP endpoint

The room is read from the X-Room-Name header or the room query parameter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.OutOrStdout(), "")
			if err != nil {
				return err
			}
			defer a.close()

			if port != "" {
				a.cfg.Port = port
			}
			return runServe(cmd.Context(), a)
		},
	}

	serveCommand.Flags().StringVarP(&port, "port", "p", "", "HTTP port (default $PORT or 8080)")
	return serveCommand
}

// newHTTPHandler builds the routed and middleware-wrapped API handler.
func newHTTPHandler(a *app) (http.Handler, error) {
	mcpHandler, err := mcpserver.NewHTTPHandler(a.mcpDeps())
	if err != nil {
		return nil, err
	}

	toolsHandler := handler.NewToolsHandler(a.registry, a.definitions, a.logger)
	healthHandler := handler.NewHealthHandler(a.client, a.logger)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.HealthCheck)

	// Tool routes
	mux.HandleFunc("GET /api/tools", toolsHandler.ListTools)
	mux.HandleFunc("POST /api/tools/{name}", toolsHandler.CallTool)
	mux.HandleFunc("POST /api/tool-calls", toolsHandler.CallTools)

	// MCP sessions pick their room from the initializing request
	mux.Handle("/mcp", mcpHandler)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestLogger → Room → Routes
	var h http.Handler = mux
	h = middleware.RoomMiddleware()(h)
	h = middleware.RequestLogger(a.logger)(h)
	h = middleware.Recovery(a.logger)(h)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(a.cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", httputil.RoomHeader,
			middleware.RequestIDHeader, "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Mcp-Session-Id"},
		AllowCredentials: true,
	})
	return corsHandler.Handler(h), nil
}

func runServe(ctx context.Context, a *app) error {
	h, err := newHTTPHandler(a)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:        ":" + a.cfg.Port,
		Handler:     h,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout disabled so streamable MCP sessions can stay open
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("server shutdown", "error", err)
		}
	}()

	a.logger.Info("server starting",
		"environment", a.cfg.Environment,
		"port", a.cfg.Port,
		"backend_url", a.cfg.BackendURL,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
