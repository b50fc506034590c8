package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"vocastant/internal/capabilities"
	"vocastant/internal/httputil"
	"vocastant/internal/service/docaccess"
	"vocastant/internal/service/tools"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Deps are the collaborators shared by every session.
type Deps struct {
	Registry    *tools.ToolRegistry
	Definitions *capabilities.Registry
	Logger      *slog.Logger
}

// Validate ensures all required dependencies are set.
func (d *Deps) Validate() error {
	if d.Registry == nil {
		return ErrMissingRegistry
	}
	if d.Definitions == nil {
		return ErrMissingDefinitions
	}
	return nil
}

// Server is an MCP server bound to one room.
type Server struct {
	deps   Deps
	room   string
	server *mcp.Server
}

// NewServer creates an MCP server whose tool calls run in room.
// An empty room leaves room resolution to the registry's fallbacks.
func NewServer(deps Deps, room string) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("validating deps: %w", err)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	impl := &mcp.Implementation{
		Name:    "vocastant",
		Version: Version,
	}

	s := &Server{
		deps:   deps,
		room:   strings.TrimSpace(room),
		server: mcp.NewServer(impl, nil),
	}

	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

// Room returns the room this server is bound to.
func (s *Server) Room() string {
	return s.room
}

// MCP returns the underlying SDK server.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.deps.Logger.Info("mcp server listening on stdio", "room", s.room)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// NewHTTPHandler returns a streamable HTTP handler that creates one server
// per session, bound to the room named by the initializing request.
func NewHTTPHandler(deps Deps) (http.Handler, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("validating deps: %w", err)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		room := httputil.RoomFromRequest(r)
		s, err := NewServer(deps, room)
		if err != nil {
			deps.Logger.Error("failed to create mcp session server", "room", room, "error", err)
			return nil
		}
		deps.Logger.Info("mcp session started", "room", room, "remote", r.RemoteAddr)
		return s.server
	}, nil), nil
}

// RunHTTP serves the streamable handler on addr.
// It blocks until the context is cancelled or an error occurs.
func RunHTTP(ctx context.Context, deps Deps, addr string) error {
	handler, err := NewHTTPHandler(deps)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	deps.Logger.Info("mcp server listening on http", "addr", addr)
	err = httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// callContext scopes a tool call to the server's room.
func (s *Server) callContext(ctx context.Context) context.Context {
	if s.room == "" {
		return ctx
	}
	return docaccess.WithRoom(ctx, s.room)
}
