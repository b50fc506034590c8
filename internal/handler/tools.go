package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"vocastant/internal/capabilities"
	"vocastant/internal/domain"
	"vocastant/internal/httputil"
	"vocastant/internal/service/tools"
)

// ToolsHandler exposes the document tools over a JSON API
type ToolsHandler struct {
	registry    *tools.ToolRegistry
	definitions *capabilities.Registry
	logger      *slog.Logger
}

// NewToolsHandler creates a new tools handler
func NewToolsHandler(registry *tools.ToolRegistry, definitions *capabilities.Registry, logger *slog.Logger) *ToolsHandler {
	return &ToolsHandler{
		registry:    registry,
		definitions: definitions,
		logger:      logger,
	}
}

// ListTools returns the tool definitions
// GET /api/tools
// ?format=provider returns the LLM provider tool export instead
func (h *ToolsHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "provider" {
		providerTools, err := h.definitions.ProviderTools()
		if err != nil {
			h.logger.Error("failed to export provider tools", "error", err)
			httputil.RespondDomainError(w, err)
			return
		}
		httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"tools": providerTools})
		return
	}

	specs := h.definitions.Tools()
	out := make([]map[string]interface{}, 0, len(specs))
	for i := range specs {
		out = append(out, map[string]interface{}{
			"name":        specs[i].Name,
			"description": specs[i].Description,
			"parameters":  specs[i].JSONSchema(),
		})
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"tools": out})
}

// CallTool runs a single tool
// POST /api/tools/{name}
// Returns 404 for unregistered tools. Tool-level failures are 200 with the failure text.
func (h *ToolsHandler) CallTool(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if h.registry.Get(name) == nil {
		httputil.RespondErrorWithExtras(w, http.StatusNotFound, (&tools.ToolNotFoundError{Name: name}).Error(),
			map[string]interface{}{"available": h.registry.Names()})
		return
	}

	var req ToolCallRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondDomainError(w, &domain.ValidationError{Message: err.Error()})
		return
	}

	call := toCall(req.ID, name, req.Input)
	result := h.registry.Execute(r.Context(), call)
	h.logger.Debug("tool call handled",
		"tool", name,
		"call_id", call.ID,
		"room", httputil.GetRoom(r),
		"is_error", result.IsError,
	)

	httputil.RespondJSON(w, http.StatusOK, toResponse(result, wantsSpeech(r)))
}

// CallTools runs a batch of tools concurrently
// POST /api/tool-calls
// Results are returned in request order; unknown tools appear as error results.
func (h *ToolsHandler) CallTools(w http.ResponseWriter, r *http.Request) {
	var req BatchCallRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondDomainError(w, &domain.ValidationError{Message: err.Error()})
		return
	}

	calls := make([]tools.ToolCall, len(req.Calls))
	for i, c := range req.Calls {
		calls[i] = toCall(c.ID, c.Name, c.Input)
	}

	results := h.registry.ExecuteParallel(r.Context(), calls)
	speech := wantsSpeech(r)
	out := make([]ToolResultResponse, len(results))
	for i, res := range results {
		out[i] = toResponse(res, speech)
	}

	h.logger.Debug("tool batch handled", "calls", len(calls), "room", httputil.GetRoom(r))
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"results": out})
}

func wantsSpeech(r *http.Request) bool {
	speech, _ := strconv.ParseBool(r.URL.Query().Get("speech"))
	return speech
}
