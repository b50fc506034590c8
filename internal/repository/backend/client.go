// Package backend is the HTTP client for the document backend. It is the
// only package that talks to the network; everything it returns as an error is
// a *domain.AccessError.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"vocastant/internal/config"
	"vocastant/internal/domain"
	"vocastant/internal/domain/models"
	"vocastant/internal/domain/repositories"
	"vocastant/internal/service/formatting"
)

const (
	// DefaultTimeout is the default HTTP timeout for backend requests
	DefaultTimeout = 30 * time.Second
	// DefaultHealthTimeout is the default timeout for the /health probe
	DefaultHealthTimeout = 10 * time.Second

	// maxResponseBytes bounds a single response body (extracted text included)
	maxResponseBytes = 32 << 20
)

// Operation names carried by AccessError.Op
const (
	OpListDocuments = "list_documents"
	OpFetchContent  = "fetch_content"
	OpAnalyze       = "analyze_document"
	OpHealth        = "health"
)

// Ensure Client implements the repository interface.
var _ repositories.DocumentRepository = (*Client)(nil)

// ClientConfig configures the backend client.
type ClientConfig struct {
	BaseURL         string
	Timeout         time.Duration
	HealthTimeout   time.Duration
	MaxConns        int // total outbound connections
	MaxConnsPerHost int
	Retry           RetryPolicy
	RateLimit       float64 // requests per second, 0 = unlimited
	RateBurst       int
}

// ConfigFromApp maps the process configuration onto the client configuration.
func ConfigFromApp(cfg *config.Config) ClientConfig {
	return ClientConfig{
		BaseURL:         cfg.BackendURL,
		Timeout:         cfg.BackendTimeout,
		HealthTimeout:   cfg.HealthTimeout,
		MaxConns:        cfg.BackendMaxConns,
		MaxConnsPerHost: cfg.BackendMaxConnsPerHost,
		Retry:           RetryPolicy{MaxAttempts: cfg.RetryAttempts, Backoff: cfg.RetryBackoff},
		RateLimit:       cfg.RateLimit,
		RateBurst:       cfg.RateBurst,
	}
}

// Client implements repositories.DocumentRepository over the backend's REST API.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	healthClient *http.Client
	retry        RetryPolicy
	limiter      *rate.Limiter // nil when throttling is disabled
	logger       *slog.Logger
}

// NewClient creates a backend client. Zero-valued config fields get defaults.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = DefaultHealthTimeout
	}
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = 10
	}
	if cfg.MaxConnsPerHost <= 0 {
		cfg.MaxConnsPerHost = 5
	}
	if logger == nil {
		logger = slog.Default()
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = cfg.MaxConns
	transport.MaxIdleConnsPerHost = cfg.MaxConnsPerHost
	transport.MaxConnsPerHost = cfg.MaxConnsPerHost

	c := &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   &http.Client{Timeout: cfg.Timeout, Transport: transport},
		healthClient: &http.Client{Timeout: cfg.HealthTimeout, Transport: transport},
		retry:        cfg.Retry,
		logger:       logger,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// BaseURL returns the backend base URL (used in diagnostics).
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListByRoom lists the documents uploaded to a room.
// GET /api/documents/room/{room}
func (c *Client) ListByRoom(ctx context.Context, room string) ([]models.Document, error) {
	return c.list(ctx, "/api/documents/room/"+url.PathEscape(room))
}

// ListAll lists every document on the backend.
// GET /api/documents
func (c *Client) ListAll(ctx context.Context) ([]models.Document, error) {
	return c.list(ctx, "/api/documents")
}

func (c *Client) list(ctx context.Context, path string) ([]models.Document, error) {
	var resp listResponse
	if err := c.getJSON(ctx, c.httpClient, OpListDocuments, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendFailure(OpListDocuments, resp.Error)
	}

	docs := make([]models.Document, 0, len(resp.Documents))
	for i := range resp.Documents {
		docs = append(docs, resp.Documents[i].toModel())
	}

	c.logger.Debug("documents listed", "path", path, "count", len(docs))
	return docs, nil
}

// GetContent fetches a document with its extracted text. An empty room
// omits the room scoping parameter.
// GET /api/documents/{id}/content?roomName={room}
func (c *Client) GetContent(ctx context.Context, room, documentID string) (*models.Document, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, domain.NewAccessError(OpFetchContent, "document id is required")
	}

	var query url.Values
	if room != "" {
		query = url.Values{"roomName": []string{room}}
	}

	var resp contentResponse
	path := "/api/documents/" + url.PathEscape(documentID) + "/content"
	if err := c.getJSON(ctx, c.httpClient, OpFetchContent, path, query, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendFailure(OpFetchContent, resp.Error)
	}
	if resp.Document == nil {
		return nil, domain.NewAccessError(OpFetchContent, "backend response has no document")
	}

	doc := resp.Document.toModel()
	if !doc.HasContent() {
		return nil, domain.NewAccessError(OpFetchContent, "document %s has no content", documentID)
	}
	if doc.ID == "" {
		doc.ID = documentID
	}
	if doc.CharacterCount == 0 {
		doc.CharacterCount = len([]rune(doc.Content))
	}
	if doc.WordCount == 0 {
		doc.WordCount = formatting.CountWords(doc.Content)
	}

	c.logger.Debug("document content fetched",
		"document_id", doc.ID,
		"name", doc.OriginalName,
		"characters", doc.CharacterCount,
		"words", doc.WordCount,
	)
	return &doc, nil
}

// Analyze asks the backend to analyze a document for a question. When the
// analysis carries no extracted text, the content endpoint fills it in.
// GET /api/documents/{id}/analyze?question={q}
func (c *Client) Analyze(ctx context.Context, room, documentID, question string) (*models.Analysis, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, domain.NewAccessError(OpAnalyze, "document id is required")
	}

	var resp analyzeResponse
	path := "/api/documents/" + url.PathEscape(documentID) + "/analyze"
	query := url.Values{"question": []string{question}}
	if err := c.getJSON(ctx, c.httpClient, OpAnalyze, path, query, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendFailure(OpAnalyze, resp.Error)
	}

	analysis := &models.Analysis{
		DocumentID: documentID,
		Question:   question,
		Fields:     make(map[string]interface{}, len(resp.Analysis)),
	}
	for key, value := range resp.Analysis {
		switch key {
		case "extractedText":
			analysis.ExtractedText, _ = value.(string)
		case "originalName":
			analysis.OriginalName, _ = value.(string)
		default:
			analysis.Fields[key] = value
		}
	}

	if analysis.ExtractedText == "" {
		doc, err := c.GetContent(ctx, room, documentID)
		if err != nil {
			fallback := &domain.AccessError{Op: OpAnalyze, Message: "analysis has no text", Err: err}
			var inner *domain.AccessError
			if errors.As(err, &inner) {
				fallback.Status = inner.Status
			}
			return nil, fallback
		}
		analysis.ExtractedText = doc.Content
		if analysis.OriginalName == "" {
			analysis.OriginalName = doc.OriginalName
		}
	}

	return analysis, nil
}

// Health probes GET /health with the short health timeout. Only transport
// failures are errors; any HTTP response is reported through the status.
func (c *Client) Health(ctx context.Context) (models.HealthStatus, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return models.HealthStatus{}, domain.WrapAccessError(OpHealth, err, "failed to create request")
	}

	resp, err := c.healthClient.Do(req)
	if err != nil {
		return models.HealthStatus{}, domain.WrapAccessError(OpHealth, err, "cannot reach backend at %s", c.baseURL)
	}
	defer func() { _ = resp.Body.Close() }() // Error ignored: response consumed
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	status := models.HealthStatus{StatusCode: resp.StatusCode, Latency: time.Since(start)}
	c.logger.Debug("backend health probed", "status", status.StatusCode, "latency_ms", status.Latency.Milliseconds())
	return status, nil
}

// getJSON performs a GET with the retry policy and decodes a 200 response into out.
func (c *Client) getJSON(ctx context.Context, httpClient *http.Client, op, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var lastErr *requestError
	attempts := c.retry.attempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := c.retry.wait(ctx, attempt); err != nil {
				return domain.WrapAccessError(op, err, "request cancelled")
			}
			c.logger.Debug("retrying backend request", "op", op, "attempt", attempt)
		}

		body, status, err := c.doGet(ctx, httpClient, op, target)
		if err == nil {
			if decodeErr := json.Unmarshal(body, out); decodeErr != nil {
				return &domain.AccessError{Op: op, Status: status, Message: "failed to parse backend response", Err: decodeErr}
			}
			return nil
		}

		lastErr = err
		if !err.retry || attempt == attempts {
			break
		}
	}

	c.logger.Error("backend request failed", "op", op, "url", target, "error", lastErr.AccessError)
	return lastErr.AccessError
}

// requestError is an AccessError plus whether the failure is retryable
type requestError struct {
	*domain.AccessError
	retry bool
}

func (c *Client) doGet(ctx context.Context, httpClient *http.Client, op, target string) ([]byte, int, *requestError) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, &requestError{AccessError: domain.WrapAccessError(op, err, "request throttled")}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, &requestError{AccessError: domain.WrapAccessError(op, err, "failed to create request")}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, &requestError{
			AccessError: domain.WrapAccessError(op, err, "backend connection error"),
			retry:       retryable(nil, err) && ctx.Err() == nil,
		}
	}
	defer func() { _ = resp.Body.Close() }() // Error ignored: response consumed

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, &requestError{
			AccessError: &domain.AccessError{Op: op, Status: resp.StatusCode, Message: "failed to read backend response", Err: err},
			retry:       true,
		}
	}

	c.logger.Debug("backend response", "op", op, "url", target, "status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, &requestError{
			AccessError: &domain.AccessError{Op: op, Status: resp.StatusCode, Message: statusMessage(op, resp.StatusCode)},
			retry:       retryable(resp, nil),
		}
	}

	return body, resp.StatusCode, nil
}

func statusMessage(op string, status int) string {
	switch op {
	case OpFetchContent:
		if status == http.StatusNotFound {
			return "document not found (HTTP 404)"
		}
		return fmt.Sprintf("failed to fetch content (HTTP %d)", status)
	case OpAnalyze:
		return fmt.Sprintf("analysis failed (HTTP %d)", status)
	default:
		return fmt.Sprintf("failed to fetch documents (HTTP %d)", status)
	}
}

func backendFailure(op, detail string) *domain.AccessError {
	if detail == "" {
		return domain.NewAccessError(op, "backend reported failure")
	}
	return domain.NewAccessError(op, "backend reported failure: %s", detail)
}
