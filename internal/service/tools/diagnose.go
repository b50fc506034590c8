package tools

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"vocastant/internal/domain/models"
	"vocastant/internal/service/docaccess"
)

// baseURLer is implemented by repositories that can name the backend they talk to.
type baseURLer interface {
	BaseURL() string
}

// DiagnoseTool implements 'test_document_access'. It runs the health probe,
// a listing and a first-document fetch in order and stops at the first
// failing stage, reporting the stages that passed before it.
type DiagnoseTool struct {
	deps Dependencies
}

// NewDiagnoseTool creates a new DiagnoseTool instance.
func NewDiagnoseTool(deps Dependencies) *DiagnoseTool {
	return &DiagnoseTool{deps: deps}
}

// Diagnosis is the staged outcome of an access test.
type Diagnosis struct {
	Passed []string
	Failed string // empty when every stage passed
}

// String renders the report spoken back to the user.
func (d Diagnosis) String() string {
	var b strings.Builder
	switch {
	case d.Failed == "":
		b.WriteString("Document access test successful!")
	case len(d.Passed) == 0:
		b.WriteString("Document access test failed.")
	default:
		b.WriteString("Document access test partially successful.")
	}
	for _, p := range d.Passed {
		b.WriteString("\n✓ ")
		b.WriteString(p)
	}
	if d.Failed != "" {
		b.WriteString("\n✗ ")
		b.WriteString(d.Failed)
	}
	return b.String()
}

// Execute implements ToolExecutor interface.
func (t *DiagnoseTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	return t.Run(ctx).String(), nil
}

// Run performs the diagnosis with the room taken from ctx. An unknown room
// falls back to the unscoped listing.
func (t *DiagnoseTool) Run(ctx context.Context) Diagnosis {
	var d Diagnosis
	backend := "the backend"
	if b, ok := t.deps.Repo.(baseURLer); ok {
		backend = b.BaseURL()
	}

	status, err := t.deps.Repo.Health(ctx)
	if err != nil {
		t.deps.Logger.Error("backend health check failed", "error", err)
		d.Failed = fmt.Sprintf("Cannot reach %s. Error: %s", backend, err)
		return d
	}
	if status.Healthy() {
		d.Passed = append(d.Passed, fmt.Sprintf("Backend reachable at %s (%d ms)", backend, status.Latency.Milliseconds()))
	} else {
		t.deps.Logger.Warn("backend health check returned non-200", "status", status.StatusCode)
		d.Passed = append(d.Passed, fmt.Sprintf("Backend reachable at %s, but its health check returned HTTP %d", backend, status.StatusCode))
	}

	room := t.deps.room(ctx)
	var docs []models.Document
	scope := "in room '" + room + "'"
	if room == docaccess.UnknownRoom {
		scope = "on the backend"
		docs, err = t.deps.Repo.ListAll(ctx)
	} else {
		docs, err = t.deps.Repo.ListByRoom(ctx, room)
	}
	if err != nil {
		t.deps.Logger.Error("document listing failed", "room", room, "error", err)
		d.Failed = fmt.Sprintf("Cannot list documents %s. Error: %s", scope, err)
		return d
	}
	d.Passed = append(d.Passed, fmt.Sprintf("Found %d documents %s", len(docs), scope))

	if len(docs) == 0 {
		d.Passed = append(d.Passed, "No documents are currently uploaded, so content access was not tested")
		return d
	}

	first := docs[0]
	doc, err := t.deps.Repo.GetContent(ctx, contentRoom(room), first.ID)
	if err != nil {
		t.deps.Logger.Error("document content access failed", "document_id", first.ID, "error", err)
		d.Failed = fmt.Sprintf("Failed to access content of '%s'. Error: %s", first.DisplayName(), err)
		return d
	}
	d.Passed = append(d.Passed, fmt.Sprintf("Accessed content from '%s' (%d characters)", doc.DisplayName(), utf8.RuneCountInString(doc.Content)))
	return d
}

// contentRoom drops the unknown-room sentinel so the fetch is not scoped to it.
func contentRoom(room string) string {
	if room == docaccess.UnknownRoom {
		return ""
	}
	return room
}
