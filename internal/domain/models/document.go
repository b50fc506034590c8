package models

import (
	"strings"
	"time"
)

// UploadedDocumentName is shown for files whose name is a synthetic "document-<n>" upload id.
const UploadedDocumentName = "Uploaded Document"

// Document is one uploaded file as reported by the document backend.
type Document struct {
	ID             string     `json:"id"`
	OriginalName   string     `json:"originalName"`
	Content        string     `json:"content,omitempty"` // extracted text, empty in listings
	UploadedAt     *time.Time `json:"uploadedAt,omitempty"`
	WordCount      int        `json:"wordCount,omitempty"`
	CharacterCount int        `json:"characterCount,omitempty"`
	Type           string     `json:"type,omitempty"`
}

// HasContent reports whether the document carries extracted text.
func (d *Document) HasContent() bool {
	return d.Content != ""
}

// DisplayName returns the name used when talking about the document.
func (d *Document) DisplayName() string {
	return ReadableName(d.OriginalName)
}

// ReadableName strips a trailing .pdf/.docx/.txt extension and hides synthetic upload names.
func ReadableName(name string) string {
	switch {
	case name == "":
		return "Unknown Document"
	case strings.HasPrefix(name, "document-"):
		return UploadedDocumentName
	case strings.HasSuffix(name, ".pdf"):
		return strings.TrimSuffix(name, ".pdf")
	case strings.HasSuffix(name, ".docx"):
		return strings.TrimSuffix(name, ".docx")
	case strings.HasSuffix(name, ".txt"):
		return strings.TrimSuffix(name, ".txt")
	default:
		return name
	}
}

// Analysis is the result of the backend's question-driven analyze endpoint.
type Analysis struct {
	DocumentID    string                 `json:"documentId"`
	Question      string                 `json:"question"`
	OriginalName  string                 `json:"originalName,omitempty"`
	ExtractedText string                 `json:"extractedText"`
	Fields        map[string]interface{} `json:"fields,omitempty"` // remaining analysis fields, passed through
}

// HealthStatus is the outcome of a reachability probe.
type HealthStatus struct {
	StatusCode int           `json:"statusCode"`
	Latency    time.Duration `json:"latency"`
}

// Healthy reports whether the probe got a 200.
func (h HealthStatus) Healthy() bool {
	return h.StatusCode == 200
}
