package repositories

import (
	"context"

	"vocastant/internal/domain/models"
)

// DocumentRepository defines read-only access to the document backend.
// Every error returned is a *domain.AccessError.
type DocumentRepository interface {
	// ListByRoom lists the documents uploaded to a room (no content)
	ListByRoom(ctx context.Context, room string) ([]models.Document, error)

	// ListAll lists every document the backend knows about (no content)
	ListAll(ctx context.Context) ([]models.Document, error)

	// GetContent fetches a document with its extracted text.
	// The returned document always has non-empty Content.
	GetContent(ctx context.Context, room, documentID string) (*models.Document, error)

	// Analyze runs the backend's analyze endpoint for a question.
	// ExtractedText is always populated, falling back to a content fetch.
	Analyze(ctx context.Context, room, documentID, question string) (*models.Analysis, error)

	// Health probes the backend's health endpoint
	Health(ctx context.Context) (models.HealthStatus, error)
}
