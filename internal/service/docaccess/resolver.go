package docaccess

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"vocastant/internal/domain"
	"vocastant/internal/domain/models"
	"vocastant/internal/domain/repositories"
)

// OpResolve is the AccessError operation name for identifier resolution.
const OpResolve = "resolve"

// latestSynonyms are identifiers that mean "the most recently uploaded document".
var latestSynonyms = map[string]bool{
	"latest":      true,
	"most recent": true,
	"newest":      true,
}

// opaqueID matches identifiers shaped like backend ids (uuid or hex runs).
var opaqueID = regexp.MustCompile(`^[0-9a-fA-F-]{8,}$`)

// Resolver maps a user-supplied identifier to a document id within a room.
type Resolver struct {
	repo   repositories.DocumentRepository
	logger *slog.Logger
}

// NewResolver creates a new identifier resolver.
func NewResolver(repo repositories.DocumentRepository, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{repo: repo, logger: logger}
}

// IsLatest reports whether identifier is one of the "latest" synonyms.
func IsLatest(identifier string) bool {
	return latestSynonyms[strings.ToLower(strings.TrimSpace(identifier))]
}

// LooksLikeID reports whether identifier has the shape of an opaque document id.
func LooksLikeID(identifier string) bool {
	return opaqueID.MatchString(strings.TrimSpace(identifier))
}

// Resolve returns the document id for identifier in room. Precedence:
// latest synonym, id-shaped identifier (returned verbatim without a lookup),
// exact extension-stripped name, then substring of the name.
func (r *Resolver) Resolve(ctx context.Context, room, identifier string) (string, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return "", domain.NewAccessError(OpResolve, "no document identifier given")
	}

	if IsLatest(trimmed) {
		docs, err := r.list(ctx, room)
		if err != nil {
			return "", err
		}
		latest := Latest(docs)
		if latest == nil {
			return "", domain.NewAccessError(OpResolve, "no documents uploaded in this room")
		}
		r.logger.Debug("identifier resolved", "room", room, "identifier", trimmed, "match", "latest", "document_id", latest.ID)
		return latest.ID, nil
	}

	if LooksLikeID(trimmed) {
		return trimmed, nil
	}

	docs, err := r.list(ctx, room)
	if err != nil {
		return "", err
	}

	doc, match := Match(docs, trimmed)
	if doc == nil {
		return "", domain.NewAccessError(OpResolve, "no document matches %q in this room", trimmed)
	}
	r.logger.Debug("identifier resolved", "room", room, "identifier", trimmed, "match", match, "document_id", doc.ID)
	return doc.ID, nil
}

func (r *Resolver) list(ctx context.Context, room string) ([]models.Document, error) {
	docs, err := r.repo.ListByRoom(ctx, room)
	if err != nil {
		return nil, domain.WrapAccessError(OpResolve, err, "failed to list documents")
	}
	return docs, nil
}

// Latest returns the most recently uploaded document, or nil for an empty set.
// Missing timestamps sort earliest and equal timestamps keep listing order.
func Latest(docs []models.Document) *models.Document {
	if len(docs) == 0 {
		return nil
	}
	sorted := make([]models.Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].UploadedAt, sorted[j].UploadedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return &sorted[0]
}

// Match finds the first exact normalized-name match, else the first document
// whose normalized name contains the normalized identifier. The second
// return value names the kind of match ("exact" or "partial").
func Match(docs []models.Document, identifier string) (*models.Document, string) {
	target := NormalizeName(identifier)
	if target == "" {
		return nil, ""
	}
	for i := range docs {
		if NormalizeName(docs[i].OriginalName) == target {
			return &docs[i], "exact"
		}
	}
	for i := range docs {
		if strings.Contains(NormalizeName(docs[i].OriginalName), target) {
			return &docs[i], "partial"
		}
	}
	return nil, ""
}

// NormalizeName strips everything after the last '.' and lower-cases.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return strings.ToLower(name)
}
