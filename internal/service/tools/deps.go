package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"vocastant/internal/domain"
	"vocastant/internal/domain/repositories"
	"vocastant/internal/service/docaccess"
)

// Dependencies bundles the collaborators every document tool needs.
type Dependencies struct {
	Repo     repositories.DocumentRepository
	Rooms    *docaccess.RoomProvider
	Resolver *docaccess.Resolver
	Logger   *slog.Logger
}

// NewDependencies wires a room provider and resolver around repo.
// ambient is the last-resort room accessor and may be nil.
func NewDependencies(repo repositories.DocumentRepository, ambient func() (string, bool), logger *slog.Logger) Dependencies {
	if logger == nil {
		logger = slog.Default()
	}
	return Dependencies{
		Repo:     repo,
		Rooms:    docaccess.NewRoomProvider(ambient, logger),
		Resolver: docaccess.NewResolver(repo, logger),
		Logger:   logger,
	}
}

func (d Dependencies) room(ctx context.Context) string {
	return d.Rooms.Resolve(ctx)
}

// stringParam returns a trimmed string parameter; ok is false when it is absent or blank.
func stringParam(input map[string]interface{}, key string) (string, bool) {
	raw, exists := input[key]
	if !exists || raw == nil {
		return "", false
	}
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int, int64, bool:
		s = fmt.Sprint(v)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// failureText turns an access error into actionable text for the assistant.
func failureText(lead string, err error) string {
	var accessErr *domain.AccessError
	if errors.As(err, &accessErr) && accessErr.Op == docaccess.OpResolve {
		return fmt.Sprintf("%s Error: %s. Say \"list documents\" to hear what is available in this room.", lead, err)
	}
	return fmt.Sprintf("%s Error: %s. Please try again in a moment, or ask me to test document access.", lead, err)
}
