package tools

import (
	"context"
	"fmt"
	"strings"

	"vocastant/internal/service/docaccess"
)

// ListTool implements 'list_uploaded_documents'.
type ListTool struct {
	deps Dependencies
}

// NewListTool creates a new ListTool instance.
func NewListTool(deps Dependencies) *ListTool {
	return &ListTool{deps: deps}
}

// Execute implements ToolExecutor interface.
// Lists the current room's documents by display name; ids are never included.
func (t *ListTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	room := t.deps.room(ctx)
	if room == docaccess.UnknownRoom {
		return "I'm having trouble determining the current room, so I can't list documents yet. " +
			"Please try speaking again or rejoin the session from the website so I can detect the room.", nil
	}

	docs, err := t.deps.Repo.ListByRoom(ctx, room)
	if err != nil {
		t.deps.Logger.Warn("listing documents failed", "room", room, "error", err)
		return fmt.Sprintf("I found your room ('%s') but couldn't access its documents. Error: %s. "+
			"Try uploading a document first, then ask me to list documents again.", room, err), nil
	}

	if len(docs) == 0 {
		return fmt.Sprintf("No documents found in room '%s'. "+
			"Please upload a document first, then ask me to list documents again.", room), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I see %d document(s) in this room:\n", len(docs))
	for i := range docs {
		b.WriteString("• ")
		b.WriteString(docs[i].DisplayName())
		if docs[i].WordCount > 0 {
			fmt.Fprintf(&b, " (%d words)", docs[i].WordCount)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nTell me which one to open by name, and I won't read any IDs aloud.")

	t.deps.Logger.Debug("documents listed", "room", room, "count", len(docs))
	return b.String(), nil
}
