package tools

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocastant/internal/domain"
	"vocastant/internal/domain/models"
	"vocastant/internal/service/docaccess"
	"vocastant/internal/service/formatting"
)

// memRepo is an in-memory DocumentRepository.
type memRepo struct {
	mu sync.Mutex

	rooms      map[string][]models.Document
	contents   map[string]string // document id -> content
	listErr    error
	contentErr map[string]error
	healthErr  error
	health     int
	delay      time.Duration

	inFlight    int32
	maxInFlight int32
	calls       []string
}

func newMemRepo() *memRepo {
	return &memRepo{
		rooms:      map[string][]models.Document{},
		contents:   map[string]string{},
		contentErr: map[string]error{},
		health:     200,
	}
}

func (m *memRepo) add(room, id, name, content string, uploadedMs int64) {
	ts := time.UnixMilli(uploadedMs)
	m.rooms[room] = append(m.rooms[room], models.Document{ID: id, OriginalName: name, UploadedAt: &ts, WordCount: len(strings.Fields(content))})
	m.contents[id] = content
}

func (m *memRepo) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *memRepo) callLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *memRepo) ListByRoom(ctx context.Context, room string) ([]models.Document, error) {
	m.record("list:" + room)
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rooms[room], nil
}

func (m *memRepo) ListAll(ctx context.Context) ([]models.Document, error) {
	m.record("list_all")
	if m.listErr != nil {
		return nil, m.listErr
	}
	var all []models.Document
	for _, docs := range m.rooms {
		all = append(all, docs...)
	}
	return all, nil
}

func (m *memRepo) GetContent(ctx context.Context, room, id string) (*models.Document, error) {
	m.record("content:" + room + ":" + id)

	n := atomic.AddInt32(&m.inFlight, 1)
	defer atomic.AddInt32(&m.inFlight, -1)
	for {
		peak := atomic.LoadInt32(&m.maxInFlight)
		if n <= peak || atomic.CompareAndSwapInt32(&m.maxInFlight, peak, n) {
			break
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	if err := m.contentErr[id]; err != nil {
		return nil, err
	}
	content, ok := m.contents[id]
	if !ok {
		return nil, &domain.AccessError{Op: "fetch_content", Status: 404, Message: "document not found (HTTP 404)"}
	}
	doc := models.Document{ID: id, Content: content}
	for _, d := range m.rooms[room] {
		if d.ID == id {
			doc.OriginalName = d.OriginalName
		}
	}
	return &doc, nil
}

func (m *memRepo) Analyze(ctx context.Context, room, id, question string) (*models.Analysis, error) {
	m.record("analyze:" + id + ":" + question)
	doc, err := m.GetContent(ctx, room, id)
	if err != nil {
		return nil, err
	}
	return &models.Analysis{DocumentID: id, Question: question, OriginalName: doc.OriginalName, ExtractedText: doc.Content}, nil
}

func (m *memRepo) Health(ctx context.Context) (models.HealthStatus, error) {
	if m.healthErr != nil {
		return models.HealthStatus{}, m.healthErr
	}
	return models.HealthStatus{StatusCode: m.health, Latency: time.Millisecond}, nil
}

func (m *memRepo) BaseURL() string { return "http://backend.test" }

func newTestRegistry(repo *memRepo, config *ToolConfig) *ToolRegistry {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps := NewDependencies(repo, nil, logger)
	return NewToolRegistryBuilder().WithConfig(config).WithDocumentTools(deps).WithHelp().Build()
}

func run(t *testing.T, registry *ToolRegistry, ctx context.Context, name string, input map[string]interface{}) string {
	t.Helper()
	result := registry.Execute(ctx, ToolCall{ID: "call", Name: name, Input: input})
	require.False(t, result.IsError, "tool %s failed: %v", name, result.Error)
	text, ok := result.Result.(string)
	require.True(t, ok, "tool %s returned %T", name, result.Result)
	return text
}

func inRoom(room string) context.Context {
	return docaccess.WithRoom(context.Background(), room)
}

func scenario() *memRepo {
	repo := newMemRepo()
	repo.add("r1", "a1", "Report.pdf", "The climate report. Emissions rose sharply this year.", 100)
	repo.add("r1", "b2", "Notes.txt", "Meeting notes about the budget and hiring.", 200)
	return repo
}

func TestBuildWithDefaults_RegistersEveryTool(t *testing.T) {
	registry := BuildWithDefaults(NewDependencies(newMemRepo(), nil, nil))
	for _, name := range DocumentToolNames {
		assert.NotNil(t, registry.Get(name), name)
	}
	assert.Len(t, registry.Names(), len(DocumentToolNames))
}

func TestListTool(t *testing.T) {
	t.Run("lists display names without ids", func(t *testing.T) {
		repo := scenario()
		repo.add("r1", "c3", "document-1699999.pdf", "x", 300)
		out := run(t, newTestRegistry(repo, nil), inRoom("r1"), ToolListDocuments, nil)

		assert.Contains(t, out, "I see 3 document(s) in this room")
		assert.Contains(t, out, "• Report (")
		assert.Contains(t, out, "• Notes (")
		assert.Contains(t, out, "• Uploaded Document")
		assert.NotContains(t, out, "a1")
		assert.NotContains(t, out, "b2")
	})

	t.Run("unknown room asks to rejoin", func(t *testing.T) {
		repo := scenario()
		out := run(t, newTestRegistry(repo, nil), context.Background(), ToolListDocuments, nil)

		assert.Contains(t, out, "trouble determining the current room")
		assert.Empty(t, repo.callLog(), "no backend call without a room")
	})

	t.Run("empty room", func(t *testing.T) {
		out := run(t, newTestRegistry(scenario(), nil), inRoom("empty"), ToolListDocuments, nil)
		assert.Contains(t, out, "No documents found in room 'empty'")
		assert.Contains(t, out, "upload a document")
	})

	t.Run("backend failure is reported as text", func(t *testing.T) {
		repo := scenario()
		repo.listErr = domain.NewAccessError("list_documents", "failed to fetch documents (HTTP 500)")
		out := run(t, newTestRegistry(repo, nil), inRoom("r1"), ToolListDocuments, nil)
		assert.Contains(t, out, "couldn't access its documents")
		assert.Contains(t, out, "HTTP 500")
	})
}

func TestAnalyzeTool(t *testing.T) {
	t.Run("by partial name without question", func(t *testing.T) {
		repo := scenario()
		out := run(t, newTestRegistry(repo, nil), inRoom("r1"), ToolAnalyzeDocument, map[string]interface{}{"document_id": "rep"})

		assert.True(t, strings.HasPrefix(out, "DOCUMENT CONTENT:"))
		assert.Contains(t, out, "Document: Report")
		assert.Contains(t, out, "The climate report.")
		assert.Contains(t, repo.callLog(), "content:r1:a1")
	})

	t.Run("with question uses the analyze endpoint", func(t *testing.T) {
		repo := scenario()
		out := run(t, newTestRegistry(repo, nil), inRoom("r1"), ToolAnalyzeDocument, map[string]interface{}{
			"document_id": "Notes",
			"question":    "who is hiring?",
		})

		assert.True(t, strings.HasPrefix(out, "DOCUMENT ANALYSIS:"))
		assert.Contains(t, out, "Question: who is hiring?")
		assert.Contains(t, repo.callLog(), "analyze:b2:who is hiring?")
	})

	t.Run("truncates to the analyze budget", func(t *testing.T) {
		repo := newMemRepo()
		repo.add("r1", "a1", "Long.txt", strings.Repeat("word ", 2000), 1)
		config := DefaultToolConfig()
		config.AnalyzeMaxLength = 100

		out := run(t, newTestRegistry(repo, config), inRoom("r1"), ToolAnalyzeDocument, map[string]interface{}{"document_id": "long"})
		assert.Contains(t, out, formatting.TruncationMarker)
		assert.Less(t, len(out), 400)
	})

	t.Run("unmatched identifier", func(t *testing.T) {
		out := run(t, newTestRegistry(scenario(), nil), inRoom("r1"), ToolAnalyzeDocument, map[string]interface{}{"document_id": "zzz"})
		assert.Contains(t, out, "trouble finding that document")
		assert.Contains(t, out, "list documents")
	})

	t.Run("id-shaped identifier that does not exist", func(t *testing.T) {
		out := run(t, newTestRegistry(scenario(), nil), inRoom("r1"), ToolAnalyzeDocument, map[string]interface{}{"document_id": "deadbeef-0000"})
		assert.Contains(t, out, "trouble accessing that document")
		assert.Contains(t, out, "HTTP 404")
	})

	t.Run("missing identifier", func(t *testing.T) {
		out := run(t, newTestRegistry(scenario(), nil), inRoom("r1"), ToolAnalyzeDocument, map[string]interface{}{})
		assert.Contains(t, out, "Which document")
	})
}

func TestLatestTool(t *testing.T) {
	repo := scenario()
	registry := newTestRegistry(repo, nil)

	out := run(t, registry, inRoom("r1"), ToolAnalyzeLatest, nil)
	assert.Contains(t, out, "Document: Notes")

	out = run(t, registry, inRoom("empty"), ToolAnalyzeLatest, map[string]interface{}{"question": "anything?"})
	assert.Contains(t, out, "trouble accessing the latest document")
	assert.Contains(t, out, "no documents uploaded")
}

func TestSummaryTool(t *testing.T) {
	repo := newMemRepo()
	repo.add("r1", "a1", "Report.pdf", strings.Repeat("A sentence here. ", 300), 1)

	out := run(t, newTestRegistry(repo, nil), inRoom("r1"), ToolSummary, map[string]interface{}{"document_id": "report"})

	assert.True(t, strings.HasPrefix(out, "DOCUMENT FOR SUMMARY:"))
	assert.Contains(t, out, "Document: Report")
	assert.Contains(t, out, formatting.TruncationMarker)
	assert.Contains(t, out, "comprehensive summary")
}

func TestInjectTool(t *testing.T) {
	repo := newMemRepo()
	content := strings.Repeat("x", 50)
	repo.add("r1", "a1", "Data.docx", content, 1)
	config := DefaultToolConfig()
	config.MaxContentSize = 20

	out := run(t, newTestRegistry(repo, config), inRoom("r1"), ToolInject, map[string]interface{}{"document_id": "latest"})

	assert.True(t, strings.HasPrefix(out, "DOCUMENT INJECTED INTO CONTEXT:"))
	assert.Contains(t, out, "Document: Data")
	assert.Contains(t, out, "Content Length: 50 characters")
	assert.Contains(t, out, strings.Repeat("x", 20)+formatting.TruncationMarker)
	assert.NotContains(t, out, strings.Repeat("x", 21))
}

func TestSearchTool(t *testing.T) {
	t.Run("single relevant document returns its content", func(t *testing.T) {
		out := run(t, newTestRegistry(scenario(), nil), inRoom("r1"), ToolSearch, map[string]interface{}{"question": "climate change"})

		assert.True(t, strings.HasPrefix(out, "DOCUMENT CONTENT FOR ANALYSIS:"))
		assert.Contains(t, out, "Document: Report")
		assert.Contains(t, out, "Emissions rose sharply this year.")
		assert.NotContains(t, out, "---")
	})

	t.Run("multiple relevant documents in listing order", func(t *testing.T) {
		repo := newMemRepo()
		for i := 0; i < 5; i++ {
			repo.add("r1", fmt.Sprintf("d%d", i), fmt.Sprintf("Doc %d.txt", i), "budget "+strings.Repeat("y", 2000), int64(i))
		}
		repo.delay = 5 * time.Millisecond

		out := run(t, newTestRegistry(repo, nil), inRoom("r1"), ToolSearch, map[string]interface{}{"question": "What is the budget?"})

		assert.Contains(t, out, "I found 5 documents relevant")
		first := strings.Index(out, "--- Doc 0 ---")
		second := strings.Index(out, "--- Doc 1 ---")
		third := strings.Index(out, "--- Doc 2 ---")
		require.True(t, first >= 0 && second > first && third > second, out)
		assert.NotContains(t, out, "--- Doc 3 ---")
		assert.Contains(t, out, strings.Repeat("y", 993)+"...")
		assert.NotContains(t, out, strings.Repeat("y", 995))
	})

	t.Run("whole words only", func(t *testing.T) {
		repo := newMemRepo()
		repo.add("r1", "a1", "Cats.txt", "Concatenation is not a cat.", 1)
		repo.add("r1", "b2", "Other.txt", "Category theory.", 2)

		out := run(t, newTestRegistry(repo, nil), inRoom("r1"), ToolSearch, map[string]interface{}{"question": "cat"})
		assert.Contains(t, out, "Document: Cats")
	})

	t.Run("nothing relevant", func(t *testing.T) {
		out := run(t, newTestRegistry(scenario(), nil), inRoom("r1"), ToolSearch, map[string]interface{}{"question": "Quantum Physics"})
		assert.Contains(t, out, "I searched through 2 documents")
		assert.Contains(t, out, "'Quantum Physics'")
	})

	t.Run("unreadable documents are skipped", func(t *testing.T) {
		repo := scenario()
		repo.contentErr["a1"] = domain.NewAccessError("fetch_content", "document a1 has no content")

		out := run(t, newTestRegistry(repo, nil), inRoom("r1"), ToolSearch, map[string]interface{}{"question": "budget"})
		assert.Contains(t, out, "Document: Notes")

		out = run(t, newTestRegistry(repo, nil), inRoom("r1"), ToolSearch, map[string]interface{}{"question": "climate"})
		assert.Contains(t, out, "1 of them could not be read")
	})

	t.Run("fetches are bounded", func(t *testing.T) {
		repo := newMemRepo()
		for i := 0; i < 12; i++ {
			repo.add("r1", fmt.Sprintf("d%d", i), fmt.Sprintf("Doc %d", i), "text", int64(i))
		}
		repo.delay = 20 * time.Millisecond
		config := DefaultToolConfig()
		config.SearchConcurrency = 3

		run(t, newTestRegistry(repo, config), inRoom("r1"), ToolSearch, map[string]interface{}{"question": "text"})
		assert.LessOrEqual(t, atomic.LoadInt32(&repo.maxInFlight), int32(3))
		assert.Greater(t, atomic.LoadInt32(&repo.maxInFlight), int32(0))
	})

	t.Run("empty room", func(t *testing.T) {
		out := run(t, newTestRegistry(scenario(), nil), inRoom("nobody"), ToolSearch, map[string]interface{}{"question": "x"})
		assert.Contains(t, out, "No documents are available to search")
	})
}

func TestQuestionTokensAndWords(t *testing.T) {
	assert.Equal(t, []string{"what", "is", "climate", "change"}, QuestionTokens("What is CLIMATE change?"))
	assert.Empty(t, QuestionTokens(" ?! "))
	assert.Equal(t, []string{"c++", "(draft)"}, QuestionTokens("C++ (draft)?"))

	assert.False(t, ContainsAnyWord("See section c below.", QuestionTokens("c++")))
	assert.True(t, ContainsAnyWord("We use c++ daily", QuestionTokens("c++?")))

	assert.True(t, ContainsAnyWord("Climate, in short.", []string{"climate"}))
	assert.True(t, ContainsAnyWord("end of text: change", []string{"change"}))
	assert.False(t, ContainsAnyWord("climatechange", []string{"climate"}))
	assert.False(t, ContainsAnyWord("anything", nil))
	assert.True(t, ContainsAnyWord("Die Übersicht ist gut", []string{"übersicht"}))
}

func TestDiagnoseTool(t *testing.T) {
	t.Run("all stages pass", func(t *testing.T) {
		out := run(t, newTestRegistry(scenario(), nil), inRoom("r1"), ToolTestAccess, nil)
		assert.True(t, strings.HasPrefix(out, "Document access test successful!"))
		assert.Contains(t, out, "Backend reachable at http://backend.test")
		assert.Contains(t, out, "Found 2 documents in room 'r1'")
		assert.Contains(t, out, "Accessed content from 'Report'")
	})

	t.Run("health failure stops early", func(t *testing.T) {
		repo := scenario()
		repo.healthErr = domain.NewAccessError("health", "cannot reach backend")
		out := run(t, newTestRegistry(repo, nil), inRoom("r1"), ToolTestAccess, nil)
		assert.True(t, strings.HasPrefix(out, "Document access test failed."))
		assert.Empty(t, repo.callLog())
	})

	t.Run("content failure keeps earlier successes", func(t *testing.T) {
		repo := scenario()
		repo.contentErr["a1"] = domain.NewAccessError("fetch_content", "document a1 has no content")
		out := run(t, newTestRegistry(repo, nil), inRoom("r1"), ToolTestAccess, nil)
		assert.True(t, strings.HasPrefix(out, "Document access test partially successful."))
		assert.Contains(t, out, "✓ Found 2 documents")
		assert.Contains(t, out, "✗ Failed to access content of 'Report'")
	})

	t.Run("unknown room lists everything", func(t *testing.T) {
		repo := scenario()
		out := run(t, newTestRegistry(repo, nil), context.Background(), ToolTestAccess, nil)
		assert.Contains(t, out, "documents on the backend")
		assert.Contains(t, repo.callLog(), "list_all")
	})

	t.Run("unhealthy status still continues", func(t *testing.T) {
		repo := scenario()
		repo.health = 503
		out := run(t, newTestRegistry(repo, nil), inRoom("empty"), ToolTestAccess, nil)
		assert.Contains(t, out, "health check returned HTTP 503")
		assert.Contains(t, out, "content access was not tested")
	})
}

func TestHelpTool(t *testing.T) {
	out := run(t, newTestRegistry(newMemRepo(), nil), context.Background(), ToolHelp, nil)
	assert.Equal(t, HelpText, out)
}
