package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocastant/internal/service/tools"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_DIR", "")

	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/documents/room/standup":
			io.WriteString(w, `{"success": true, "documents": [{"id": "a1", "originalName": "Roadmap.pdf", "wordCount": 40}]}`)
		case "/api/documents/a1/content":
			io.WriteString(w, `{"success": true, "document": {"id": "a1", "originalName": "Roadmap.pdf", "content": "Ship the **beta** in May."}}`)
		default:
			io.WriteString(w, `{"success": true, "documents": []}`)
		}
	}))
	t.Cleanup(srv.Close)
	t.Setenv("BACKEND_URL", srv.URL)
	return srv
}

func TestRootCommand_Subcommands(t *testing.T) {
	var names []string
	for _, cmd := range NewRootCommand().Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"serve", "mcp", "call", "tools"} {
		assert.Contains(t, names, want)
	}
}

func TestToolsCommand(t *testing.T) {
	out, err := execute(t, "tools")
	require.NoError(t, err)
	for _, name := range tools.DocumentToolNames {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "document_id (required)")

	out, err = execute(t, "tools", "--format", "provider")
	require.NoError(t, err)
	var exported []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	assert.Len(t, exported, len(tools.DocumentToolNames))

	_, err = execute(t, "tools", "--format", "yaml")
	assert.Error(t, err)
}

func TestCallCommand(t *testing.T) {
	fakeBackend(t)

	t.Run("help needs no room", func(t *testing.T) {
		out, err := execute(t, "call", tools.ToolHelp)
		require.NoError(t, err)
		assert.Contains(t, out, "DOCUMENT ANALYSIS HELP")
	})

	t.Run("list in room", func(t *testing.T) {
		out, err := execute(t, "call", tools.ToolListDocuments, "--room", "standup")
		require.NoError(t, err)
		assert.Contains(t, out, "Roadmap (40 words)")
	})

	t.Run("analyze with args and speech", func(t *testing.T) {
		out, err := execute(t, "call", tools.ToolAnalyzeDocument, "--room", "standup", "--arg", "document_id=roadmap", "--speech")
		require.NoError(t, err)
		assert.Contains(t, out, "Ship the beta in May.")
		assert.NotContains(t, out, "**")
	})

	t.Run("unknown tool", func(t *testing.T) {
		_, err := execute(t, "call", "drop_tables")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tool not found: drop_tables")
	})

	t.Run("bad arg", func(t *testing.T) {
		_, err := execute(t, "call", tools.ToolAnalyzeDocument, "--arg", "document_id")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "want key=value")
	})
}

func TestCallCommand_InvalidConfig(t *testing.T) {
	t.Setenv("BACKEND_URL", "not a url")
	_, err := execute(t, "call", tools.ToolHelp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestParseArgs(t *testing.T) {
	input, err := parseArgs([]string{"document_id=report", "question=a=b?", " spaced =x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"document_id": "report",
		"question":    "a=b?",
		"spaced":      "x",
	}, input)

	_, err = parseArgs([]string{"=value"})
	assert.Error(t, err)
}

func TestNewHTTPHandler_Routes(t *testing.T) {
	fakeBackend(t)
	t.Setenv("LOG_DIR", "")

	a, err := newApp(io.Discard, "")
	require.NoError(t, err)
	defer a.close()

	h, err := newHTTPHandler(a)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/tools/list_uploaded_documents", strings.NewReader(`{"input": {}}`))
	req.Header.Set("X-Room-Name", "standup")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Roadmap")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
