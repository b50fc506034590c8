package tools

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"vocastant/internal/domain/models"
	"vocastant/internal/service/formatting"
)

// SearchTool implements 'search_documents_for_question': a keyword search
// over every document in the room. A document is relevant when any
// whitespace-separated token of the question occurs in it as a whole word.
type SearchTool struct {
	deps   Dependencies
	config *ToolConfig
}

// NewSearchTool creates a new SearchTool instance.
func NewSearchTool(deps Dependencies, config *ToolConfig) *SearchTool {
	if config == nil {
		config = DefaultToolConfig()
	}
	return &SearchTool{deps: deps, config: config}
}

type searchHit struct {
	doc      *models.Document
	relevant bool
	failed   bool
}

// Execute implements ToolExecutor interface.
// Input parameters:
//   - question (string, required): the question to look for
func (t *SearchTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	question, ok := stringParam(input, "question")
	if !ok {
		return "What should I search the documents for?", nil
	}

	room := t.deps.room(ctx)
	docs, err := t.deps.Repo.ListByRoom(ctx, room)
	if err != nil {
		t.deps.Logger.Warn("search listing failed", "room", room, "error", err)
		return failureText("I'm having trouble searching through the documents.", err), nil
	}
	if len(docs) == 0 {
		return "No documents are available to search through in this room. Please upload documents first.", nil
	}

	tokens := QuestionTokens(question)
	hits := make([]searchHit, len(docs))

	var g errgroup.Group
	g.SetLimit(t.config.searchConcurrency())
	for i := range docs {
		g.Go(func() error {
			doc, err := t.deps.Repo.GetContent(ctx, room, docs[i].ID)
			if err != nil {
				t.deps.Logger.Warn("could not search document", "room", room, "document_id", docs[i].ID, "error", err)
				hits[i].failed = true
				return nil
			}
			if doc.OriginalName == "" {
				doc.OriginalName = docs[i].OriginalName
			}
			hits[i] = searchHit{doc: doc, relevant: ContainsAnyWord(doc.Content, tokens)}
			return nil
		})
	}
	_ = g.Wait() // workers never fail; unreadable documents are skipped

	var relevant []*models.Document
	failed := 0
	for _, hit := range hits {
		switch {
		case hit.failed:
			failed++
		case hit.relevant:
			relevant = append(relevant, hit.doc)
		}
	}

	t.deps.Logger.Info("documents searched",
		"room", room,
		"searched", len(docs),
		"relevant", len(relevant),
		"unreadable", failed,
	)

	switch len(relevant) {
	case 0:
		msg := fmt.Sprintf("I searched through %d documents but couldn't find specific content related to your question: '%s'.", len(docs), question)
		if failed > 0 {
			msg += fmt.Sprintf(" %d of them could not be read.", failed)
		}
		return msg + " You can ask me to analyze any document directly.", nil
	case 1:
		doc := relevant[0]
		return fmt.Sprintf("DOCUMENT CONTENT FOR ANALYSIS:\n\nDocument: %s\nQuestion: %s\n\n%s\n\n"+
			"You now have access to this document's content. Please analyze it and answer the question based on the actual text above.",
			doc.DisplayName(), question, formatting.Truncate(doc.Content, t.config.AnalyzeMaxLength, true)), nil
	}

	shown := relevant
	if len(shown) > t.config.SearchMaxResults {
		shown = shown[:t.config.SearchMaxResults]
	}
	sections := make([]string, 0, len(shown))
	for _, doc := range shown {
		sections = append(sections, fmt.Sprintf("--- %s ---\n%s", doc.DisplayName(), formatting.Preview(doc.Content, t.config.SearchPreviewLength)))
	}

	return fmt.Sprintf("DOCUMENT CONTENT FOR ANALYSIS:\n\nI found %d documents relevant to your question: \"%s\"\n\n%s\n\n"+
		"You now have access to these documents' content. Please analyze them and answer the question based on the actual text above.",
		len(relevant), question, strings.Join(sections, "\n\n")), nil
}

// sentencePunctuation is stripped from the end of question tokens.
const sentencePunctuation = "?.!,"

func (c *ToolConfig) searchConcurrency() int {
	if c.SearchConcurrency < 1 {
		return 1
	}
	return c.SearchConcurrency
}

// QuestionTokens lower-cases the question, splits it on whitespace and trims
// trailing sentence punctuation from each token. Other symbols are kept, so
// "c++" stays "c++". Empty tokens are dropped.
func QuestionTokens(question string) []string {
	fields := strings.Fields(strings.ToLower(question))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if tok := strings.TrimRight(f, sentencePunctuation); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// ContainsAnyWord reports whether any token occurs in content as a whole word,
// case-insensitively. Tokens are expected lower-cased (see QuestionTokens).
func ContainsAnyWord(content string, tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	lower := strings.ToLower(content)
	for _, tok := range tokens {
		if containsWord(lower, tok) {
			return true
		}
	}
	return false
}

func containsWord(text, word string) bool {
	for offset := 0; offset <= len(text)-len(word); {
		idx := strings.Index(text[offset:], word)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(word)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		offset = start + 1
	}
	return false
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return notWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return notWordRune(r)
}

func notWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
