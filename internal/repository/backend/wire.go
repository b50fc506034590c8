package backend

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"vocastant/internal/domain/models"
)

// listResponse is the envelope of GET /api/documents[/room/{room}]
type listResponse struct {
	Success   bool           `json:"success"`
	Documents []wireDocument `json:"documents"`
	Error     string         `json:"error,omitempty"`
}

// contentResponse is the envelope of GET /api/documents/{id}/content
type contentResponse struct {
	Success  bool          `json:"success"`
	Document *wireDocument `json:"document"`
	Error    string        `json:"error,omitempty"`
}

// analyzeResponse is the envelope of GET /api/documents/{id}/analyze
type analyzeResponse struct {
	Success  bool                   `json:"success"`
	Analysis map[string]interface{} `json:"analysis"`
	Error    string                 `json:"error,omitempty"`
}

type wireDocument struct {
	ID              string        `json:"id"`
	OriginalName    string        `json:"originalName"`
	Content         string        `json:"content"`
	ExtractedText   string        `json:"extractedText"`
	UploadedAt      wireTimestamp `json:"uploadedAt"`
	UploadedAtSnake wireTimestamp `json:"uploaded_at"`
	WordCount       int           `json:"wordCount"`
	Metadata        wireMetadata  `json:"metadata"`
}

type wireMetadata struct {
	WordCount      int           `json:"wordCount"`
	CharacterCount int           `json:"characterCount"`
	UploadedAt     wireTimestamp `json:"uploadedAt"`
	Type           string        `json:"type"`
}

// toModel converts the wire shape, preferring content over extractedText
// and top-level fields over metadata.
func (w *wireDocument) toModel() models.Document {
	doc := models.Document{
		ID:             w.ID,
		OriginalName:   w.OriginalName,
		Content:        w.Content,
		WordCount:      w.WordCount,
		CharacterCount: w.Metadata.CharacterCount,
		Type:           w.Metadata.Type,
	}
	if doc.Content == "" {
		doc.Content = w.ExtractedText
	}
	if doc.WordCount == 0 {
		doc.WordCount = w.Metadata.WordCount
	}
	for _, ts := range []wireTimestamp{w.UploadedAt, w.UploadedAtSnake, w.Metadata.UploadedAt} {
		if ts.Time != nil {
			doc.UploadedAt = ts.Time
			break
		}
	}
	return doc
}

// wireTimestamp accepts RFC3339 strings or epoch milliseconds.
// Anything else decodes as a missing timestamp.
type wireTimestamp struct {
	Time *time.Time
}

func (t *wireTimestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, s); err == nil {
				t.Time = &parsed
				return nil
			}
		}
		// numeric string
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			parsed := time.UnixMilli(ms).UTC()
			t.Time = &parsed
		}
		return nil
	}

	if ms, err := strconv.ParseFloat(string(data), 64); err == nil {
		parsed := time.UnixMilli(int64(ms)).UTC()
		t.Time = &parsed
	}
	return nil
}
