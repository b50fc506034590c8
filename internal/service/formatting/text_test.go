package formatting

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		maxLength     int
		boundaryAware bool
		want          string
	}{
		{
			name:      "short content unchanged",
			content:   "Hello world.",
			maxLength: 100,
			want:      "Hello world.",
		},
		{
			name:      "exact length unchanged",
			content:   "abcde",
			maxLength: 5,
			want:      "abcde",
		},
		{
			name:      "hard cut",
			content:   "abcdefghij",
			maxLength: 4,
			want:      "abcd" + TruncationMarker,
		},
		{
			name:          "boundary past seventy percent",
			content:       "aaaaaaaa. bbbbbbbbbb",
			maxLength:     10,
			boundaryAware: true,
			want:          "aaaaaaaa." + TruncationMarker,
		},
		{
			name:          "boundary exactly at seventy percent",
			content:       "aaaaaaa! bbbbbbbbbb",
			maxLength:     10,
			boundaryAware: true,
			want:          "aaaaaaa!" + TruncationMarker,
		},
		{
			name:          "boundary too early keeps hard prefix",
			content:       "aa. bbbbbbbbbbbbbbb",
			maxLength:     10,
			boundaryAware: true,
			want:          "aa. bbbbbb" + TruncationMarker,
		},
		{
			name:          "no sentence mark keeps hard prefix",
			content:       "abcdefghijklmnop",
			maxLength:     10,
			boundaryAware: true,
			want:          "abcdefghij" + TruncationMarker,
		},
		{
			name:          "question mark counts",
			content:       "What is it? Something else entirely",
			maxLength:     12,
			boundaryAware: true,
			want:          "What is it?" + TruncationMarker,
		},
		{
			name:      "counts runes not bytes",
			content:   "héllo wörld",
			maxLength: 5,
			want:      "héllo" + TruncationMarker,
		},
		{
			name:      "non-positive max is a no-op",
			content:   "anything",
			maxLength: 0,
			want:      "anything",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.content, tt.maxLength, tt.boundaryAware)
			if got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate_LengthBound(t *testing.T) {
	content := strings.Repeat("The quick brown fox jumps. ", 200)
	markerLen := utf8.RuneCountInString(TruncationMarker)

	for _, maxLength := range []int{1, 10, 57, 100, 999} {
		for _, boundary := range []bool{false, true} {
			got := Truncate(content, maxLength, boundary)
			if n := utf8.RuneCountInString(got); n > maxLength+markerLen {
				t.Errorf("Truncate(max=%d, boundary=%v) length %d exceeds %d", maxLength, boundary, n, maxLength+markerLen)
			}
			if !isTruncated(got) {
				t.Errorf("Truncate(max=%d) missing marker", maxLength)
			}
		}
	}
}

func TestTruncate_IdempotentOnShortResult(t *testing.T) {
	once := Truncate(strings.Repeat("x", 50), 10, true)
	twice := Truncate(once, 100, true)
	if once != twice {
		t.Errorf("re-truncation changed result: %q -> %q", once, twice)
	}
}

func TestPreview(t *testing.T) {
	if got := Preview("short", 10); got != "short" {
		t.Errorf("Preview() = %q", got)
	}
	if got := Preview("abcdefghijkl", 10); got != "abcdefghij..." {
		t.Errorf("Preview() = %q", got)
	}
}

func TestCleanForSpeech(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "markdown and json",
			in:   `*Hello* {"name": "doc-1"}`,
			want: "Hello name: doc 1",
		},
		{
			name: "whitespace collapsed",
			in:   "line one\n\n\tline   two",
			want: "line one line two",
		},
		{
			name: "field names rewritten",
			in:   `{"originalName": "Report", "wordCount": 12, "uploadedAt": "today"}`,
			want: "name: Report words: 12 uploaded: today",
		},
		{
			name: "synthetic document names",
			in:   "document-1712 is ready",
			want: "Document 1712 is ready",
		},
		{
			name: "lists and commas",
			in:   "[a,b,c]",
			want: "a b c",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanForSpeech(tt.in)
			if got != tt.want {
				t.Errorf("CleanForSpeech(%q) = %q, want %q", tt.in, got, tt.want)
			}
			for _, forbidden := range []string{"*", "{", "}", `"`, "  "} {
				if strings.Contains(got, forbidden) {
					t.Errorf("CleanForSpeech(%q) still contains %q", tt.in, forbidden)
				}
			}
		})
	}
}

func TestReadableName(t *testing.T) {
	tests := map[string]string{
		"Report.pdf":         "Report",
		"Notes.txt":          "Notes",
		"Plan.docx":          "Plan",
		"document-17123.pdf": "Uploaded Document",
		"archive.tar.gz":     "archive.tar.gz",
		"":                   "Unknown Document",
	}
	for in, want := range tests {
		if got := ReadableName(in); got != want {
			t.Errorf("ReadableName(%q) = %q, want %q", in, got, want)
		}
	}
}
