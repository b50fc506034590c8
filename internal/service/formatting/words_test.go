package formatting

import "testing"

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"plain", "the quick brown fox", 4},
		{"emphasis", "**bold** and _italic_", 3},
		{"heading", "# Quarterly Report", 2},
		{"lists", "- one\n* two\n1. three", 3},
		{"code fence", "before\n```\nfunc main() {}\n```\nafter", 2},
		{"unterminated fence", "before ```code", 2},
		{"rule", "above\n---\nbelow", 2},
		{"blockquote", "> quoted text", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.text); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
