package formatting

import (
	"strings"
	"unicode"
)

// markdownMarkers are removed before counting so "**bold**" is one word.
var markdownMarkers = strings.NewReplacer(
	"`", "",
	"**", "", "*", "",
	"__", "", "_", "",
	"~~", "",
	"#", "",
	">", "",
)

// CountWords counts the words in extracted document text, ignoring code
// fences, markdown emphasis, headings and list markers.
func CountWords(text string) int {
	text = removeCodeBlocks(text)

	count := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		if len(line) > 2 && unicode.IsDigit(rune(line[0])) && line[1] == '.' {
			line = line[2:]
		}
		line = markdownMarkers.Replace(line)

		for _, field := range strings.Fields(line) {
			if isRule(field) {
				continue
			}
			count++
		}
	}
	return count
}

// isRule reports whether field is a horizontal rule like "---".
func isRule(field string) bool {
	return strings.Trim(field, "-") == ""
}

// removeCodeBlocks drops ```...``` fenced blocks. An unterminated fence is kept.
func removeCodeBlocks(text string) string {
	for {
		start := strings.Index(text, "```")
		if start == -1 {
			return text
		}
		end := strings.Index(text[start+3:], "```")
		if end == -1 {
			return text
		}
		text = text[:start] + text[start+3+end+3:]
	}
}
