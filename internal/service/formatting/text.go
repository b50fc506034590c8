// Package formatting prepares document text for a language model context
// window or for spoken narration.
package formatting

import (
	"strings"

	"vocastant/internal/domain/models"
)

// TruncationMarker is appended whenever Truncate cuts content.
const TruncationMarker = "\n\n[Content truncated...]"

// sentenceBoundaryRatio is the minimum share of maxLength a boundary cut must keep.
const sentenceBoundaryRatio = 0.7

// Truncate bounds content to maxLength characters (runes).
// With boundaryAware set, the cut moves back to the last '.', '!' or '?' when
// that keeps at least 70% of maxLength. The marker is appended on every cut.
func Truncate(content string, maxLength int, boundaryAware bool) string {
	if maxLength <= 0 {
		return content
	}

	runes := []rune(content)
	if len(runes) <= maxLength {
		return content
	}

	prefix := runes[:maxLength]
	if boundaryAware {
		if last := lastSentenceEnd(prefix); last >= 0 && float64(last) >= sentenceBoundaryRatio*float64(maxLength) {
			prefix = prefix[:last+1]
		}
	}

	return string(prefix) + TruncationMarker
}

// isTruncated reports whether text ends with the truncation marker.
func isTruncated(text string) bool {
	return strings.HasSuffix(text, TruncationMarker)
}

func lastSentenceEnd(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		switch runes[i] {
		case '.', '!', '?':
			return i
		}
	}
	return -1
}

// Preview returns at most maxLength characters followed by "..." when cut.
// Used where several documents share one response.
func Preview(content string, maxLength int) string {
	runes := []rune(content)
	if len(runes) <= maxLength {
		return content
	}
	return string(runes[:maxLength]) + "..."
}

// ReadableName returns the spoken form of a file name.
func ReadableName(name string) string {
	return models.ReadableName(name)
}

var speechRemovals = strings.NewReplacer(
	// markdown emphasis
	"*", "", "_", "", "`", "",
	// serialized data punctuation
	"{", "", "}", "", "[", "", "]", "", `"`, "",
	",", " ",
)

var speechRewrites = strings.NewReplacer(
	"document-", "Document ",
	"-", " ",
)

// Longest tokens first so "originalName" is not hit by a shorter rule.
var speechFieldNames = strings.NewReplacer(
	"originalName", "name",
	"wordCount", "words",
	"uploadedAt", "uploaded",
)

// CleanForSpeech strips formatting artifacts a TTS engine would otherwise read aloud.
// The result is lossy and not meant to be parsed again.
func CleanForSpeech(text string) string {
	if text == "" {
		return text
	}

	text = collapseWhitespace(text)
	text = speechRemovals.Replace(text)
	text = speechRewrites.Replace(text)
	text = speechFieldNames.Replace(text)

	// removals can leave double spaces behind
	return collapseWhitespace(text)
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
