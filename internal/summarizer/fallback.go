package summarizer

import (
	"strings"
)

const (
	fallbackSentences = 3
	fallbackMaxChars  = 500
	fallbackEllipsis  = "..."
)

// Fallback builds a naive summary from the leading sentences of text.
// With more than three sentences it returns the first three joined by ". ";
// otherwise it returns the first 500 characters, with an ellipsis if cut.
func Fallback(text string) string {
	sentences := splitSentences(text)
	if len(sentences) > fallbackSentences {
		return strings.Join(sentences[:fallbackSentences], ". ") + "."
	}

	runes := []rune(text)
	if len(runes) > fallbackMaxChars {
		return string(runes[:fallbackMaxChars]) + fallbackEllipsis
	}

	return text
}

// splitSentences splits on runs of '.', '!' and '?' and drops blank fragments.
func splitSentences(text string) []string {
	fragments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		sentences = append(sentences, fragment)
	}

	return sentences
}
