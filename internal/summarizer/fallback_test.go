package summarizer_test

import (
	"articlesummarizer/internal/summarizer"
	"strings"
	"testing"
)

func TestFallbackJoinsFirstThreeSentences(t *testing.T) {
	text := "The storm hit the coast. Power was cut! Schools closed? Markets reopened on Friday. More rain is due."

	got := summarizer.Fallback(text)
	want := "The storm hit the coast. Power was cut. Schools closed."

	if got != want {
		t.Fatalf("unexpected fallback summary: got %q want %q", got, want)
	}
}

func TestFallbackCollapsesPunctuationRuns(t *testing.T) {
	text := "Wait... what?! Really!!! Yes. Done."

	got := summarizer.Fallback(text)
	want := "Wait. what. Really."

	if got != want {
		t.Fatalf("unexpected fallback summary: got %q want %q", got, want)
	}
}

func TestFallbackShortTextReturnedAsIs(t *testing.T) {
	text := "Only one sentence here. And a second one."

	if got := summarizer.Fallback(text); got != text {
		t.Fatalf("expected text to be returned unchanged, got %q", got)
	}
}

func TestFallbackTruncatesLongTextWithFewSentences(t *testing.T) {
	text := strings.Repeat("a", 700) + ". Second sentence."

	got := summarizer.Fallback(text)

	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}

	if len([]rune(got)) != 503 {
		t.Fatalf("expected 500 characters plus ellipsis, got %d", len([]rune(got)))
	}
}

func TestFallbackExactly500CharsHasNoEllipsis(t *testing.T) {
	text := strings.Repeat("b", 500)

	if got := summarizer.Fallback(text); got != text {
		t.Fatalf("expected no ellipsis at exactly 500 characters, got %q", got)
	}
}

func TestFallbackNonEmptyForNonEmptyInput(t *testing.T) {
	for _, text := range []string{"...", "!?!", " x ", "é"} {
		if got := summarizer.Fallback(text); got == "" {
			t.Fatalf("expected non-empty fallback for %q", text)
		}
	}
}
