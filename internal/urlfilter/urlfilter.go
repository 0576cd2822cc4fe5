package urlfilter

import (
	"net/url"
	"strings"

	"mvdan.cc/xurls/v2"
)

// SearchIndicators mark listing and aggregation pages rather than single articles.
//
//nolint:gochecknoglobals // Fixed keyword list, never mutated.
var SearchIndicators = []string{
	"search",
	"results",
	"topics",
	"category",
	"tag",
	"archive",
	"all-",
	"index",
	"list",
	"collection",
}

// IsAdmissible reports whether rawURL looks like a single article page.
// It is a heuristic: both false positives and false negatives are expected.
func IsAdmissible(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		// Left to the download step to reject.
		return true
	}

	// Matched as sent; percent-escapes are not decoded.
	path := strings.ToLower(u.EscapedPath())
	query := strings.ToLower(u.RawQuery)

	return !containsIndicator(path) && !containsIndicator(query)
}

// Normalize trims raw and, when it holds surrounding text, returns the first
// strict URL found in it. Input without a recognizable URL is returned trimmed.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if found := xurls.Strict().FindString(trimmed); found != "" {
		return found
	}

	return trimmed
}

func containsIndicator(s string) bool {
	if s == "" {
		return false
	}

	for _, indicator := range SearchIndicators {
		if strings.Contains(s, indicator) {
			return true
		}
	}

	return false
}
