package domain_test

import (
	"articlesummarizer/internal/domain"
	"encoding/json"
	"testing"
)

func TestResolveLengthKnownTokens(t *testing.T) {
	tests := []struct {
		token string
		want  domain.LengthPreset
	}{
		{"short", domain.LengthPreset{MaxLength: 80, MinLength: 20}},
		{"medium", domain.LengthPreset{MaxLength: 150, MinLength: 30}},
		{"long", domain.LengthPreset{MaxLength: 250, MinLength: 50}},
		{"  Long ", domain.LengthPreset{MaxLength: 250, MinLength: 50}},
	}

	for _, test := range tests {
		t.Run(test.token, func(t *testing.T) {
			_, got := domain.ResolveLength(test.token)
			if got != test.want {
				t.Fatalf("unexpected preset for %q: got %+v want %+v", test.token, got, test.want)
			}
		})
	}
}

func TestResolveLengthFallsBackToMedium(t *testing.T) {
	want := domain.LengthPreset{MaxLength: 150, MinLength: 30}

	for _, token := range []string{"", "   ", "huge", "tiny", "medium-ish", "0"} {
		length, got := domain.ResolveLength(token)
		if length != domain.LengthMedium {
			t.Fatalf("expected medium length for %q, got %q", token, length)
		}
		if got != want {
			t.Fatalf("expected medium preset for %q, got %+v", token, got)
		}
	}
}

func TestLengthPresetsBoundsAreOrdered(t *testing.T) {
	if len(domain.LengthPresets) != 3 {
		t.Fatalf("expected exactly three presets, got %d", len(domain.LengthPresets))
	}

	for length, preset := range domain.LengthPresets {
		if preset.MinLength <= 0 || preset.MinLength >= preset.MaxLength {
			t.Fatalf("invalid bounds for %q: %+v", length, preset)
		}
	}
}

func TestRequestUnmarshalKeepsStringFieldsOnly(t *testing.T) {
	tests := []struct {
		body       string
		wantURL    string
		wantLength string
	}{
		{`{"url":"https://news.example.com/a","length":"long"}`, "https://news.example.com/a", "long"},
		{`{"url":"https://news.example.com/a","length":5}`, "https://news.example.com/a", ""},
		{`{"url":"https://news.example.com/a","length":null}`, "https://news.example.com/a", ""},
		{`{"url":42,"length":"short"}`, "", "short"},
		{`{}`, "", ""},
	}

	for _, test := range tests {
		var req domain.Request
		if err := json.Unmarshal([]byte(test.body), &req); err != nil {
			t.Fatalf("unexpected error for %s: %v", test.body, err)
		}

		if req.URL != test.wantURL || req.Length != test.wantLength {
			t.Fatalf("unexpected request for %s: %+v", test.body, req)
		}
	}
}

func TestRequestUnmarshalRejectsNonObject(t *testing.T) {
	var req domain.Request
	if err := json.Unmarshal([]byte(`not json`), &req); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
