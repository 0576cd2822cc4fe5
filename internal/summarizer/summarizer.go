package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"articlesummarizer/internal/domain"
)

const (
	// MaxInputChars is the input ceiling of the summarization model, in characters.
	MaxInputChars = 1024

	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"

	warmupText = "The city council approved a new budget on Monday. " +
		"The plan increases spending on public transport and road repairs. " +
		"Officials said the changes will take effect next month. " +
		"Residents will be able to comment on the details at a public meeting."
)

// Input describes the payload for a summary request.
type Input struct {
	// Text contains the plain text to summarise, already cut to MaxInputChars.
	Text string
	// SourceURL is optional metadata that helps the model reference the origin.
	SourceURL string
	MaxLength int
	MinLength int
	// Truncated is set when Text was cut from a longer article.
	Truncated      bool
	OriginalLength int
}

// NewInput builds a model input from article text and a length preset.
func NewInput(text, sourceURL string, preset domain.LengthPreset) Input {
	runes := []rune(text)

	input := Input{
		Text:           text,
		SourceURL:      sourceURL,
		MaxLength:      preset.MaxLength,
		MinLength:      preset.MinLength,
		OriginalLength: len(runes),
	}

	if len(runes) > MaxInputChars {
		input.Text = string(runes[:MaxInputChars])
		input.Truncated = true
	}

	return input
}

// Summarizer produces a single summary for a given input text.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
}

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	// Timeout bounds a single inference. Zero means no deadline.
	Timeout time.Duration
	Warmup  bool
}

// New builds the configured summarizer. A non-nil error means the model is
// unusable and callers should serve with the fallback only.
func New(ctx context.Context, cfg Config, log *slog.Logger) (Summarizer, error) {
	var (
		s   Summarizer
		err error
	)

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderHuggingFace, "":
		s, err = NewHuggingFaceSummarizer(cfg, log)
	case ProviderOpenAI:
		s, err = NewOpenAISummarizer(cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("create %s summarizer: %w", cfg.Provider, err)
	}

	if !cfg.Warmup {
		return s, nil
	}

	start := time.Now()

	input := NewInput(warmupText, "", domain.LengthPresets[domain.LengthShort])
	if _, err = s.Summarize(ctx, input); err != nil {
		return nil, fmt.Errorf("warm up: %w", err)
	}

	log.InfoContext(ctx, "Summarizer warmup is done",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"durationMs", time.Since(start).Milliseconds())

	return s, nil
}
