package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"articlesummarizer/internal/domain"
	"articlesummarizer/internal/extractor"
	"articlesummarizer/internal/summarizer"
	"articlesummarizer/internal/urlfilter"
)

const (
	MsgNoURL            = "No URL provided."
	MsgSearchPage       = "This appears to be a search or category page, not a news article. Please provide a direct link to a news article."
	msgDownloadFmt      = "Failed to download or parse article: %s. This may not be a valid news article page."
	MsgInsufficientText = "Could not extract sufficient text from this page. It may not be a standard news article."
)

// Stage is a step of a single summarize request. Stages only move forward.
type Stage int

const (
	StageReceived Stage = iota
	StageValidated
	StageExtracted
	StageConfigured
	StageSummarized
	StageResponded
)

func (s Stage) String() string {
	switch s {
	case StageReceived:
		return "received"
	case StageValidated:
		return "validated"
	case StageExtracted:
		return "extracted"
	case StageConfigured:
		return "configured"
	case StageSummarized:
		return "summarized"
	case StageResponded:
		return "responded"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ValidationError rejects a request before any network work is done.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Result is a successful summarize outcome.
type Result struct {
	Summary        string
	Length         domain.Length
	UsedFallback   bool
	FallbackKind   summarizer.ErrorKind
	InputTruncated bool
}

type Service struct {
	extractor  extractor.Extractor
	summarizer summarizer.Summarizer
	log        *slog.Logger
}

// New wires the request flow. A nil summarizer means the model failed to
// load; every request is then answered by the fallback.
func New(
	e extractor.Extractor,
	s summarizer.Summarizer,
	log *slog.Logger,
) *Service {
	return &Service{
		extractor:  e,
		summarizer: s,
		log:        log,
	}
}

// ModelLoaded reports whether the summarization model initialized.
func (s *Service) ModelLoaded() bool {
	return s.summarizer != nil
}

// Summarize validates, extracts, configures and summarizes one article.
// Returned errors are *ValidationError or *extractor.Error; summarization
// failures are recovered with the fallback and never returned.
func (s *Service) Summarize(
	ctx context.Context,
	req domain.Request,
) (Result, error) {
	start := time.Now()
	stage := StageReceived

	rawURL := urlfilter.Normalize(req.URL)

	s.log.InfoContext(ctx, "Summarize request is received",
		"url", rawURL,
		"length", req.Length,
		"stage", stage.String())

	if rawURL == "" {
		return Result{}, s.fail(ctx, stage, &ValidationError{Message: MsgNoURL})
	}

	if !urlfilter.IsAdmissible(rawURL) {
		return Result{}, s.fail(ctx, stage, &ValidationError{Message: MsgSearchPage})
	}
	stage = StageValidated

	article, err := s.extractor.Extract(ctx, rawURL)
	if err != nil {
		return Result{}, s.fail(ctx, stage, asExtractionError(rawURL, err))
	}
	stage = StageExtracted

	s.log.InfoContext(ctx, "Article is extracted",
		"url", rawURL,
		"title", article.Title,
		"textLength", utf8.RuneCountInString(article.Text),
		"stage", stage.String())

	length, preset := domain.ResolveLength(req.Length)
	input := summarizer.NewInput(article.Text, rawURL, preset)
	stage = StageConfigured

	if input.Truncated {
		s.log.WarnContext(ctx, "Article text is truncated to model input ceiling",
			"url", rawURL,
			"originalLength", input.OriginalLength,
			"maxInputChars", summarizer.MaxInputChars)
	}

	result := Result{Length: length, InputTruncated: input.Truncated}

	summary, sumErr := s.summarize(ctx, input)
	if sumErr != nil {
		result.UsedFallback = true
		result.FallbackKind = sumErr.Kind

		// A loaded model already saw the truncated input; without one the
		// article is never cut.
		fallbackText := input.Text
		if s.summarizer == nil {
			fallbackText = article.Text
		}
		summary = summarizer.Fallback(fallbackText)

		s.log.WarnContext(ctx, "Summarization failed so fallback is used",
			"error", sumErr,
			"kind", sumErr.Kind.String(),
			"url", rawURL,
			"length", string(length))
	}
	result.Summary = summary
	stage = StageSummarized

	s.log.InfoContext(ctx, "Summary is generated",
		"url", rawURL,
		"length", string(length),
		"maxLength", preset.MaxLength,
		"minLength", preset.MinLength,
		"summaryLength", utf8.RuneCountInString(summary),
		"usedFallback", result.UsedFallback,
		"durationMs", time.Since(start).Milliseconds(),
		"stage", stage.String())

	return result, nil
}

func (s *Service) summarize(
	ctx context.Context,
	input summarizer.Input,
) (string, *summarizer.Error) {
	if s.summarizer == nil {
		return "", summarizer.Classify(summarizer.ErrModelNotLoaded)
	}

	summary, err := s.summarizer.Summarize(ctx, input)
	if err != nil {
		return "", summarizer.Classify(err)
	}

	if summary == "" {
		return "", &summarizer.Error{Kind: summarizer.KindEmptyOutput, Err: errors.New("summary is empty")}
	}

	return summary, nil
}

func (s *Service) fail(ctx context.Context, stage Stage, err error) error {
	s.log.WarnContext(ctx, "Summarize request is rejected",
		"error", err,
		"stage", stage.String(),
		"next", StageResponded.String())

	return err
}

func asExtractionError(rawURL string, err error) *extractor.Error {
	var extractErr *extractor.Error
	if errors.As(err, &extractErr) {
		return extractErr
	}

	return &extractor.Error{Kind: extractor.ErrParse, URL: rawURL, Err: err}
}

// ErrorMessage renders err as the user-facing message of the error response.
func ErrorMessage(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var extractErr *extractor.Error
	if errors.As(err, &extractErr) {
		if errors.Is(extractErr, extractor.ErrInsufficientText) {
			return MsgInsufficientText
		}

		return fmt.Sprintf(msgDownloadFmt, extractErr.Cause())
	}

	return err.Error()
}
