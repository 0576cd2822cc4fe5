package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultHuggingFaceBaseURL = "https://router.huggingface.co/hf-inference"
	DefaultHuggingFaceModel   = "facebook/bart-large-cnn"

	maxErrorBodyBytes = 4 << 10
)

type hfParameters struct {
	MaxLength  int    `json:"max_length"`
	MinLength  int    `json:"min_length"`
	DoSample   bool   `json:"do_sample"`
	Truncation string `json:"truncation"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

type hfError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// HuggingFaceSummarizer calls the Hugging Face Inference API summarization task.
type HuggingFaceSummarizer struct {
	client   *http.Client
	endpoint string
	token    string
	log      *slog.Logger
}

func NewHuggingFaceSummarizer(cfg Config, log *slog.Logger) (*HuggingFaceSummarizer, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultHuggingFaceBaseURL
	}

	model := strings.Trim(strings.TrimSpace(cfg.Model), "/")
	if model == "" {
		model = DefaultHuggingFaceModel
	}

	endpoint, err := url.JoinPath(baseURL, "models", model)
	if err != nil {
		return nil, fmt.Errorf("build endpoint: %w", err)
	}

	if u, parseErr := url.Parse(endpoint); parseErr != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	return &HuggingFaceSummarizer{
		client:   &http.Client{Timeout: cfg.Timeout},
		endpoint: endpoint,
		token:    strings.TrimSpace(cfg.APIKey),
		log:      log,
	}, nil
}

func (s *HuggingFaceSummarizer) Summarize(
	ctx context.Context,
	input Input,
) (string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", &Error{Kind: KindMalformedInput, Err: errors.New("input is empty")}
	}

	payload, err := json.Marshal(hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			MaxLength:  input.MaxLength,
			MinLength:  input.MinLength,
			DoSample:   false,
			Truncation: "only_first",
		},
		Options: hfOptions{WaitForModel: true},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	start := time.Now()

	resp, err := s.client.Do(req)
	if err != nil {
		return "", Classify(fmt.Errorf("do request: %w", err))
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			s.log.ErrorContext(ctx, "Failed to close response body",
				"error", err,
				"endpoint", s.endpoint,
				"operation", "summarize")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", Classify(fmt.Errorf("do request: %w", readStatusError(resp)))
	}

	var summaries []hfSummary
	if err = json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	s.log.DebugContext(ctx, "Hugging Face inference is done",
		"endpoint", s.endpoint,
		"durationMs", time.Since(start).Milliseconds(),
		"summaries", len(summaries))

	if len(summaries) == 0 {
		return "", &Error{Kind: KindEmptyOutput, Err: errors.New("no summaries returned")}
	}

	summary := strings.TrimSpace(summaries[0].SummaryText)
	if summary == "" {
		return "", &Error{Kind: KindEmptyOutput, Err: errors.New("summary text is missing")}
	}

	return summary, nil
}

func readStatusError(resp *http.Response) *statusError {
	stErr := &statusError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil || len(body) == 0 {
		return stErr
	}

	var apiErr hfError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		stErr.Message = apiErr.Error
		if apiErr.EstimatedTime > 0 {
			stErr.Message += fmt.Sprintf(" (estimatedTime = %.0fs)", apiErr.EstimatedTime)
		}

		return stErr
	}

	stErr.Message = strings.TrimSpace(string(body))

	return stErr
}
