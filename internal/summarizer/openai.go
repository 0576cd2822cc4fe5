package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultOpenAIModel = "gpt-4o-mini"

	// Length bounds are model tokens; completions get headroom on top of them.
	completionTokensFactor = 2

	systemPrompt = `Summarize the news article.

Rules:
- Between %d and %d tokens.
- Keep the core facts: who, what, when, where, key numbers.
- Neutral tone, no opinions, no lists.
- Plain prose in the same language as the article.
- Output only the summary.`
)

// OpenAISummarizer calls an OpenAI-compatible Chat Completions API to produce summaries.
type OpenAISummarizer struct {
	client openai.Client
	model  string
}

// NewOpenAISummarizer builds a new summarizer instance.
func NewOpenAISummarizer(cfg Config) (*OpenAISummarizer, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("API key is empty")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultOpenAIModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &OpenAISummarizer{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Summarize produces a single summary within the input length bounds.
func (s *OpenAISummarizer) Summarize(
	ctx context.Context,
	input Input,
) (string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", &Error{Kind: KindMalformedInput, Err: errors.New("input is empty")}
	}

	userPromptBuilder := strings.Builder{}
	if sourceURL := strings.TrimSpace(input.SourceURL); sourceURL != "" {
		userPromptBuilder.WriteString("Source:\n")
		userPromptBuilder.WriteString(sourceURL)
		userPromptBuilder.WriteString("\n")
	}
	userPromptBuilder.WriteString("Content:\n")
	userPromptBuilder.WriteString(text)

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(systemPrompt, input.MinLength, input.MaxLength)),
			openai.UserMessage(userPromptBuilder.String()),
		},
		MaxCompletionTokens: openai.Int(int64(input.MaxLength * completionTokensFactor)),
		Temperature:         openai.Float(0),
	})
	if err != nil {
		return "", Classify(fmt.Errorf("do request: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "", &Error{Kind: KindEmptyOutput, Err: errors.New("no choices returned")}
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", &Error{
			Kind: KindEmptyOutput,
			Err:  fmt.Errorf("output text is missing (finishReason = %s)", resp.Choices[0].FinishReason),
		}
	}

	return summary, nil
}
