package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"articlesummarizer/internal/domain"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const (
	// MinTextLength is the shortest trimmed article text, in characters,
	// that is worth summarizing.
	MinTextLength = 100

	DefaultMaxBodyBytes int64 = 10 << 20

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

//nolint:gochecknoglobals // Fixed selector list, never mutated.
var paragraphSelectors = []string{
	"article p",
	"[itemprop='articleBody'] p",
	".article-body p",
	".story-body p",
	"main p",
	"p",
}

// Extractor downloads a page and extracts its main body text.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (domain.Article, error)
}

type Config struct {
	// Timeout bounds the whole download. Zero means no deadline.
	Timeout      time.Duration
	MaxBodyBytes int64
}

type HTTPExtractor struct {
	client       *http.Client
	maxBodyBytes int64
	log          *slog.Logger
}

func New(cfg Config, log *slog.Logger) *HTTPExtractor {
	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	return &HTTPExtractor{
		client:       &http.Client{Timeout: cfg.Timeout},
		maxBodyBytes: maxBodyBytes,
		log:          log,
	}
}

func (e *HTTPExtractor) Extract(
	ctx context.Context,
	rawURL string,
) (domain.Article, error) {
	pageURL, body, err := e.download(ctx, rawURL)
	if err != nil {
		return domain.Article{}, &Error{Kind: ErrDownload, URL: rawURL, Err: err}
	}

	title, text, err := e.parse(ctx, pageURL, body)
	if err != nil {
		return domain.Article{}, &Error{Kind: ErrParse, URL: rawURL, Err: err}
	}

	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinTextLength {
		return domain.Article{}, &Error{Kind: ErrInsufficientText, URL: rawURL}
	}

	return domain.Article{URL: rawURL, Title: title, Text: text}, nil
}

func (e *HTTPExtractor) download(
	ctx context.Context,
	rawURL string,
) (*url.URL, []byte, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse URL: %w", err)
	}

	if pageURL.Scheme != "http" && pageURL.Scheme != "https" {
		return nil, nil, fmt.Errorf("unsupported scheme %q", pageURL.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.client.Do(req) //nolint:gosec // User-supplied article URL
	if err != nil {
		return nil, nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			e.log.ErrorContext(ctx, "Failed to close response body",
				"error", err,
				"url", rawURL,
				"operation", "download")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("do request: unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}

	// Redirects may have moved the page; relative links resolve against the final URL.
	if resp.Request != nil && resp.Request.URL != nil {
		pageURL = resp.Request.URL
	}

	return pageURL, body, nil
}

func (e *HTTPExtractor) parse(
	ctx context.Context,
	pageURL *url.URL,
	body []byte,
) (string, string, error) {
	var errs []error

	var title, text string

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		errs = append(errs, fmt.Errorf("readability: %w", err))
	} else {
		title = strings.TrimSpace(article.Title)
		text = strings.TrimSpace(article.TextContent)
	}

	if utf8.RuneCountInString(text) >= MinTextLength {
		return title, text, nil
	}

	docTitle, paragraphs, err := paragraphText(body)
	if err != nil {
		errs = append(errs, fmt.Errorf("paragraphs: %w", err))
	} else if utf8.RuneCountInString(paragraphs) > utf8.RuneCountInString(text) {
		e.log.DebugContext(ctx, "Using paragraph fallback extraction",
			"url", pageURL.String(),
			"readabilityLength", utf8.RuneCountInString(text),
			"paragraphLength", utf8.RuneCountInString(paragraphs))

		text = paragraphs
		if title == "" {
			title = docTitle
		}
	}

	// Both strategies failed outright.
	if len(errs) == 2 {
		return "", "", errors.Join(errs...)
	}

	return title, text, nil
}

func paragraphText(body []byte) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("create document from reader: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if content, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
		title = strings.TrimSpace(content)
	}

	for _, selector := range paragraphSelectors {
		var textBuilder strings.Builder

		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			fragment := strings.TrimSpace(s.Text())
			if fragment == "" {
				return
			}
			if textBuilder.Len() > 0 {
				textBuilder.WriteString("\n")
			}
			textBuilder.WriteString(fragment)
		})

		if utf8.RuneCountInString(textBuilder.String()) >= MinTextLength {
			return title, textBuilder.String(), nil
		}
	}

	return title, strings.TrimSpace(doc.Find("body").Text()), nil
}
