// Package scrape collects upcoming events from lu.ma listings through the
// Firecrawl rendering API and appends them to the event corpus.
package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const firecrawlURL = "https://api.firecrawl.dev/v1/scrape"

// Firecrawl renders JavaScript-heavy pages and optionally extracts
// structured data from them.
type Firecrawl struct {
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewFirecrawl creates a Firecrawl client.
func NewFirecrawl(apiKey string, logger *zap.Logger) (*Firecrawl, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("firecrawl API key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Firecrawl{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		logger:     logger,
	}, nil
}

type scrapeRequest struct {
	URL         string          `json:"url"`
	Formats     []string        `json:"formats"`
	Actions     []scrapeAction  `json:"actions,omitempty"`
	JSONOptions *jsonExtraction `json:"jsonOptions,omitempty"`
}

type scrapeAction struct {
	Type         string `json:"type"`
	Milliseconds int    `json:"milliseconds,omitempty"`
	Direction    string `json:"direction,omitempty"`
}

type jsonExtraction struct {
	Prompt string `json:"prompt"`
}

type scrapeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    struct {
		HTML     string          `json:"html"`
		Markdown string          `json:"markdown"`
		JSON     json.RawMessage `json:"json"`
	} `json:"data"`
}

// FetchHTML renders a listing page, scrolling to trigger lazy loading, and
// returns its HTML.
func (f *Firecrawl) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	resp, err := f.scrape(ctx, scrapeRequest{
		URL:     pageURL,
		Formats: []string{"html"},
		Actions: []scrapeAction{
			{Type: "wait", Milliseconds: 2000},
			{Type: "scroll", Direction: "down"},
			{Type: "wait", Milliseconds: 1000},
			{Type: "scroll", Direction: "down"},
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Data.HTML, nil
}

// ExtractStructured renders an event page and extracts structured fields
// using the given prompt. The returned bytes are the raw extraction JSON.
func (f *Firecrawl) ExtractStructured(ctx context.Context, pageURL, prompt string) ([]byte, error) {
	resp, err := f.scrape(ctx, scrapeRequest{
		URL:         pageURL,
		Formats:     []string{"json", "markdown"},
		JSONOptions: &jsonExtraction{Prompt: prompt},
	})
	if err != nil {
		return nil, err
	}
	return resp.Data.JSON, nil
}

func (f *Firecrawl) scrape(ctx context.Context, request scrapeRequest) (*scrapeResponse, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to build scrape request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, firecrawlURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build scrape request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+f.apiKey)
	req.Header.Set("Content-Type", "application/json")

	f.logger.Debug("scraping page", zap.String("url", request.URL))

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("scrape failed with status %d: %s", resp.StatusCode, detail)
	}

	var parsed scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse scrape response: %w", err)
	}
	if !parsed.Success {
		return nil, fmt.Errorf("scrape rejected: %s", parsed.Error)
	}

	return &parsed, nil
}
