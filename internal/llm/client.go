// Package llm wraps the Gemini SDK for the conversation and scoring
// pipelines: tiered model selection, rate-limit retries, and lenient
// recovery of structured output from model text.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ModelTier selects how much model capability a call needs. Most of the
// pipeline runs on the lite tier; summaries reach for standard.
type ModelTier string

const (
	// TierLite serves question generation, keyword extraction, and
	// per-event relevance scoring.
	TierLite ModelTier = "lite"
	// TierStandard serves user summary generation.
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for calls that need long-context reasoning.
	TierAdvanced ModelTier = "advanced"
)

// defaultModels maps tiers to the Gemini models this service runs on.
var defaultModels = map[ModelTier]string{
	TierLite:     "gemini-2.0-flash-lite",
	TierStandard: "gemini-2.0-flash",
	TierAdvanced: "gemini-2.5-pro",
}

// generationTemperature keeps scoring and extraction output consistent
// across calls.
const generationTemperature = 0.2

// Client generates model output for a prompt at a given tier. Both methods
// retry internally on rate-limit errors, so callers see either a final
// answer or a final error.
type Client interface {
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	Close() error
}

// GeminiClient implements Client against the Gemini API.
type GeminiClient struct {
	client *genai.Client
	models map[ModelTier]string
}

// NewClient creates a Gemini-backed client with the default tier models.
func NewClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, models: defaultModels}, nil
}

// GenerateContent generates free-form text at the given tier.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.generate(ctx, prompt, tier, false)
}

// GenerateJSON generates a JSON response at the given tier, with markdown
// fence wrappers stripped from the result.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.generate(ctx, prompt, tier, true)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, tier ModelTier, jsonMode bool) (string, error) {
	modelName := c.resolveModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(generationTemperature)
	if jsonMode {
		model.ResponseMIMEType = "application/json"
	}

	return WithRetry(ctx, DefaultMaxAttempts, DefaultBaseDelay, func() (string, error) {
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", fmt.Errorf("failed to generate content: %w", err)
		}
		return responseText(resp)
	})
}

// resolveModel maps a tier to its model, degrading toward cheaper tiers
// rather than failing when a tier has no entry.
func (c *GeminiClient) resolveModel(tier ModelTier) string {
	for _, candidate := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.models[candidate]; ok {
			return model
		}
	}
	return ""
}

// Close releases the underlying API connection.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
