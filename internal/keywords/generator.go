package keywords

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/networkai/event-scout/internal/llm"
	"github.com/networkai/event-scout/internal/prompts"
)

// Generator produces search keywords from accumulated onboarding context
// using an LLM.
type Generator struct {
	client llm.Client
	logger *zap.Logger
}

// NewGenerator creates a keyword Generator. A nil client is allowed; Generate
// then always returns the default set.
func NewGenerator(client llm.Client, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{client: client, logger: logger}
}

// Generate asks the model for keywords based on what is known about the user.
// The context argument is a plain-text summary of onboarding answers so far.
// Failures fall back to the default keyword set rather than returning errors,
// so callers always get a usable set.
func (g *Generator) Generate(ctx context.Context, userContext string) []string {
	if g.client == nil || strings.TrimSpace(userContext) == "" {
		return DefaultSet()
	}

	prompt := prompts.Format(prompts.MustGet("keywords.json", "generate"), map[string]string{
		"Context": userContext,
	})

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		g.logger.Warn("keyword generation failed, using defaults", zap.Error(err))
		return DefaultSet()
	}

	keywords := ParseList(raw)
	if len(keywords) == 0 {
		g.logger.Warn("keyword response yielded no keywords, using defaults",
			zap.String("response", raw))
		return DefaultSet()
	}

	return Clean(Rank(keywords))
}

// ParseList extracts a string list from a model response. It tries a strict
// JSON array first, then a fenced code block, then falls back to splitting on
// commas with bracket and quote characters stripped.
func ParseList(raw string) []string {
	if text, ok := llm.ExtractJSONArray(raw); ok {
		var list []string
		if err := json.Unmarshal([]byte(text), &list); err == nil {
			return list
		}
	}

	cleaned := llm.CleanJSONBlock(raw)
	var list []string
	if err := json.Unmarshal([]byte(cleaned), &list); err == nil {
		return list
	}

	stripped := strings.NewReplacer("[", "", "]", "", "\"", "", "'", "").Replace(raw)
	var result []string
	for _, part := range strings.Split(stripped, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			result = append(result, kw)
		}
	}
	return result
}
