// Package scoring rates events against a user's interest keywords and blends
// relevance with how soon each event happens.
package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/networkai/event-scout/internal/llm"
	"github.com/networkai/event-scout/internal/prompts"
	"github.com/networkai/event-scout/internal/types"
)

// Result holds a relevance judgment for a single event.
type Result struct {
	Score     float64 `json:"relevance_score"`
	Highlight string  `json:"highlight"`
}

// Scorer judges event relevance with an LLM, falling back to deterministic
// keyword matching when the model is unavailable or returns garbage.
type Scorer struct {
	client llm.Client
	logger *zap.Logger
}

// NewScorer creates a Scorer backed by the given LLM client. A nil client
// is allowed; scoring then always uses the keyword fallback.
func NewScorer(client llm.Client, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{client: client, logger: logger}
}

// Score rates how relevant event is to the given keywords. userSummary is
// optional extra context about the user. The returned score is always in
// [0.0, 1.0].
func (s *Scorer) Score(ctx context.Context, event *types.Event, keywords []string, userSummary string) Result {
	if s.client == nil {
		return FallbackScore(event, keywords)
	}

	prompt := buildPrompt(event, keywords, userSummary)

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		s.logger.Warn("relevance scoring failed, using keyword fallback",
			zap.String("event", event.Title),
			zap.Error(err))
		return FallbackScore(event, keywords)
	}

	result, err := parseResult(raw)
	if err != nil {
		s.logger.Warn("unparseable relevance response, using keyword fallback",
			zap.String("event", event.Title),
			zap.Error(err))
		return FallbackScore(event, keywords)
	}

	return result
}

func buildPrompt(event *types.Event, keywords []string, userSummary string) string {
	var data strings.Builder
	fmt.Fprintf(&data, "Title: %s\n", types.Render(event.Title))
	fmt.Fprintf(&data, "Description: %s\n", types.Render(event.Description))
	fmt.Fprintf(&data, "Host: %s\n", types.Render(event.Host))
	fmt.Fprintf(&data, "Location: %s\n", types.Render(event.Location))
	for _, sp := range event.Speakers {
		fmt.Fprintf(&data, "Speaker: %s", sp.Name)
		if sp.Title != "" {
			fmt.Fprintf(&data, ", %s", sp.Title)
		}
		if sp.Company != "" {
			fmt.Fprintf(&data, " at %s", sp.Company)
		}
		data.WriteString("\n")
	}

	userContext := ""
	if userSummary != "" {
		userContext = fmt.Sprintf("\nAbout the user:\n%s\n", userSummary)
	}

	return prompts.Format(prompts.MustGet("relevance.json", "score"), map[string]string{
		"Keywords":    strings.Join(keywords, ", "),
		"EventData":   data.String(),
		"UserContext": userContext,
	})
}

// parseResult extracts a Result from a raw model response. When no JSON
// object is recoverable at all, an error is returned so the caller can fall
// back to keyword matching. A recovered object missing the score or the
// justification is a judgment the model failed to complete: it scores 0.0
// rather than being handed to the fallback, which could rate it higher.
func parseResult(raw string) (Result, error) {
	text, ok := llm.ExtractJSONObject(raw)
	if !ok {
		return Result{}, fmt.Errorf("no JSON object in response")
	}

	var parsed struct {
		Score     *float64 `json:"relevance_score"`
		Highlight string   `json:"highlight"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return Result{}, fmt.Errorf("failed to parse relevance response: %w", err)
	}
	if parsed.Score == nil || strings.TrimSpace(parsed.Highlight) == "" {
		return Result{Score: 0, Highlight: "incomplete analysis"}, nil
	}

	return Result{
		Score:     Clamp(*parsed.Score),
		Highlight: parsed.Highlight,
	}, nil
}

// Clamp bounds a score to [0.0, 1.0].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
