// Package questions generates the conversational onboarding questions,
// cleaning up model output and falling back to canned phrasing when the
// model is unavailable.
package questions

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/networkai/event-scout/internal/flow"
	"github.com/networkai/event-scout/internal/llm"
	"github.com/networkai/event-scout/internal/prompts"
)

// fallbackQuestions are used when the model cannot produce a question. The
// product fallback has no dependency on prior answers; later steps are
// personalized with the product answer when one exists.
var fallbackQuestions = map[flow.Step]string{
	flow.StepProduct:         "Welcome! What product or service does your company offer?",
	flow.StepMarket:          "Who is your target market or ideal customer%s?",
	flow.StepDifferentiation: "What makes your product%s different from competitors?",
	flow.StepCompanySize:     "What size of company do you usually sell to? For example startups, mid-market, or enterprise.",
	flow.StepLinkedIn:        "Would you like to connect your LinkedIn profile to improve recommendations? A simple yes or no works.",
	flow.StepLocation:        "What's your zip code? We'll use it to find events near you.",
	flow.StepComplete:        "Thanks! Your profile is complete and we're finding events for you now.",
}

var (
	prefixPattern  = regexp.MustCompile(`(?i)^\s*(AI|Assistant|NetworkAI)\s*:\s*`)
	bracketPattern = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`)
)

// Engine generates onboarding questions and user summaries.
type Engine struct {
	client llm.Client
	logger *zap.Logger
}

// NewEngine creates a question Engine. A nil client is allowed; questions
// then always use the canned fallbacks.
func NewEngine(client llm.Client, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{client: client, logger: logger}
}

// Question produces the question for the session's current step,
// acknowledging the user's previous message when one exists.
func (e *Engine) Question(ctx context.Context, session *flow.Session) string {
	step := session.Step()

	if e.client == nil {
		return e.fallback(session, step)
	}

	previous := ""
	if history := session.History(); len(history) > 0 {
		previous = history[len(history)-1]
	}

	prompt := prompts.Format(prompts.MustGet("questions.json", string(step)), map[string]string{
		"Context":         session.Context(),
		"PreviousMessage": previous,
	})

	raw, err := e.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		e.logger.Warn("question generation failed, using fallback",
			zap.String("step", string(step)),
			zap.Error(err))
		return e.fallback(session, step)
	}

	question := CleanResponse(raw)
	if question == "" {
		return e.fallback(session, step)
	}
	return question
}

// GenerateSummary produces a short third-person summary of the user from
// their onboarding answers. Failures fall back to a templated sentence built
// from the product and market answers.
func (e *Engine) GenerateSummary(ctx context.Context, session *flow.Session) string {
	if e.client == nil {
		return fallbackSummary(session)
	}

	prompt := prompts.Format(prompts.MustGet("keywords.json", "summary"), map[string]string{
		"Context": session.Context(),
	})

	raw, err := e.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		e.logger.Warn("summary generation failed, using fallback", zap.Error(err))
		return fallbackSummary(session)
	}

	summary := strings.TrimSpace(raw)
	if summary == "" {
		return fallbackSummary(session)
	}
	return summary
}

func (e *Engine) fallback(session *flow.Session, step flow.Step) string {
	template, ok := fallbackQuestions[step]
	if !ok {
		return fallbackQuestions[flow.StepProduct]
	}

	if !strings.Contains(template, "%s") {
		return template
	}

	personalization := ""
	if product := session.Answer(flow.StepProduct); product != "" {
		personalization = fmt.Sprintf(" for %s", product)
	}
	return fmt.Sprintf(template, personalization)
}

func fallbackSummary(session *flow.Session) string {
	product := session.Answer(flow.StepProduct)
	if product == "" {
		product = "their product"
	}
	market := session.Answer(flow.StepMarket)
	if market == "" {
		market = "their market"
	}
	return fmt.Sprintf("This user is building %s for %s.", product, market)
}

// CleanResponse strips speaker prefixes, bracketed stage directions, and
// markdown emphasis from a model response, returning the first substantive
// line.
func CleanResponse(raw string) string {
	text := strings.TrimSpace(raw)
	text = prefixPattern.ReplaceAllString(text, "")
	text = bracketPattern.ReplaceAllString(text, "")
	text = strings.NewReplacer("**", "", "*", "", "`", "").Replace(text)

	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
