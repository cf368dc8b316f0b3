package flow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// affirmativeTokens are the answers treated as consent on the LinkedIn step.
var affirmativeTokens = map[string]bool{
	"yes": true, "y": true, "true": true, "sure": true, "ok": true, "okay": true,
}

// KeywordSource produces keywords from accumulated onboarding context.
// Implemented by keywords.Generator.
type KeywordSource interface {
	Generate(ctx context.Context, userContext string) []string
}

// Session holds the state of one user's onboarding conversation. All methods
// are safe for concurrent use.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu              sync.RWMutex
	step            Step
	answers         map[Step]string
	keywords        []string
	summary         string
	linkedInConsent bool
	zipCode         string
	history         []string
}

// NewSession creates a session positioned at the first onboarding step.
func NewSession(id uuid.UUID, initialKeywords []string) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		step:      StepProduct,
		answers:   make(map[Step]string),
		keywords:  initialKeywords,
	}
}

// Step returns the step whose question the user should answer next.
func (s *Session) Step() Step {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.step
}

// Keywords returns a copy of the session's current keyword set.
func (s *Session) Keywords() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.keywords))
	copy(out, s.keywords)
	return out
}

// SetKeywords replaces the session's keyword set.
func (s *Session) SetKeywords(kws []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywords = kws
}

// MergeKeywords adds keywords the session does not already hold. The set
// only grows until an explicit reset; regeneration never discards keywords
// earned from earlier answers.
func (s *Session) MergeKeywords(kws []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]bool, len(s.keywords))
	for _, kw := range s.keywords {
		existing[kw] = true
	}
	for _, kw := range kws {
		if !existing[kw] {
			existing[kw] = true
			s.keywords = append(s.keywords, kw)
		}
	}
}

// Summary returns the stored user summary, if one has been generated.
func (s *Session) Summary() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// SetSummary stores a generated user summary.
func (s *Session) SetSummary(summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
}

// LinkedInConsent reports whether the user agreed to connect LinkedIn.
func (s *Session) LinkedInConsent() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.linkedInConsent
}

// ZipCode returns the zip code collected on the location step, verbatim.
func (s *Session) ZipCode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zipCode
}

// Answer returns the stored answer for a step.
func (s *Session) Answer(step Step) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.answers[step]
}

// History returns a copy of all raw user messages in arrival order.
func (s *Session) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Complete reports whether the onboarding flow has finished.
func (s *Session) Complete() bool {
	return s.Step() == StepComplete
}

// StoreAnswer records the user's answer to the current step, advances the
// flow, and refreshes the keyword set when the answer carries business
// context. It returns the step the session advanced to. Answers arriving
// after completion are kept in history but do not change state.
func (s *Session) StoreAnswer(ctx context.Context, answer string, source KeywordSource) Step {
	s.mu.Lock()

	s.history = append(s.history, answer)

	current := s.step
	if current == StepComplete {
		s.mu.Unlock()
		return StepComplete
	}

	s.answers[current] = answer
	switch current {
	case StepLinkedIn:
		s.linkedInConsent = affirmativeTokens[strings.ToLower(strings.TrimSpace(answer))]
	case StepLocation:
		s.zipCode = strings.TrimSpace(answer)
	}

	next := NextStep(current)
	s.step = next

	regenerate := source != nil && regeneratesKeywords(current)
	userContext := ""
	if regenerate {
		userContext = s.contextLocked()
	}
	s.mu.Unlock()

	if regenerate {
		if kws := source.Generate(ctx, userContext); len(kws) > 0 {
			s.MergeKeywords(kws)
		}
	}

	return next
}

// Context returns a plain-text summary of collected answers, one labeled line
// per answered step, in flow order.
func (s *Session) Context() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contextLocked()
}

func (s *Session) contextLocked() string {
	var b strings.Builder
	for _, step := range Sequence {
		answer, ok := s.answers[step]
		if !ok || answer == "" {
			continue
		}
		label, ok := stepLabels[step]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", label, answer)
	}
	return b.String()
}

// Reset returns the session to the first step, clearing answers, history, and
// derived state while keeping the session ID.
func (s *Session) Reset(initialKeywords []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = StepProduct
	s.answers = make(map[Step]string)
	s.keywords = initialKeywords
	s.summary = ""
	s.linkedInConsent = false
	s.zipCode = ""
	s.history = nil
}
