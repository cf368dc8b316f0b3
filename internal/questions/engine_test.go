package questions

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/networkai/event-scout/internal/flow"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "What does your company sell?", "What does your company sell?"},
		{"ai prefix", "AI: What does your company sell?", "What does your company sell?"},
		{"assistant prefix", "Assistant: Who do you sell to?", "Who do you sell to?"},
		{"bracketed aside", "[thinking] Who is your ideal customer?", "Who is your ideal customer?"},
		{"parenthetical aside", "(warmly) Great! Who do you serve?", "Great! Who do you serve?"},
		{"markdown", "**Who** is your *target* market?", "Who is your target market?"},
		{"multiline", "\n\nFirst real line here?\nSecond line.", "First real line here?"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanResponse(tt.in))
		})
	}
}

func TestQuestion_NilClientUsesFallbacks(t *testing.T) {
	engine := NewEngine(nil, nil)
	session := flow.NewSession(uuid.New(), nil)

	question := engine.Question(context.Background(), session)
	assert.Equal(t, "Welcome! What product or service does your company offer?", question)
}

func TestQuestion_FallbackPersonalizesWithProduct(t *testing.T) {
	engine := NewEngine(nil, nil)
	session := flow.NewSession(uuid.New(), nil)
	session.StoreAnswer(context.Background(), "an invoicing tool", nil)

	question := engine.Question(context.Background(), session)
	assert.Contains(t, question, "an invoicing tool")
}

func TestGenerateSummary_Fallback(t *testing.T) {
	engine := NewEngine(nil, nil)
	session := flow.NewSession(uuid.New(), nil)
	session.StoreAnswer(context.Background(), "an invoicing tool", nil)
	session.StoreAnswer(context.Background(), "freelancers", nil)

	summary := engine.GenerateSummary(context.Background(), session)
	assert.Equal(t, "This user is building an invoicing tool for freelancers.", summary)
}

func TestGenerateSummary_FallbackWithNoAnswers(t *testing.T) {
	engine := NewEngine(nil, nil)
	session := flow.NewSession(uuid.New(), nil)

	summary := engine.GenerateSummary(context.Background(), session)
	assert.Equal(t, "This user is building their product for their market.", summary)
}
