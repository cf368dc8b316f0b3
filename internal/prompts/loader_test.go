package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("relevance.json", "score")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Keywords}}")
	assert.Contains(t, prompt, "{{.EventData}}")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("relevance.json", "nope")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "score")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("missing.json", "score") })
}

func TestFormat(t *testing.T) {
	got := Format("Hello {{.Name}}, welcome to {{.Place}}", map[string]string{
		"Name":  "Sam",
		"Place": "the summit",
	})
	assert.Equal(t, "Hello Sam, welcome to the summit", got)
}

func TestAllEmbeddedFilesLoad(t *testing.T) {
	for file, key := range map[string]string{
		"relevance.json": "score",
		"questions.json": "product",
		"keywords.json":  "generate",
	} {
		prompt, err := Get(file, key)
		require.NoError(t, err, "file=%s", file)
		assert.NotEmpty(t, prompt)
	}
}

func TestQuestionPromptsCoverAllSteps(t *testing.T) {
	steps := []string{
		"product", "market", "differentiation", "company_size",
		"linkedin", "location", "complete",
	}
	for _, step := range steps {
		_, err := Get("questions.json", step)
		assert.NoError(t, err, "step=%s", step)
	}
}
