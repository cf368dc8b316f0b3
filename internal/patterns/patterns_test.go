package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedLibraryIsValid(t *testing.T) {
	library, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, library.All())
}

func TestFindMatching(t *testing.T) {
	library, err := Load()
	require.NoError(t, err)

	matched := library.FindMatching("We sell a CRM with AI-powered lead generation")

	var names []string
	for _, pattern := range matched {
		names = append(names, pattern.Name)
	}
	assert.Contains(t, names, "AI and Machine Learning")
	assert.Contains(t, names, "Sales and Marketing Tech")
}

func TestFindMatching_NoMatch(t *testing.T) {
	library, err := Load()
	require.NoError(t, err)

	assert.Empty(t, library.FindMatching("artisanal candles"))
}

func TestParse_RejectsInvalidLibrary(t *testing.T) {
	_, err := parse([]byte(`[{"keywords": "missing|name"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern library")
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := parse([]byte(`[{"name": "x", "keywords": "y", "description": "", "extra": 1}]`))
	assert.Error(t, err)
}
