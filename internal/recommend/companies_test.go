package recommend

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanies_Limit(t *testing.T) {
	got := Companies([]string{"B2B"}, 5, rand.New(rand.NewSource(1)))
	assert.Len(t, got, 5)
}

func TestCompanies_ZeroLimitReturnsAll(t *testing.T) {
	got := Companies(nil, 0, rand.New(rand.NewSource(1)))
	assert.Len(t, got, len(catalog))
}

func TestCompanies_SortedByScore(t *testing.T) {
	got := Companies([]string{"data"}, 0, rand.New(rand.NewSource(42)))
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestCompanies_KeywordAffinityRanksCloserFirst(t *testing.T) {
	// The jitter is at most 0.1, below the keyword match contribution, so a
	// matching company always outranks a non-matching one.
	got := Companies([]string{"payments"}, 0, rand.New(rand.NewSource(7)))
	assert.Equal(t, "Stripe", got[0].Name)
}

func TestCompanies_ScoresBounded(t *testing.T) {
	for _, company := range Companies([]string{"data", "cloud"}, 0, rand.New(rand.NewSource(3))) {
		assert.GreaterOrEqual(t, company.Score, 0.0)
		assert.LessOrEqual(t, company.Score, 1.0)
	}
}
