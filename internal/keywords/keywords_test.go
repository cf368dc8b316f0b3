package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean_TrimsDedupesAndSorts(t *testing.T) {
	got := Clean([]string{" Sales ", "B2B", "Sales", "", "   "})
	assert.Equal(t, []string{"B2B", "Sales"}, got)
}

func TestClean_CaseSensitiveDedup(t *testing.T) {
	// "Ai" and "ai" differ by case and are both kept.
	got := Clean([]string{"Ai", "ai", "enterprise platform"})
	assert.Equal(t, []string{"Ai", "ai", "enterprise platform"}, got)
}

func TestClean_EmptyFallsBackToDefaults(t *testing.T) {
	assert.Equal(t, DefaultSet(), Clean(nil))
	assert.Equal(t, DefaultSet(), Clean([]string{"", "  "}))
}

func TestParseList_JSONArray(t *testing.T) {
	got := ParseList(`["B2B SaaS", "Sales Automation"]`)
	assert.Equal(t, []string{"B2B SaaS", "Sales Automation"}, got)
}

func TestParseList_FencedArray(t *testing.T) {
	got := ParseList("```json\n[\"Data Analytics\", \"Cloud\"]\n```")
	assert.Equal(t, []string{"Data Analytics", "Cloud"}, got)
}

func TestParseList_CommaFallback(t *testing.T) {
	got := ParseList(`"B2B Sales", "Marketing Automation", Enterprise`)
	assert.Equal(t, []string{"B2B Sales", "Marketing Automation", "Enterprise"}, got)
}

func TestParseList_Garbage(t *testing.T) {
	assert.Empty(t, ParseList("   "))
}

func TestRank_PrefersMultiWordDomainTerms(t *testing.T) {
	got := Rank([]string{"x", "B2B SaaS platform", "networking"})
	assert.Equal(t, "B2B SaaS platform", got[0])
}

func TestRank_TruncatesToMax(t *testing.T) {
	var many []string
	for i := 0; i < 30; i++ {
		many = append(many, "keyword")
	}
	assert.Len(t, Rank(many), MaxKeywords)
}

func TestRankScore_DomainBonusIsSubstringBased(t *testing.T) {
	// "ai-powered" contains a domain term even though no whole word equals one.
	assert.Greater(t, rankScore("ai-powered"), rankScore("hypowered"))
}

func TestRankScore_DomainBonusAwardedOnce(t *testing.T) {
	// Two domain terms score no higher than one: len 14 -> 2.8, two words
	// -> +2, one domain bonus -> +2.
	assert.InDelta(t, 6.8, rankScore("data analytics"), 1e-9)
}

func TestRank_StableForTies(t *testing.T) {
	got := Rank([]string{"alpha", "bravo", "delta"})
	assert.Equal(t, []string{"alpha", "bravo", "delta"}, got)
}
