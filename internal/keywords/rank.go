package keywords

import (
	"sort"
	"strings"
)

// MaxKeywords bounds the keyword set so relevance prompts stay focused.
const MaxKeywords = 15

// domainTerms are B2B technology terms that make a keyword more useful for
// event discovery.
var domainTerms = []string{
	"b2b", "saas", "enterprise", "platform",
	"solution", "technology", "ai", "ml",
	"data", "analytics", "cloud", "software",
	"service", "automation", "integration", "management",
}

// Rank orders keywords by estimated search value and truncates to
// MaxKeywords. Sorting is stable, so equally scored keywords keep their
// original order.
func Rank(kws []string) []string {
	type scored struct {
		keyword string
		score   float64
	}

	ranked := make([]scored, len(kws))
	for i, kw := range kws {
		ranked[i] = scored{keyword: kw, score: rankScore(kw)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > MaxKeywords {
		ranked = ranked[:MaxKeywords]
	}

	result := make([]string, len(ranked))
	for i, s := range ranked {
		result[i] = s.keyword
	}
	return result
}

func rankScore(keyword string) float64 {
	kw := strings.TrimSpace(keyword)
	var score float64

	if n := len(kw); n >= 3 && n <= 20 {
		bonus := float64(n) / 5
		if bonus > 3 {
			bonus = 3
		}
		score += bonus
	}

	if words := strings.Fields(kw); len(words) > 1 {
		bonus := float64(len(words))
		if bonus > 3 {
			bonus = 3
		}
		score += bonus
	}

	// A single bonus for containing any domain term, however many match.
	lower := strings.ToLower(kw)
	for _, term := range domainTerms {
		if strings.Contains(lower, term) {
			score += 2
			break
		}
	}

	return score
}
