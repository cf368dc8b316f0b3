// Package recommend suggests companies worth connecting with, scored against
// the user's keyword set.
package recommend

import (
	"math/rand"
	"sort"
	"strings"
)

// Company is a recommended company with a match score in [0, 1].
type Company struct {
	Name     string  `json:"name"`
	Industry string  `json:"industry"`
	Reason   string  `json:"reason"`
	Score    float64 `json:"score"`
}

// catalog is the sample company pool recommendations are drawn from.
var catalog = []Company{
	{Name: "Salesforce", Industry: "CRM", Reason: "Leading CRM platform with a large B2B partner ecosystem"},
	{Name: "HubSpot", Industry: "Marketing", Reason: "Inbound marketing and sales platform for growing companies"},
	{Name: "Stripe", Industry: "Payments", Reason: "Payments infrastructure widely adopted by B2B SaaS"},
	{Name: "Snowflake", Industry: "Data", Reason: "Cloud data platform popular with analytics teams"},
	{Name: "Datadog", Industry: "Observability", Reason: "Monitoring platform used across enterprise engineering"},
	{Name: "Zoom", Industry: "Communications", Reason: "Video platform with strong enterprise sales motion"},
	{Name: "Atlassian", Industry: "Software", Reason: "Collaboration tools with bottoms-up B2B adoption"},
	{Name: "Twilio", Industry: "Communications", Reason: "API-first communications platform for developers"},
	{Name: "Okta", Industry: "Identity", Reason: "Identity management for enterprise security teams"},
	{Name: "Segment", Industry: "Data", Reason: "Customer data platform for marketing and analytics"},
}

// Companies returns up to limit companies ranked by keyword affinity. A
// small random jitter breaks ties so repeated calls vary the ordering of
// equally matched companies. rng may be nil, in which case the global source
// is used.
func Companies(kws []string, limit int, rng *rand.Rand) []Company {
	if limit <= 0 || limit > len(catalog) {
		limit = len(catalog)
	}

	jitter := rand.Float64
	if rng != nil {
		jitter = rng.Float64
	}

	scored := make([]Company, len(catalog))
	copy(scored, catalog)
	for i := range scored {
		scored[i].Score = matchScore(scored[i], kws) + jitter()*0.1
		if scored[i].Score > 1 {
			scored[i].Score = 1
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored[:limit]
}

func matchScore(c Company, kws []string) float64 {
	if len(kws) == 0 {
		return 0.5
	}

	haystack := strings.ToLower(c.Name + " " + c.Industry + " " + c.Reason)
	var matches int
	for _, kw := range kws {
		if strings.Contains(haystack, strings.ToLower(strings.TrimSpace(kw))) {
			matches++
		}
	}

	score := 0.5 + float64(matches)/float64(len(kws))*0.4
	if score > 0.9 {
		score = 0.9
	}
	return score
}
