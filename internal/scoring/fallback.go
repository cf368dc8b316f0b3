package scoring

import (
	"fmt"
	"strings"

	"github.com/networkai/event-scout/internal/types"
)

// FallbackScore rates an event by keyword containment when no LLM judgment is
// available. A keyword found in the title counts more than one found anywhere
// else in the event text, and the final score is capped below the bottom of
// the "very relevant" band so fallback results never outrank model judgments.
func FallbackScore(event *types.Event, keywords []string) Result {
	if len(keywords) == 0 {
		return Result{Score: 0, Highlight: "No keywords to match against"}
	}

	title := strings.ToLower(event.Title)
	allText := eventText(event)

	var total float64
	var matched []string
	for _, keyword := range keywords {
		kw := strings.ToLower(strings.TrimSpace(keyword))
		if kw == "" {
			continue
		}
		if strings.Contains(title, kw) {
			total += 1.5
			matched = append(matched, keyword)
			continue
		}
		if n := strings.Count(allText, kw); n > 0 {
			weight := 0.5 + float64(n)/10
			if weight > 1.0 {
				weight = 1.0
			}
			total += weight
			matched = append(matched, keyword)
		}
	}

	score := total / float64(len(keywords)) * 0.7
	if score > 0.7 {
		score = 0.7
	}

	highlight := "No keyword matches found"
	if len(matched) > 0 {
		highlight = fmt.Sprintf("Matches keywords: %s", strings.Join(matched, ", "))
	}

	return Result{Score: score, Highlight: highlight}
}

// eventText concatenates every textual field of an event, lowercased, so
// keyword containment sees the title, description, location, host, speaker
// fields, and detail text alike.
func eventText(event *types.Event) string {
	parts := []string{
		event.Title, event.Description, event.Location, event.Host, event.Detail,
	}
	for _, sp := range event.Speakers {
		parts = append(parts, sp.Name, sp.Title, sp.Company, sp.Detail)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
