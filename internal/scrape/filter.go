package scrape

import (
	"strings"
	"time"

	"github.com/networkai/event-scout/internal/dates"
	"github.com/networkai/event-scout/internal/types"
)

// bayAreaTerms identify events in the region the corpus covers.
var bayAreaTerms = []string{
	"san francisco", "sf", "bay area", "oakland", "berkeley",
	"palo alto", "mountain view", "san jose", "menlo park",
	"redwood city", "sunnyvale", "santa clara", "south bay",
}

// Valid reports whether a scraped event has the minimum fields worth
// keeping: a name and a location.
func Valid(event *types.Event) bool {
	return event != nil && event.Title != "" && event.Location != ""
}

// InBayArea reports whether the event's location mentions a Bay Area city
// or region.
func InBayArea(event *types.Event) bool {
	location := strings.ToLower(event.Location)
	for _, term := range bayAreaTerms {
		if term == "sf" {
			// "sf" needs word-boundary matching or it hits words like "transfer".
			for _, word := range strings.FieldsFunc(location, func(r rune) bool {
				return r == ' ' || r == ',' || r == '.'
			}) {
				if word == "sf" {
					return true
				}
			}
			continue
		}
		if strings.Contains(location, term) {
			return true
		}
	}
	return false
}

// Upcoming reports whether the event happens on or after reference. The
// bare date string is parsed when present, the combined date-time string
// otherwise. Events with unparseable dates are assumed upcoming and kept.
func Upcoming(event *types.Event, reference time.Time) bool {
	raw := event.RawDate
	if raw == "" {
		raw = event.DateTime()
	}
	parsed, ok := dates.Normalize(raw, reference)
	if !ok {
		return true
	}
	return !parsed.Before(reference.UTC().Truncate(24 * time.Hour))
}
