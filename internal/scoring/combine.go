package scoring

import (
	"math"
	"time"

	"github.com/networkai/event-scout/internal/dates"
)

// DefaultRecencyWeight is the share of the combined score contributed by how
// soon an event happens.
const DefaultRecencyWeight = 0.2

// Recency maps the number of days until an event onto (0, 1]. An event
// happening today scores exactly 1.0 and the score decays logarithmically
// with distance.
func Recency(daysUntil int) float64 {
	if daysUntil < 0 {
		daysUntil = 0
	}
	return 1 / (1 + math.Log(1+float64(daysUntil)))
}

// Combine blends a relevance score with recency. date may be nil when the
// event's date could not be parsed; the relevance score then passes through
// unchanged. weight is the recency share and is clamped to [0, 1].
func Combine(relevance float64, date *time.Time, reference time.Time, weight float64) (combined, recency float64) {
	if weight < 0 {
		weight = 0
	}
	if weight > 1 {
		weight = 1
	}

	if date == nil {
		return relevance, 0
	}

	recency = Recency(dates.DaysUntil(*date, reference))
	combined = (1-weight)*relevance + weight*recency
	return combined, recency
}
