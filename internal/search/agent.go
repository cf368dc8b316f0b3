// Package search finds and ranks upcoming events for a user's keyword set.
package search

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/networkai/event-scout/internal/corpus"
	"github.com/networkai/event-scout/internal/dates"
	"github.com/networkai/event-scout/internal/scoring"
	"github.com/networkai/event-scout/internal/types"
)

// DefaultMaxResults bounds how many events a search returns.
const DefaultMaxResults = 10

// maxConcurrentScores limits in-flight relevance calls so a large corpus
// does not hammer the model API.
const maxConcurrentScores = 5

// RelevanceScorer judges how relevant an event is to a keyword set.
// Implemented by scoring.Scorer.
type RelevanceScorer interface {
	Score(ctx context.Context, event *types.Event, keywords []string, userSummary string) scoring.Result
}

// Options configures an Agent.
type Options struct {
	// CorpusPath is the CSV file holding scraped events.
	CorpusPath string
	// RecencyWeight is the share of the combined score contributed by how
	// soon an event happens. Defaults to scoring.DefaultRecencyWeight.
	RecencyWeight float64
	// MaxResults bounds the result list. Defaults to DefaultMaxResults.
	MaxResults int
	// Now supplies the reference time for date filtering. Defaults to
	// time.Now. Exposed for tests.
	Now func() time.Time
}

// Agent loads the event corpus, scores events against keywords, and returns
// the top upcoming events.
type Agent struct {
	scorer RelevanceScorer
	logger *zap.Logger
	opts   Options
}

// NewAgent creates a search Agent.
func NewAgent(scorer RelevanceScorer, logger *zap.Logger, opts Options) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RecencyWeight == 0 {
		opts.RecencyWeight = scoring.DefaultRecencyWeight
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Agent{scorer: scorer, logger: logger, opts: opts}
}

// FindTopEvents returns the highest-scoring upcoming events for the given
// keywords, ordered by combined score descending. userSummary is optional
// context passed through to the relevance scorer. An empty or missing corpus
// yields an empty list, not an error.
func (a *Agent) FindTopEvents(ctx context.Context, kws []string, userSummary string) ([]*types.Event, error) {
	events, err := corpus.Load(a.opts.CorpusPath)
	if err != nil {
		return nil, err
	}

	reference := a.opts.Now().UTC()
	upcoming := a.filterUpcoming(events, reference)

	a.logger.Info("scoring events",
		zap.Int("total", len(events)),
		zap.Int("upcoming", len(upcoming)),
		zap.Strings("keywords", kws))

	if err := a.scoreAll(ctx, upcoming, kws, userSummary, reference); err != nil {
		return nil, err
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].CombinedScore > upcoming[j].CombinedScore
	})

	if len(upcoming) > a.opts.MaxResults {
		upcoming = upcoming[:a.opts.MaxResults]
	}
	return upcoming, nil
}

// filterUpcoming normalizes event dates against reference and drops events
// strictly in the past. The bare date string is parsed when present; the
// combined date-time string is only a fallback. Events whose dates cannot
// be parsed are assumed to be upcoming and kept.
func (a *Agent) filterUpcoming(events []*types.Event, reference time.Time) []*types.Event {
	var upcoming []*types.Event
	for _, event := range events {
		raw := event.RawDate
		if raw == "" {
			raw = event.DateTime()
		}
		if parsed, ok := dates.Normalize(raw, reference); ok {
			if parsed.Before(reference.Truncate(24 * time.Hour)) {
				continue
			}
			p := parsed
			event.ParsedDate = &p
		}
		event.FormattedDate = dates.FormatDisplay(event.DateTime(), reference)
		upcoming = append(upcoming, event)
	}
	return upcoming
}

func (a *Agent) scoreAll(ctx context.Context, events []*types.Event, kws []string, userSummary string, reference time.Time) error {
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentScores)

	for _, event := range events {
		event := event
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := a.scorer.Score(gctx, event, kws, userSummary)
			event.RelevanceScore = result.Score
			event.RelevanceHighlight = result.Highlight
			event.CombinedScore, event.RecencyScore = scoring.Combine(
				result.Score, event.ParsedDate, reference, a.opts.RecencyWeight)
			return nil
		})
	}

	return group.Wait()
}
