package scrape

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/networkai/event-scout/internal/types"
)

const (
	// DefaultBatchSize is how many event pages are scraped concurrently.
	DefaultBatchSize = 5
	// DefaultMaxPages caps a single run so a bad listing cannot trigger an
	// unbounded crawl.
	DefaultMaxPages = 500

	batchPause = 2 * time.Second
)

// RunnerOptions configures a scrape run.
type RunnerOptions struct {
	// ListingURL is the lu.ma listing page to discover events from.
	ListingURL string
	// CorpusPath is the CSV file new events are appended to.
	CorpusPath string
	// ProgressPath is the JSON file tracking already-scraped URLs.
	ProgressPath string
	// BatchSize is how many pages are scraped concurrently.
	BatchSize int
	// MaxPages caps the number of event pages scraped in one run.
	MaxPages int
	// BayAreaOnly drops events whose location is outside the Bay Area.
	BayAreaOnly bool
	// Now supplies the reference time for the future-event filter.
	Now func() time.Time
}

// Runner orchestrates a full scrape: discover event links from a listing,
// scrape them in batches, filter, and append survivors to the corpus.
type Runner struct {
	client *Firecrawl
	logger *zap.Logger
	opts   RunnerOptions
}

// NewRunner creates a scrape Runner.
func NewRunner(client *Firecrawl, logger *zap.Logger, opts RunnerOptions) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{client: client, logger: logger, opts: opts}
}

// scrapedEvent pairs a page URL with its parsed event. event is nil when
// the page could not be scraped or parsed.
type scrapedEvent struct {
	url   string
	event *types.Event
}

// Run executes the scrape and returns how many events were added to the
// corpus. Progress is saved after every batch, so an interrupted run can be
// resumed without re-scraping.
func (r *Runner) Run(ctx context.Context) (int, error) {
	progress, err := LoadProgress(r.opts.ProgressPath)
	if err != nil {
		return 0, err
	}

	html, err := r.client.FetchHTML(ctx, r.opts.ListingURL)
	if err != nil {
		return 0, err
	}

	links, err := ExtractEventLinks(html, r.opts.ListingURL)
	if err != nil {
		return 0, err
	}

	var pending []string
	for _, link := range links {
		if !progress.Seen(link) {
			pending = append(pending, link)
		}
	}
	if len(pending) > r.opts.MaxPages {
		pending = pending[:r.opts.MaxPages]
	}

	r.logger.Info("discovered event pages",
		zap.Int("total", len(links)),
		zap.Int("pending", len(pending)))

	reference := r.opts.Now()
	added := 0

	for start := 0; start < len(pending); start += r.opts.BatchSize {
		end := start + r.opts.BatchSize
		if end > len(pending) {
			end = len(pending)
		}

		results, err := r.scrapeBatch(ctx, pending[start:end])
		if err != nil {
			return added, err
		}

		var keep []*types.Event
		for _, scraped := range results {
			progress.Mark(scraped.url)
			event := scraped.event
			if !Valid(event) {
				r.logger.Debug("dropping incomplete event", zap.String("url", scraped.url))
				continue
			}
			if r.opts.BayAreaOnly && !InBayArea(event) {
				r.logger.Debug("dropping out-of-area event",
					zap.String("url", scraped.url),
					zap.String("location", event.Location))
				continue
			}
			if !Upcoming(event, reference) {
				r.logger.Debug("dropping past event",
					zap.String("url", scraped.url),
					zap.String("date", event.DateTime()))
				continue
			}
			keep = append(keep, event)
		}

		if len(keep) > 0 {
			if err := AppendEvents(r.opts.CorpusPath, keep); err != nil {
				return added, err
			}
			added += len(keep)
		}

		if err := progress.Save(); err != nil {
			return added, err
		}

		if end < len(pending) {
			select {
			case <-time.After(batchPause):
			case <-ctx.Done():
				return added, ctx.Err()
			}
		}
	}

	r.logger.Info("scrape complete",
		zap.Int("added", added),
		zap.Int("total_scraped", progress.Count()))
	return added, nil
}

func (r *Runner) scrapeBatch(ctx context.Context, urls []string) ([]scrapedEvent, error) {
	var (
		mu      sync.Mutex
		results []scrapedEvent
	)

	group, gctx := errgroup.WithContext(ctx)
	for _, pageURL := range urls {
		pageURL := pageURL
		group.Go(func() error {
			data, err := r.client.ExtractStructured(gctx, pageURL, eventPrompt)
			if err != nil {
				// A single bad page should not sink the batch.
				r.logger.Warn("failed to scrape event page",
					zap.String("url", pageURL),
					zap.Error(err))
				mu.Lock()
				results = append(results, scrapedEvent{url: pageURL})
				mu.Unlock()
				return nil
			}

			event, err := ParseEvent(data, pageURL)
			if err != nil {
				r.logger.Warn("failed to parse event page",
					zap.String("url", pageURL),
					zap.Error(err))
			}

			mu.Lock()
			results = append(results, scrapedEvent{url: pageURL, event: event})
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
