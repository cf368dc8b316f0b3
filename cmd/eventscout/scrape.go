package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/networkai/event-scout/internal/scrape"
)

var (
	scrapeListing  string
	scrapeMaxPages int
	scrapeAllAreas bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape upcoming events into the corpus",
	Long:  `Discover event pages from a lu.ma listing, scrape them in batches, and append upcoming events to the corpus CSV. Progress is saved so interrupted runs resume where they left off.`,
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeListing, "listing", "", "Listing URL to discover events from (overrides config)")
	scrapeCmd.Flags().IntVar(&scrapeMaxPages, "max-pages", 0, "Cap on event pages scraped this run")
	scrapeCmd.Flags().BoolVar(&scrapeAllAreas, "all-areas", false, "Keep events outside the Bay Area")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if cfg.FirecrawlAPIKey == "" {
		return fmt.Errorf("FIRECRAWL_API_KEY environment variable is required")
	}

	listing := cfg.ListingURL
	if scrapeListing != "" {
		listing = scrapeListing
	}

	client, err := scrape.NewFirecrawl(cfg.FirecrawlAPIKey, log)
	if err != nil {
		return err
	}

	runner := scrape.NewRunner(client, log, scrape.RunnerOptions{
		ListingURL:   listing,
		CorpusPath:   cfg.CorpusPath,
		ProgressPath: cfg.ProgressPath,
		BatchSize:    cfg.ScrapeBatchSize,
		MaxPages:     scrapeMaxPages,
		BayAreaOnly:  !scrapeAllAreas,
	})

	added, err := runner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("scrape failed after adding %d events: %w", added, err)
	}

	log.Info("scrape finished", zap.Int("events_added", added), zap.String("corpus", cfg.CorpusPath))
	fmt.Printf("Added %d events to %s\n", added, cfg.CorpusPath)
	return nil
}
