// Package config loads application configuration from a JSON file and the
// environment, with environment variables taking precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config holds the full application configuration.
type Config struct {
	// Port is the HTTP server listen port.
	Port int `json:"port" validate:"gte=1,lte=65535"`

	// CorpusPath is the CSV file holding the scraped event corpus.
	CorpusPath string `json:"corpus_path" validate:"required"`

	// ProgressPath is the JSON file tracking scrape progress.
	ProgressPath string `json:"progress_path"`

	// ListingURL is the lu.ma listing the scraper discovers events from.
	ListingURL string `json:"listing_url" validate:"omitempty,url"`

	// RecencyWeight is the share of an event's combined score contributed
	// by how soon it happens.
	RecencyWeight float64 `json:"recency_weight" validate:"gte=0,lte=1"`

	// MaxResults bounds how many events a search returns.
	MaxResults int `json:"max_results" validate:"gte=1"`

	// ScrapeBatchSize is how many event pages are scraped concurrently.
	ScrapeBatchSize int `json:"scrape_batch_size" validate:"gte=1"`

	// GeminiAPIKey authenticates LLM calls. Optional; without it the
	// deterministic fallbacks are used everywhere.
	GeminiAPIKey string `json:"-"`

	// ElevenLabsAPIKey authenticates voice calls. Optional; without it the
	// voice endpoints return errors.
	ElevenLabsAPIKey string `json:"-"`

	// VoiceID selects the ElevenLabs voice for spoken replies.
	VoiceID string `json:"voice_id"`

	// FirecrawlAPIKey authenticates scraping calls.
	FirecrawlAPIKey string `json:"-"`

	// Debug enables verbose logging.
	Debug bool `json:"debug"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Port:            8080,
		CorpusPath:      "data/events.csv",
		ProgressPath:    "data/scrape_progress.json",
		ListingURL:      "https://lu.ma/sf",
		RecencyWeight:   0.2,
		MaxResults:      10,
		ScrapeBatchSize: 5,
	}
}

// Load builds the configuration from defaults, an optional JSON file at
// path, and environment variables, validating the result. Pass an empty
// path to skip the file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("ELEVENLABS_API_KEY"); v != "" {
		cfg.ElevenLabsAPIKey = v
	}
	if v := os.Getenv("FIRECRAWL_API_KEY"); v != "" {
		cfg.FirecrawlAPIKey = v
	}
	if v := os.Getenv("EVENTSCOUT_VOICE_ID"); v != "" {
		cfg.VoiceID = v
	}
	if v := os.Getenv("EVENTSCOUT_CORPUS"); v != "" {
		cfg.CorpusPath = v
	}
	if v := os.Getenv("EVENTSCOUT_LISTING_URL"); v != "" {
		cfg.ListingURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("EVENTSCOUT_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}
}
