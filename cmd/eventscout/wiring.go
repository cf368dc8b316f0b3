package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/networkai/event-scout/internal/config"
	"github.com/networkai/event-scout/internal/llm"
	"github.com/networkai/event-scout/internal/logger"
	"github.com/networkai/event-scout/internal/scoring"
	"github.com/networkai/event-scout/internal/search"
)

// loadConfig builds configuration from the --config flag, environment, and
// defaults, and constructs the logger.
func loadConfig() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}
	if debug {
		cfg.Debug = true
	}

	log, err := logger.New("console", cfg.Debug)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

// newLLMClient creates the Gemini client when a key is configured. A nil
// client is a valid result; callers then run on deterministic fallbacks.
func newLLMClient(ctx context.Context, cfg config.Config, log *zap.Logger) (llm.Client, error) {
	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, running with deterministic fallbacks")
		return nil, nil
	}
	client, err := llm.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// newSearchAgent wires the scorer and agent from config.
func newSearchAgent(client llm.Client, cfg config.Config, log *zap.Logger) *search.Agent {
	scorer := scoring.NewScorer(client, log)
	return search.NewAgent(scorer, log, search.Options{
		CorpusPath:    cfg.CorpusPath,
		RecencyWeight: cfg.RecencyWeight,
		MaxResults:    cfg.MaxResults,
	})
}
