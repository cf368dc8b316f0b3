package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/networkai/event-scout/internal/flow"
	"github.com/networkai/event-scout/internal/keywords"
	"github.com/networkai/event-scout/internal/patterns"
	"github.com/networkai/event-scout/internal/questions"
	"github.com/networkai/event-scout/internal/server"
	"github.com/networkai/event-scout/internal/voice"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the onboarding conversation, event search, and voice endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if servePort != 0 {
		cfg.Port = servePort
	}

	client, err := newLLMClient(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	}

	var voiceClient *voice.Client
	if cfg.ElevenLabsAPIKey != "" {
		voiceClient, err = voice.NewClient(cfg.ElevenLabsAPIKey, cfg.VoiceID, log)
		if err != nil {
			return fmt.Errorf("failed to create voice client: %w", err)
		}
		defer voiceClient.Cleanup()
	} else {
		log.Warn("ELEVENLABS_API_KEY not set, voice endpoints disabled")
	}

	library, err := patterns.Load()
	if err != nil {
		return fmt.Errorf("failed to load workflow patterns: %w", err)
	}

	srv := server.New(cfg.Port, log,
		flow.NewRegistry(),
		questions.NewEngine(client, log),
		keywords.NewGenerator(client, log),
		newSearchAgent(client, cfg, log),
		library,
		voiceClient)

	log.Info("starting server", zap.Int("port", cfg.Port), zap.String("corpus", cfg.CorpusPath))
	return srv.Start()
}
