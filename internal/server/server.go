// Package server exposes the onboarding conversation, event search, and
// voice endpoints over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/networkai/event-scout/internal/flow"
	"github.com/networkai/event-scout/internal/patterns"
	"github.com/networkai/event-scout/internal/questions"
	"github.com/networkai/event-scout/internal/search"
	"github.com/networkai/event-scout/internal/voice"
)

// Server wires the HTTP API to the onboarding flow, search agent, and voice
// client.
type Server struct {
	port      int
	logger    *zap.Logger
	validate  *validator.Validate
	registry  *flow.Registry
	engine    *questions.Engine
	generator flow.KeywordSource
	agent     *search.Agent
	patterns  *patterns.Library
	voice     *voice.Client // nil when voice is not configured

	httpServer *http.Server
}

// New creates a Server. voiceClient may be nil; the voice endpoints then
// report that voice mode is unavailable.
func New(port int, logger *zap.Logger, registry *flow.Registry, engine *questions.Engine,
	generator flow.KeywordSource, agent *search.Agent, library *patterns.Library, voiceClient *voice.Client) *Server {
	return &Server{
		port:      port,
		logger:    logger,
		validate:  validator.New(),
		registry:  registry,
		engine:    engine,
		generator: generator,
		agent:     agent,
		patterns:  library,
		voice:     voiceClient,
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("POST /api/sessions/{id}/answers", s.handleAnswer)
	mux.HandleFunc("GET /api/sessions/{id}/question", s.handleQuestion)
	mux.HandleFunc("GET /api/sessions/{id}/keywords", s.handleKeywords)
	mux.HandleFunc("POST /api/sessions/{id}/reset", s.handleReset)
	mux.HandleFunc("GET /api/recommendations", s.handleRecommendations)
	mux.HandleFunc("POST /api/search_events", s.handleSearchEvents)
	mux.HandleFunc("POST /api/text_to_speech", s.handleTextToSpeech)
	mux.HandleFunc("POST /api/voice_interaction", s.handleVoiceInteraction)
	return mux
}

// Start runs the server until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.Int("port", s.port))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		s.logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// jsonResponse writes v as a JSON response with the given status code.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes a JSON error body with the given status code.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// decodeBody parses and validates a JSON request body into v.
func (s *Server) decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
