package server

import (
	"encoding/base64"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/networkai/event-scout/internal/flow"
	"github.com/networkai/event-scout/internal/keywords"
	"github.com/networkai/event-scout/internal/recommend"
	"github.com/networkai/event-scout/internal/types"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sessionFromPath resolves the {id} path segment to a live session.
func (s *Server) sessionFromPath(w http.ResponseWriter, r *http.Request) *flow.Session {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid session id")
		return nil
	}
	session, err := s.registry.Get(id)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return nil
	}
	return session
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := s.registry.Create()
	question := s.engine.Question(r.Context(), session)

	s.logger.Info("session created", zap.String("session_id", session.ID.String()))
	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"session_id": session.ID.String(),
		"step":       session.Step(),
		"question":   question,
	})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	session := s.sessionFromPath(w, r)
	if session == nil {
		return
	}

	var req struct {
		Answer string `json:"answer" validate:"required"`
	}
	if err := s.decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	next := session.StoreAnswer(r.Context(), req.Answer, s.generator)
	if next == flow.StepComplete && session.Summary() == "" {
		session.SetSummary(s.engine.GenerateSummary(r.Context(), session))
	}

	question := s.engine.Question(r.Context(), session)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"step":     next,
		"complete": next == flow.StepComplete,
		"question": question,
		"keywords": session.Keywords(),
	})
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	session := s.sessionFromPath(w, r)
	if session == nil {
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"step":     session.Step(),
		"question": s.engine.Question(r.Context(), session),
	})
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	session := s.sessionFromPath(w, r)
	if session == nil {
		return
	}

	kws := session.Keywords()
	if len(kws) > 0 {
		kws = keywords.Clean(kws)
		session.SetKeywords(kws)
	}

	// The summary is generated on first request and reused after that.
	if session.Summary() == "" && session.Answer(flow.StepProduct) != "" {
		session.SetSummary(s.engine.GenerateSummary(r.Context(), session))
	}

	response := map[string]any{
		"keywords": kws,
		"summary":  session.Summary(),
	}
	if s.patterns != nil {
		var eventTypes []string
		for _, pattern := range s.patterns.FindMatching(session.Answer(flow.StepProduct)) {
			eventTypes = append(eventTypes, pattern.EventTypes...)
		}
		response["suggested_event_types"] = eventTypes
	}
	s.jsonResponse(w, http.StatusOK, response)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	session := s.sessionFromPath(w, r)
	if session == nil {
		return
	}

	if err := s.registry.Reset(session.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"step":     flow.StepProduct,
		"question": s.engine.Question(r.Context(), session),
	})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	kws := keywords.DefaultSet()
	if raw := r.URL.Query().Get("session_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid session id")
			return
		}
		session, err := s.registry.Get(id)
		if err != nil {
			s.errorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		kws = session.Keywords()
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"companies": recommend.Companies(kws, 5, nil),
	})
}

func (s *Server) handleSearchEvents(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string   `json:"session_id"`
		Keywords  []string `json:"keywords"`
	}
	if err := s.decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	kws := keywords.Clean(req.Keywords)
	summary := ""
	if req.SessionID != "" {
		id, err := uuid.Parse(req.SessionID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid session id")
			return
		}
		session, err := s.registry.Get(id)
		if err != nil {
			s.errorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		if len(req.Keywords) == 0 {
			kws = session.Keywords()
		}
		summary = session.Summary()
	}

	events, err := s.agent.FindTopEvents(r.Context(), kws, summary)
	if err != nil {
		s.logger.Error("event search failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "event search failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"keywords": kws,
		"events":   renderEvents(events),
	})
}

// renderEvents converts events to their API shape, substituting the
// placeholder for missing presentation fields.
func renderEvents(events []*types.Event) []map[string]any {
	out := make([]map[string]any, 0, len(events))
	for _, e := range events {
		out = append(out, map[string]any{
			"title":          types.Render(e.Title),
			"description":    types.Render(e.Description),
			"date":           e.FormattedDate,
			"location":       types.Render(e.Location),
			"url":            types.Render(e.URL),
			"host":           types.Render(e.Host),
			"speakers":       e.Speakers,
			"relevance":      e.RelevanceScore,
			"recency":        e.RecencyScore,
			"combined_score": e.CombinedScore,
			"highlight":      e.RelevanceHighlight,
		})
	}
	return out
}

func (s *Server) handleTextToSpeech(w http.ResponseWriter, r *http.Request) {
	if s.voice == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "voice mode is not configured")
		return
	}

	var req struct {
		Text string `json:"text" validate:"required"`
	}
	if err := s.decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	audio, err := s.voice.Synthesize(r.Context(), req.Text)
	if err != nil {
		s.logger.Error("speech synthesis failed", zap.Error(err))
		s.errorResponse(w, http.StatusBadGateway, "speech synthesis failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"audio_base64": audio})
}

func (s *Server) handleVoiceInteraction(w http.ResponseWriter, r *http.Request) {
	if s.voice == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "voice mode is not configured")
		return
	}

	var req struct {
		SessionID   string `json:"session_id" validate:"required"`
		AudioBase64 string `json:"audio_base64" validate:"required"`
		Filename    string `json:"filename"`
	}
	if err := s.decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := uuid.Parse(req.SessionID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid session id")
		return
	}
	session, err := s.registry.Get(id)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid audio encoding")
		return
	}

	transcript, err := s.voice.Transcribe(r.Context(), audio, req.Filename)
	if err != nil {
		s.logger.Error("transcription failed", zap.Error(err))
		s.errorResponse(w, http.StatusBadGateway, "transcription failed")
		return
	}
	if transcript == "" {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"transcript": "",
			"question":   "Sorry, I didn't catch that. Could you say it again?",
		})
		return
	}

	next := session.StoreAnswer(r.Context(), transcript, s.generator)
	if next == flow.StepComplete && session.Summary() == "" {
		session.SetSummary(s.engine.GenerateSummary(r.Context(), session))
	}
	question := s.engine.Question(r.Context(), session)

	reply, err := s.voice.Synthesize(r.Context(), question)
	if err != nil {
		s.logger.Warn("reply synthesis failed, returning text only", zap.Error(err))
		reply = ""
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"transcript":   transcript,
		"step":         next,
		"complete":     next == flow.StepComplete,
		"question":     question,
		"audio_base64": reply,
		"keywords":     session.Keywords(),
	})
}
