package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/networkai/event-scout/internal/flow"
	"github.com/networkai/event-scout/internal/keywords"
	"github.com/networkai/event-scout/internal/patterns"
	"github.com/networkai/event-scout/internal/questions"
	"github.com/networkai/event-scout/internal/scoring"
	"github.com/networkai/event-scout/internal/search"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	corpusPath := filepath.Join(t.TempDir(), "events.csv")
	csv := "event_name,description,event_date,location,url\n" +
		"B2B Sales Summit,Pipeline talks,2025-05-01,San Francisco,https://lu.ma/sales-summit\n" +
		"Pottery Night,Clay and wine,2025-05-02,Oakland,https://lu.ma/pottery\n"
	require.NoError(t, os.WriteFile(corpusPath, []byte(csv), 0o644))

	agent := search.NewAgent(scoring.NewScorer(nil, nil), nil, search.Options{
		CorpusPath: corpusPath,
		Now: func() time.Time {
			return time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)
		},
	})

	library, err := patterns.Load()
	require.NoError(t, err)

	return New(0, zap.NewNop(),
		flow.NewRegistry(),
		questions.NewEngine(nil, nil),
		keywords.NewGenerator(nil, nil),
		agent,
		library,
		nil)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var parsed map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv.routes(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.routes()

	rec, body := doJSON(t, mux, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID := body["session_id"].(string)
	assert.Equal(t, "product", body["step"])
	assert.NotEmpty(t, body["question"])

	answers := []string{
		"An AI lead scoring platform",
		"Mid-market sales teams",
		"Explainable scoring",
		"Mid-market",
		"yes",
		"94105",
	}
	for i, answer := range answers {
		rec, body = doJSON(t, mux, http.MethodPost,
			fmt.Sprintf("/api/sessions/%s/answers", sessionID),
			map[string]string{"answer": answer})
		require.Equal(t, http.StatusOK, rec.Code, "answer %d", i)
	}
	assert.Equal(t, "complete", body["step"])
	assert.Equal(t, true, body["complete"])

	rec, body = doJSON(t, mux, http.MethodGet,
		fmt.Sprintf("/api/sessions/%s/keywords", sessionID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["keywords"])
	assert.NotEmpty(t, body["summary"])
	// The product answer mentions AI, so AI event types are suggested.
	assert.NotEmpty(t, body["suggested_event_types"])
}

func TestKeywordsMidFlowCleansAndSummarizes(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.routes()

	_, body := doJSON(t, mux, http.MethodPost, "/api/sessions", nil)
	sessionID := body["session_id"].(string)

	doJSON(t, mux, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/answers", sessionID),
		map[string]string{"answer": "An AI lead scoring platform"})

	rec, body := doJSON(t, mux, http.MethodGet,
		fmt.Sprintf("/api/sessions/%s/keywords", sessionID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Keywords come back cleaned and sorted even before the flow completes.
	assert.Equal(t,
		[]any{"B2B", "Lead Generation", "Marketing", "Sales"},
		body["keywords"])

	// The summary is generated on demand and does not change between reads.
	summary := body["summary"].(string)
	assert.NotEmpty(t, summary)

	_, body = doJSON(t, mux, http.MethodGet,
		fmt.Sprintf("/api/sessions/%s/keywords", sessionID), nil)
	assert.Equal(t, summary, body["summary"])
}

func TestSessionReset(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.routes()

	_, body := doJSON(t, mux, http.MethodPost, "/api/sessions", nil)
	sessionID := body["session_id"].(string)

	doJSON(t, mux, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/answers", sessionID),
		map[string]string{"answer": "a product"})

	rec, body := doJSON(t, mux, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "product", body["step"])
}

func TestSessionNotFound(t *testing.T) {
	srv := newTestServer(t)

	rec, _ := doJSON(t, srv.routes(), http.MethodGet,
		"/api/sessions/7f0f5f3a-2e44-4d6d-9c37-2a1af1e2b3c4/question", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionInvalidID(t *testing.T) {
	srv := newTestServer(t)

	rec, _ := doJSON(t, srv.routes(), http.MethodGet,
		"/api/sessions/not-a-uuid/question", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnswerValidation(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.routes()

	_, body := doJSON(t, mux, http.MethodPost, "/api/sessions", nil)
	sessionID := body["session_id"].(string)

	rec, _ := doJSON(t, mux, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/answers", sessionID),
		map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEvents(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv.routes(), http.MethodPost, "/api/search_events",
		map[string]any{"keywords": []string{"Sales"}})
	require.Equal(t, http.StatusOK, rec.Code)

	events := body["events"].([]any)
	require.Len(t, events, 2)

	// The sales event outranks the pottery event on keyword relevance.
	first := events[0].(map[string]any)
	assert.Equal(t, "B2B Sales Summit", first["title"])
	assert.Greater(t, first["combined_score"].(float64), 0.0)
}

func TestRecommendations(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv.routes(), http.MethodGet, "/api/recommendations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["companies"].([]any), 5)
}

func TestVoiceEndpointsUnavailableWithoutClient(t *testing.T) {
	srv := newTestServer(t)
	mux := srv.routes()

	rec, _ := doJSON(t, mux, http.MethodPost, "/api/text_to_speech",
		map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = doJSON(t, mux, http.MethodPost, "/api/voice_interaction",
		map[string]string{"session_id": "x", "audio_base64": "x"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
