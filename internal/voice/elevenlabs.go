// Package voice wraps the ElevenLabs speech APIs for voice-mode
// conversations: transcribing user audio and synthesizing spoken replies.
package voice

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const (
	baseURL = "https://api.elevenlabs.io/v1"

	// DefaultVoiceID is the ElevenLabs voice used when none is configured.
	DefaultVoiceID = "EXAVITQu4vr4xnSDxMaL"

	sttModel = "scribe_v1"
	ttsModel = "eleven_turbo_v2"
)

// Client talks to the ElevenLabs speech APIs.
type Client struct {
	apiKey     string
	voiceID    string
	httpClient *http.Client
	logger     *zap.Logger
	tempDir    string
}

// NewClient creates a voice client. voiceID may be empty to use
// DefaultVoiceID. The client owns a temp directory for intermediate audio
// files; call Cleanup when done.
func NewClient(apiKey, voiceID string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("elevenlabs API key is required")
	}
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	tempDir, err := os.MkdirTemp("", "eventscout-voice-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create voice temp dir: %w", err)
	}

	return &Client{
		apiKey:     apiKey,
		voiceID:    voiceID,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
		tempDir:    tempDir,
	}, nil
}

// Cleanup removes the client's temp directory.
func (c *Client) Cleanup() {
	if c.tempDir != "" {
		os.RemoveAll(c.tempDir)
	}
}

// spoolAudio writes incoming audio to a file in the client's temp directory
// so uploads stream from disk instead of holding a second copy in memory.
// The caller removes the file when the upload finishes.
func (c *Client) spoolAudio(audio []byte, filename string) (string, error) {
	f, err := os.CreateTemp(c.tempDir, "upload-*"+filepath.Ext(filename))
	if err != nil {
		return "", fmt.Errorf("failed to spool audio: %w", err)
	}
	if _, err := f.Write(audio); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to spool audio: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to spool audio: %w", err)
	}
	return f.Name(), nil
}

// Transcribe converts recorded audio to text. The audio is expected to be an
// mp3 or similar compressed format. An empty transcript with a nil error
// means the service heard nothing.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if filename == "" {
		filename = "audio.mp3"
	}

	audioPath, err := c.spoolAudio(audio, filename)
	if err != nil {
		return "", err
	}
	defer os.Remove(audioPath)

	spooled, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to read spooled audio: %w", err)
	}
	defer spooled.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}
	if _, err := io.Copy(part, spooled); err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}
	if err := writer.WriteField("model_id", sttModel); err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/speech-to-text", &body)
	if err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("transcription failed with status %d: %s", resp.StatusCode, detail)
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse transcription response: %w", err)
	}

	c.logger.Debug("transcribed audio", zap.Int("bytes", len(audio)), zap.Int("chars", len(parsed.Text)))
	return parsed.Text, nil
}

// Synthesize converts text to spoken audio and returns it base64 encoded,
// ready to embed in a JSON response.
func (c *Client) Synthesize(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"text":     EnhanceForSpeech(text),
		"model_id": ttsModel,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", baseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build synthesis request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("synthesis failed with status %d: %s", resp.StatusCode, detail)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read synthesis response: %w", err)
	}

	c.logger.Debug("synthesized speech", zap.Int("chars", len(text)), zap.Int("bytes", len(audio)))
	return base64.StdEncoding.EncodeToString(audio), nil
}
