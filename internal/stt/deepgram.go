package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is Deepgram's prerecorded-audio endpoint.
	DefaultEndpoint = "https://api.deepgram.com/v1/listen"
	DefaultModel    = "nova-2-general"
	DefaultTimeout  = 30 * time.Second
)

// DeepgramConfig configures the Deepgram transcriber. Zero-valued fields
// take the package defaults.
type DeepgramConfig struct {
	APIKey   string
	Endpoint string
	Model    string
	Timeout  time.Duration
}

// Deepgram transcribes audio through the Deepgram listen endpoint.
type Deepgram struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
	log      *slog.Logger
}

func NewDeepgram(cfg DeepgramConfig, log *slog.Logger) *Deepgram {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Deepgram{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
		log:      log,
	}
}

func (d *Deepgram) Transcribe(ctx context.Context, audio []byte, mimeType string) Result {
	text, err := d.call(ctx, audio, mimeType)
	if err != nil {
		d.log.Warn("transcription failed, recording without transcript", "err", err)
		return Result{Degraded: true, Reason: ReasonRequestFailed}
	}
	if text == "" {
		return Result{Degraded: true, Reason: ReasonNoSpeech}
	}
	return Result{Text: text}
}

func (d *Deepgram) call(ctx context.Context, audio []byte, mimeType string) (string, error) {
	q := url.Values{}
	q.Set("model", d.model)
	q.Set("smart_format", "true")
	q.Set("language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.endpoint+"?"+q.Encode(), bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+d.apiKey)
	if mimeType == "" {
		mimeType = "audio/wav"
	}
	req.Header.Set("Content-Type", mimeType)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("post audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("deepgram status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var payload listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return payload.transcript(), nil
}

// listenResponse mirrors the part of the Deepgram response we read:
// results.channels[0].alternatives[0].transcript.
type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (r listenResponse) transcript() string {
	if len(r.Results.Channels) == 0 || len(r.Results.Channels[0].Alternatives) == 0 {
		return ""
	}
	return strings.TrimSpace(r.Results.Channels[0].Alternatives[0].Transcript)
}
