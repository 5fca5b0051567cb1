package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama3-8b-8192"
	DefaultTimeout = 8 * time.Second
)

const systemPrompt = "You are a private journaling assistant. Given a journal transcript, " +
	"identify the main emotion as a single lowercase word, summarize the entry in at most " +
	"two concise sentences, and write one short reflective question back to the writer."

// enrichmentPayload is the JSON shape the model is asked to produce.
type enrichmentPayload struct {
	Emotion    string `json:"emotion" jsonschema_description:"Main emotion as a single lowercase word"`
	Summary    string `json:"summary" jsonschema_description:"At most two concise sentences"`
	Reflection string `json:"reflection" jsonschema_description:"One reflective question for the writer"`
}

var enrichmentSchema = generateSchema[enrichmentPayload]()

var errBadResponse = errors.New("bad enrichment response")

// RemoteConfig configures the remote enricher. Zero-valued fields take the
// package defaults.
type RemoteConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Remote asks an OpenAI-compatible chat endpoint for the enrichment triple
// and falls back to the heuristic on any failure. One attempt, no retries:
// journaling never depends on the remote call succeeding.
type Remote struct {
	client   openai.Client
	model    string
	timeout  time.Duration
	fallback Heuristic
	log      *slog.Logger
}

func NewRemote(cfg RemoteConfig, log *slog.Logger) *Remote {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	)
	return &Remote{client: client, model: cfg.Model, timeout: cfg.Timeout, log: log}
}

func (r *Remote) Analyze(ctx context.Context, transcript string) Result {
	enr, err := r.call(ctx, transcript)
	if err != nil {
		reason := ReasonRequestFailed
		if errors.Is(err, errBadResponse) {
			reason = ReasonBadResponse
		}
		r.log.Warn("remote enrichment failed, using heuristic",
			"reason", string(reason), "err", err)
		res := r.fallback.Analyze(ctx, transcript)
		res.Degraded = true
		res.Reason = reason
		return res
	}
	return Result{Enrichment: enr}
}

func (r *Remote) call(ctx context.Context, transcript string) (Enrichment, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(r.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage("Journal transcript:\n\n" + transcript),
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(600),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "journal_enrichment",
					Description: openai.String("Emotion, summary and reflection for a journal entry"),
					Schema:      enrichmentSchema,
					Strict:      openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return Enrichment{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Enrichment{}, fmt.Errorf("no choices: %w", errBadResponse)
	}

	var payload enrichmentPayload
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return Enrichment{}, fmt.Errorf("parse enrichment: %w", errBadResponse)
	}

	enr := Enrichment{
		Emotion:    strings.ToLower(strings.TrimSpace(payload.Emotion)),
		Summary:    strings.TrimSpace(payload.Summary),
		Reflection: strings.TrimSpace(payload.Reflection),
	}
	if enr.Emotion == "" || enr.Summary == "" || enr.Reflection == "" {
		return Enrichment{}, fmt.Errorf("missing field: %w", errBadResponse)
	}
	return enr, nil
}

// generateSchema reflects a JSON schema suitable for strict structured
// output: inlined, no additional properties, all fields required.
func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	return m
}
