// Package stt turns recorded audio into transcript text. Transcription
// failure is absorbed at this boundary: callers always get a usable,
// possibly empty, transcript plus the reason it degraded.
package stt

import "context"

// Reason explains why a transcription result is degraded.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNoCredential  Reason = "no_credential"
	ReasonRequestFailed Reason = "request_failed"
	ReasonNoSpeech      Reason = "no_speech"
)

// Result carries the transcript and, when empty, why.
type Result struct {
	Text     string
	Degraded bool
	Reason   Reason
}

// Transcriber produces transcript text from an audio blob.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) Result
}

// Disabled is the feature-off transcriber selected when no speech-to-text
// credential is configured. Distinct from a failed call.
type Disabled struct{}

func (Disabled) Transcribe(context.Context, []byte, string) Result {
	return Result{Degraded: true, Reason: ReasonNoCredential}
}
