// Package analysis derives the emotion/summary/reflection triple from
// transcript text, either locally (Heuristic) or through an
// OpenAI-compatible chat endpoint (Remote) with the heuristic as fallback.
package analysis

import "context"

// Reason explains why a result came from the degraded (heuristic) path.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNoCredential  Reason = "no_credential"
	ReasonRequestFailed Reason = "request_failed"
	ReasonBadResponse   Reason = "bad_response"
)

// Enrichment is the triple derived from a transcript. Every field is always
// populated, whichever path produced it.
type Enrichment struct {
	Emotion    string
	Summary    string
	Reflection string
}

// Result carries an enrichment plus whether the degraded path produced it
// and why, so callers and tests can tell a fallback from a remote success.
type Result struct {
	Enrichment
	Degraded bool
	Reason   Reason
}

// Analyzer produces an enrichment for a transcript. Implementations must
// always return fully populated fields and must not surface errors;
// enrichment failure is absorbed here, never propagated.
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) Result
}

// Offline returns the analyzer selected when no LLM credential is
// configured: the heuristic, with results marked ReasonNoCredential.
func Offline() Analyzer { return offline{} }

type offline struct {
	h Heuristic
}

func (o offline) Analyze(ctx context.Context, transcript string) Result {
	res := o.h.Analyze(ctx, transcript)
	res.Degraded = true
	res.Reason = ReasonNoCredential
	return res
}
