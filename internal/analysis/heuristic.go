package analysis

import (
	"context"
	"strings"
	"unicode/utf8"
)

// summaryThreshold is the transcript length, in runes, up to which the
// summary is the transcript verbatim.
const summaryThreshold = 160

const (
	emptySummary    = "(no speech detected)"
	emptyReflection = "What's on your mind today?"
)

// emotionKeywords maps emotion labels to their lexical cues. Slice order
// fixes the tie-break: the first category with any match wins.
var emotionKeywords = []struct {
	label    string
	keywords []string
}{
	{"joyful", []string{"happy", "joy", "excited", "good", "great", "love"}},
	{"down", []string{"sad", "down", "lonely", "upset", "tired"}},
	{"angry", []string{"angry", "mad", "furious"}},
	{"stressed", []string{"stressed", "anxious", "tense"}},
	{"calm", []string{"calm", "peaceful", "relaxed"}},
}

// reflectionPrompts holds the stock reflective questions per emotion label.
// The transcript's rune length picks one, so the same text always gets the
// same question.
var reflectionPrompts = map[string][]string{
	"joyful": {
		"What made this moment feel so good, and how could you invite more of it?",
		"Who would you want to share this feeling with?",
		"What does today tell you about what matters to you?",
	},
	"down": {
		"What would you say to a friend who felt this way?",
		"What is one small thing that could make tomorrow a little lighter?",
		"When did this feeling start, and what was happening then?",
	},
	"angry": {
		"What boundary of yours was crossed here?",
		"If you set the anger aside for a moment, what sits underneath it?",
		"What response would you be proud of a week from now?",
	},
	"stressed": {
		"Which of these worries is actually yours to carry?",
		"What is the smallest next step you could take?",
		"What would it look like to let one thing wait until tomorrow?",
	},
	"calm": {
		"What helped you find this steadiness?",
		"How could you return to this feeling on a harder day?",
		"What are you grateful for right now?",
	},
	"neutral": {
		"What stood out about today, even a little?",
		"Is there anything you are avoiding putting into words?",
		"What would you like to remember about this day?",
	},
}

// Heuristic is the credential-free analyzer. It does no I/O, never fails,
// and is deterministic for a given transcript.
type Heuristic struct{}

func (Heuristic) Analyze(_ context.Context, transcript string) Result {
	emotion := classifyEmotion(transcript)
	return Result{Enrichment: Enrichment{
		Emotion:    emotion,
		Summary:    summarize(transcript),
		Reflection: reflectionFor(emotion, transcript),
	}}
}

// classifyEmotion scans the transcript for keyword matches in fixed
// priority order and returns "neutral" when nothing matches.
func classifyEmotion(transcript string) string {
	t := strings.ToLower(transcript)
	for _, cat := range emotionKeywords {
		for _, kw := range cat.keywords {
			if strings.Contains(t, kw) {
				return cat.label
			}
		}
	}
	return "neutral"
}

// summarize returns the transcript verbatim when short, the first sentence
// when one ends within the threshold, and a truncated prefix otherwise.
func summarize(transcript string) string {
	trimmed := strings.TrimSpace(transcript)
	if trimmed == "" {
		return emptySummary
	}
	if utf8.RuneCountInString(trimmed) <= summaryThreshold {
		return trimmed
	}
	if end := firstSentenceEnd(trimmed); end > 0 {
		return trimmed[:end]
	}
	runes := []rune(trimmed)
	return string(runes[:summaryThreshold]) + "…"
}

// firstSentenceEnd returns the byte offset just past the first sentence
// terminator within the summary threshold, or 0 if there is none.
func firstSentenceEnd(s string) int {
	count := 0
	for i, r := range s {
		count++
		if count > summaryThreshold {
			return 0
		}
		if r == '.' || r == '!' || r == '?' {
			return i + utf8.RuneLen(r)
		}
	}
	return 0
}

// reflectionFor picks a stock prompt for the emotion, indexed by the
// transcript's rune length.
func reflectionFor(emotion, transcript string) string {
	if strings.TrimSpace(transcript) == "" {
		return emptyReflection
	}
	pool, ok := reflectionPrompts[emotion]
	if !ok {
		pool = reflectionPrompts["neutral"]
	}
	return pool[utf8.RuneCountInString(transcript)%len(pool)]
}
