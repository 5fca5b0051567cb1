// Package journal defines the persisted journal entry and its assembly.
package journal

import (
	"time"

	"github.com/ahall/unposted/internal/analysis"
)

// DayFormat is the calendar-day key used for streak bookkeeping.
const DayFormat = "2006-01-02"

// Entry is one recorded, transcribed, optionally enriched journal record.
// Entries are immutable once stored; the ID is assigned on save.
type Entry struct {
	ID              int64
	CreatedAt       time.Time
	Transcription   string
	Emotion         string
	Summary         string
	Reflection      string
	DurationSeconds float64
}

// Day returns the local calendar day the timestamp falls on.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// Assemble combines a transcript, its enrichment and the recording duration
// into an entry stamped at now. It has no failure modes.
func Assemble(transcript string, e analysis.Enrichment, durationSeconds float64, now time.Time) Entry {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	return Entry{
		CreatedAt:       now,
		Transcription:   transcript,
		Emotion:         e.Emotion,
		Summary:         e.Summary,
		Reflection:      e.Reflection,
		DurationSeconds: durationSeconds,
	}
}
