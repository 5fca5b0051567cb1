package journal

import (
	"testing"
	"time"

	"github.com/ahall/unposted/internal/analysis"
)

func TestAssemble(t *testing.T) {
	now := time.Date(2026, 8, 30, 21, 15, 0, 0, time.Local)
	enr := analysis.Enrichment{
		Emotion:    "joyful",
		Summary:    "A good walk.",
		Reflection: "What made it good?",
	}

	e := Assemble("I felt so happy today after the walk", enr, 63, now)

	if e.ID != 0 {
		t.Errorf("id = %d, want 0 before save", e.ID)
	}
	if !e.CreatedAt.Equal(now) {
		t.Errorf("createdAt = %v, want %v", e.CreatedAt, now)
	}
	if e.Transcription != "I felt so happy today after the walk" {
		t.Errorf("transcription = %q", e.Transcription)
	}
	if e.Emotion != "joyful" || e.Summary != "A good walk." || e.Reflection != "What made it good?" {
		t.Errorf("enrichment fields not copied: %+v", e)
	}
	if e.DurationSeconds != 63 {
		t.Errorf("duration = %v, want 63", e.DurationSeconds)
	}
}

func TestAssembleClampsNegativeDuration(t *testing.T) {
	e := Assemble("", analysis.Enrichment{}, -5, time.Now())
	if e.DurationSeconds != 0 {
		t.Errorf("duration = %v, want 0", e.DurationSeconds)
	}
}

func TestDay(t *testing.T) {
	ts := time.Date(2026, 8, 30, 23, 59, 59, 0, time.Local)
	if got := Day(ts); got != "2026-08-30" {
		t.Errorf("Day = %q, want 2026-08-30", got)
	}
}
