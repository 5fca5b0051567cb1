// Package pipeline wires transcription, enrichment and storage into the
// operations the presentation layer consumes. Entries are processed one at
// a time on the interactive path; the two remote services degrade into
// their local fallbacks, and only a storage write failure surfaces as an
// error.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ahall/unposted/internal/analysis"
	"github.com/ahall/unposted/internal/db"
	"github.com/ahall/unposted/internal/journal"
	"github.com/ahall/unposted/internal/stt"
)

// Journal runs recordings through transcribe → enrich → assemble → save.
type Journal struct {
	transcriber stt.Transcriber
	analyzer    analysis.Analyzer
	store       *db.Store
	log         *slog.Logger
	now         func() time.Time
}

func New(t stt.Transcriber, a analysis.Analyzer, store *db.Store, log *slog.Logger) *Journal {
	return &Journal{transcriber: t, analyzer: a, store: store, log: log, now: time.Now}
}

// RecordAndProcess runs one recording through the full pipeline and returns
// the stored entry with its assigned id. Transcription and enrichment
// failures are logged and absorbed; a failed save is returned so the caller
// knows the recording was not kept.
func (j *Journal) RecordAndProcess(ctx context.Context, audio []byte, mimeType string, durationSeconds float64) (journal.Entry, error) {
	tr := j.transcriber.Transcribe(ctx, audio, mimeType)
	if tr.Degraded {
		j.log.Warn("transcription unavailable", "reason", string(tr.Reason))
	}

	res := j.analyzer.Analyze(ctx, tr.Text)
	if res.Degraded {
		j.log.Warn("enrichment degraded to heuristic", "reason", string(res.Reason))
	}

	entry := journal.Assemble(tr.Text, res.Enrichment, durationSeconds, j.now())
	id, err := j.store.SaveEntry(entry)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("save entry: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// Streak returns the current consecutive-days streak, today per the
// pipeline clock.
func (j *Journal) Streak() (int, error) {
	return j.store.Streak(journal.Day(j.now()))
}

// RecentEntries returns the n newest entries.
func (j *Journal) RecentEntries(n int) ([]journal.Entry, error) {
	return j.store.RecentEntries(n)
}

// TotalDays returns the number of distinct journaled days.
func (j *Journal) TotalDays() (int, error) {
	return j.store.TotalDays()
}

// History returns per-day entry counts, newest first.
func (j *Journal) History(limit int) ([]db.DayCount, error) {
	return j.store.DayCounts(limit)
}

// ExportReflection writes an entry's reflection text to path.
func (j *Journal) ExportReflection(e journal.Entry, path string) error {
	if err := os.WriteFile(path, []byte(e.Reflection+"\n"), 0o644); err != nil {
		return fmt.Errorf("export reflection: %w", err)
	}
	return nil
}
