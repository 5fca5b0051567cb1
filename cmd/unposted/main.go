// Command unposted is a private voice-journaling tool: it transcribes a
// recording, derives emotion/summary/reflection, and stores the entry in a
// local SQLite journal with streak tracking.
//
// With -record it processes one audio file and exits; without it, it opens
// a TUI over the stored entries.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ahall/unposted/internal/analysis"
	"github.com/ahall/unposted/internal/app"
	"github.com/ahall/unposted/internal/config"
	"github.com/ahall/unposted/internal/db"
	"github.com/ahall/unposted/internal/pipeline"
	"github.com/ahall/unposted/internal/stt"
)

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath(), "path to the config file")
		dbPath     = flag.String("db", "", "override the database path")
		recordPath = flag.String("record", "", "process a recorded audio file and exit")
		mimeType   = flag.String("mime", "", "MIME type of the recording (default: from extension)")
		duration   = flag.Float64("duration", 0, "recording duration in seconds")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(*configPath, *dbPath, *recordPath, *mimeType, *duration, log); err != nil {
		log.Error("unposted failed", "err", err)
		os.Exit(1)
	}
}

func run(configPath, dbPath, recordPath, mimeType string, duration float64, log *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	// Strategy selection happens once here: each remote service is used
	// only when its credential is configured, otherwise the local
	// degradation stands in.
	creds := config.EnvCredentials()

	var transcriber stt.Transcriber = stt.Disabled{}
	if creds.DeepgramKey != "" {
		transcriber = stt.NewDeepgram(stt.DeepgramConfig{
			APIKey:  creds.DeepgramKey,
			Model:   cfg.Deepgram.Model,
			Timeout: cfg.Deepgram.Timeout(),
		}, log)
	}

	analyzer := analysis.Offline()
	if creds.GroqKey != "" {
		analyzer = analysis.NewRemote(analysis.RemoteConfig{
			APIKey:  creds.GroqKey,
			BaseURL: cfg.Groq.BaseURL,
			Model:   cfg.Groq.Model,
			Timeout: cfg.Groq.Timeout(),
		}, log)
	}

	svc := pipeline.New(transcriber, analyzer, store, log)

	if recordPath != "" {
		return processRecording(svc, recordPath, mimeType, duration)
	}

	p := tea.NewProgram(app.New(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func processRecording(svc *pipeline.Journal, path, mimeType string, duration float64) error {
	audio, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read recording: %w", err)
	}
	if mimeType == "" {
		mimeType = mimeFromExtension(path)
	}

	entry, err := svc.RecordAndProcess(context.Background(), audio, mimeType, duration)
	if err != nil {
		return err
	}

	fmt.Printf("Saved entry %d (%s)\n\n", entry.ID, entry.CreatedAt.Format("2006-01-02 15:04"))
	if entry.Transcription != "" {
		fmt.Printf("Transcript:\n%s\n\n", entry.Transcription)
	}
	fmt.Printf("Emotion:    %s\nSummary:    %s\nReflection: %s\n",
		entry.Emotion, entry.Summary, entry.Reflection)

	streak, err := svc.Streak()
	if err != nil {
		return err
	}
	fmt.Printf("\nStreak: %d day(s)\n", streak)
	return nil
}

func mimeFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	case ".webm":
		return "audio/webm"
	default:
		return "audio/wav"
	}
}
