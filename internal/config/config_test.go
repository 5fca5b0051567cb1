package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ahall/unposted/internal/analysis"
	"github.com/ahall/unposted/internal/stt"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DBPath == "" {
		t.Error("default db path is empty")
	}
	if cfg.Deepgram.Model != stt.DefaultModel {
		t.Errorf("deepgram model = %q, want %q", cfg.Deepgram.Model, stt.DefaultModel)
	}
	if cfg.Groq.Model != analysis.DefaultModel {
		t.Errorf("groq model = %q, want %q", cfg.Groq.Model, analysis.DefaultModel)
	}
	if cfg.Groq.BaseURL != analysis.DefaultBaseURL {
		t.Errorf("groq base url = %q", cfg.Groq.BaseURL)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
db_path = "/tmp/test-journal.db"

[groq]
model = "llama-3.1-70b-versatile"
timeout_seconds = 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DBPath != "/tmp/test-journal.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.Groq.Model != "llama-3.1-70b-versatile" {
		t.Errorf("groq model = %q", cfg.Groq.Model)
	}
	if cfg.Groq.Timeout() != 4*time.Second {
		t.Errorf("groq timeout = %v, want 4s", cfg.Groq.Timeout())
	}
	// Untouched sections keep their defaults.
	if cfg.Deepgram.Model != stt.DefaultModel {
		t.Errorf("deepgram model = %q, want default", cfg.Deepgram.Model)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[deepgram]
timeout_seconds = -1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for negative timeout")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.DBPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty db_path")
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "dg-test")
	t.Setenv("GROQ_API_KEY", "")

	creds := EnvCredentials()
	if creds.DeepgramKey != "dg-test" {
		t.Errorf("deepgram key = %q", creds.DeepgramKey)
	}
	if creds.GroqKey != "" {
		t.Errorf("groq key = %q, want empty", creds.GroqKey)
	}
}
