// Package config loads the unposted configuration file and reads service
// credentials from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ahall/unposted/internal/analysis"
	"github.com/ahall/unposted/internal/db"
	"github.com/ahall/unposted/internal/stt"
)

// Config is the on-disk configuration. Credentials are deliberately not
// part of the file; they come from the environment so the file never holds
// keys.
type Config struct {
	DBPath   string   `toml:"db_path"`
	Deepgram Deepgram `toml:"deepgram"`
	Groq     Groq     `toml:"groq"`
}

type Deepgram struct {
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type Groq struct {
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Credentials are the environment-provided API keys. An empty key means the
// corresponding remote service is off and its local fallback is used.
type Credentials struct {
	DeepgramKey string
	GroqKey     string
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "unposted", "config.toml")
}

func Default() Config {
	return Config{
		DBPath: db.DefaultDBPath(),
		Deepgram: Deepgram{
			Model:          stt.DefaultModel,
			TimeoutSeconds: int(stt.DefaultTimeout / time.Second),
		},
		Groq: Groq{
			BaseURL:        analysis.DefaultBaseURL,
			Model:          analysis.DefaultModel,
			TimeoutSeconds: int(analysis.DefaultTimeout / time.Second),
		},
	}
}

// Load reads the file at path over the defaults. A missing file is not an
// error; the defaults apply unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("missing db_path")
	}
	if c.Deepgram.TimeoutSeconds < 0 {
		return errors.New("deepgram timeout_seconds must be >= 0")
	}
	if c.Groq.TimeoutSeconds < 0 {
		return errors.New("groq timeout_seconds must be >= 0")
	}
	return nil
}

// EnvCredentials reads the API keys from the environment.
func EnvCredentials() Credentials {
	return Credentials{
		DeepgramKey: os.Getenv("DEEPGRAM_API_KEY"),
		GroqKey:     os.Getenv("GROQ_API_KEY"),
	}
}

func (d Deepgram) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

func (g Groq) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}
