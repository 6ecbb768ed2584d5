package config

import (
	"os"
	"strings"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port            string
	DatabasePath    string
	UploadDir       string
	SessionSecret   string
	ModerationWords []string
}

// Load reads configuration from environment variables, falling back to
// local-dev defaults. A .env file, if any, is loaded by main before this.
func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DatabasePath:  getEnv("DATABASE_PATH", "data/comments.db"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		SessionSecret: getEnv("SESSION_SECRET", "secret_key_change_me"),
	}

	// Comma-separated denylist; empty means moderation never rejects.
	if words := os.Getenv("MODERATION_WORDS"); words != "" {
		for _, w := range strings.Split(words, ",") {
			if w = strings.TrimSpace(w); w != "" {
				cfg.ModerationWords = append(cfg.ModerationWords, w)
			}
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
