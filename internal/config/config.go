// Package config reads runtime configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// DBPath overrides the default database location when set.
	DBPath string

	// SupabaseURL and SupabaseAnonKey configure the remote sync backend.
	// Sync is disabled when either is empty.
	SupabaseURL     string
	SupabaseAnonKey string

	// EmailDomain is the synthetic email domain derived from usernames.
	EmailDomain string

	// SyncRetryCap drops a queued attempt after this many failed uploads.
	SyncRetryCap int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		DBPath:          envOr("PITAGORITAS_DB", ""),
		SupabaseURL:     envOr("SUPABASE_URL", ""),
		SupabaseAnonKey: envOr("SUPABASE_ANON_KEY", ""),
		EmailDomain:     envOr("SUPABASE_EMAIL_DOMAIN", "pitagoritas-mail.com"),
		SyncRetryCap:    envIntOr("SYNC_RETRY_CAP", 20),
	}
}

// SyncEnabled reports whether a remote backend is configured.
func (c Config) SyncEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
