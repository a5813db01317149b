package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known kv keys. Progress values live here so a partial write never
// corrupts a larger blob: each field is its own row.
const (
	KeyScore            = "score"
	KeyMaxScore         = "maxScore"
	KeyLevel            = "level"
	KeyStreak           = "streak"
	KeyBestStreak       = "bestStreak"
	KeyTotalExercises   = "totalExercises"
	KeyCorrectExercises = "correctExercises"
	KeyAchievements     = "achievements"
	KeyStats            = "detailedStats"
	KeyPracticeMode     = "practiceMode"
	KeyTimeMode         = "timeMode"
	KeyUserID           = "userId"
	KeyUsername         = "username"
	KeyLastSyncAt       = "lastSyncAt"
	KeyStatsReplayedAt  = "statsReplayedAt"
	KeyMigratedUsers    = "migratedUsers"
)

// KVRepo is a string key/value table with JSON helpers on top.
type KVRepo struct {
	db *sql.DB
}

// Get returns the value for key and whether it was present.
func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes key to value, replacing any previous value.
func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// GetJSON unmarshals the value for key into out. A missing key leaves out
// untouched and reports false.
func (r *KVRepo) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	value, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		return ok, err
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals v and stores it under key.
func (r *KVRepo) SetJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.Set(ctx, key, string(b))
}
