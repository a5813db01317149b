// Package auth handles the child-friendly credential scheme: a short
// lowercase username plus a 6-digit PIN, mapped onto a synthetic email for
// the backend.
package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dromero/pitagoritas/internal/store"
)

var (
	usernameRe = regexp.MustCompile(`^[a-z0-9]{3,15}$`)
	pinRe      = regexp.MustCompile(`^\d{6}$`)
)

// NormalizeUsername lowercases and trims raw input before validation.
func NormalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsValidUsername reports whether name is 3-15 lowercase letters or digits.
func IsValidUsername(name string) bool {
	return usernameRe.MatchString(name)
}

// IsValidPin reports whether pin is exactly 6 digits.
func IsValidPin(pin string) bool {
	return pinRe.MatchString(pin)
}

// SyntheticEmail maps a username onto the backend's email namespace.
func SyntheticEmail(username, domain string) string {
	return fmt.Sprintf("%s@%s", username, domain)
}

// Session is the locally persisted identity of the signed-in player.
type Session struct {
	UserID   string
	Username string
}

// LoadSession reads the persisted session, if any.
func LoadSession(ctx context.Context, kv *store.KVRepo) (Session, bool, error) {
	userID, ok, err := kv.Get(ctx, store.KeyUserID)
	if err != nil || !ok {
		return Session{}, false, err
	}
	username, _, err := kv.Get(ctx, store.KeyUsername)
	if err != nil {
		return Session{}, false, err
	}
	return Session{UserID: userID, Username: username}, true, nil
}

// SaveSession persists the signed-in identity.
func SaveSession(ctx context.Context, kv *store.KVRepo, s Session) error {
	if err := kv.Set(ctx, store.KeyUserID, s.UserID); err != nil {
		return err
	}
	return kv.Set(ctx, store.KeyUsername, s.Username)
}

// ClearSession signs the player out locally. Queued attempts and progress
// are left in place.
func ClearSession(ctx context.Context, kv *store.KVRepo) error {
	if err := kv.Delete(ctx, store.KeyUserID); err != nil {
		return err
	}
	return kv.Delete(ctx, store.KeyUsername)
}
