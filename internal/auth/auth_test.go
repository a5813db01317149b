package auth

import (
	"context"
	"testing"

	"github.com/dromero/pitagoritas/internal/store"
)

func TestNormalizeUsername(t *testing.T) {
	if got := NormalizeUsername("  Ana42 "); got != "ana42" {
		t.Errorf("got %q", got)
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"ana", "ana42", "abcdefghij12345"}
	for _, name := range valid {
		if !IsValidUsername(name) {
			t.Errorf("%q should be valid", name)
		}
	}

	invalid := []string{"", "ab", "abcdefghij123456", "Ana", "ana!", "ana lu", "aná"}
	for _, name := range invalid {
		if IsValidUsername(name) {
			t.Errorf("%q should be invalid", name)
		}
	}
}

func TestIsValidPin(t *testing.T) {
	if !IsValidPin("123456") {
		t.Error("123456 should be valid")
	}
	for _, pin := range []string{"", "12345", "1234567", "12345a", "12 456"} {
		if IsValidPin(pin) {
			t.Errorf("%q should be invalid", pin)
		}
	}
}

func TestSyntheticEmail(t *testing.T) {
	got := SyntheticEmail("ana42", "pitagoritas-mail.com")
	if got != "ana42@pitagoritas-mail.com" {
		t.Errorf("got %q", got)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	kv := s.KV()
	ctx := context.Background()

	_, ok, err := LoadSession(ctx, kv)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if ok {
		t.Fatal("expected no session")
	}

	want := Session{UserID: "user-1", Username: "ana42"}
	if err := SaveSession(ctx, kv, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := LoadSession(ctx, kv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok || got != want {
		t.Errorf("got %+v, %v", got, ok)
	}

	if err := ClearSession(ctx, kv); err != nil {
		t.Fatalf("clear: %v", err)
	}
	_, ok, err = LoadSession(ctx, kv)
	if err != nil {
		t.Fatalf("load (cleared): %v", err)
	}
	if ok {
		t.Error("expected session cleared")
	}
}
