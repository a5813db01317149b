package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignInWithPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL)
		}
		if r.Header.Get("apikey") != "anon" {
			t.Error("missing apikey header")
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if creds["email"] != "ana@pitagoritas-mail.com" {
			t.Errorf("email = %q", creds["email"])
		}
		json.NewEncoder(w).Encode(Session{
			AccessToken: "token-1",
			User:        User{ID: "user-1", Email: creds["email"]},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "anon")
	session, err := c.SignInWithPassword(context.Background(), "ana@pitagoritas-mail.com", "123456")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if session.AccessToken != "token-1" || session.User.ID != "user-1" {
		t.Errorf("session = %+v", session)
	}
}

func TestSignInRejectedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, "anon")
	_, err := c.SignInWithPassword(context.Background(), "ana@pitagoritas-mail.com", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestInsertAttempt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/attempts" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL)
		}
		if r.Header.Get("Authorization") != "Bearer token-1" {
			t.Error("missing bearer token")
		}
		var row AttemptRow
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			t.Fatalf("decode row: %v", err)
		}
		if row.Operation != "addition" || row.UserID != "user-1" {
			t.Errorf("row = %+v", row)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, "anon")
	err := c.InsertAttempt(context.Background(), "token-1", AttemptRow{
		ID:        "a",
		UserID:    "user-1",
		Operation: "addition",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func TestInsertAttemptExpiredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, "anon")
	err := c.InsertAttempt(context.Background(), "stale", AttemptRow{ID: "a"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestListAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("user_id") != "eq.user-1" {
			t.Errorf("user_id filter = %q", q.Get("user_id"))
		}
		if q.Get("order") != "created_at.asc" {
			t.Errorf("order = %q", q.Get("order"))
		}
		if q.Get("limit") != "120" {
			t.Errorf("limit = %q", q.Get("limit"))
		}
		json.NewEncoder(w).Encode([]AttemptRow{
			{ID: "a", Operation: "addition"},
			{ID: "b", Operation: "division"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "anon")
	rows, err := c.ListAttempts(context.Background(), "token-1", "user-1", 120)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	var first AttemptRow
	if err := json.Unmarshal(rows[0], &first); err != nil {
		t.Fatalf("decode row: %v", err)
	}
	if first.ID != "a" {
		t.Errorf("first row = %+v", first)
	}
}
