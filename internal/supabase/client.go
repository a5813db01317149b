// Package supabase is a minimal client for the Supabase auth and REST
// endpoints the game uses: password auth plus reads and writes on the
// attempts table.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrUnauthorized signals rejected credentials or an expired token.
var ErrUnauthorized = errors.New("supabase: unauthorized")

type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func New(baseURL, anonKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Session is an authenticated user session.
type Session struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AttemptRow is one row of the remote attempts table.
type AttemptRow struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Operation     string    `json:"operation"`
	Level         int       `json:"level"`
	PracticeMode  string    `json:"practice_mode"`
	IsCorrect     bool      `json:"is_correct"`
	TimeSpent     int       `json:"time_spent"`
	UserAnswer    *string   `json:"user_answer"`
	CorrectAnswer *string   `json:"correct_answer"`
	CreatedAt     time.Time `json:"created_at"`
}

// SignUp registers a new user and returns its session.
func (c *Client) SignUp(ctx context.Context, email, password string) (Session, error) {
	return c.auth(ctx, c.baseURL+"/auth/v1/signup", email, password)
}

// SignInWithPassword exchanges credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (Session, error) {
	return c.auth(ctx, c.baseURL+"/auth/v1/token?grant_type=password", email, password)
}

func (c *Client) auth(ctx context.Context, endpoint, email, password string) (Session, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return Session{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized ||
		resp.StatusCode == http.StatusUnprocessableEntity {
		return Session{}, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Session{}, fmt.Errorf("auth status %d: %s", resp.StatusCode, string(snippet))
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return Session{}, fmt.Errorf("decode auth response: %w", err)
	}
	if session.AccessToken == "" {
		return Session{}, errors.New("supabase: auth response without access token")
	}
	return session, nil
}

// InsertAttempt uploads one attempt row.
func (c *Client) InsertAttempt(ctx context.Context, accessToken string, row AttemptRow) error {
	body, err := json.Marshal(row)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/v1/attempts", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("insert status %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}

// ListAttempts returns the user's attempts ordered by creation time,
// oldest first, as raw JSON rows so callers can schema-validate before
// decoding. A limit of 0 means no limit.
func (c *Client) ListAttempts(ctx context.Context, accessToken, userID string, limit int) ([]json.RawMessage, error) {
	query := url.Values{}
	query.Set("user_id", "eq."+userID)
	query.Set("order", "created_at.asc")
	query.Set("select", "*")
	if limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/rest/v1/attempts?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("list status %d: %s", resp.StatusCode, string(snippet))
	}

	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode attempts: %w", err)
	}
	return rows, nil
}
