package attempts

import (
	"context"
	"encoding/json"

	"github.com/dromero/pitagoritas/internal/store"
	"github.com/dromero/pitagoritas/internal/supabase"
)

// SupabaseSink adapts the Supabase client to the Sink interface for one
// authenticated session.
type SupabaseSink struct {
	client      *supabase.Client
	accessToken string
}

// NewSupabaseSink wraps client with the session's access token.
func NewSupabaseSink(client *supabase.Client, accessToken string) *SupabaseSink {
	return &SupabaseSink{client: client, accessToken: accessToken}
}

func (s *SupabaseSink) Insert(ctx context.Context, a store.QueuedAttempt, userID string) error {
	return s.client.InsertAttempt(ctx, s.accessToken, supabase.AttemptRow{
		ID:            a.ID,
		UserID:        userID,
		Operation:     a.Operation,
		Level:         a.Level,
		PracticeMode:  a.PracticeMode,
		IsCorrect:     a.IsCorrect,
		TimeSpent:     a.TimeSpent,
		UserAnswer:    a.UserAnswer,
		CorrectAnswer: a.CorrectAnswer,
		CreatedAt:     a.CreatedAt,
	})
}

func (s *SupabaseSink) List(ctx context.Context, userID string, limit int) ([]json.RawMessage, error) {
	return s.client.ListAttempts(ctx, s.accessToken, userID, limit)
}
