package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// QueuedAttempt is one row of the offline attempt queue, oldest first.
// UserAnswer and CorrectAnswer are nullable: an expired timer records no
// user answer.
type QueuedAttempt struct {
	ID            string
	Operation     string
	Level         int
	PracticeMode  string
	IsCorrect     bool
	TimeSpent     int
	UserAnswer    *string
	CorrectAnswer *string
	CreatedAt     time.Time
	RetryCount    int
}

// QueueRepo is the attempt queue table.
type QueueRepo struct {
	db *sql.DB
}

// Enqueue appends an attempt to the queue.
func (r *QueueRepo) Enqueue(ctx context.Context, a QueuedAttempt) error {
	query, args, err := sqlBuilder.
		Insert("attempt_queue").
		Columns("id", "operation", "level", "practice_mode", "is_correct",
			"time_spent", "user_answer", "correct_answer", "created_at", "retry_count").
		Values(a.ID, a.Operation, a.Level, a.PracticeMode, a.IsCorrect,
			a.TimeSpent, a.UserAnswer, a.CorrectAnswer, a.CreatedAt, a.RetryCount).
		ToSql()
	if err != nil {
		return fmt.Errorf("build enqueue: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("enqueue attempt %s: %w", a.ID, err)
	}
	return nil
}

// List returns all queued attempts in enqueue order.
func (r *QueueRepo) List(ctx context.Context) ([]QueuedAttempt, error) {
	query, args, err := sqlBuilder.
		Select("id", "operation", "level", "practice_mode", "is_correct",
			"time_spent", "user_answer", "correct_answer", "created_at", "retry_count").
		From("attempt_queue").
		OrderBy("rowid ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}
	defer rows.Close()

	var attempts []QueuedAttempt
	for rows.Next() {
		var a QueuedAttempt
		if err := rows.Scan(&a.ID, &a.Operation, &a.Level, &a.PracticeMode, &a.IsCorrect,
			&a.TimeSpent, &a.UserAnswer, &a.CorrectAnswer, &a.CreatedAt, &a.RetryCount); err != nil {
			return nil, fmt.Errorf("scan queue row: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// Count returns the number of queued attempts.
func (r *QueueRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attempt_queue`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count queue: %w", err)
	}
	return n, nil
}

// Delete removes one attempt, typically after a successful upload.
func (r *QueueRepo) Delete(ctx context.Context, id string) error {
	query, args, err := sqlBuilder.
		Delete("attempt_queue").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete attempt %s: %w", id, err)
	}
	return nil
}

// IncrementRetry bumps the retry counter after a failed upload and returns
// the new count.
func (r *QueueRepo) IncrementRetry(ctx context.Context, id string) (int, error) {
	query, args, err := sqlBuilder.
		Update("attempt_queue").
		Set("retry_count", squirrel.Expr("retry_count + 1")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build increment: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("increment retry %s: %w", id, err)
	}

	var count int
	err = r.db.QueryRowContext(ctx, `SELECT retry_count FROM attempt_queue WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("read retry %s: %w", id, err)
	}
	return count, nil
}
