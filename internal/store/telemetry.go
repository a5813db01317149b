package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// maxTelemetryEvents bounds the event log; the oldest rows are evicted.
const maxTelemetryEvents = 50

// TelemetryEvent is one row of the bounded diagnostic event log.
// Consecutive events of the same type and detail collapse into a single
// row with an incremented count.
type TelemetryEvent struct {
	ID        int64
	Type      string
	Detail    string
	Count     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TelemetryRepo is the telemetry event table.
type TelemetryRepo struct {
	db *sql.DB
}

// Append records an event. If the most recent event has the same type and
// detail, its count is bumped instead of inserting a new row; otherwise the
// event is appended and the log trimmed to its bound.
func (r *TelemetryRepo) Append(ctx context.Context, eventType, detail string, now time.Time) error {
	var (
		lastID     int64
		lastType   string
		lastDetail string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, type, detail FROM telemetry_events ORDER BY id DESC LIMIT 1`,
	).Scan(&lastID, &lastType, &lastDetail)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read last event: %w", err)
	}

	if err == nil && lastType == eventType && lastDetail == detail {
		_, err := r.db.ExecContext(ctx,
			`UPDATE telemetry_events SET count = count + 1, updated_at = ? WHERE id = ?`,
			now, lastID)
		if err != nil {
			return fmt.Errorf("coalesce event: %w", err)
		}
		return nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO telemetry_events (type, detail, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		eventType, detail, now, now)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return r.trim(ctx)
}

func (r *TelemetryRepo) trim(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM telemetry_events WHERE id NOT IN (
			SELECT id FROM telemetry_events ORDER BY id DESC LIMIT ?
		)`, maxTelemetryEvents)
	if err != nil {
		return fmt.Errorf("trim events: %w", err)
	}
	return nil
}

// List returns all events, oldest first.
func (r *TelemetryRepo) List(ctx context.Context) ([]TelemetryEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, detail, count, created_at, updated_at
		 FROM telemetry_events ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []TelemetryEvent
	for rows.Next() {
		var e TelemetryEvent
		if err := rows.Scan(&e.ID, &e.Type, &e.Detail, &e.Count, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Clear empties the event log.
func (r *TelemetryRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM telemetry_events`); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}
	return nil
}
