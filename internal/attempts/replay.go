package attempts

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/stats"
	"github.com/dromero/pitagoritas/internal/store"
	"github.com/dromero/pitagoritas/internal/telemetry"
)

// attemptRowSchema guards the replay fold against malformed remote rows.
// Validation failures skip the row rather than aborting the whole replay.
const attemptRowSchema = `{
	"type": "object",
	"required": ["id", "operation", "level", "is_correct", "time_spent", "created_at"],
	"properties": {
		"id":         {"type": "string", "minLength": 1},
		"operation":  {"type": "string", "minLength": 1},
		"level":      {"type": "integer", "minimum": 1},
		"is_correct": {"type": "boolean"},
		"time_spent": {"type": "integer", "minimum": 0},
		"created_at": {"type": "string", "minLength": 1}
	}
}`

var (
	rowSchemaOnce sync.Once
	rowSchema     *jsonschema.Schema
	rowSchemaErr  error
)

func compiledRowSchema() (*jsonschema.Schema, error) {
	rowSchemaOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(attemptRowSchema), &parsed); err != nil {
			rowSchemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const schemaURL = "schema://attempt-row.json"
		if err := c.AddResource(schemaURL, parsed); err != nil {
			rowSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		rowSchema, rowSchemaErr = c.Compile(schemaURL)
	})
	return rowSchema, rowSchemaErr
}

type replayRow struct {
	ID        string `json:"id"`
	Operation string `json:"operation"`
	Level     int    `json:"level"`
	IsCorrect bool   `json:"is_correct"`
	TimeSpent int    `json:"time_spent"`
	CreatedAt string `json:"created_at"`
}

// ReplayResult carries the rebuilt statistics plus replay bookkeeping.
type ReplayResult struct {
	Stats    stats.DetailedStats
	Replayed int
	Skipped  int
}

// ReplayStats rebuilds the statistics snapshot from the full remote attempt
// history. Rows that fail schema validation, carry an unknown operation or
// an unparseable timestamp are skipped with a telemetry event; because the
// stats fold is pure, the result is deterministic for a given history.
func (s *Service) ReplayStats(ctx context.Context, userID string) (ReplayResult, error) {
	if s.sink == nil {
		return ReplayResult{}, ErrSyncDisabled
	}
	schema, err := compiledRowSchema()
	if err != nil {
		return ReplayResult{}, err
	}

	rows, err := s.sink.List(ctx, userID, 0)
	if err != nil {
		return ReplayResult{}, err
	}

	res := ReplayResult{Stats: stats.Initialize()}
	skip := func(reason string) {
		res.Skipped++
		s.tel.Record(ctx, telemetry.EventSyncReplaySkipped, reason)
	}

	for _, raw := range rows {
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			skip("invalid json")
			continue
		}
		if err := schema.Validate(parsed); err != nil {
			skip("schema mismatch")
			continue
		}

		var row replayRow
		if err := json.Unmarshal(raw, &row); err != nil {
			skip("invalid json")
			continue
		}
		if !problemgen.KnownOperation(row.Operation) {
			skip("unknown operation " + row.Operation)
			continue
		}
		createdAt, err := time.Parse(time.RFC3339, row.CreatedAt)
		if err != nil {
			skip("bad timestamp")
			continue
		}

		op := problemgen.Operation(row.Operation)
		difficulty := problemgen.ClassifyDifficulty(row.Level, op)
		res.Stats = stats.UpdateWeeklyProgress(res.Stats, row.IsCorrect, row.TimeSpent, createdAt)
		res.Stats = stats.UpdateOperationStats(res.Stats, op, row.IsCorrect, row.TimeSpent, difficulty)
		res.Stats = stats.UpdateDifficultyStats(res.Stats, difficulty, row.IsCorrect)
		res.Replayed++
	}

	if err := s.kv.Set(ctx, store.KeyStatsReplayedAt, s.now().UTC().Format(time.RFC3339)); err != nil {
		return res, err
	}
	return res, nil
}
