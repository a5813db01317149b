package attempts

import (
	"context"
	"fmt"

	"github.com/dromero/pitagoritas/internal/store"
	"github.com/dromero/pitagoritas/internal/telemetry"
)

// migrationLimit caps how many pre-login attempts are uploaded per
// operation on first sign-in, so an enormous guest history cannot flood
// the backend.
const migrationLimit = 120

// MigrateResult summarizes one migration pass.
type MigrateResult struct {
	AlreadyMigrated bool
	Uploaded        int
	Skipped         int
}

// Migrate uploads the locally queued pre-login history into the user's
// account, at most migrationLimit attempts per operation, exactly once per
// user. Beyond-cap attempts are discarded: they were guest practice, not
// account data. An upload failure aborts without marking the user migrated
// so the next sign-in retries.
func (s *Service) Migrate(ctx context.Context, userID string) (MigrateResult, error) {
	if s.sink == nil {
		return MigrateResult{}, ErrSyncDisabled
	}

	var migrated []string
	if _, err := s.kv.GetJSON(ctx, store.KeyMigratedUsers, &migrated); err != nil {
		return MigrateResult{}, err
	}
	for _, id := range migrated {
		if id == userID {
			return MigrateResult{AlreadyMigrated: true}, nil
		}
	}

	queued, err := s.queue.List(ctx)
	if err != nil {
		return MigrateResult{}, err
	}

	var res MigrateResult
	perOperation := make(map[string]int)
	for _, a := range queued {
		if perOperation[a.Operation] >= migrationLimit {
			if err := s.queue.Delete(ctx, a.ID); err != nil {
				return res, err
			}
			res.Skipped++
			continue
		}
		if err := s.sink.Insert(ctx, a, userID); err != nil {
			return res, fmt.Errorf("migrate attempt %s: %w", a.ID, err)
		}
		if err := s.queue.Delete(ctx, a.ID); err != nil {
			return res, err
		}
		perOperation[a.Operation]++
		res.Uploaded++
	}

	migrated = append(migrated, userID)
	if err := s.kv.SetJSON(ctx, store.KeyMigratedUsers, migrated); err != nil {
		return res, err
	}
	s.tel.Record(ctx, telemetry.EventSyncMigration,
		fmt.Sprintf("uploaded=%d skipped=%d", res.Uploaded, res.Skipped))
	return res, nil
}
