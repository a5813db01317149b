// Package telemetry records bounded local diagnostic events. Recording is
// best effort: a telemetry failure must never break gameplay or sync, so
// errors are swallowed at this boundary.
package telemetry

import (
	"context"
	"time"

	"github.com/dromero/pitagoritas/internal/store"
)

// Event types. The sync-* family tracks the attempt queue lifecycle, the
// mixed-* family tracks mixed-expression generation anomalies.
const (
	EventSyncFlushError    = "sync-flush-error"
	EventSyncDropped       = "sync-attempt-dropped"
	EventSyncReplaySkipped = "sync-replay-skipped"
	EventSyncMigration     = "sync-migration"
	EventMixedGenerated    = "mixed-generated"
)

// Recorder accepts diagnostic events.
type Recorder interface {
	Record(ctx context.Context, eventType, detail string)
}

// StoreRecorder persists events to the local telemetry log.
type StoreRecorder struct {
	repo *store.TelemetryRepo
	now  func() time.Time
}

// NewStoreRecorder returns a Recorder backed by repo.
func NewStoreRecorder(repo *store.TelemetryRepo) *StoreRecorder {
	return &StoreRecorder{repo: repo, now: time.Now}
}

func (r *StoreRecorder) Record(ctx context.Context, eventType, detail string) {
	_ = r.repo.Append(ctx, eventType, detail, r.now().UTC())
}

// Nop discards all events.
type Nop struct{}

func (Nop) Record(context.Context, string, string) {}
