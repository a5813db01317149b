// Package attempts manages the offline attempt queue and its reconciliation
// with the remote backend: uploading queued attempts, replaying remote
// history into statistics and migrating pre-login local history.
package attempts

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/dromero/pitagoritas/internal/game"
	"github.com/dromero/pitagoritas/internal/store"
	"github.com/dromero/pitagoritas/internal/telemetry"
)

// ErrSyncDisabled signals that no remote backend is configured.
var ErrSyncDisabled = errors.New("sync is not configured")

// Sink is the remote destination for attempts. List returns raw JSON rows
// ordered oldest first so the service can schema-validate before decoding.
type Sink interface {
	Insert(ctx context.Context, a store.QueuedAttempt, userID string) error
	List(ctx context.Context, userID string, limit int) ([]json.RawMessage, error)
}

// Service coordinates the local queue with the remote sink.
type Service struct {
	queue    *store.QueueRepo
	kv       *store.KVRepo
	sink     Sink
	tel      telemetry.Recorder
	retryCap int
	now      func() time.Time

	// flushMu makes Flush single-flight: a concurrent call returns
	// immediately instead of double-uploading.
	flushMu sync.Mutex
}

// NewService builds a Service. sink may be nil when sync is disabled, in
// which case Flush, ReplayStats and Migrate return ErrSyncDisabled while
// Record keeps queueing locally.
func NewService(queue *store.QueueRepo, kv *store.KVRepo, sink Sink, tel telemetry.Recorder, retryCap int) *Service {
	if tel == nil {
		tel = telemetry.Nop{}
	}
	return &Service{
		queue:    queue,
		kv:       kv,
		sink:     sink,
		tel:      tel,
		retryCap: retryCap,
		now:      time.Now,
	}
}

// SetSink installs the remote destination once a player has signed in. It
// waits for any running flush so the sink never changes mid-pass.
func (s *Service) SetSink(sink Sink) {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()
	s.sink = sink
}

// Record enqueues a graded attempt for later upload. It never touches the
// network: uploading is Flush's job.
func (s *Service) Record(ctx context.Context, a game.Attempt) error {
	return s.queue.Enqueue(ctx, store.QueuedAttempt{
		ID:            a.ID,
		Operation:     string(a.Operation),
		Level:         a.Level,
		PracticeMode:  string(a.PracticeMode),
		IsCorrect:     a.IsCorrect,
		TimeSpent:     a.TimeSpent,
		UserAnswer:    a.UserAnswer,
		CorrectAnswer: a.CorrectAnswer,
		CreatedAt:     a.CreatedAt,
		RetryCount:    a.RetryCount,
	})
}

// FlushResult summarizes one flush pass.
type FlushResult struct {
	// Skipped reports that another flush was already running.
	Skipped bool

	Sent      int
	Dropped   int
	Remaining int
}

// Flush uploads queued attempts oldest first. The first upload failure
// stops the pass so order is preserved; the failed attempt's retry counter
// is bumped and, past the retry cap, the attempt is dropped with a
// telemetry event so one poison row cannot block the queue forever.
func (s *Service) Flush(ctx context.Context, userID string) (FlushResult, error) {
	if s.sink == nil {
		return FlushResult{}, ErrSyncDisabled
	}
	if !s.flushMu.TryLock() {
		return FlushResult{Skipped: true}, nil
	}
	defer s.flushMu.Unlock()

	queued, err := s.queue.List(ctx)
	if err != nil {
		return FlushResult{}, err
	}

	var res FlushResult
	for _, a := range queued {
		err := s.sink.Insert(ctx, a, userID)
		if err == nil {
			if err := s.queue.Delete(ctx, a.ID); err != nil {
				return res, err
			}
			res.Sent++
			continue
		}

		s.tel.Record(ctx, telemetry.EventSyncFlushError, err.Error())
		count, rerr := s.queue.IncrementRetry(ctx, a.ID)
		if rerr != nil {
			return res, rerr
		}
		if count > s.retryCap {
			if derr := s.queue.Delete(ctx, a.ID); derr != nil {
				return res, derr
			}
			s.tel.Record(ctx, telemetry.EventSyncDropped, a.ID)
			res.Dropped++
			// The blocking row is gone; later attempts may still go through.
			continue
		}
		break
	}

	res.Remaining, err = s.queue.Count(ctx)
	if err != nil {
		return res, err
	}
	if res.Remaining == 0 {
		if err := s.kv.Set(ctx, store.KeyLastSyncAt, s.now().UTC().Format(time.RFC3339)); err != nil {
			return res, err
		}
	}
	return res, nil
}

// LastSyncAt returns the time of the last fully drained flush, if any.
func (s *Service) LastSyncAt(ctx context.Context) (time.Time, bool, error) {
	value, ok, err := s.kv.Get(ctx, store.KeyLastSyncAt)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false, nil
	}
	return t, true, nil
}
