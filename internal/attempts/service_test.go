package attempts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dromero/pitagoritas/internal/game"
	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/store"
)

var testNow = time.Date(2026, time.June, 10, 8, 0, 0, 0, time.UTC)

type fakeSink struct {
	mu       sync.Mutex
	inserted []store.QueuedAttempt
	failIDs  map[string]bool
	rows     []json.RawMessage
}

func (f *fakeSink) Insert(_ context.Context, a store.QueuedAttempt, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[a.ID] {
		return errors.New("upstream unavailable")
	}
	f.inserted = append(f.inserted, a)
	return nil
}

func (f *fakeSink) List(context.Context, string, int) ([]json.RawMessage, error) {
	return f.rows, nil
}

func (f *fakeSink) insertedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, len(f.inserted))
	for i, a := range f.inserted {
		ids[i] = a.ID
	}
	return ids
}

type captureTel struct {
	mu     sync.Mutex
	events []string
}

func (c *captureTel) Record(_ context.Context, eventType, _ string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, eventType)
}

func (c *captureTel) count(eventType string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.events {
		if e == eventType {
			n++
		}
	}
	return n
}

func newTestService(t *testing.T, sink Sink, retryCap int) (*Service, *captureTel) {
	t.Helper()
	st, err := store.Open("file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	tel := &captureTel{}
	s := NewService(st.Queue(), st.KV(), sink, tel, retryCap)
	s.now = func() time.Time { return testNow }
	return s, tel
}

func attempt(id string, op problemgen.Operation) game.Attempt {
	answer := "7"
	return game.Attempt{
		ID:            id,
		Operation:     op,
		Level:         1,
		PracticeMode:  problemgen.ModeAll,
		IsCorrect:     true,
		TimeSpent:     4,
		UserAnswer:    &answer,
		CorrectAnswer: &answer,
		CreatedAt:     testNow,
	}
}

func TestFlush_DrainsQueueInOrder(t *testing.T) {
	sink := &fakeSink{}
	s, _ := newTestService(t, sink, 20)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Record(ctx, attempt(id, problemgen.OpAddition)))
	}

	res, err := s.Flush(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Sent)
	assert.Zero(t, res.Remaining)
	assert.Equal(t, []string{"a", "b", "c"}, sink.insertedIDs())

	at, ok, err := s.LastSyncAt(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, testNow, at)
}

func TestFlush_StopsAtFirstFailure(t *testing.T) {
	sink := &fakeSink{failIDs: map[string]bool{"b": true}}
	s, tel := newTestService(t, sink, 20)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Record(ctx, attempt(id, problemgen.OpAddition)))
	}

	res, err := s.Flush(ctx, "user-1")
	require.NoError(t, err, "a failed upload is not a service error")
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 2, res.Remaining)
	assert.Equal(t, []string{"a"}, sink.insertedIDs())
	assert.Equal(t, 1, tel.count("sync-flush-error"))

	// The blocked attempt keeps its queue position for the next pass.
	_, ok, err := s.LastSyncAt(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "no sync marker while the queue is non-empty")

	sink.failIDs = nil
	res, err = s.Flush(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, sink.insertedIDs())
	assert.Zero(t, res.Remaining)
}

func TestFlush_DropsPoisonAttemptPastRetryCap(t *testing.T) {
	sink := &fakeSink{failIDs: map[string]bool{"a": true}}
	s, tel := newTestService(t, sink, 2)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, attempt("a", problemgen.OpAddition)))
	require.NoError(t, s.Record(ctx, attempt("b", problemgen.OpDivision)))

	// Two failed passes bump the retry counter to the cap.
	for i := 0; i < 2; i++ {
		res, err := s.Flush(ctx, "user-1")
		require.NoError(t, err)
		assert.Zero(t, res.Dropped)
		assert.Equal(t, 2, res.Remaining)
	}

	// The third pass exceeds the cap: the poison row is dropped and the
	// attempt behind it finally goes through.
	res, err := s.Flush(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Dropped)
	assert.Equal(t, 1, res.Sent)
	assert.Zero(t, res.Remaining)
	assert.Equal(t, []string{"b"}, sink.insertedIDs())
	assert.Equal(t, 1, tel.count("sync-attempt-dropped"))
}

type blockingSink struct {
	fakeSink
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingSink) Insert(ctx context.Context, a store.QueuedAttempt, userID string) error {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return b.fakeSink.Insert(ctx, a, userID)
}

func TestFlush_SingleFlight(t *testing.T) {
	sink := &blockingSink{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s, _ := newTestService(t, sink, 20)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, attempt("a", problemgen.OpAddition)))

	done := make(chan FlushResult)
	go func() {
		res, err := s.Flush(ctx, "user-1")
		require.NoError(t, err)
		done <- res
	}()

	<-sink.started
	res, err := s.Flush(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, res.Skipped)

	close(sink.release)
	first := <-done
	assert.False(t, first.Skipped)
	assert.Equal(t, 1, first.Sent)
}

func TestFlush_SyncDisabled(t *testing.T) {
	s, _ := newTestService(t, nil, 20)
	_, err := s.Flush(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrSyncDisabled)
}

func replayRowJSON(id, op string, level int, correct bool, timeSpent int, createdAt string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"id":%q,"operation":%q,"level":%d,"is_correct":%t,"time_spent":%d,"created_at":%q}`,
		id, op, level, correct, timeSpent, createdAt))
}

func TestReplayStats_FoldsValidRows(t *testing.T) {
	created := "2026-06-08T10:00:00Z"
	sink := &fakeSink{rows: []json.RawMessage{
		replayRowJSON("a", "addition", 1, true, 10, created),
		replayRowJSON("b", "addition", 1, false, 20, created),
		replayRowJSON("c", "division", 3, true, 5, created),
	}}
	s, _ := newTestService(t, sink, 20)

	res, err := s.ReplayStats(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Replayed)
	assert.Zero(t, res.Skipped)

	add := res.Stats.OperationStats[problemgen.OpAddition]
	assert.Equal(t, 2, add.Total)
	assert.Equal(t, 1, add.Correct)
	assert.Equal(t, 15, add.AverageTime)

	div := res.Stats.OperationStats[problemgen.OpDivision]
	assert.Equal(t, 1, div.Total)
	assert.Equal(t, problemgen.DifficultyHard, div.Difficulty)

	require.Len(t, res.Stats.WeeklyProgress, 1)
	assert.Equal(t, 3, res.Stats.WeeklyProgress[0].TotalAnswers)
}

func TestReplayStats_SkipsBadRows(t *testing.T) {
	created := "2026-06-08T10:00:00Z"
	sink := &fakeSink{rows: []json.RawMessage{
		replayRowJSON("a", "addition", 1, true, 10, created),
		json.RawMessage(`{"id":"b","operation":"addition"}`),          // missing required fields
		replayRowJSON("c", "square-root", 1, true, 3, created),        // unknown operation
		replayRowJSON("d", "division", 2, true, 3, "not a timestamp"), // bad timestamp
		json.RawMessage(`"not an object"`),
	}}
	s, tel := newTestService(t, sink, 20)

	res, err := s.ReplayStats(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Replayed)
	assert.Equal(t, 4, res.Skipped)
	assert.Equal(t, 4, tel.count("sync-replay-skipped"))
	assert.Equal(t, 1, res.Stats.OperationStats[problemgen.OpAddition].Total)
}

func TestMigrate_CapsPerOperation(t *testing.T) {
	sink := &fakeSink{}
	s, _ := newTestService(t, sink, 20)
	ctx := context.Background()

	for i := 0; i < migrationLimit+5; i++ {
		require.NoError(t, s.Record(ctx, attempt(fmt.Sprintf("add-%03d", i), problemgen.OpAddition)))
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Record(ctx, attempt(fmt.Sprintf("div-%d", i), problemgen.OpDivision)))
	}

	res, err := s.Migrate(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, migrationLimit+3, res.Uploaded)
	assert.Equal(t, 5, res.Skipped)
	assert.False(t, res.AlreadyMigrated)

	// Queue fully drained either way.
	n, err := s.queue.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMigrate_OncePerUser(t *testing.T) {
	sink := &fakeSink{}
	s, _ := newTestService(t, sink, 20)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, attempt("a", problemgen.OpAddition)))
	res, err := s.Migrate(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Uploaded)

	require.NoError(t, s.Record(ctx, attempt("b", problemgen.OpAddition)))
	res, err = s.Migrate(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, res.AlreadyMigrated)
	assert.Zero(t, res.Uploaded)

	// A different user still migrates.
	res, err = s.Migrate(ctx, "user-2")
	require.NoError(t, err)
	assert.False(t, res.AlreadyMigrated)
	assert.Equal(t, 1, res.Uploaded)
}

func TestMigrate_FailureDoesNotMarkMigrated(t *testing.T) {
	sink := &fakeSink{failIDs: map[string]bool{"a": true}}
	s, _ := newTestService(t, sink, 20)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, attempt("a", problemgen.OpAddition)))
	_, err := s.Migrate(ctx, "user-1")
	require.Error(t, err)

	sink.failIDs = nil
	res, err := s.Migrate(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, res.AlreadyMigrated)
	assert.Equal(t, 1, res.Uploaded)
}
