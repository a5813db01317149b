package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"kv", "attempt_queue", "telemetry_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
	}
}

func TestKVGetSetDelete(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, KeyScore)
	if err != nil {
		t.Fatalf("get (empty): %v", err)
	}
	if ok {
		t.Fatal("expected missing key")
	}

	if err := kv.Set(ctx, KeyScore, "12"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, KeyScore, "13"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	value, ok, err := kv.Get(ctx, KeyScore)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != "13" {
		t.Errorf("value = %q, %v; want \"13\", true", value, ok)
	}

	if err := kv.Delete(ctx, KeyScore); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, ok, err = kv.Get(ctx, KeyScore)
	if err != nil {
		t.Fatalf("get (deleted): %v", err)
	}
	if ok {
		t.Error("expected key gone after delete")
	}
}

func TestKVJSONRoundTrip(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}

	if err := kv.SetJSON(ctx, "test", payload{Name: "ana", Score: 7}); err != nil {
		t.Fatalf("set json: %v", err)
	}

	var got payload
	ok, err := kv.GetJSON(ctx, "test", &got)
	if err != nil {
		t.Fatalf("get json: %v", err)
	}
	if !ok {
		t.Fatal("expected key present")
	}
	if got.Name != "ana" || got.Score != 7 {
		t.Errorf("got %+v", got)
	}

	var untouched payload
	ok, err = kv.GetJSON(ctx, "missing", &untouched)
	if err != nil {
		t.Fatalf("get json (missing): %v", err)
	}
	if ok {
		t.Error("expected missing key")
	}
}

func queuedAttempt(id string, at time.Time) QueuedAttempt {
	answer := "7"
	return QueuedAttempt{
		ID:            id,
		Operation:     "addition",
		Level:         1,
		PracticeMode:  "all",
		IsCorrect:     true,
		TimeSpent:     4,
		UserAnswer:    &answer,
		CorrectAnswer: &answer,
		CreatedAt:     at,
	}
}

func TestQueueEnqueueListOrder(t *testing.T) {
	s := openTestStore(t)
	q := s.Queue()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"a", "b", "c"} {
		if err := q.Enqueue(ctx, queuedAttempt(id, base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("enqueue %s: %v", id, err)
		}
	}

	attempts, err := q.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(attempts) != 3 {
		t.Fatalf("len = %d, want 3", len(attempts))
	}
	for i, want := range []string{"a", "b", "c"} {
		if attempts[i].ID != want {
			t.Errorf("attempts[%d].ID = %q, want %q", i, attempts[i].ID, want)
		}
	}
	if attempts[0].UserAnswer == nil || *attempts[0].UserAnswer != "7" {
		t.Error("user answer not preserved")
	}
}

func TestQueueNullableAnswer(t *testing.T) {
	s := openTestStore(t)
	q := s.Queue()
	ctx := context.Background()

	a := queuedAttempt("x", time.Now().UTC())
	a.UserAnswer = nil
	if err := q.Enqueue(ctx, a); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	attempts, err := q.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if attempts[0].UserAnswer != nil {
		t.Errorf("user answer = %v, want nil", *attempts[0].UserAnswer)
	}
}

func TestQueueDeleteAndCount(t *testing.T) {
	s := openTestStore(t)
	q := s.Queue()
	ctx := context.Background()

	base := time.Now().UTC()
	for _, id := range []string{"a", "b"} {
		if err := q.Enqueue(ctx, queuedAttempt(id, base)); err != nil {
			t.Fatalf("enqueue %s: %v", id, err)
		}
	}

	if err := q.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	n, err := q.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestQueueIncrementRetry(t *testing.T) {
	s := openTestStore(t)
	q := s.Queue()
	ctx := context.Background()

	if err := q.Enqueue(ctx, queuedAttempt("a", time.Now().UTC())); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	for want := 1; want <= 3; want++ {
		got, err := q.IncrementRetry(ctx, "a")
		if err != nil {
			t.Fatalf("increment %d: %v", want, err)
		}
		if got != want {
			t.Errorf("retry count = %d, want %d", got, want)
		}
	}
}

func TestTelemetryCoalescesConsecutiveDuplicates(t *testing.T) {
	s := openTestStore(t)
	tel := s.Telemetry()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 3; i++ {
		if err := tel.Append(ctx, "sync-error", "timeout", now.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if err := tel.Append(ctx, "sync-ok", "", now); err != nil {
		t.Fatalf("append other: %v", err)
	}
	// Same type as the first three but no longer the most recent row.
	if err := tel.Append(ctx, "sync-error", "timeout", now); err != nil {
		t.Fatalf("append after gap: %v", err)
	}

	events, err := tel.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len = %d, want 3", len(events))
	}
	if events[0].Count != 3 {
		t.Errorf("first count = %d, want 3", events[0].Count)
	}
	if events[2].Count != 1 {
		t.Errorf("last count = %d, want 1", events[2].Count)
	}
}

func TestTelemetryBounded(t *testing.T) {
	s := openTestStore(t)
	tel := s.Telemetry()
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < maxTelemetryEvents+10; i++ {
		// Alternate details so nothing coalesces.
		detail := "a"
		if i%2 == 0 {
			detail = "b"
		}
		if err := tel.Append(ctx, "mixed-generated", detail, now); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := tel.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != maxTelemetryEvents {
		t.Errorf("len = %d, want %d", len(events), maxTelemetryEvents)
	}
}

func TestTelemetryClear(t *testing.T) {
	s := openTestStore(t)
	tel := s.Telemetry()
	ctx := context.Background()

	if err := tel.Append(ctx, "sync-ok", "", time.Now().UTC()); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := tel.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	events, err := tel.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("len = %d, want 0", len(events))
	}
}
