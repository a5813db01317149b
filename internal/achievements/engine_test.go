package achievements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/stats"
)

var testNow = time.Date(2026, time.April, 2, 9, 0, 0, 0, time.UTC)

func statsWithCorrect(op problemgen.Operation, correct int) stats.DetailedStats {
	s := stats.Initialize()
	for i := 0; i < correct; i++ {
		s = stats.UpdateOperationStats(s, op, true, 5, problemgen.DifficultyEasy)
	}
	return s
}

func TestEvaluate_FirstCorrect(t *testing.T) {
	updated, unlocked := Evaluate(Catalog(), Input{
		Stats:        statsWithCorrect(problemgen.OpAddition, 1),
		Streak:       1,
		Score:        1,
		CorrectCount: 1,
		IsCorrect:    true,
		Now:          testNow,
	})

	require.Len(t, unlocked, 1)
	assert.Equal(t, "first_correct", unlocked[0].ID)
	assert.True(t, findByID(t, updated, "first_correct").Unlocked)
	require.NotNil(t, unlocked[0].UnlockedAt)
	assert.Equal(t, testNow, *unlocked[0].UnlockedAt)
}

func TestEvaluate_OperationExpert(t *testing.T) {
	updated, unlocked := Evaluate(Catalog(), Input{
		Stats:        statsWithCorrect(problemgen.OpDivision, 10),
		Streak:       1,
		Score:        10,
		CorrectCount: 10,
		IsCorrect:    true,
		Now:          testNow,
	})

	assert.True(t, findByID(t, updated, "division_expert").Unlocked)
	assert.False(t, findByID(t, updated, "addition_expert").Unlocked)
	ids := unlockedIDs(unlocked)
	assert.Contains(t, ids, "division_expert")
}

func TestEvaluate_MultipleUnlocksInOneAttempt(t *testing.T) {
	_, unlocked := Evaluate(Catalog(), Input{
		Stats:        statsWithCorrect(problemgen.OpAddition, 25),
		Streak:       25,
		Score:        60,
		CorrectCount: 25,
		IsCorrect:    true,
		Now:          testNow,
	})

	ids := unlockedIDs(unlocked)
	for _, want := range []string{"addition_expert", "streak_5", "streak_10", "score_50", "perfect_20"} {
		assert.Contains(t, ids, want)
	}
}

func TestEvaluate_Monotonic(t *testing.T) {
	first, _ := Evaluate(Catalog(), Input{
		Stats:        statsWithCorrect(problemgen.OpAddition, 1),
		Streak:       1,
		Score:        1,
		CorrectCount: 1,
		IsCorrect:    true,
		Now:          testNow,
	})
	unlockedAt := findByID(t, first, "first_correct").UnlockedAt

	// Re-running with a broken streak and a later correct count must not
	// re-lock or duplicate anything.
	second, newly := Evaluate(first, Input{
		Stats:        statsWithCorrect(problemgen.OpAddition, 2),
		Streak:       0,
		Score:        2,
		CorrectCount: 2,
		IsCorrect:    false,
		Now:          testNow.Add(time.Hour),
	})

	assert.Empty(t, newly)
	got := findByID(t, second, "first_correct")
	assert.True(t, got.Unlocked)
	assert.Equal(t, unlockedAt, got.UnlockedAt)

	seen := map[string]int{}
	for _, a := range second {
		seen[a.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "duplicate id %s", id)
	}
}

func TestNextLevel(t *testing.T) {
	level, ok := NextLevel(0, 1)
	assert.False(t, ok)
	assert.Equal(t, 1, level)

	level, ok = NextLevel(10, 1)
	assert.True(t, ok)
	assert.Equal(t, 2, level)

	// A big score jump skips intermediate levels.
	level, ok = NextLevel(55, 1)
	assert.True(t, ok)
	assert.Equal(t, 5, level)

	// Never decreases, even if the score is below the current threshold.
	level, ok = NextLevel(5, 4)
	assert.False(t, ok)
	assert.Equal(t, 4, level)
}

func findByID(t *testing.T, list []Achievement, id string) Achievement {
	t.Helper()
	for _, a := range list {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %s not found", id)
	return Achievement{}
}

func unlockedIDs(list []Achievement) []string {
	ids := make([]string, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	return ids
}
