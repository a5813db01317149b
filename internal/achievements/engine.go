package achievements

import (
	"strings"
	"time"

	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/stats"
)

// Input carries the post-attempt values the unlock predicates read.
// Statistics must already include the attempt being evaluated.
type Input struct {
	Stats        stats.DetailedStats
	Streak       int
	Score        int
	CorrectCount int
	IsCorrect    bool
	Now          time.Time
}

// Evaluate returns the achievement list with every newly satisfied
// predicate unlocked, plus the newly unlocked entries in catalog order.
// Already unlocked entries pass through untouched; predicates are
// independent, so several achievements may unlock on a single attempt.
func Evaluate(current []Achievement, in Input) (updated []Achievement, unlocked []Achievement) {
	updated = make([]Achievement, len(current))
	copy(updated, current)

	for i, a := range updated {
		if a.Unlocked {
			continue
		}
		if !predicateHolds(a.ID, in) {
			continue
		}
		at := in.Now
		updated[i].Unlocked = true
		updated[i].UnlockedAt = &at
		unlocked = append(unlocked, updated[i])
	}
	return updated, unlocked
}

func predicateHolds(id string, in Input) bool {
	switch id {
	case "first_correct":
		return in.IsCorrect && in.CorrectCount == 1
	case "streak_5":
		return in.Streak >= 5
	case "streak_10":
		return in.Streak >= 10
	case "score_50":
		return in.Score >= 50
	case "perfect_20":
		return in.Streak >= 20
	}

	if op, ok := strings.CutSuffix(id, "_expert"); ok {
		detail, ok := in.Stats.OperationStats[problemgen.Operation(op)]
		return ok && detail.Correct >= 10
	}
	return false
}

// NextLevel returns the highest catalog level whose threshold the score has
// crossed, if it is above the current level. The progression is structurally
// non-decreasing: a level is never revoked.
func NextLevel(score, currentLevel int) (int, bool) {
	best := 0
	for _, l := range problemgen.Levels {
		if l.MinScore <= score && l.ID > currentLevel && l.ID > best {
			best = l.ID
		}
	}
	if best == 0 {
		return currentLevel, false
	}
	return best, true
}
