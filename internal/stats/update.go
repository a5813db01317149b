package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/dromero/pitagoritas/internal/problemgen"
)

// WeekLabel formats t as "YYYY-W##", where the week number is the ceiling
// of the day-of-year divided by 7. This is the label the original records
// carry, so it must stay byte-identical for replay parity (it is not
// ISO-8601 week numbering).
func WeekLabel(t time.Time) string {
	startOfYear := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	days := int(t.Sub(startOfYear).Hours() / 24)
	week := (days + 6) / 7
	if week < 1 {
		week = 1
	}
	return fmt.Sprintf("%d-W%02d", t.Year(), week)
}

// UpdateWeeklyProgress folds one graded attempt into the week bucket for
// now, appending a new entry the first time a week is seen.
func UpdateWeeklyProgress(s DetailedStats, isCorrect bool, timeSpent int, now time.Time) DetailedStats {
	out := clone(s)
	week := WeekLabel(now)

	for i := range out.WeeklyProgress {
		if out.WeeklyProgress[i].Week != week {
			continue
		}
		entry := out.WeeklyProgress[i]
		previousTotal := entry.TotalAnswers
		entry.TotalAnswers++
		if isCorrect {
			entry.CorrectAnswers++
		}
		entry.AverageTime = runningMean(entry.AverageTime, previousTotal, timeSpent)
		out.WeeklyProgress[i] = entry
		return out
	}

	correct := 0
	if isCorrect {
		correct = 1
	}
	out.WeeklyProgress = append(out.WeeklyProgress, WeekEntry{
		Week:           week,
		TotalAnswers:   1,
		CorrectAnswers: correct,
		AverageTime:    timeSpent,
	})
	return out
}

// UpdateOperationStats folds one graded attempt into its operation bucket.
// The stored difficulty tag is overwritten with the latest classification.
func UpdateOperationStats(s DetailedStats, op problemgen.Operation, isCorrect bool, timeSpent int, difficulty problemgen.Difficulty) DetailedStats {
	out := clone(s)
	if out.OperationStats == nil {
		out.OperationStats = make(map[problemgen.Operation]OperationDetail)
	}

	detail := out.OperationStats[op]
	previousTotal := detail.Total
	detail.Total++
	if isCorrect {
		detail.Correct++
	}
	detail.AverageTime = runningMean(detail.AverageTime, previousTotal, timeSpent)
	detail.Difficulty = difficulty
	out.OperationStats[op] = detail
	return out
}

// UpdateDifficultyStats folds one graded attempt into its tier bucket.
func UpdateDifficultyStats(s DetailedStats, difficulty problemgen.Difficulty, isCorrect bool) DetailedStats {
	out := clone(s)
	if out.DifficultyStats == nil {
		out.DifficultyStats = make(map[problemgen.Difficulty]DifficultyBucket)
	}

	bucket := out.DifficultyStats[difficulty]
	bucket.Total++
	if isCorrect {
		bucket.Correct++
	}
	out.DifficultyStats[difficulty] = bucket
	return out
}

// AddSessionRecord appends a session summary, keeping the 30 most recent.
func AddSessionRecord(s DetailedStats, record SessionRecord) DetailedStats {
	out := clone(s)
	out.SessionHistory = append(out.SessionHistory, record)
	if len(out.SessionHistory) > maxSessionHistory {
		out.SessionHistory = out.SessionHistory[len(out.SessionHistory)-maxSessionHistory:]
	}
	return out
}

// AccuracyPercentage returns correct/total as a rounded percentage.
func AccuracyPercentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// WeakestOperation returns the attempted operation with the lowest
// accuracy, or the first catalog operation when nothing was attempted.
func WeakestOperation(s DetailedStats) problemgen.Operation {
	weakest := problemgen.OperationKeys[0]
	found := false
	var weakestAccuracy float64

	for _, op := range problemgen.OperationKeys {
		detail, ok := s.OperationStats[op]
		if !ok || detail.Total == 0 {
			continue
		}
		accuracy := float64(detail.Correct) / float64(detail.Total)
		if !found || accuracy < weakestAccuracy {
			weakest = op
			weakestAccuracy = accuracy
			found = true
		}
	}
	return weakest
}

// RecentWeeks returns the last n weekly entries, oldest first.
func RecentWeeks(s DetailedStats, n int) []WeekEntry {
	if len(s.WeeklyProgress) <= n {
		return s.WeeklyProgress
	}
	return s.WeeklyProgress[len(s.WeeklyProgress)-n:]
}

// runningMean folds one value into an incrementally maintained mean:
// (oldMean*oldCount + value) / (oldCount+1), rounded. Means are never
// recomputed from raw history because none is retained.
func runningMean(oldMean, oldCount, value int) int {
	return int(math.Round(float64(oldMean*oldCount+value) / float64(oldCount+1)))
}
