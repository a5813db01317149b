// Package stats maintains the player's aggregate statistics. Every update
// function is pure: it takes the current snapshot and returns a new one, so
// the same fold serves live play and offline replay of a remote attempt log.
package stats

import (
	"time"

	"github.com/dromero/pitagoritas/internal/problemgen"
)

// WeekEntry aggregates one calendar week of answers.
type WeekEntry struct {
	Week           string `json:"week"`
	CorrectAnswers int    `json:"correctAnswers"`
	TotalAnswers   int    `json:"totalAnswers"`
	AverageTime    int    `json:"averageTime"`
}

// OperationDetail aggregates one operation bucket. Difficulty reflects the
// most recent attempt's classification, not a historical aggregate.
type OperationDetail struct {
	Total       int                   `json:"total"`
	Correct     int                   `json:"correct"`
	AverageTime int                   `json:"averageTime"`
	Difficulty  problemgen.Difficulty `json:"difficulty"`
}

// DifficultyBucket counts answers per analytics tier.
type DifficultyBucket struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// SessionRecord summarizes one play session.
type SessionRecord struct {
	Date             time.Time `json:"date"`
	Score            int       `json:"score"`
	TotalExercises   int       `json:"totalExercises"`
	CorrectExercises int       `json:"correctExercises"`
	AverageTime      int       `json:"averageTime"`
	Operations       []string  `json:"operations"`
}

// maxSessionHistory bounds SessionHistory to the most recent entries.
const maxSessionHistory = 30

// DetailedStats is the full aggregate record. OperationStats always carries
// all seven operation keys and DifficultyStats all three tiers; Normalize
// backfills missing buckets with zeros.
type DetailedStats struct {
	WeeklyProgress  []WeekEntry                                     `json:"weeklyProgress"`
	AverageTime     int                                             `json:"averageTime"`
	OperationStats  map[problemgen.Operation]OperationDetail        `json:"operationStats"`
	DifficultyStats map[problemgen.Difficulty]DifficultyBucket      `json:"difficultyStats"`
	SessionHistory  []SessionRecord                                 `json:"sessionHistory"`
}

// Initialize returns a zeroed snapshot with every bucket present.
func Initialize() DetailedStats {
	return Normalize(DetailedStats{})
}

// Normalize backfills every operation key and difficulty tier with zeroed
// buckets, so downstream consumers never index a missing bucket. Used at
// initialization and when hydrating from a remote source that omits
// zero-count operations. The input is not mutated.
func Normalize(s DetailedStats) DetailedStats {
	out := clone(s)

	if out.OperationStats == nil {
		out.OperationStats = make(map[problemgen.Operation]OperationDetail, len(problemgen.OperationKeys))
	}
	for _, key := range problemgen.OperationKeys {
		if _, ok := out.OperationStats[key]; !ok {
			out.OperationStats[key] = OperationDetail{Difficulty: problemgen.DifficultyEasy}
		}
	}

	if out.DifficultyStats == nil {
		out.DifficultyStats = make(map[problemgen.Difficulty]DifficultyBucket, 3)
	}
	for _, tier := range []problemgen.Difficulty{
		problemgen.DifficultyEasy,
		problemgen.DifficultyMedium,
		problemgen.DifficultyHard,
	} {
		if _, ok := out.DifficultyStats[tier]; !ok {
			out.DifficultyStats[tier] = DifficultyBucket{}
		}
	}

	if out.WeeklyProgress == nil {
		out.WeeklyProgress = []WeekEntry{}
	}
	if out.SessionHistory == nil {
		out.SessionHistory = []SessionRecord{}
	}
	return out
}

// clone deep-copies a snapshot so updates never alias the caller's maps
// and slices.
func clone(s DetailedStats) DetailedStats {
	out := DetailedStats{
		WeeklyProgress: make([]WeekEntry, len(s.WeeklyProgress)),
		AverageTime:    s.AverageTime,
		SessionHistory: make([]SessionRecord, len(s.SessionHistory)),
	}
	copy(out.WeeklyProgress, s.WeeklyProgress)
	copy(out.SessionHistory, s.SessionHistory)

	if s.OperationStats != nil {
		out.OperationStats = make(map[problemgen.Operation]OperationDetail, len(s.OperationStats))
		for k, v := range s.OperationStats {
			out.OperationStats[k] = v
		}
	}
	if s.DifficultyStats != nil {
		out.DifficultyStats = make(map[problemgen.Difficulty]DifficultyBucket, len(s.DifficultyStats))
		for k, v := range s.DifficultyStats {
			out.DifficultyStats[k] = v
		}
	}
	return out
}
