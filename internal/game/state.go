// Package game holds the session state machine. All gameplay transitions
// run through a single pure reducer, so the in-memory state has exactly one
// writer and side effects surface as explicit effect values for the shell.
package game

import (
	"time"

	"github.com/dromero/pitagoritas/internal/achievements"
	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/stats"
)

// State is the mutable session aggregate. It is created once at session
// start (hydrated from persisted values where available) and replaced, not
// mutated, on every transition.
type State struct {
	Problem   problemgen.Problem
	RawAnswer string

	// IsCorrect is nil while the current problem is ungraded.
	IsCorrect *bool

	Score    int
	MaxScore int
	Level    int

	Achievements []achievements.Achievement

	Streak     int
	BestStreak int

	TotalExercises   int
	CorrectExercises int

	Stats stats.DetailedStats

	PracticeMode problemgen.PracticeMode
	TimeMode     problemgen.TimeMode

	TimeRemaining int
	TimerActive   bool
}

// NewState returns a fresh session state with zeroed progress.
func NewState() State {
	return State{
		Level:        1,
		Achievements: achievements.Catalog(),
		Stats:        stats.Initialize(),
		PracticeMode: problemgen.ModeAll,
		TimeMode:     problemgen.TimeNoLimit,
	}
}

// Graded reports whether the current problem has been graded.
func (s State) Graded() bool { return s.IsCorrect != nil }

// Attempt is the replayable record of one graded answer, the unit queued
// for remote sync. ID plus RetryCount let the sink deduplicate retries.
type Attempt struct {
	ID            string                  `json:"id"`
	Operation     problemgen.Operation    `json:"operation"`
	Level         int                     `json:"level"`
	PracticeMode  problemgen.PracticeMode `json:"practiceMode"`
	IsCorrect     bool                    `json:"isCorrect"`
	TimeSpent     int                     `json:"timeSpent"`
	UserAnswer    *string                 `json:"userAnswer"`
	CorrectAnswer *string                 `json:"correctAnswer"`
	CreatedAt     time.Time               `json:"createdAt"`
	RetryCount    int                     `json:"retryCount"`
}
