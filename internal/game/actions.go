package game

import (
	"time"

	"github.com/dromero/pitagoritas/internal/problemgen"
)

// Action is the closed set of session transitions. Every gameplay event,
// whether from a keypress or a timer tick, is expressed as one of these.
type Action interface{ action() }

// SetProblem replaces the active problem, typically after hydration.
type SetProblem struct {
	Problem problemgen.Problem
}

// SetAnswer replaces the raw answer text for the active problem.
type SetAnswer struct {
	Raw string
}

// CheckAnswer grades the raw answer against the active problem.
type CheckAnswer struct {
	Now time.Time
}

// NextProblem discards the graded problem and generates a fresh one.
type NextProblem struct{}

// SetPracticeMode switches the practice filter and regenerates.
type SetPracticeMode struct {
	Mode problemgen.PracticeMode
}

// SetTimeMode switches the countdown window and regenerates.
type SetTimeMode struct {
	Mode problemgen.TimeMode
}

// Tick advances the countdown by one second.
type Tick struct {
	Now time.Time
}

// ResetGame zeroes the current session while keeping best-ever records,
// unlocked achievements and accumulated statistics.
type ResetGame struct {
	Now time.Time
}

func (SetProblem) action()      {}
func (SetAnswer) action()       {}
func (CheckAnswer) action()     {}
func (NextProblem) action()     {}
func (SetPracticeMode) action() {}
func (SetTimeMode) action()     {}
func (Tick) action()            {}
func (ResetGame) action()       {}

// Effect is a side effect the shell must run after a transition. The
// reducer itself never touches storage or the network.
type Effect interface{ effect() }

// PersistProgress asks the shell to write the session aggregate to disk.
type PersistProgress struct{}

// RecordAttempt asks the shell to enqueue a graded attempt for sync.
type RecordAttempt struct {
	Attempt Attempt
}

// AchievementsUnlocked reports achievements that unlocked on this attempt,
// for the shell to celebrate.
type AchievementsUnlocked struct {
	IDs []string
}

func (PersistProgress) effect()      {}
func (RecordAttempt) effect()        {}
func (AchievementsUnlocked) effect() {}
