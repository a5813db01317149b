package game

import (
	"github.com/google/uuid"

	"github.com/dromero/pitagoritas/internal/achievements"
	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/stats"
)

// Machine reduces actions over session state. It owns the problem
// generator and the attempt id source; everything else is pure.
type Machine struct {
	gen   *problemgen.Generator
	newID func() string
}

// NewMachine returns a machine backed by gen.
func NewMachine(gen *problemgen.Generator) *Machine {
	return &Machine{gen: gen, newID: uuid.NewString}
}

// Reduce applies one action and returns the next state plus the side
// effects the shell must run. The input state is never mutated.
func (m *Machine) Reduce(s State, a Action) (State, []Effect, error) {
	switch act := a.(type) {
	case SetProblem:
		s.Problem = act.Problem
		s.RawAnswer = ""
		s.IsCorrect = nil
		return s, nil, nil

	case SetAnswer:
		s.RawAnswer = act.Raw
		return s, nil, nil

	case CheckAnswer:
		return m.check(s, act)

	case NextProblem:
		return m.fresh(s), []Effect{PersistProgress{}}, nil

	case SetPracticeMode:
		s.PracticeMode = act.Mode
		return m.fresh(s), []Effect{PersistProgress{}}, nil

	case SetTimeMode:
		s.TimeMode = act.Mode
		return m.fresh(s), []Effect{PersistProgress{}}, nil

	case Tick:
		return m.tick(s, act)

	case ResetGame:
		return m.reset(s, act), []Effect{PersistProgress{}}, nil
	}

	return s, nil, nil
}

// fresh generates a new problem for the current mode and rearms the
// countdown from the configured window.
func (m *Machine) fresh(s State) State {
	s.Problem = m.gen.Generate(s.Level, s.PracticeMode)
	s.RawAnswer = ""
	s.IsCorrect = nil

	seconds := problemgen.TimeModeFor(s.TimeMode).Seconds
	s.TimeRemaining = seconds
	s.TimerActive = seconds > 0
	return s
}

func (m *Machine) check(s State, act CheckAnswer) (State, []Effect, error) {
	if s.Graded() {
		return s, nil, nil
	}
	res, err := problemgen.Evaluate(s.Problem, s.RawAnswer, s.Level, s.TimeMode, s.TimeRemaining)
	if err != nil {
		return s, nil, err
	}

	correct := res.IsCorrect
	s.IsCorrect = &correct
	s.TimerActive = false

	s.TotalExercises++
	if correct {
		s.CorrectExercises++
		s.Score++
		s.Streak++
	} else {
		s.Streak = 0
	}
	s.MaxScore = max(s.MaxScore, s.Score)
	s.BestStreak = max(s.BestStreak, s.Streak)

	s.Stats = stats.UpdateWeeklyProgress(s.Stats, correct, res.TimeSpent, act.Now)
	s.Stats = stats.UpdateOperationStats(s.Stats, s.Problem.Op(), correct, res.TimeSpent, res.Difficulty)
	s.Stats = stats.UpdateDifficultyStats(s.Stats, res.Difficulty, correct)

	// Built before any level transition so the attempt carries the level it
	// was actually played at.
	attempt := m.attempt(s, res, act)

	var unlocked []achievements.Achievement
	s.Achievements, unlocked = achievements.Evaluate(s.Achievements, achievements.Input{
		Stats:        s.Stats,
		Streak:       s.Streak,
		Score:        s.Score,
		CorrectCount: s.CorrectExercises,
		IsCorrect:    correct,
		Now:          act.Now,
	})
	s.Level, _ = achievements.NextLevel(s.Score, s.Level)

	effects := []Effect{
		RecordAttempt{Attempt: attempt},
		PersistProgress{},
	}
	if len(unlocked) > 0 {
		ids := make([]string, len(unlocked))
		for i, a := range unlocked {
			ids[i] = a.ID
		}
		effects = append(effects, AchievementsUnlocked{IDs: ids})
	}
	return s, effects, nil
}

func (m *Machine) attempt(s State, res problemgen.EvalResult, act CheckAnswer) Attempt {
	var user *string
	if res.NormalizedAnswer != "" {
		v := res.NormalizedAnswer
		user = &v
	}
	answer := s.Problem.AnswerText()
	return Attempt{
		ID:            m.newID(),
		Operation:     s.Problem.Op(),
		Level:         s.Level,
		PracticeMode:  s.PracticeMode,
		IsCorrect:     res.IsCorrect,
		TimeSpent:     res.TimeSpent,
		UserAnswer:    user,
		CorrectAnswer: &answer,
		CreatedAt:     act.Now,
	}
}

// tick counts the window down one second. Reaching zero stops the timer
// and auto-grades if the player has typed anything; an empty answer just
// waits for input so the attempt is not wasted on a blank.
func (m *Machine) tick(s State, act Tick) (State, []Effect, error) {
	if !s.TimerActive || s.Graded() {
		return s, nil, nil
	}
	if s.TimeRemaining > 0 {
		s.TimeRemaining--
	}
	if s.TimeRemaining > 0 {
		return s, nil, nil
	}
	s.TimerActive = false
	if s.RawAnswer == "" {
		return s, nil, nil
	}
	return m.check(s, CheckAnswer{Now: act.Now})
}

// reset archives the finished session into history, then zeroes the
// running score and streak. Best-ever records, unlocked achievements,
// accumulated statistics and the reached level all survive.
func (m *Machine) reset(s State, act ResetGame) State {
	if s.TotalExercises > 0 {
		s.Stats = stats.AddSessionRecord(s.Stats, stats.SessionRecord{
			Date:             act.Now,
			Score:            s.Score,
			TotalExercises:   s.TotalExercises,
			CorrectExercises: s.CorrectExercises,
			AverageTime:      s.Stats.AverageTime,
			Operations:       []string{string(s.PracticeMode)},
		})
	}
	s.Score = 0
	s.Streak = 0
	s.TotalExercises = 0
	s.CorrectExercises = 0
	return m.fresh(s)
}
