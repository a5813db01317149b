package problemgen

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dromero/pitagoritas/internal/fraction"
)

// ErrNoActiveProblem signals that evaluation was invoked without a current
// problem. This is a contract violation by the caller, not a wrong answer.
var ErrNoActiveProblem = errors.New("no active problem to evaluate")

// EvalResult is the outcome of grading one raw answer.
type EvalResult struct {
	IsCorrect bool

	// TimeSpent is the elapsed answer time in seconds: zero in unlimited
	// mode, otherwise the configured window minus the remaining seconds.
	TimeSpent int

	// Difficulty is the analytics tier of this attempt.
	Difficulty Difficulty

	// NormalizedAnswer is the parsed form of the player's answer, empty
	// when the raw input could not be parsed.
	NormalizedAnswer string
}

// Evaluate grades a raw answer against the active problem. Unparseable
// input (bad number, malformed fraction, zero denominator) is graded as
// incorrect, never returned as an error: grading always produces a definite
// outcome. Only a nil problem is a hard failure.
func Evaluate(p Problem, raw string, level int, timeMode TimeMode, timeRemaining int) (EvalResult, error) {
	if p == nil {
		return EvalResult{}, ErrNoActiveProblem
	}

	res := EvalResult{
		TimeSpent:  timeSpent(timeMode, timeRemaining),
		Difficulty: ClassifyDifficulty(level, p.Op()),
	}
	raw = strings.TrimSpace(raw)

	switch prob := p.(type) {
	case FractionProblem:
		user, err := fraction.Parse(raw)
		if err != nil {
			return res, nil
		}
		res.NormalizedAnswer = user.String()
		// Equals normalizes both sides, so the player's unsimplified
		// fraction is accepted as-is.
		res.IsCorrect = fraction.Equals(user, prob.Answer)
		return res, nil

	case IntegerProblem:
		return gradeNumeric(res, raw, prob.Answer), nil

	case MixedProblem:
		return gradeNumeric(res, raw, prob.Answer), nil
	}

	return res, nil
}

// gradeNumeric parses the raw answer as a float and compares exactly.
// All generated answers are integers, so "7.5" never matches 7 and no
// epsilon tolerance is applied.
func gradeNumeric(res EvalResult, raw string, answer int) EvalResult {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return res
	}
	res.NormalizedAnswer = strconv.FormatFloat(value, 'f', -1, 64)
	res.IsCorrect = value == float64(answer)
	return res
}

func timeSpent(mode TimeMode, remaining int) int {
	if mode == TimeNoLimit {
		return 0
	}
	spent := TimeModeFor(mode).Seconds - remaining
	if spent < 0 {
		return 0
	}
	return spent
}
