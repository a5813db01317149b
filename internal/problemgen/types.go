package problemgen

import (
	"fmt"
	"strings"

	"github.com/dromero/pitagoritas/internal/fraction"
)

// Operation identifies one of the seven exercise families.
type Operation string

const (
	OpAddition            Operation = "addition"
	OpSubtraction         Operation = "subtraction"
	OpMultiplication      Operation = "multiplication"
	OpDivision            Operation = "division"
	OpFractionAddition    Operation = "fraction-addition"
	OpFractionSubtraction Operation = "fraction-subtraction"
	OpMixed               Operation = "mixed"
)

// OperationKeys lists every operation, in catalog order. Stats buckets are
// keyed by this list, so every key is always present even at zero counts.
var OperationKeys = []Operation{
	OpAddition,
	OpSubtraction,
	OpMultiplication,
	OpDivision,
	OpFractionAddition,
	OpFractionSubtraction,
	OpMixed,
}

// KnownOperation reports whether s names one of the seven operations.
func KnownOperation(s string) bool {
	for _, op := range OperationKeys {
		if string(op) == s {
			return true
		}
	}
	return false
}

// Difficulty is the analytics tier assigned to a graded attempt.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Problem is a generated exercise. It is a closed union: exactly one of
// IntegerProblem, FractionProblem or MixedProblem, discriminated by Op().
// A Problem is immutable once generated; a new Problem replaces the old one.
type Problem interface {
	// Op returns the operation this problem exercises.
	Op() Operation

	// Prompt renders the exercise as shown to the player, e.g. "3 + 4 = ?".
	Prompt() string

	// Explain returns the step-by-step solution narrative. Never empty.
	Explain() string

	// AnswerText renders the expected answer for display.
	AnswerText() string

	sealed()
}

// IntegerProblem is an addition, subtraction, multiplication or division
// exercise over small positive integers.
type IntegerProblem struct {
	Num1        int
	Num2        int
	Operation   Operation
	Answer      int
	Explanation string
}

func (p IntegerProblem) Op() Operation   { return p.Operation }
func (p IntegerProblem) Explain() string { return p.Explanation }
func (p IntegerProblem) sealed()         {}

func (p IntegerProblem) Prompt() string {
	return fmt.Sprintf("%d %s %d = ?", p.Num1, operationSymbol(p.Operation), p.Num2)
}

func (p IntegerProblem) AnswerText() string {
	return fmt.Sprintf("%d", p.Answer)
}

// FractionProblem is a fraction addition or subtraction exercise.
// For subtraction the operands are ordered so the answer is non-negative.
type FractionProblem struct {
	Num1        fraction.Fraction
	Num2        fraction.Fraction
	Operation   Operation
	Answer      fraction.Fraction
	Explanation string
}

func (p FractionProblem) Op() Operation   { return p.Operation }
func (p FractionProblem) Explain() string { return p.Explanation }
func (p FractionProblem) sealed()         {}

func (p FractionProblem) Prompt() string {
	sym := "+"
	if p.Operation == OpFractionSubtraction {
		sym = "-"
	}
	return fmt.Sprintf("%s %s %s = ?", p.Num1, sym, p.Num2)
}

func (p FractionProblem) AnswerText() string {
	return p.Answer.String()
}

// Token is one element of a mixed expression: either a number or a symbol.
// Symbol is one of "+", "-", "×", "÷", "(", ")" and is empty for numbers.
type Token struct {
	Number int
	Symbol string
}

// NumberToken builds a number token.
func NumberToken(n int) Token { return Token{Number: n} }

// SymbolToken builds an operator or parenthesis token.
func SymbolToken(s string) Token { return Token{Symbol: s} }

// IsNumber reports whether the token is a number.
func (t Token) IsNumber() bool { return t.Symbol == "" }

func (t Token) String() string {
	if t.IsNumber() {
		return fmt.Sprintf("%d", t.Number)
	}
	return t.Symbol
}

// MixedProblem is a mixed-precedence expression exercise. The expression
// always contains at least one × or ÷ and evaluates to an exact integer,
// because operands are constructed backward from integer sub-results.
type MixedProblem struct {
	Expression  string
	Tokens      []Token
	Answer      int
	Explanation string
}

func (p MixedProblem) Op() Operation   { return OpMixed }
func (p MixedProblem) Explain() string { return p.Explanation }
func (p MixedProblem) sealed()         {}

func (p MixedProblem) Prompt() string {
	return p.Expression + " = ?"
}

func (p MixedProblem) AnswerText() string {
	return fmt.Sprintf("%d", p.Answer)
}

func operationSymbol(op Operation) string {
	switch op {
	case OpAddition:
		return "+"
	case OpSubtraction:
		return "-"
	case OpMultiplication:
		return "×"
	case OpDivision:
		return "÷"
	}
	return "+"
}

// renderTokens joins tokens into the display expression, e.g. "(3 + 4) × 2".
// Parentheses hug their contents; everything else is space-separated.
func renderTokens(tokens []Token) string {
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 {
			prev := tokens[i-1]
			if prev.Symbol != "(" && t.Symbol != ")" {
				b.WriteString(" ")
			}
		}
		b.WriteString(t.String())
	}
	return b.String()
}
