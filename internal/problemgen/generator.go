package problemgen

import (
	"math/rand/v2"

	"github.com/dromero/pitagoritas/internal/fraction"
)

// Generator produces exercises for a level and practice mode. Problems are
// constructed so that they are always valid: subtractions stay positive,
// divisions are exact and mixed expressions evaluate to integers, with no
// generate-then-retry loop anywhere.
type Generator struct {
	rng   *rand.Rand
	mixed MixedConfig
}

// New creates a Generator with its own PRNG and default mixed clamps.
func New() *Generator {
	return NewWithRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewWithRand creates a Generator over a caller-supplied PRNG. Tests use
// this with a fixed seed.
func NewWithRand(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, mixed: DefaultMixedConfig()}
}

// SetMixedConfig overrides the mixed-expression clamps.
func (g *Generator) SetMixedConfig(cfg MixedConfig) {
	g.mixed = cfg
}

// Generate produces one problem for the given level and practice mode.
func (g *Generator) Generate(level int, mode PracticeMode) Problem {
	cfg := LevelConfig(level)
	ops := candidateOperations(cfg, mode)
	op := ops[g.rng.IntN(len(ops))]

	switch op {
	case OpAddition:
		return g.addition(cfg)
	case OpSubtraction:
		return g.subtraction(cfg)
	case OpMultiplication:
		return g.multiplication(cfg)
	case OpDivision:
		return g.division(cfg)
	case OpFractionAddition, OpFractionSubtraction:
		return g.fractionProblem(cfg, op)
	case OpMixed:
		return g.buildMixed(cfg)
	}
	// Unreachable: candidateOperations only yields known operations.
	return g.addition(cfg)
}

// candidateOperations computes the operation set a problem may be drawn
// from. A single-operation mode restricts to that operation (or its
// two-variant fraction group); "all" unions the level's operations with the
// fraction and mixed variants so it always offers the full variety.
func candidateOperations(cfg Level, mode PracticeMode) []Operation {
	switch mode {
	case ModeAddition:
		return []Operation{OpAddition}
	case ModeSubtraction:
		return []Operation{OpSubtraction}
	case ModeMultiplication:
		return []Operation{OpMultiplication}
	case ModeDivision:
		return []Operation{OpDivision}
	case ModeFractions:
		return []Operation{OpFractionAddition, OpFractionSubtraction}
	case ModeMixed:
		return []Operation{OpMixed}
	}

	seen := make(map[Operation]bool, len(OperationKeys))
	var ops []Operation
	add := func(op Operation) {
		if !seen[op] {
			seen[op] = true
			ops = append(ops, op)
		}
	}
	for _, op := range cfg.Operations {
		add(op)
	}
	add(OpFractionAddition)
	add(OpFractionSubtraction)
	add(OpMixed)
	return ops
}

// intN returns a uniform value in [1, max], treating max < 1 as 1.
func (g *Generator) intN(max int) int {
	if max < 1 {
		return 1
	}
	return g.rng.IntN(max) + 1
}

func (g *Generator) addition(cfg Level) Problem {
	num1 := g.intN(cfg.MaxNumber)
	num2 := g.intN(cfg.MaxNumber)
	return IntegerProblem{
		Num1:        num1,
		Num2:        num2,
		Operation:   OpAddition,
		Answer:      num1 + num2,
		Explanation: explainAddition(num1, num2),
	}
}

// subtraction draws num2 strictly below num1, so the answer is always ≥ 1.
func (g *Generator) subtraction(cfg Level) Problem {
	num1 := g.intN(cfg.MaxNumber)
	if num1 < 2 {
		num1 = 2
	}
	num2 := g.intN(num1 - 1)
	return IntegerProblem{
		Num1:        num1,
		Num2:        num2,
		Operation:   OpSubtraction,
		Answer:      num1 - num2,
		Explanation: explainSubtraction(num1, num2),
	}
}

func (g *Generator) multiplication(cfg Level) Problem {
	num1 := g.intN(cfg.MaxNumberMult)
	num2 := g.intN(cfg.MaxNumberMult)
	return IntegerProblem{
		Num1:        num1,
		Num2:        num2,
		Operation:   OpMultiplication,
		Answer:      num1 * num2,
		Explanation: explainMultiplication(num1, num2),
	}
}

// division picks divisor and quotient first and derives the dividend, so
// every division is exact by construction.
func (g *Generator) division(cfg Level) Problem {
	divisor := g.intN(cfg.MaxNumberDiv)
	quotient := g.intN(cfg.MaxNumberDiv)
	dividend := divisor * quotient
	return IntegerProblem{
		Num1:        dividend,
		Num2:        divisor,
		Operation:   OpDivision,
		Answer:      quotient,
		Explanation: explainDivision(dividend, divisor, quotient),
	}
}

// properFraction generates numerator < denominator with denominator in
// [3, cfg.MaxDenominator].
func (g *Generator) properFraction(cfg Level) fraction.Fraction {
	maxDen := cfg.MaxDenominator
	if maxDen < 3 {
		maxDen = 3
	}
	den := g.rng.IntN(maxDen-2) + 3
	num := g.intN(den - 1)
	return fraction.Fraction{Numerator: num, Denominator: den}
}

func (g *Generator) fractionProblem(cfg Level, op Operation) Problem {
	f1 := g.properFraction(cfg)
	f2 := g.properFraction(cfg)

	if op == OpFractionAddition {
		ans := fraction.Add(f1, f2)
		return FractionProblem{
			Num1:        f1,
			Num2:        f2,
			Operation:   op,
			Answer:      ans,
			Explanation: explainFractions(f1, f2, ans, true),
		}
	}

	// Order operands so the difference is non-negative.
	if fraction.Less(f1, f2) {
		f1, f2 = f2, f1
	}
	ans := fraction.Subtract(f1, f2)
	return FractionProblem{
		Num1:        f1,
		Num2:        f2,
		Operation:   op,
		Answer:      ans,
		Explanation: explainFractions(f1, f2, ans, false),
	}
}
