package problemgen

import (
	"strings"
	"testing"
)

// evalTokens evaluates a token sequence under standard precedence with a
// tiny recursive-descent parser, independent of the builder's arithmetic.
func evalTokens(t *testing.T, tokens []Token) int {
	t.Helper()
	pos := 0

	var expr func() int

	primary := func() int {
		tok := tokens[pos]
		if tok.Symbol == "(" {
			pos++
			v := expr()
			if pos >= len(tokens) || tokens[pos].Symbol != ")" {
				t.Fatalf("unbalanced parenthesis in %v", tokens)
			}
			pos++
			return v
		}
		if !tok.IsNumber() {
			t.Fatalf("expected number at %d in %v", pos, tokens)
		}
		pos++
		return tok.Number
	}

	term := func() int {
		v := primary()
		for pos < len(tokens) && (tokens[pos].Symbol == "×" || tokens[pos].Symbol == "÷") {
			op := tokens[pos].Symbol
			pos++
			rhs := primary()
			if op == "×" {
				v *= rhs
			} else {
				if rhs == 0 || v%rhs != 0 {
					t.Fatalf("inexact division %d ÷ %d in %v", v, rhs, tokens)
				}
				v /= rhs
			}
		}
		return v
	}

	expr = func() int {
		v := term()
		for pos < len(tokens) && (tokens[pos].Symbol == "+" || tokens[pos].Symbol == "-") {
			op := tokens[pos].Symbol
			pos++
			rhs := term()
			if op == "+" {
				v += rhs
			} else {
				v -= rhs
			}
		}
		return v
	}

	v := expr()
	if pos != len(tokens) {
		t.Fatalf("trailing tokens in %v", tokens)
	}
	return v
}

func TestBuildMixed_Integrity(t *testing.T) {
	g := testGenerator(7)

	for _, level := range []int{1, 2, 4, 6, 10} {
		for i := 0; i < 200; i++ {
			p := g.Generate(level, ModeMixed)
			mp, ok := p.(MixedProblem)
			if !ok {
				t.Fatalf("expected MixedProblem, got %T", p)
			}

			if !strings.ContainsAny(mp.Expression, "×÷") {
				t.Fatalf("expression %q has no × or ÷", mp.Expression)
			}
			if got := evalTokens(t, mp.Tokens); got != mp.Answer {
				t.Fatalf("%q evaluates to %d, answer says %d", mp.Expression, got, mp.Answer)
			}
			if renderTokens(mp.Tokens) != mp.Expression {
				t.Fatalf("tokens %v render as %q, expression is %q", mp.Tokens, renderTokens(mp.Tokens), mp.Expression)
			}
		}
	}
}

func TestBuildMixed_ExplanationNamesFirstStep(t *testing.T) {
	g := testGenerator(8)

	for i := 0; i < 100; i++ {
		mp := g.Generate(4, ModeMixed).(MixedProblem)
		if !strings.Contains(mp.Explanation, "Paso 1: Primero resuelve") {
			t.Fatalf("explanation should state the first sub-expression: %q", mp.Explanation)
		}
		if !strings.Contains(mp.Explanation, "Paso 2:") {
			t.Fatalf("explanation should include the combination step: %q", mp.Explanation)
		}
	}
}

func TestBuildMixed_RespectsFactorClamp(t *testing.T) {
	g := testGenerator(9)
	cfg := DefaultMixedConfig()

	// Level 10 allows factors up to 50; the clamp caps them at FactorMax.
	for i := 0; i < 300; i++ {
		mp := g.Generate(10, ModeMixed).(MixedProblem)
		for _, tok := range mp.Tokens {
			if tok.IsNumber() && tok.Number > cfg.FactorMax*cfg.FactorMax+cfg.AddendMax {
				t.Fatalf("token %d exceeds clamped magnitude in %q", tok.Number, mp.Expression)
			}
		}
	}
}
