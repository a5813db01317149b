package problemgen

import "fmt"

// buildMixed constructs a mixed-precedence expression. One of six fixed
// shapes is drawn uniformly; for every shape the operands are constructed
// backward from the desired integer outcome, so the result is an exact
// integer and no expression is ever rejected and retried. Every shape
// contains at least one × or ÷ token.
func (g *Generator) buildMixed(cfg Level) Problem {
	switch g.rng.IntN(6) {
	case 0:
		return g.mixedAddProduct(cfg)
	case 1:
		return g.mixedSubProduct(cfg)
	case 2:
		return g.mixedParenSum(cfg)
	case 3:
		return g.mixedParenDiff(cfg)
	case 4:
		return g.mixedProductAdd(cfg)
	default:
		return g.mixedQuotientAdd(cfg)
	}
}

// factor draws a multiplication factor from the level's range clamped to
// the configured [FactorMin, FactorMax] window.
func (g *Generator) factor(max int) int {
	lo, hi := g.mixed.FactorMin, g.mixed.FactorMax
	if max < hi {
		hi = max
	}
	if hi < lo {
		hi = lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}

// addend draws a standalone addend from the level's addition range clamped
// to the configured ceiling.
func (g *Generator) addend(cfg Level) int {
	hi := cfg.MaxNumber
	if hi > g.mixed.AddendMax {
		hi = g.mixed.AddendMax
	}
	if hi < g.mixed.AddendMin {
		hi = g.mixed.AddendMin
	}
	return g.mixed.AddendMin + g.rng.IntN(hi-g.mixed.AddendMin+1)
}

// a + b×c
func (g *Generator) mixedAddProduct(cfg Level) Problem {
	b := g.factor(cfg.MaxNumberMult)
	c := g.factor(cfg.MaxNumberMult)
	a := g.addend(cfg)
	product := b * c
	answer := a + product

	tokens := []Token{
		NumberToken(a), SymbolToken("+"),
		NumberToken(b), SymbolToken("×"), NumberToken(c),
	}
	explanation := joinSteps(
		fmt.Sprintf("Paso 1: Primero resuelve la multiplicación %d × %d = %d (las multiplicaciones van antes que las sumas)", b, c, product),
		fmt.Sprintf("Paso 2: Luego suma: %d + %d = %d", a, product, answer),
		fmt.Sprintf("Paso 3: Resultado: %d", answer),
	)
	return newMixed(tokens, answer, explanation)
}

// a − b×c, with a built as answer + b×c so the result is never negative.
func (g *Generator) mixedSubProduct(cfg Level) Problem {
	b := g.factor(cfg.MaxNumberMult)
	c := g.factor(cfg.MaxNumberMult)
	product := b * c
	answer := g.addend(cfg)
	a := answer + product

	tokens := []Token{
		NumberToken(a), SymbolToken("-"),
		NumberToken(b), SymbolToken("×"), NumberToken(c),
	}
	explanation := joinSteps(
		fmt.Sprintf("Paso 1: Primero resuelve la multiplicación %d × %d = %d (las multiplicaciones van antes que las restas)", b, c, product),
		fmt.Sprintf("Paso 2: Luego resta: %d - %d = %d", a, product, answer),
		fmt.Sprintf("Paso 3: Resultado: %d", answer),
	)
	return newMixed(tokens, answer, explanation)
}

// (a+b)×c
func (g *Generator) mixedParenSum(cfg Level) Problem {
	a := g.addend(cfg)
	b := g.addend(cfg)
	c := g.factor(cfg.MaxNumberMult)
	sum := a + b
	answer := sum * c

	tokens := []Token{
		SymbolToken("("), NumberToken(a), SymbolToken("+"), NumberToken(b), SymbolToken(")"),
		SymbolToken("×"), NumberToken(c),
	}
	explanation := joinSteps(
		fmt.Sprintf("Paso 1: Primero resuelve el paréntesis (%d + %d) = %d (los paréntesis van siempre primero)", a, b, sum),
		fmt.Sprintf("Paso 2: Luego multiplica: %d × %d = %d", sum, c, answer),
		fmt.Sprintf("Paso 3: Resultado: %d", answer),
	)
	return newMixed(tokens, answer, explanation)
}

// (a−b)×c, with a built as b + difference so the parenthesis stays positive.
func (g *Generator) mixedParenDiff(cfg Level) Problem {
	b := g.addend(cfg)
	diff := g.factor(cfg.MaxNumberMult)
	a := b + diff
	c := g.factor(cfg.MaxNumberMult)
	answer := diff * c

	tokens := []Token{
		SymbolToken("("), NumberToken(a), SymbolToken("-"), NumberToken(b), SymbolToken(")"),
		SymbolToken("×"), NumberToken(c),
	}
	explanation := joinSteps(
		fmt.Sprintf("Paso 1: Primero resuelve el paréntesis (%d - %d) = %d (los paréntesis van siempre primero)", a, b, diff),
		fmt.Sprintf("Paso 2: Luego multiplica: %d × %d = %d", diff, c, answer),
		fmt.Sprintf("Paso 3: Resultado: %d", answer),
	)
	return newMixed(tokens, answer, explanation)
}

// a×b + c
func (g *Generator) mixedProductAdd(cfg Level) Problem {
	a := g.factor(cfg.MaxNumberMult)
	b := g.factor(cfg.MaxNumberMult)
	c := g.addend(cfg)
	product := a * b
	answer := product + c

	tokens := []Token{
		NumberToken(a), SymbolToken("×"), NumberToken(b),
		SymbolToken("+"), NumberToken(c),
	}
	explanation := joinSteps(
		fmt.Sprintf("Paso 1: Primero resuelve la multiplicación %d × %d = %d (las multiplicaciones van antes que las sumas)", a, b, product),
		fmt.Sprintf("Paso 2: Luego suma: %d + %d = %d", product, c, answer),
		fmt.Sprintf("Paso 3: Resultado: %d", answer),
	)
	return newMixed(tokens, answer, explanation)
}

// d÷b + c, with d built as b×q so the division is exact.
func (g *Generator) mixedQuotientAdd(cfg Level) Problem {
	b := g.factor(cfg.MaxNumberDiv)
	q := g.factor(cfg.MaxNumberDiv)
	d := b * q
	c := g.addend(cfg)
	answer := q + c

	tokens := []Token{
		NumberToken(d), SymbolToken("÷"), NumberToken(b),
		SymbolToken("+"), NumberToken(c),
	}
	explanation := joinSteps(
		fmt.Sprintf("Paso 1: Primero resuelve la división %d ÷ %d = %d (las divisiones van antes que las sumas)", d, b, q),
		fmt.Sprintf("Paso 2: Luego suma: %d + %d = %d", q, c, answer),
		fmt.Sprintf("Paso 3: Resultado: %d", answer),
	)
	return newMixed(tokens, answer, explanation)
}

func newMixed(tokens []Token, answer int, explanation string) MixedProblem {
	return MixedProblem{
		Expression:  renderTokens(tokens),
		Tokens:      tokens,
		Answer:      answer,
		Explanation: explanation,
	}
}
