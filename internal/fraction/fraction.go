// Package fraction implements exact rational arithmetic for fraction
// exercises. Results are always reduced to lowest terms and equality is
// cross-product based, so 2/4 compares equal to 1/2.
package fraction

import (
	"fmt"
	"strconv"
	"strings"
)

// Fraction is a rational number with integer numerator and denominator.
type Fraction struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
}

// Simplify reduces f to lowest terms. Both parts are taken as absolute
// values before reduction. A zero denominator fails safe to 0/1.
func Simplify(f Fraction) Fraction {
	num := abs(f.Numerator)
	den := abs(f.Denominator)
	if den == 0 {
		return Fraction{Numerator: 0, Denominator: 1}
	}
	g := gcd(num, den)
	return Fraction{Numerator: num / g, Denominator: den / g}
}

// Add returns a + b in lowest terms using the cross-multiplied sum.
func Add(a, b Fraction) Fraction {
	return Simplify(Fraction{
		Numerator:   a.Numerator*b.Denominator + b.Numerator*a.Denominator,
		Denominator: a.Denominator * b.Denominator,
	})
}

// Subtract returns a - b in lowest terms.
func Subtract(a, b Fraction) Fraction {
	return Simplify(Fraction{
		Numerator:   a.Numerator*b.Denominator - b.Numerator*a.Denominator,
		Denominator: a.Denominator * b.Denominator,
	})
}

// Equals reports whether a and b represent the same rational value.
// Both sides are simplified first, so unreduced inputs are fine.
func Equals(a, b Fraction) bool {
	sa := Simplify(a)
	sb := Simplify(b)
	return sa.Numerator == sb.Numerator && sa.Denominator == sb.Denominator
}

// Less reports whether a < b by cross-product comparison.
func Less(a, b Fraction) bool {
	return a.Numerator*b.Denominator < b.Numerator*a.Denominator
}

// Parse parses "a/b" into a Fraction. The denominator must be non-zero.
func Parse(s string) (Fraction, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return Fraction{}, fmt.Errorf("invalid fraction format: %q", s)
	}
	num, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Fraction{}, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Fraction{}, fmt.Errorf("invalid denominator: %w", err)
	}
	if den == 0 {
		return Fraction{}, fmt.Errorf("zero denominator in %q", s)
	}
	return Fraction{Numerator: num, Denominator: den}, nil
}

// String renders the fraction as "a/b".
func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// gcd returns the greatest common divisor of a and b.
// Both a and b must be non-negative.
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// abs returns the absolute value of n.
func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
