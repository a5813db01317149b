package fraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name string
		in   Fraction
		want Fraction
	}{
		{"already reduced", Fraction{1, 2}, Fraction{1, 2}},
		{"reducible", Fraction{4, 8}, Fraction{1, 2}},
		{"negative numerator", Fraction{-3, 6}, Fraction{1, 2}},
		{"zero numerator", Fraction{0, 7}, Fraction{0, 1}},
		{"zero denominator fails safe", Fraction{5, 0}, Fraction{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Simplify(tt.in))
		})
	}
}

func TestAdd(t *testing.T) {
	got := Add(Fraction{1, 2}, Fraction{1, 3})
	assert.Equal(t, Fraction{5, 6}, got)

	// Result is always in lowest terms.
	got = Add(Fraction{1, 4}, Fraction{1, 4})
	assert.Equal(t, Fraction{1, 2}, got)
}

func TestSubtract(t *testing.T) {
	got := Subtract(Fraction{3, 4}, Fraction{1, 4})
	assert.Equal(t, Fraction{1, 2}, got)

	got = Subtract(Fraction{2, 3}, Fraction{1, 6})
	assert.Equal(t, Fraction{1, 2}, got)
}

func TestEquals(t *testing.T) {
	assert.True(t, Equals(Fraction{1, 2}, Fraction{2, 4}))
	assert.True(t, Equals(Fraction{5, 10}, Fraction{1, 2}))
	assert.False(t, Equals(Fraction{1, 2}, Fraction{1, 3}))
}

func TestLess(t *testing.T) {
	assert.True(t, Less(Fraction{1, 3}, Fraction{1, 2}))
	assert.False(t, Less(Fraction{1, 2}, Fraction{1, 3}))
	assert.False(t, Less(Fraction{2, 4}, Fraction{1, 2}))
}

func TestParse(t *testing.T) {
	f, err := Parse("2/4")
	require.NoError(t, err)
	assert.Equal(t, Fraction{2, 4}, f)

	f, err = Parse(" 3 / 5 ")
	require.NoError(t, err)
	assert.Equal(t, Fraction{3, 5}, f)

	_, err = Parse("3")
	assert.Error(t, err)

	_, err = Parse("a/b")
	assert.Error(t, err)

	_, err = Parse("1/0")
	assert.Error(t, err)
}
