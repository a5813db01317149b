package problemgen

import "testing"

func TestClassifyDifficulty(t *testing.T) {
	tests := []struct {
		level int
		op    Operation
		want  Difficulty
	}{
		{1, OpAddition, DifficultyEasy},
		{2, OpAddition, DifficultyMedium},
		{3, OpAddition, DifficultyMedium},
		{4, OpAddition, DifficultyHard},
		{7, OpAddition, DifficultyMedium},

		// Multiplication turns hard from level 3.
		{2, OpMultiplication, DifficultyMedium},
		{3, OpMultiplication, DifficultyHard},
		{10, OpMultiplication, DifficultyHard},

		// Division turns hard from level 2.
		{1, OpDivision, DifficultyEasy},
		{2, OpDivision, DifficultyHard},

		// Mixed has its own three-step table.
		{1, OpMixed, DifficultyEasy},
		{2, OpMixed, DifficultyMedium},
		{3, OpMixed, DifficultyMedium},
		{4, OpMixed, DifficultyHard},

		// Fractions follow the generic level table.
		{1, OpFractionAddition, DifficultyEasy},
		{4, OpFractionSubtraction, DifficultyHard},
	}

	for _, tt := range tests {
		if got := ClassifyDifficulty(tt.level, tt.op); got != tt.want {
			t.Errorf("ClassifyDifficulty(%d, %s) = %s, want %s", tt.level, tt.op, got, tt.want)
		}
	}
}
