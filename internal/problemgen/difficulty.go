package problemgen

// ClassifyDifficulty maps a (level, operation) pair to an analytics tier.
// Operation-specific overrides are checked before the generic level table;
// the rule order is domain tuning and must stay as-is.
func ClassifyDifficulty(level int, op Operation) Difficulty {
	if op == OpMultiplication && level >= 3 {
		return DifficultyHard
	}
	if op == OpDivision && level >= 2 {
		return DifficultyHard
	}
	if op == OpMixed {
		switch {
		case level >= 4:
			return DifficultyHard
		case level >= 2:
			return DifficultyMedium
		default:
			return DifficultyEasy
		}
	}

	switch level {
	case 1:
		return DifficultyEasy
	case 2, 3:
		return DifficultyMedium
	case 4:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}
