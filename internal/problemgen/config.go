package problemgen

// Level bounds the operand magnitudes for one progression step. A player's
// level is derived from cumulative score crossing MinScore thresholds and
// never decreases.
type Level struct {
	ID             int
	MinScore       int
	MaxNumber      int // addition/subtraction operand ceiling
	MaxNumberMult  int // multiplication factor ceiling
	MaxNumberDiv   int // division divisor/quotient ceiling
	MaxDenominator int // fraction denominator ceiling
	Operations     []Operation
}

var baseOperations = []Operation{
	OpAddition,
	OpSubtraction,
	OpMultiplication,
	OpDivision,
	OpFractionAddition,
	OpFractionSubtraction,
}

// Levels is the fixed progression catalog, ordered by id.
var Levels = []Level{
	{ID: 1, MinScore: 0, MaxNumber: 10, MaxNumberMult: 5, MaxNumberDiv: 5, MaxDenominator: 5, Operations: baseOperations},
	{ID: 2, MinScore: 10, MaxNumber: 15, MaxNumberMult: 7, MaxNumberDiv: 7, MaxDenominator: 6, Operations: baseOperations},
	{ID: 3, MinScore: 20, MaxNumber: 20, MaxNumberMult: 10, MaxNumberDiv: 10, MaxDenominator: 8, Operations: baseOperations},
	{ID: 4, MinScore: 35, MaxNumber: 30, MaxNumberMult: 12, MaxNumberDiv: 12, MaxDenominator: 10, Operations: baseOperations},
	{ID: 5, MinScore: 50, MaxNumber: 50, MaxNumberMult: 15, MaxNumberDiv: 15, MaxDenominator: 12, Operations: baseOperations},
	{ID: 6, MinScore: 70, MaxNumber: 75, MaxNumberMult: 20, MaxNumberDiv: 20, MaxDenominator: 15, Operations: baseOperations},
	{ID: 7, MinScore: 100, MaxNumber: 100, MaxNumberMult: 25, MaxNumberDiv: 25, MaxDenominator: 18, Operations: baseOperations},
	{ID: 8, MinScore: 130, MaxNumber: 150, MaxNumberMult: 30, MaxNumberDiv: 30, MaxDenominator: 20, Operations: baseOperations},
	{ID: 9, MinScore: 170, MaxNumber: 200, MaxNumberMult: 40, MaxNumberDiv: 40, MaxDenominator: 25, Operations: baseOperations},
	{ID: 10, MinScore: 220, MaxNumber: 300, MaxNumberMult: 50, MaxNumberDiv: 50, MaxDenominator: 30, Operations: baseOperations},
}

// LevelConfig resolves a level id to its catalog entry, falling back to the
// first entry when the id is unknown.
func LevelConfig(id int) Level {
	for _, l := range Levels {
		if l.ID == id {
			return l
		}
	}
	return Levels[0]
}

// MixedConfig tunes the magnitude clamps of the mixed-expression builder.
// The exact bounds are empirical, chosen to keep generated numbers within
// primary-school range; they are configuration, not invariants.
type MixedConfig struct {
	// FactorMin/FactorMax clamp multiplication factors and division
	// divisors/quotients.
	FactorMin int
	FactorMax int

	// AddendMax caps standalone addends; floored at AddendMin so low
	// levels still produce valid expressions.
	AddendMin int
	AddendMax int
}

// DefaultMixedConfig returns the standard clamps.
func DefaultMixedConfig() MixedConfig {
	return MixedConfig{
		FactorMin: 2,
		FactorMax: 12,
		AddendMin: 1,
		AddendMax: 20,
	}
}

// PracticeMode filters generation to one operation family, or "all".
type PracticeMode string

const (
	ModeAll            PracticeMode = "all"
	ModeAddition       PracticeMode = "addition"
	ModeSubtraction    PracticeMode = "subtraction"
	ModeMultiplication PracticeMode = "multiplication"
	ModeDivision       PracticeMode = "division"
	ModeFractions      PracticeMode = "fractions"
	ModeMixed          PracticeMode = "mixed"
)

// PracticeModeConfig describes a practice mode for the mode picker.
type PracticeModeConfig struct {
	Mode        PracticeMode
	Label       string
	Icon        string
	Description string
}

// PracticeModes is the selectable practice-mode catalog.
var PracticeModes = []PracticeModeConfig{
	{Mode: ModeAll, Label: "Todas las Operaciones", Icon: "🧮", Description: "Practica sumas, restas, multiplicaciones y divisiones"},
	{Mode: ModeAddition, Label: "Solo Sumas", Icon: "➕", Description: "Enfócate en mejorar las sumas"},
	{Mode: ModeSubtraction, Label: "Solo Restas", Icon: "➖", Description: "Practica específicamente las restas"},
	{Mode: ModeMultiplication, Label: "Solo Multiplicaciones", Icon: "✖️", Description: "Mejora tus tablas de multiplicar"},
	{Mode: ModeDivision, Label: "Solo Divisiones", Icon: "➗", Description: "Practica divisiones exactas"},
	{Mode: ModeFractions, Label: "Fracciones (sumas y restas)", Icon: "½", Description: "Practica sumas y restas de fracciones"},
	{Mode: ModeMixed, Label: "Operaciones Combinadas", Icon: "🔀", Description: "Expresiones con prioridad de operaciones"},
}

// PracticeModeFor returns the config for mode, defaulting to "all".
func PracticeModeFor(mode PracticeMode) PracticeModeConfig {
	for _, c := range PracticeModes {
		if c.Mode == mode {
			return c
		}
	}
	return PracticeModes[0]
}

// TimeMode selects an unlimited or fixed-countdown answer window.
type TimeMode string

const (
	TimeNoLimit   TimeMode = "no-limit"
	Time30Seconds TimeMode = "30s"
	Time1Minute   TimeMode = "1min"
	Time2Minutes  TimeMode = "2min"
)

// TimeModeConfig describes a time mode for the mode picker.
type TimeModeConfig struct {
	Mode        TimeMode
	Label       string
	Seconds     int
	Description string
}

// TimeModes is the selectable time-mode catalog.
var TimeModes = []TimeModeConfig{
	{Mode: TimeNoLimit, Label: "Sin Límite", Seconds: 0, Description: "Tómate tu tiempo para pensar"},
	{Mode: Time30Seconds, Label: "30 Segundos", Seconds: 30, Description: "¡Rápido! Tienes 30 segundos"},
	{Mode: Time1Minute, Label: "1 Minuto", Seconds: 60, Description: "Un minuto para resolver"},
	{Mode: Time2Minutes, Label: "2 Minutos", Seconds: 120, Description: "Dos minutos de tiempo"},
}

// TimeModeFor returns the config for mode, defaulting to no-limit.
func TimeModeFor(mode TimeMode) TimeModeConfig {
	for _, c := range TimeModes {
		if c.Mode == mode {
			return c
		}
	}
	return TimeModes[0]
}
