// Package achievements evaluates unlock predicates after each graded
// attempt and computes score-threshold level transitions.
package achievements

import "time"

// Achievement is one entry of the fixed catalog. Unlocked entries are
// immutable: an achievement unlocks at most once and is never re-locked.
type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

// Catalog returns the fixed achievement catalog, all locked.
func Catalog() []Achievement {
	return []Achievement{
		{ID: "first_correct", Name: "¡Primer Acierto!", Description: "Resuelve tu primer ejercicio correctamente", Icon: "🎯"},
		{ID: "addition_expert", Name: "Sumador Experto", Description: "Resuelve 10 sumas correctamente", Icon: "➕"},
		{ID: "subtraction_expert", Name: "Rey de las Restas", Description: "Resuelve 10 restas correctamente", Icon: "➖"},
		{ID: "multiplication_expert", Name: "Maestro de las Multiplicaciones", Description: "Resuelve 10 multiplicaciones correctamente", Icon: "✖️"},
		{ID: "division_expert", Name: "Campeón de las Divisiones", Description: "Resuelve 10 divisiones correctamente", Icon: "➗"},
		{ID: "streak_5", Name: "¡En Racha!", Description: "Resuelve 5 ejercicios seguidos correctamente", Icon: "🔥"},
		{ID: "streak_10", Name: "¡Imparable!", Description: "Resuelve 10 ejercicios seguidos correctamente", Icon: "⚡"},
		{ID: "score_50", Name: "Campeón de Matemáticas", Description: "Alcanza 50 puntos", Icon: "🏆"},
		{ID: "perfect_20", Name: "¡Puntuación Perfecta!", Description: "Resuelve 20 ejercicios seguidos sin fallar", Icon: "💎"},
	}
}
