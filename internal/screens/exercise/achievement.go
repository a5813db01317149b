package exercise

import "github.com/dromero/pitagoritas/internal/achievements"

// achievementName resolves a catalog id to its display name, falling back
// to the id itself for robustness.
func achievementName(id string) string {
	for _, a := range achievements.Catalog() {
		if a.ID == id {
			return a.Icon + " " + a.Name
		}
	}
	return id
}
