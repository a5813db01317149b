// Package stats renders the detailed progress screen.
package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dromero/pitagoritas/internal/play"
	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/screen"
	domstats "github.com/dromero/pitagoritas/internal/stats"
	"github.com/dromero/pitagoritas/internal/ui/components"
	"github.com/dromero/pitagoritas/internal/ui/layout"
	"github.com/dromero/pitagoritas/internal/ui/theme"
)

// recentWeekCount is how many weekly bars the screen shows.
const recentWeekCount = 4

// StatsScreen shows accuracy per operation, weekly progress and history.
type StatsScreen struct {
	session *play.Session
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates the statistics screen.
func New(session *play.Session) *StatsScreen {
	return &StatsScreen{session: session}
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Estadísticas"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Volver"}}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

// operationLabels maps each operation to its display name.
var operationLabels = map[problemgen.Operation]string{
	problemgen.OpAddition:            "Sumas",
	problemgen.OpSubtraction:         "Restas",
	problemgen.OpMultiplication:      "Multiplicaciones",
	problemgen.OpDivision:            "Divisiones",
	problemgen.OpFractionAddition:    "Fracciones (suma)",
	problemgen.OpFractionSubtraction: "Fracciones (resta)",
	problemgen.OpMixed:               "Combinadas",
}

var difficultyLabels = map[problemgen.Difficulty]string{
	problemgen.DifficultyEasy:   "Fácil",
	problemgen.DifficultyMedium: "Media",
	problemgen.DifficultyHard:   "Difícil",
}

func (s *StatsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	state := s.session.State()
	agg := state.Stats

	headingStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("📊 TUS ESTADÍSTICAS"))

	total := state.TotalExercises
	correct := state.CorrectExercises
	summary := fmt.Sprintf("Ejercicios: %d   Aciertos: %d (%d%%)   Tiempo medio: %ds",
		total, correct, domstats.AccuracyPercentage(correct, total), agg.AverageTime)
	sections = append(sections, dimStyle.Render(summary))

	if weeks := domstats.RecentWeeks(agg, recentWeekCount); len(weeks) > 0 {
		var b strings.Builder
		b.WriteString(headingStyle.Render("Progreso semanal"))
		for _, w := range weeks {
			pct := float64(0)
			if w.TotalAnswers > 0 {
				pct = float64(w.CorrectAnswers) / float64(w.TotalAnswers)
			}
			b.WriteString("\n")
			b.WriteString(components.NewProgressBar(w.Week, pct, true, cw-4).View())
		}
		sections = append(sections, b.String())
	}

	sections = append(sections, s.renderOperations(agg, headingStyle, dimStyle))
	sections = append(sections, s.renderDifficulty(agg, headingStyle, dimStyle))

	if total > 0 {
		weakest := domstats.WeakestOperation(agg)
		sections = append(sections, dimStyle.Render(
			"💪 A practicar: "+operationLabels[weakest]))
	}

	if n := len(agg.SessionHistory); n > 0 {
		last := agg.SessionHistory[n-1]
		sections = append(sections, dimStyle.Render(fmt.Sprintf(
			"Última sesión: %s · %d/%d aciertos · %d puntos",
			last.Date.Format("02/01/2006"),
			last.CorrectExercises, last.TotalExercises, last.Score)))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func (s *StatsScreen) renderOperations(agg domstats.DetailedStats, heading, dim lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(heading.Render("Por operación"))
	for _, op := range problemgen.OperationKeys {
		detail := agg.OperationStats[op]
		line := fmt.Sprintf("%-18s", operationLabels[op])
		if detail.Total == 0 {
			line += dim.Render("sin intentos")
		} else {
			pct := domstats.AccuracyPercentage(detail.Correct, detail.Total)
			style := lipgloss.NewStyle().Foreground(theme.Success)
			if pct < 50 {
				style = lipgloss.NewStyle().Foreground(theme.Error)
			} else if pct < 80 {
				style = lipgloss.NewStyle().Foreground(theme.Accent)
			}
			line += style.Render(fmt.Sprintf("%3d%%", pct))
			line += dim.Render(fmt.Sprintf("  (%d/%d, %ds)", detail.Correct, detail.Total, detail.AverageTime))
		}
		b.WriteString("\n" + line)
	}
	return b.String()
}

func (s *StatsScreen) renderDifficulty(agg domstats.DetailedStats, heading, dim lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(heading.Render("Por dificultad"))
	for _, tier := range []problemgen.Difficulty{
		problemgen.DifficultyEasy,
		problemgen.DifficultyMedium,
		problemgen.DifficultyHard,
	} {
		bucket := agg.DifficultyStats[tier]
		line := fmt.Sprintf("%-10s", difficultyLabels[tier])
		if bucket.Total == 0 {
			line += dim.Render("sin intentos")
		} else {
			pct := domstats.AccuracyPercentage(bucket.Correct, bucket.Total)
			line += dim.Render(fmt.Sprintf("%d/%d (%d%%)", bucket.Correct, bucket.Total, pct))
		}
		b.WriteString("\n" + line)
	}
	return b.String()
}
