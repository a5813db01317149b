package exercise

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/ui/components"
	"github.com/dromero/pitagoritas/internal/ui/theme"
)

func (e *ExerciseScreen) View(width, height int) string {
	if e.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  Error: " + e.errMsg)
	}

	state := e.session.State()
	if state.Problem == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Preparando ejercicio...")
	}

	cw := components.ContentWidth(width)
	var sections []string
	sections = append(sections, e.renderInfoLine(width))

	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(state.Problem.Prompt())
	sections = append(sections, components.ArcadeCard(prompt, cw))

	if state.Graded() {
		sections = append(sections, e.renderFeedback(cw))
	} else {
		answer := lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render("Respuesta: " + e.input.View())
		sections = append(sections, answer)
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func (e *ExerciseScreen) renderInfoLine(width int) string {
	state := e.session.State()

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Nivel %d", state.Level))

	right := fmt.Sprintf("⭐ %d   🔥 %d", state.Score, state.Streak)
	if state.TimeMode != problemgen.TimeNoLimit {
		timer := fmt.Sprintf("⏱ %d:%02d", state.TimeRemaining/60, state.TimeRemaining%60)
		style := lipgloss.NewStyle().Foreground(theme.Accent)
		if state.TimeRemaining <= 5 && !state.Graded() {
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		}
		right += "   " + style.Render(timer)
	}
	rightRendered := lipgloss.NewStyle().Foreground(theme.TextDim).Render(right)

	pad := width - lipgloss.Width(left) - lipgloss.Width(rightRendered) - 8
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + rightRendered
}

func (e *ExerciseScreen) renderFeedback(cw int) string {
	state := e.session.State()
	var b strings.Builder

	if state.IsCorrect != nil && *state.IsCorrect {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true).
			Render("✨ ¡Muy bien! ✨"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true).
			Render("Casi... la respuesta era " + state.Problem.AnswerText()))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(state.Problem.Explain()))
	}

	for _, id := range e.unlocked {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Render("🏆 ¡Logro desbloqueado: " + achievementName(id) + "!"))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render("Pulsa cualquier tecla para continuar"))

	return components.ArcadeCard(b.String(), cw)
}
