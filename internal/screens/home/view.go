package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/ui/components"
	"github.com/dromero/pitagoritas/internal/ui/theme"
)

// Block-letter title for the cabinet header.
const titleFull = ` ██████╗ ██╗████████╗ █████╗  ██████╗  ██████╗
 ██╔══██╗██║╚══██╔══╝██╔══██╗██╔════╝ ██╔═══██╗
 ██████╔╝██║   ██║   ███████║██║  ███╗██║   ██║
 ██╔═══╝ ██║   ██║   ██╔══██║██║   ██║██║   ██║
 ██║     ██║   ██║   ██║  ██║╚██████╔╝╚██████╔╝
 ╚═╝     ╚═╝   ╚═╝   ╚═╝  ╚═╝ ╚═════╝  ╚═════╝`

const titleCompact = "P · I · T · Á · G · O · R · I · T · A · S"

const subtitle = "¡Aprende matemáticas jugando!"

// renderTitle returns the styled title block or a compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	banner := titleFull
	if compact {
		banner = titleCompact
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(banner) + "\n" +
			lipgloss.NewStyle().Foreground(theme.Secondary).Render(subtitle))
}

// renderStatsBar renders the player's headline numbers in a bordered box.
func renderStatsBar(level, maxScore, bestStreak, cw int) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)

	stats := fmt.Sprintf("%s  %s  %s",
		levelStyle.Render(fmt.Sprintf("★ NIVEL %d", level)),
		scoreStyle.Render(fmt.Sprintf("⭐ RÉCORD %d", maxScore)),
		streakStyle.Render(fmt.Sprintf("🔥 RACHA %d", bestStreak)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderModeLine shows the active practice and time modes under the stats bar.
func renderModeLine(practice problemgen.PracticeMode, timeMode problemgen.TimeMode, cw int) string {
	p := problemgen.PracticeModeFor(practice)
	t := problemgen.TimeModeFor(timeMode)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %s   ·   ⏱ %s", p.Icon, p.Label, t.Label))
}

// renderMenu renders each menu item as a fixed-width arcade button.
func renderMenu(labels []string, selected int, cw int) string {
	var block string
	for i, label := range labels {
		if i > 0 {
			block += "\n"
		}
		block += components.ArcadeButton(label, i == selected, 24)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMenuCompact renders menu items as plain lines for small terminals.
func renderMenuCompact(labels []string, selected int, cw int) string {
	var block string
	for i, label := range labels {
		if i > 0 {
			block += "\n"
		}
		if i == selected {
			block += lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			block += lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}
