// Package achievements renders the trophy case screen.
package achievements

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dromero/pitagoritas/internal/play"
	"github.com/dromero/pitagoritas/internal/screen"
	"github.com/dromero/pitagoritas/internal/ui/components"
	"github.com/dromero/pitagoritas/internal/ui/layout"
	"github.com/dromero/pitagoritas/internal/ui/theme"
)

// AchievementsScreen lists every achievement, unlocked ones first styled
// bright and locked ones dimmed.
type AchievementsScreen struct {
	session *play.Session
}

var _ screen.Screen = (*AchievementsScreen)(nil)
var _ screen.KeyHintProvider = (*AchievementsScreen)(nil)

// New creates the achievements screen.
func New(session *play.Session) *AchievementsScreen {
	return &AchievementsScreen{session: session}
}

func (a *AchievementsScreen) Init() tea.Cmd {
	return nil
}

func (a *AchievementsScreen) Title() string {
	return "Logros"
}

func (a *AchievementsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Volver"}}
}

func (a *AchievementsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return a, nil
}

func (a *AchievementsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	list := a.session.State().Achievements

	unlocked := 0
	for _, item := range list {
		if item.Unlocked {
			unlocked++
		}
	}

	title := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("🏆 LOGROS (%d/%d)", unlocked, len(list)))

	nameStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	lockedStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	for i, item := range list {
		if i > 0 {
			b.WriteString("\n")
		}
		if item.Unlocked {
			line := fmt.Sprintf("%s %s", item.Icon, nameStyle.Render(item.Name))
			if item.UnlockedAt != nil {
				line += descStyle.Render("  " + item.UnlockedAt.Format("02/01/2006"))
			}
			b.WriteString(line)
			b.WriteString("\n   " + descStyle.Render(item.Description))
		} else {
			b.WriteString(lockedStyle.Render("🔒 " + item.Name))
			b.WriteString("\n   " + lockedStyle.Render(item.Description))
		}
	}

	content := title + "\n\n" + b.String()
	return components.CabinetFrame(content, width, height)
}
