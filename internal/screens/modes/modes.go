// Package modes is the practice mode picker screen.
package modes

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dromero/pitagoritas/internal/game"
	"github.com/dromero/pitagoritas/internal/play"
	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/router"
	"github.com/dromero/pitagoritas/internal/screen"
	"github.com/dromero/pitagoritas/internal/ui/components"
	"github.com/dromero/pitagoritas/internal/ui/layout"
	"github.com/dromero/pitagoritas/internal/ui/theme"
)

// ModesScreen lets the player restrict practice to a single operation family.
type ModesScreen struct {
	session *play.Session
	menu    components.Menu
	errMsg  string
}

var _ screen.Screen = (*ModesScreen)(nil)
var _ screen.KeyHintProvider = (*ModesScreen)(nil)

// New creates the practice mode picker.
func New(session *play.Session) *ModesScreen {
	s := &ModesScreen{session: session}

	items := make([]components.MenuItem, len(problemgen.PracticeModes))
	for i, cfg := range problemgen.PracticeModes {
		mode := cfg.Mode
		items[i] = components.MenuItem{
			Label:  cfg.Icon + "  " + cfg.Label,
			Action: func() tea.Cmd { return s.pick(mode) },
		}
	}
	s.menu = components.NewMenu(items)

	// Start the cursor on the active mode.
	for i, cfg := range problemgen.PracticeModes {
		if cfg.Mode == session.State().PracticeMode {
			s.menu.Selected = i
			break
		}
	}
	return s
}

func (m *ModesScreen) pick(mode problemgen.PracticeMode) tea.Cmd {
	if _, err := m.session.Dispatch(context.Background(), game.SetPracticeMode{Mode: mode}); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (m *ModesScreen) Init() tea.Cmd {
	return nil
}

func (m *ModesScreen) Title() string {
	return "Modo de Práctica"
}

func (m *ModesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navegar"},
		{Key: "Enter", Description: "Elegir"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (m *ModesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *ModesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("¿QUÉ QUIERES PRACTICAR?")

	desc := problemgen.PracticeModes[m.menu.Selected].Description
	description := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Italic(true).
		Render(desc)

	sections := []string{title, m.menu.View(), description}
	if m.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(fmt.Sprintf("Error: %s", m.errMsg)))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}
