// Package times is the time limit picker screen.
package times

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

// TimesScreen lets the player choose the per-problem countdown.
type TimesScreen struct {
	session *play.Session
	menu    components.Menu
	errMsg  string
}

var _ screen.Screen = (*TimesScreen)(nil)
var _ screen.KeyHintProvider = (*TimesScreen)(nil)

// New creates the time mode picker.
func New(session *play.Session) *TimesScreen {
	s := &TimesScreen{session: session}

	items := make([]components.MenuItem, len(problemgen.TimeModes))
	for i, cfg := range problemgen.TimeModes {
		mode := cfg.Mode
		items[i] = components.MenuItem{
			Label:  "⏱  " + cfg.Label,
			Action: func() tea.Cmd { return s.pick(mode) },
		}
	}
	s.menu = components.NewMenu(items)

	for i, cfg := range problemgen.TimeModes {
		if cfg.Mode == session.State().TimeMode {
			s.menu.Selected = i
			break
		}
	}
	return s
}

func (t *TimesScreen) pick(mode problemgen.TimeMode) tea.Cmd {
	if _, err := t.session.Dispatch(context.Background(), game.SetTimeMode{Mode: mode}); err != nil {
		t.errMsg = err.Error()
		return nil
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (t *TimesScreen) Init() tea.Cmd {
	return nil
}

func (t *TimesScreen) Title() string {
	return "Modo de Tiempo"
}

func (t *TimesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navegar"},
		{Key: "Enter", Description: "Elegir"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (t *TimesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	t.menu, cmd = t.menu.Update(msg)
	return t, cmd
}

func (t *TimesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("¿CUÁNTO TIEMPO POR EJERCICIO?")

	description := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Italic(true).
		Render(problemgen.TimeModes[t.menu.Selected].Description)

	sections := []string{title, t.menu.View(), description}
	if t.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(fmt.Sprintf("Error: %s", t.errMsg)))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}
