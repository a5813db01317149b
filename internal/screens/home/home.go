// Package home is the main menu screen of the application.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dromero/pitagoritas/internal/play"
	"github.com/dromero/pitagoritas/internal/router"
	"github.com/dromero/pitagoritas/internal/screen"
	achievementsscreen "github.com/dromero/pitagoritas/internal/screens/achievements"
	"github.com/dromero/pitagoritas/internal/screens/exercise"
	"github.com/dromero/pitagoritas/internal/screens/login"
	"github.com/dromero/pitagoritas/internal/screens/modes"
	statsscreen "github.com/dromero/pitagoritas/internal/screens/stats"
	"github.com/dromero/pitagoritas/internal/screens/times"
	"github.com/dromero/pitagoritas/internal/ui/components"
	"github.com/dromero/pitagoritas/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	session    *play.Session
	menu       components.Menu
	menuLabels []string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen over the shared game session.
func New(session *play.Session, sync *login.Deps) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	menuLabels := []string{
		"JUGAR",
		"MODO DE PRÁCTICA",
		"MODO DE TIEMPO",
		"ESTADÍSTICAS",
		"LOGROS",
		"CUENTA",
		"SALIR",
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: push(func() screen.Screen { return exercise.New(session) })},
		{Label: menuLabels[1], Action: push(func() screen.Screen { return modes.New(session) })},
		{Label: menuLabels[2], Action: push(func() screen.Screen { return times.New(session) })},
		{Label: menuLabels[3], Action: push(func() screen.Screen { return statsscreen.New(session) })},
		{Label: menuLabels[4], Action: push(func() screen.Screen { return achievementsscreen.New(session) })},
		{Label: menuLabels[5], Action: push(func() screen.Screen { return login.New(session, sync) })},
		{Label: menuLabels[6], Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		session:    session,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + 8
	compact := termHeight < 30 || width < 80

	cw := components.ContentWidth(width)
	state := h.session.State()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(state.Level, state.MaxScore, state.BestStreak, cw))
	sections = append(sections, renderModeLine(state.PracticeMode, state.TimeMode, cw))
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))
	}

	if user, ok := h.session.User(); ok {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(cw).
			Align(lipgloss.Center).
			Render(fmt.Sprintf("Conectado como %s", user.Username)))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Inicio"
}
