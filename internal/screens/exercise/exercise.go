// Package exercise is the main play screen: it shows the active problem,
// reads the answer, drives the countdown and renders feedback.
package exercise

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/dromero/pitagoritas/internal/game"
	"github.com/dromero/pitagoritas/internal/play"
	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/screen"
	"github.com/dromero/pitagoritas/internal/ui/components"
	"github.com/dromero/pitagoritas/internal/ui/layout"
)

// tickMsg carries its timer generation so a stale tick scheduled before a
// problem change cannot count down the next problem's window.
type tickMsg struct {
	gen int
	t   time.Time
}

// ExerciseScreen implements screen.Screen for active play.
type ExerciseScreen struct {
	session  *play.Session
	input    components.TextInput
	timerGen int
	unlocked []string
	errMsg   string
}

var _ screen.Screen = (*ExerciseScreen)(nil)
var _ screen.KeyHintProvider = (*ExerciseScreen)(nil)

// New creates the play screen over the shared session.
func New(session *play.Session) *ExerciseScreen {
	return &ExerciseScreen{
		session: session,
		input:   components.NewTextInput("Tu respuesta...", false, 12),
	}
}

func (e *ExerciseScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{e.input.Init()}
	if e.session.State().Problem == nil {
		if _, err := e.session.Dispatch(context.Background(), game.NextProblem{}); err != nil {
			e.errMsg = err.Error()
			return nil
		}
	}
	if e.session.State().TimerActive {
		cmds = append(cmds, e.tickCmd())
	}
	return tea.Batch(cmds...)
}

func (e *ExerciseScreen) Title() string {
	return "Ejercicio"
}

func (e *ExerciseScreen) KeyHints() []layout.KeyHint {
	if e.session.State().Graded() {
		return []layout.KeyHint{
			{Key: "any key", Description: "Siguiente"},
			{Key: "Esc", Description: "Menú"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Comprobar"},
		{Key: "Esc", Description: "Menú"},
	}
}

func (e *ExerciseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return e.handleTick(msg)
	case tea.KeyMsg:
		return e.handleKey(msg)
	}

	if !e.session.State().Graded() {
		var cmd tea.Cmd
		e.input, cmd = e.input.Update(msg)
		return e, cmd
	}
	return e, nil
}

func (e *ExerciseScreen) handleTick(msg tickMsg) (screen.Screen, tea.Cmd) {
	if msg.gen != e.timerGen || !e.session.State().TimerActive {
		return e, nil
	}

	unlocked, err := e.session.Dispatch(context.Background(), game.Tick{Now: msg.t})
	if err != nil {
		e.errMsg = err.Error()
		return e, nil
	}
	if e.session.State().Graded() {
		e.unlocked = unlocked
		return e, nil
	}
	if e.session.State().TimerActive {
		return e, e.tickCmd()
	}
	return e, nil
}

func (e *ExerciseScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	ctx := context.Background()

	// Feedback overlay: any key advances to the next problem.
	if e.session.State().Graded() {
		if msg.String() == "esc" {
			return e, nil // let the app-level handler pop
		}
		return e, e.nextProblem(ctx)
	}

	if msg.String() == "enter" {
		if e.input.Value() == "" {
			return e, nil
		}
		if _, err := e.session.Dispatch(ctx, game.SetAnswer{Raw: e.input.Value()}); err != nil {
			e.errMsg = err.Error()
			return e, nil
		}
		unlocked, err := e.session.Dispatch(ctx, game.CheckAnswer{Now: time.Now()})
		if err != nil {
			e.errMsg = err.Error()
			return e, nil
		}
		e.unlocked = unlocked
		e.timerGen++ // cancel in-flight ticks
		return e, nil
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	// Keep the reducer's raw answer in sync so a timer expiry grades what
	// the player has typed so far.
	if _, err := e.session.Dispatch(ctx, game.SetAnswer{Raw: e.input.Value()}); err != nil {
		e.errMsg = err.Error()
	}
	return e, cmd
}

func (e *ExerciseScreen) nextProblem(ctx context.Context) tea.Cmd {
	if _, err := e.session.Dispatch(ctx, game.NextProblem{}); err != nil {
		e.errMsg = err.Error()
		return nil
	}
	e.unlocked = nil
	e.timerGen++
	e.input = components.NewTextInput(answerPlaceholder(e.session.State().Problem), false, 12)

	cmds := []tea.Cmd{e.input.Init()}
	if e.session.State().TimerActive {
		cmds = append(cmds, e.tickCmd())
	}
	return tea.Batch(cmds...)
}

func answerPlaceholder(p problemgen.Problem) string {
	if p != nil && (p.Op() == problemgen.OpFractionAddition || p.Op() == problemgen.OpFractionSubtraction) {
		return "p. ej. 3/4"
	}
	return "Tu respuesta..."
}

// tickCmd returns a 1-second tick command bound to the current generation.
func (e *ExerciseScreen) tickCmd() tea.Cmd {
	gen := e.timerGen
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, t: t}
	})
}
