// Package login is the account screen: sign in with a username and a
// 6-digit PIN, creating the account on first use, then reconcile local and
// remote history.
package login

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dromero/pitagoritas/internal/attempts"
	"github.com/dromero/pitagoritas/internal/auth"
	"github.com/dromero/pitagoritas/internal/play"
	"github.com/dromero/pitagoritas/internal/screen"
	"github.com/dromero/pitagoritas/internal/store"
	"github.com/dromero/pitagoritas/internal/supabase"
	"github.com/dromero/pitagoritas/internal/ui/components"
	"github.com/dromero/pitagoritas/internal/ui/layout"
	"github.com/dromero/pitagoritas/internal/ui/theme"
)

// Deps are the account screen's collaborators. Client is nil when no
// backend is configured, which disables the screen with a hint.
type Deps struct {
	Client      *supabase.Client
	KV          *store.KVRepo
	Service     *attempts.Service
	EmailDomain string
}

type phase int

const (
	phaseForm phase = iota
	phaseAuthenticating
	phaseSyncing
	phaseDone
	phaseSignedIn
)

const (
	fieldUsername = iota
	fieldPin
	fieldConfirm
	fieldCount
)

// authDoneMsg carries the backend's answer to the credential exchange.
type authDoneMsg struct {
	session supabase.Session
	err     error
}

// syncDoneMsg carries the result of the post-login reconciliation.
type syncDoneMsg struct {
	migrated attempts.MigrateResult
	flushed  attempts.FlushResult
	replayed attempts.ReplayResult
	err      error
}

// LoginScreen implements the account screen.
type LoginScreen struct {
	session *play.Session
	deps    *Deps

	phase   phase
	inputs  [fieldCount]components.TextInput
	focused int
	errMsg  string
	summary string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the account screen.
func New(session *play.Session, deps *Deps) *LoginScreen {
	s := &LoginScreen{session: session, deps: deps}

	s.inputs[fieldUsername] = components.NewTextInput("usuario", false, 15)
	s.inputs[fieldPin] = components.NewTextInput("PIN de 6 dígitos", true, 6)
	s.inputs[fieldConfirm] = components.NewTextInput("repite el PIN", true, 6)
	s.inputs[fieldPin].Model.EchoMode = textinput.EchoPassword
	s.inputs[fieldConfirm].Model.EchoMode = textinput.EchoPassword
	for i := range s.inputs {
		s.inputs[i].Model.Blur()
	}

	if _, ok := session.User(); ok {
		s.phase = phaseSignedIn
	}
	return s
}

func (l *LoginScreen) Init() tea.Cmd {
	if l.phase != phaseForm {
		return nil
	}
	return l.focus(fieldUsername)
}

func (l *LoginScreen) Title() string {
	return "Cuenta"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	switch l.phase {
	case phaseForm:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Siguiente campo"},
			{Key: "Enter", Description: "Entrar"},
			{Key: "Esc", Description: "Volver"},
		}
	case phaseSignedIn:
		return []layout.KeyHint{
			{Key: "s", Description: "Cerrar sesión"},
			{Key: "Esc", Description: "Volver"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Volver"}}
}

func (l *LoginScreen) focus(i int) tea.Cmd {
	l.inputs[l.focused].Model.Blur()
	l.focused = i
	return l.inputs[i].Model.Focus()
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		return l.handleAuthDone(msg)
	case syncDoneMsg:
		return l.handleSyncDone(msg)
	case tea.KeyMsg:
		return l.handleKey(msg)
	}
	return l, nil
}

func (l *LoginScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch l.phase {
	case phaseSignedIn:
		if msg.String() == "s" {
			if err := auth.ClearSession(context.Background(), l.deps.KV); err != nil {
				l.errMsg = err.Error()
				return l, nil
			}
			l.session.ClearUser()
			l.deps.Service.SetSink(nil)
			l.phase = phaseForm
			l.errMsg = ""
			return l, l.focus(fieldUsername)
		}
		return l, nil

	case phaseForm:
		switch msg.String() {
		case "tab", "down":
			return l, l.focus((l.focused + 1) % fieldCount)
		case "shift+tab", "up":
			return l, l.focus((l.focused + fieldCount - 1) % fieldCount)
		case "enter":
			return l.submit()
		default:
			var cmd tea.Cmd
			l.inputs[l.focused], cmd = l.inputs[l.focused].Update(msg)
			return l, cmd
		}

	case phaseDone:
		l.phase = phaseSignedIn
		return l, nil
	}

	// Authenticating or syncing: ignore input until the command returns.
	return l, nil
}

func (l *LoginScreen) submit() (screen.Screen, tea.Cmd) {
	if l.deps.Client == nil {
		l.errMsg = "La sincronización no está configurada"
		return l, nil
	}

	username := auth.NormalizeUsername(l.inputs[fieldUsername].Value())
	pin := l.inputs[fieldPin].Value()
	confirm := l.inputs[fieldConfirm].Value()

	switch {
	case !auth.IsValidUsername(username):
		l.errMsg = "El usuario debe tener de 3 a 15 letras o números"
		return l, nil
	case !auth.IsValidPin(pin):
		l.errMsg = "El PIN debe tener exactamente 6 dígitos"
		return l, nil
	case pin != confirm:
		l.errMsg = "Los PIN no coinciden"
		return l, nil
	}

	l.errMsg = ""
	l.phase = phaseAuthenticating
	email := auth.SyntheticEmail(username, l.deps.EmailDomain)
	client := l.deps.Client

	return l, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		sess, err := client.SignInWithPassword(ctx, email, pin)
		if errors.Is(err, supabase.ErrUnauthorized) {
			// First visit: the account does not exist yet.
			sess, err = client.SignUp(ctx, email, pin)
		}
		return authDoneMsg{session: sess, err: err}
	}
}

func (l *LoginScreen) handleAuthDone(msg authDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		l.phase = phaseForm
		if errors.Is(msg.err, supabase.ErrUnauthorized) {
			l.errMsg = "Usuario o PIN incorrectos"
		} else {
			l.errMsg = msg.err.Error()
		}
		return l, l.focus(fieldUsername)
	}

	ctx := context.Background()
	username := auth.NormalizeUsername(l.inputs[fieldUsername].Value())
	identity := auth.Session{UserID: msg.session.User.ID, Username: username}
	if err := auth.SaveSession(ctx, l.deps.KV, identity); err != nil {
		l.phase = phaseForm
		l.errMsg = err.Error()
		return l, nil
	}

	l.deps.Service.SetSink(attempts.NewSupabaseSink(l.deps.Client, msg.session.AccessToken))
	l.session.SetUser(identity)
	l.phase = phaseSyncing

	service := l.deps.Service
	userID := identity.UserID
	return l, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		var out syncDoneMsg
		out.migrated, out.err = service.Migrate(ctx, userID)
		if out.err != nil {
			return out
		}
		out.flushed, out.err = service.Flush(ctx, userID)
		if out.err != nil {
			return out
		}
		out.replayed, out.err = service.ReplayStats(ctx, userID)
		return out
	}
}

func (l *LoginScreen) handleSyncDone(msg syncDoneMsg) (screen.Screen, tea.Cmd) {
	l.phase = phaseDone
	if msg.err != nil {
		// Signed in fine; reconciliation retries on the next flush.
		l.summary = "Conectado, pero la sincronización falló: " + msg.err.Error()
		return l, nil
	}

	if msg.replayed.Replayed > 0 {
		if err := l.session.SetStats(context.Background(), msg.replayed.Stats); err != nil {
			l.summary = "Conectado, pero no se pudieron guardar las estadísticas"
			return l, nil
		}
	}

	var parts []string
	if msg.migrated.Uploaded > 0 {
		parts = append(parts, fmt.Sprintf("%d ejercicios guardados en tu cuenta", msg.migrated.Uploaded))
	}
	if msg.flushed.Sent > 0 {
		parts = append(parts, fmt.Sprintf("%d ejercicios sincronizados", msg.flushed.Sent))
	}
	if msg.replayed.Replayed > 0 {
		parts = append(parts, fmt.Sprintf("estadísticas recuperadas de %d ejercicios", msg.replayed.Replayed))
	}
	if len(parts) == 0 {
		l.summary = "¡Todo al día!"
	} else {
		l.summary = strings.Join(parts, " · ")
	}
	return l, nil
}

func (l *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	titleStyle := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var sections []string
	sections = append(sections, titleStyle.Render("👤 TU CUENTA"))

	switch l.phase {
	case phaseSignedIn:
		user, _ := l.session.User()
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
				Render("Conectado como "+user.Username),
			dimStyle.Render("Pulsa 's' para cerrar sesión"))

	case phaseAuthenticating:
		sections = append(sections, dimStyle.Render("Conectando..."))

	case phaseSyncing:
		sections = append(sections, dimStyle.Render("Sincronizando tu progreso..."))

	case phaseDone:
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.Success).Render(l.summary),
			dimStyle.Italic(true).Render("Pulsa cualquier tecla para continuar"))

	default:
		if l.deps.Client == nil {
			sections = append(sections, dimStyle.Render(
				"Configura SUPABASE_URL y SUPABASE_ANON_KEY para guardar tu progreso en la nube"))
			break
		}
		labels := [fieldCount]string{"Usuario", "PIN", "Repite el PIN"}
		var form strings.Builder
		for i := range l.inputs {
			if i > 0 {
				form.WriteString("\n\n")
			}
			label := dimStyle.Render(fmt.Sprintf("%-14s", labels[i]))
			form.WriteString(label + l.inputs[i].View())
		}
		sections = append(sections, form.String())
		sections = append(sections, dimStyle.Italic(true).
			Render("Si el usuario no existe se crea automáticamente"))
	}

	if l.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(l.errMsg))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}
