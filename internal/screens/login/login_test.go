package login

import (
	"context"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/dromero/pitagoritas/internal/attempts"
	"github.com/dromero/pitagoritas/internal/auth"
	"github.com/dromero/pitagoritas/internal/game"
	"github.com/dromero/pitagoritas/internal/play"
	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/screen"
	"github.com/dromero/pitagoritas/internal/store"
	"github.com/dromero/pitagoritas/internal/supabase"
)

func testLoginScreen(t *testing.T, client *supabase.Client) (*LoginScreen, *play.Session, *store.Store) {
	t.Helper()
	st, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	machine := game.NewMachine(problemgen.NewWithRand(rand.New(rand.NewPCG(11, 0))))
	state, err := play.Hydrate(context.Background(), st.KV())
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	service := attempts.NewService(st.Queue(), st.KV(), nil, nil, 20)
	session := play.NewSession(machine, state, st.KV(), service, nil)

	deps := &Deps{
		Client:      client,
		KV:          st.KV(),
		Service:     service,
		EmailDomain: "pitagoritas-mail.com",
	}
	return New(session, deps), session, st
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestLoginScreen_RejectsBadUsername(t *testing.T) {
	s, _, _ := testLoginScreen(t, supabase.New("http://unused", "anon"))
	s.inputs[fieldUsername].Model.SetValue("Al")
	s.inputs[fieldPin].Model.SetValue("123456")
	s.inputs[fieldConfirm].Model.SetValue("123456")

	var scr screen.Screen = s
	scr, _ = scr.Update(enter())
	got := scr.(*LoginScreen)
	if got.phase != phaseForm {
		t.Fatal("invalid username must not leave the form")
	}
	if got.errMsg == "" {
		t.Error("expected a validation message")
	}
}

func TestLoginScreen_RejectsPinMismatch(t *testing.T) {
	s, _, _ := testLoginScreen(t, supabase.New("http://unused", "anon"))
	s.inputs[fieldUsername].Model.SetValue("ana")
	s.inputs[fieldPin].Model.SetValue("123456")
	s.inputs[fieldConfirm].Model.SetValue("654321")

	var scr screen.Screen = s
	scr, _ = scr.Update(enter())
	if scr.(*LoginScreen).errMsg == "" {
		t.Error("expected a PIN mismatch message")
	}
}

func TestLoginScreen_SignUpFallbackAndSync(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			// Unknown account: force the sign-up path.
			w.WriteHeader(http.StatusBadRequest)
		case "/auth/v1/signup":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"tok","user":{"id":"user-1","email":"ana@pitagoritas-mail.com"}}`))
		case "/rest/v1/attempts":
			if r.Method == http.MethodPost {
				w.WriteHeader(http.StatusCreated)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	s, session, st := testLoginScreen(t, supabase.New(server.URL, "anon"))
	s.inputs[fieldUsername].Model.SetValue("ana")
	s.inputs[fieldPin].Model.SetValue("123456")
	s.inputs[fieldConfirm].Model.SetValue("123456")

	var scr screen.Screen = s
	scr, cmd := scr.Update(enter())
	if scr.(*LoginScreen).phase != phaseAuthenticating {
		t.Fatal("expected the credential exchange to start")
	}
	if cmd == nil {
		t.Fatal("expected an auth command")
	}

	scr, cmd = scr.Update(cmd())
	if scr.(*LoginScreen).phase != phaseSyncing {
		t.Fatalf("expected syncing phase, got error %q", scr.(*LoginScreen).errMsg)
	}
	if cmd == nil {
		t.Fatal("expected a sync command")
	}

	scr, _ = scr.Update(cmd())
	if scr.(*LoginScreen).phase != phaseDone {
		t.Fatal("expected reconciliation to finish")
	}

	user, ok := session.User()
	if !ok || user.UserID != "user-1" || user.Username != "ana" {
		t.Errorf("session user = %+v, signed=%v", user, ok)
	}
	if identity, ok, err := auth.LoadSession(context.Background(), st.KV()); err != nil || !ok || identity.UserID != "user-1" {
		t.Errorf("persisted identity = %+v, ok=%v, err=%v", identity, ok, err)
	}
}

func TestLoginScreen_SignOut(t *testing.T) {
	s, session, st := testLoginScreen(t, supabase.New("http://unused", "anon"))
	identity := auth.Session{UserID: "user-9", Username: "leo"}
	if err := auth.SaveSession(context.Background(), st.KV(), identity); err != nil {
		t.Fatal(err)
	}
	session.SetUser(identity)

	s = New(session, s.deps)
	if s.phase != phaseSignedIn {
		t.Fatal("expected signed-in phase for a restored session")
	}

	var scr screen.Screen = s
	scr, _ = scr.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	if scr.(*LoginScreen).phase != phaseForm {
		t.Error("expected sign-out to return to the form")
	}
	if _, ok := session.User(); ok {
		t.Error("expected the session user to be cleared")
	}
	if _, ok, _ := auth.LoadSession(context.Background(), st.KV()); ok {
		t.Error("expected the persisted identity to be cleared")
	}
}
