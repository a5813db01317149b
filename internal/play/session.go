// Package play wires the pure game reducer to its surroundings: hydrating
// state from the local store, persisting it back, queueing attempts and
// kicking off background sync. Screens share one *Session and go through
// Dispatch for every transition.
package play

import (
	"context"
	"time"

	"github.com/dromero/pitagoritas/internal/attempts"
	"github.com/dromero/pitagoritas/internal/auth"
	"github.com/dromero/pitagoritas/internal/game"
	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/stats"
	"github.com/dromero/pitagoritas/internal/store"
	"github.com/dromero/pitagoritas/internal/telemetry"
)

// Session owns the live game state for one program run.
type Session struct {
	machine *game.Machine
	state   game.State

	kv      *store.KVRepo
	service *attempts.Service
	tel     telemetry.Recorder

	// user is set when a player is signed in; background flushes need it.
	user   auth.Session
	signed bool
}

// NewSession builds a Session over an already hydrated state. tel may be
// nil.
func NewSession(machine *game.Machine, state game.State, kv *store.KVRepo, service *attempts.Service, tel telemetry.Recorder) *Session {
	if tel == nil {
		tel = telemetry.Nop{}
	}
	return &Session{machine: machine, state: state, kv: kv, service: service, tel: tel}
}

// SetUser attaches the signed-in player so attempts flush to their account.
func (s *Session) SetUser(u auth.Session) {
	s.user = u
	s.signed = true
}

// ClearUser detaches the player after a local sign-out.
func (s *Session) ClearUser() {
	s.user = auth.Session{}
	s.signed = false
}

// User returns the signed-in player, if any.
func (s *Session) User() (auth.Session, bool) {
	return s.user, s.signed
}

// State returns the current game state.
func (s *Session) State() game.State {
	return s.state
}

// SetStats replaces the statistics snapshot, used after a remote replay.
func (s *Session) SetStats(ctx context.Context, snapshot stats.DetailedStats) error {
	s.state.Stats = stats.Normalize(snapshot)
	return s.Persist(ctx)
}

// Dispatch applies an action and runs its effects: persisting progress,
// queueing the attempt and starting a background flush when signed in.
// It returns the ids of any achievements unlocked by this action.
func (s *Session) Dispatch(ctx context.Context, a game.Action) ([]string, error) {
	next, effects, err := s.machine.Reduce(s.state, a)
	if err != nil {
		return nil, err
	}
	switch a.(type) {
	case game.NextProblem, game.SetPracticeMode, game.SetTimeMode, game.ResetGame:
		if next.Problem != nil && next.Problem.Op() == problemgen.OpMixed {
			s.tel.Record(ctx, telemetry.EventMixedGenerated, next.Problem.Prompt())
		}
	}
	s.state = next

	var unlocked []string
	for _, e := range effects {
		switch eff := e.(type) {
		case game.PersistProgress:
			if err := s.Persist(ctx); err != nil {
				return unlocked, err
			}
		case game.RecordAttempt:
			if err := s.service.Record(ctx, eff.Attempt); err != nil {
				return unlocked, err
			}
			s.flushAsync()
		case game.AchievementsUnlocked:
			unlocked = append(unlocked, eff.IDs...)
		}
	}
	return unlocked, nil
}

// flushAsync uploads the queue in the background. Flush is single-flight,
// so overlapping calls collapse; failures stay queued for the next pass.
func (s *Session) flushAsync() {
	if !s.signed {
		return
	}
	userID := s.user.UserID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_, _ = s.service.Flush(ctx, userID)
	}()
}

// Hydrate loads persisted progress into a fresh state. Missing keys keep
// their initial values, so a first run starts at level 1 with everything
// zeroed.
func Hydrate(ctx context.Context, kv *store.KVRepo) (game.State, error) {
	state := game.NewState()

	ints := map[string]*int{
		store.KeyScore:            &state.Score,
		store.KeyMaxScore:         &state.MaxScore,
		store.KeyLevel:            &state.Level,
		store.KeyBestStreak:       &state.BestStreak,
		store.KeyTotalExercises:   &state.TotalExercises,
		store.KeyCorrectExercises: &state.CorrectExercises,
	}
	for key, dst := range ints {
		if _, err := kv.GetJSON(ctx, key, dst); err != nil {
			return game.State{}, err
		}
	}

	if _, err := kv.GetJSON(ctx, store.KeyAchievements, &state.Achievements); err != nil {
		return game.State{}, err
	}
	var snapshot stats.DetailedStats
	ok, err := kv.GetJSON(ctx, store.KeyStats, &snapshot)
	if err != nil {
		return game.State{}, err
	}
	if ok {
		state.Stats = stats.Normalize(snapshot)
	}

	if mode, ok, err := kv.Get(ctx, store.KeyPracticeMode); err != nil {
		return game.State{}, err
	} else if ok {
		state.PracticeMode = problemgen.PracticeModeFor(problemgen.PracticeMode(mode)).Mode
	}
	if mode, ok, err := kv.Get(ctx, store.KeyTimeMode); err != nil {
		return game.State{}, err
	} else if ok {
		state.TimeMode = problemgen.TimeModeFor(problemgen.TimeMode(mode)).Mode
	}

	return state, nil
}

// Persist writes the durable slice of the state. The running streak and the
// active problem are session-local and deliberately not persisted.
func (s *Session) Persist(ctx context.Context) error {
	state := s.state
	values := map[string]any{
		store.KeyScore:            state.Score,
		store.KeyMaxScore:         state.MaxScore,
		store.KeyLevel:            state.Level,
		store.KeyBestStreak:       state.BestStreak,
		store.KeyTotalExercises:   state.TotalExercises,
		store.KeyCorrectExercises: state.CorrectExercises,
		store.KeyAchievements:     state.Achievements,
		store.KeyStats:            state.Stats,
	}
	for key, v := range values {
		if err := s.kv.SetJSON(ctx, key, v); err != nil {
			return err
		}
	}
	if err := s.kv.Set(ctx, store.KeyPracticeMode, string(state.PracticeMode)); err != nil {
		return err
	}
	return s.kv.Set(ctx, store.KeyTimeMode, string(state.TimeMode))
}
