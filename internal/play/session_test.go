package play

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dromero/pitagoritas/internal/attempts"
	"github.com/dromero/pitagoritas/internal/game"
	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/store"
)

func newTestSession(t *testing.T) (*Session, *store.Store) {
	t.Helper()
	st, err := store.Open("file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	machine := game.NewMachine(problemgen.NewWithRand(rand.New(rand.NewPCG(1, 0))))
	state, err := Hydrate(context.Background(), st.KV())
	require.NoError(t, err)

	service := attempts.NewService(st.Queue(), st.KV(), nil, nil, 20)
	return NewSession(machine, state, st.KV(), service, nil), st
}

func TestHydrate_FreshStore(t *testing.T) {
	s, _ := newTestSession(t)

	state := s.State()
	assert.Equal(t, 1, state.Level)
	assert.Zero(t, state.Score)
	assert.Equal(t, problemgen.ModeAll, state.PracticeMode)
	assert.Equal(t, problemgen.TimeNoLimit, state.TimeMode)
	assert.Len(t, state.Achievements, 9)
	assert.Len(t, state.Stats.OperationStats, 7)
}

func TestDispatch_PersistsAcrossSessions(t *testing.T) {
	s, st := newTestSession(t)
	ctx := context.Background()

	_, err := s.Dispatch(ctx, game.SetProblem{Problem: problemgen.IntegerProblem{
		Operation: problemgen.OpAddition, Num1: 3, Num2: 4, Answer: 7,
	}})
	require.NoError(t, err)
	_, err = s.Dispatch(ctx, game.SetAnswer{Raw: "7"})
	require.NoError(t, err)
	unlocked, err := s.Dispatch(ctx, game.CheckAnswer{Now: time.Now().UTC()})
	require.NoError(t, err)
	assert.Contains(t, unlocked, "first_correct")

	// The attempt is queued for sync.
	n, err := st.Queue().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// A second hydration sees the persisted progress.
	state, err := Hydrate(ctx, st.KV())
	require.NoError(t, err)
	assert.Equal(t, 1, state.Score)
	assert.Equal(t, 1, state.MaxScore)
	assert.Equal(t, 1, state.TotalExercises)
	assert.Equal(t, 1, state.Stats.OperationStats[problemgen.OpAddition].Correct)

	var unlockedCount int
	for _, a := range state.Achievements {
		if a.Unlocked {
			unlockedCount++
		}
	}
	assert.Equal(t, 1, unlockedCount)
}

func TestDispatch_ModeChangesPersist(t *testing.T) {
	s, st := newTestSession(t)
	ctx := context.Background()

	_, err := s.Dispatch(ctx, game.SetPracticeMode{Mode: problemgen.ModeFractions})
	require.NoError(t, err)
	_, err = s.Dispatch(ctx, game.SetTimeMode{Mode: problemgen.Time1Minute})
	require.NoError(t, err)

	state, err := Hydrate(ctx, st.KV())
	require.NoError(t, err)
	assert.Equal(t, problemgen.ModeFractions, state.PracticeMode)
	assert.Equal(t, problemgen.Time1Minute, state.TimeMode)
}
