package cmd

import (
	"context"
	"fmt"

	"github.com/dromero/pitagoritas/internal/app"
	"github.com/dromero/pitagoritas/internal/attempts"
	"github.com/dromero/pitagoritas/internal/auth"
	"github.com/dromero/pitagoritas/internal/config"
	"github.com/dromero/pitagoritas/internal/game"
	"github.com/dromero/pitagoritas/internal/play"
	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/screens/login"
	"github.com/dromero/pitagoritas/internal/store"
	"github.com/dromero/pitagoritas/internal/supabase"
	"github.com/dromero/pitagoritas/internal/telemetry"
	"github.com/spf13/cobra"
)

// openStore loads configuration and opens the local database.
func openStore(cmd *cobra.Command) (config.Config, *store.Store, error) {
	cfg := config.Load()
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return cfg, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("open store: %w", err)
	}
	return cfg, st, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := context.Background()

	cfg, st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	tel := telemetry.NewStoreRecorder(st.Telemetry())
	service := attempts.NewService(st.Queue(), st.KV(), nil, tel, cfg.SyncRetryCap)

	var client *supabase.Client
	if cfg.SyncEnabled() {
		client = supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	}

	state, err := play.Hydrate(ctx, st.KV())
	if err != nil {
		return fmt.Errorf("hydrate state: %w", err)
	}
	session := play.NewSession(game.NewMachine(problemgen.New()), state, st.KV(), service, tel)

	// A persisted identity survives restarts, but the backend token does
	// not; uploads resume after the next sign-in.
	if identity, ok, err := auth.LoadSession(ctx, st.KV()); err == nil && ok {
		session.SetUser(identity)
	}

	return app.Run(app.Options{
		Session: session,
		LoginDeps: &login.Deps{
			Client:      client,
			KV:          st.KV(),
			Service:     service,
			EmailDomain: cfg.EmailDomain,
		},
	})
}
