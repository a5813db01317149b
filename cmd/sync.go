package cmd

import (
	"context"
	"fmt"

	"github.com/dromero/pitagoritas/internal/attempts"
	"github.com/dromero/pitagoritas/internal/stats"
	"github.com/dromero/pitagoritas/internal/store"
	"github.com/dromero/pitagoritas/internal/supabase"
	"github.com/dromero/pitagoritas/internal/telemetry"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Upload queued attempts and rebuild statistics from the account history",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, identity, err := signIn(cmd, cfg, st)
		if err != nil {
			return err
		}

		ctx := context.Background()
		tel := telemetry.NewStoreRecorder(st.Telemetry())
		client := supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		sink := attempts.NewSupabaseSink(client, sess.AccessToken)
		service := attempts.NewService(st.Queue(), st.KV(), sink, tel, cfg.SyncRetryCap)

		migrated, err := service.Migrate(ctx, identity.UserID)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if migrated.Uploaded > 0 {
			fmt.Printf("Migrados %d ejercicios a tu cuenta (%d descartados).\n",
				migrated.Uploaded, migrated.Skipped)
		}

		flushed, err := service.Flush(ctx, identity.UserID)
		if err != nil {
			return fmt.Errorf("flush: %w", err)
		}
		fmt.Printf("Enviados %d · descartados %d · pendientes %d\n",
			flushed.Sent, flushed.Dropped, flushed.Remaining)

		replayed, err := service.ReplayStats(ctx, identity.UserID)
		if err != nil {
			return fmt.Errorf("replay stats: %w", err)
		}
		if replayed.Replayed > 0 {
			if err := st.KV().SetJSON(ctx, store.KeyStats, stats.Normalize(replayed.Stats)); err != nil {
				return err
			}
			fmt.Printf("Estadísticas reconstruidas de %d ejercicios (%d filas omitidas).\n",
				replayed.Replayed, replayed.Skipped)
		}
		return nil
	},
}
