package cmd

import (
	"context"
	"fmt"

	"github.com/dromero/pitagoritas/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset progress (keeps records and achievements unless --all)",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		_, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		kv := st.KV()

		keys := []string{
			store.KeyScore,
			store.KeyLevel,
			store.KeyStreak,
			store.KeyTotalExercises,
			store.KeyCorrectExercises,
			store.KeyStats,
			store.KeyPracticeMode,
			store.KeyTimeMode,
		}
		if all {
			keys = append(keys,
				store.KeyMaxScore,
				store.KeyBestStreak,
				store.KeyAchievements,
				store.KeyUserID,
				store.KeyUsername,
				store.KeyLastSyncAt,
				store.KeyStatsReplayedAt,
				store.KeyMigratedUsers,
			)
		}
		for _, key := range keys {
			if err := kv.Delete(ctx, key); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}

		if all {
			queued, err := st.Queue().List(ctx)
			if err != nil {
				return err
			}
			for _, a := range queued {
				if err := st.Queue().Delete(ctx, a.ID); err != nil {
					return err
				}
			}
			if err := st.Telemetry().Clear(ctx); err != nil {
				return err
			}
			fmt.Println("Todos los datos locales han sido borrados.")
			return nil
		}

		fmt.Println("Progreso reiniciado. Se conservan récords, logros y cuenta.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also wipe records, achievements, account and queued attempts")
}
