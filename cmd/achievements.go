package cmd

import (
	"context"
	"fmt"

	"github.com/dromero/pitagoritas/internal/play"
	"github.com/spf13/cobra"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and their unlock status",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		state, err := play.Hydrate(context.Background(), st.KV())
		if err != nil {
			return fmt.Errorf("hydrate state: %w", err)
		}

		unlocked := 0
		for _, a := range state.Achievements {
			if a.Unlocked {
				unlocked++
			}
		}
		fmt.Printf("Logros: %d/%d\n\n", unlocked, len(state.Achievements))

		for _, a := range state.Achievements {
			mark := "🔒"
			when := ""
			if a.Unlocked {
				mark = a.Icon
				if a.UnlockedAt != nil {
					when = "  (" + a.UnlockedAt.Format("02/01/2006") + ")"
				}
			}
			fmt.Printf("%s %s%s\n   %s\n", mark, a.Name, when, a.Description)
		}
		return nil
	},
}
