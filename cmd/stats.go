package cmd

import (
	"context"
	"fmt"

	"github.com/dromero/pitagoritas/internal/play"
	"github.com/dromero/pitagoritas/internal/problemgen"
	"github.com/dromero/pitagoritas/internal/stats"
	"github.com/spf13/cobra"
)

var operationNames = map[problemgen.Operation]string{
	problemgen.OpAddition:            "Sumas",
	problemgen.OpSubtraction:         "Restas",
	problemgen.OpMultiplication:      "Multiplicaciones",
	problemgen.OpDivision:            "Divisiones",
	problemgen.OpFractionAddition:    "Fracciones (suma)",
	problemgen.OpFractionSubtraction: "Fracciones (resta)",
	problemgen.OpMixed:               "Combinadas",
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		state, err := play.Hydrate(ctx, st.KV())
		if err != nil {
			return fmt.Errorf("hydrate state: %w", err)
		}

		fmt.Printf("Nivel %d · Récord %d · Mejor racha %d\n",
			state.Level, state.MaxScore, state.BestStreak)
		fmt.Printf("Ejercicios: %d · Aciertos: %d (%d%%)\n\n",
			state.TotalExercises, state.CorrectExercises,
			stats.AccuracyPercentage(state.CorrectExercises, state.TotalExercises))

		fmt.Println("Por operación:")
		for _, op := range problemgen.OperationKeys {
			detail := state.Stats.OperationStats[op]
			if detail.Total == 0 {
				fmt.Printf("  %-20s sin intentos\n", operationNames[op])
				continue
			}
			fmt.Printf("  %-20s %3d%%  (%d/%d, media %ds)\n",
				operationNames[op],
				stats.AccuracyPercentage(detail.Correct, detail.Total),
				detail.Correct, detail.Total, detail.AverageTime)
		}

		if weeks := stats.RecentWeeks(state.Stats, 8); len(weeks) > 0 {
			fmt.Println("\nSemanas recientes:")
			for _, w := range weeks {
				fmt.Printf("  %s  %d/%d (%d%%)\n", w.Week,
					w.CorrectAnswers, w.TotalAnswers,
					stats.AccuracyPercentage(w.CorrectAnswers, w.TotalAnswers))
			}
		}

		if state.TotalExercises > 0 {
			fmt.Printf("\nA practicar: %s\n", operationNames[stats.WeakestOperation(state.Stats)])
		}
		return nil
	},
}
