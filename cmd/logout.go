package cmd

import (
	"context"
	"fmt"

	"github.com/dromero/pitagoritas/internal/auth"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out locally (progress and queued attempts stay)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		if _, ok, err := auth.LoadSession(ctx, st.KV()); err != nil {
			return err
		} else if !ok {
			fmt.Println("No hay ninguna sesión abierta.")
			return nil
		}
		if err := auth.ClearSession(ctx, st.KV()); err != nil {
			return err
		}
		fmt.Println("Sesión cerrada.")
		return nil
	},
}
