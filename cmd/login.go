package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/dromero/pitagoritas/internal/auth"
	"github.com/dromero/pitagoritas/internal/config"
	"github.com/dromero/pitagoritas/internal/store"
	"github.com/dromero/pitagoritas/internal/supabase"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with a username and 6-digit PIN (creates the account on first use)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		_, identity, err := signIn(cmd, cfg, st)
		if err != nil {
			return err
		}
		fmt.Printf("Conectado como %s.\n", identity.Username)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("user", "", "Username (3-15 lowercase letters or digits)")
	loginCmd.Flags().String("pin", "", "6-digit PIN")
	syncCmd.Flags().String("user", "", "Username (3-15 lowercase letters or digits)")
	syncCmd.Flags().String("pin", "", "6-digit PIN")
}

// signIn authenticates against the backend using the --user/--pin flags,
// creating the account when it does not exist yet, and persists the
// identity locally.
func signIn(cmd *cobra.Command, cfg config.Config, st *store.Store) (supabase.Session, auth.Session, error) {
	if !cfg.SyncEnabled() {
		return supabase.Session{}, auth.Session{}, errors.New("set SUPABASE_URL and SUPABASE_ANON_KEY to enable accounts")
	}

	username := auth.NormalizeUsername(mustFlag(cmd, "user"))
	pin := mustFlag(cmd, "pin")
	if !auth.IsValidUsername(username) {
		return supabase.Session{}, auth.Session{}, errors.New("username must be 3-15 lowercase letters or digits")
	}
	if !auth.IsValidPin(pin) {
		return supabase.Session{}, auth.Session{}, errors.New("PIN must be exactly 6 digits")
	}

	ctx := context.Background()
	client := supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	email := auth.SyntheticEmail(username, cfg.EmailDomain)

	sess, err := client.SignInWithPassword(ctx, email, pin)
	if errors.Is(err, supabase.ErrUnauthorized) {
		sess, err = client.SignUp(ctx, email, pin)
	}
	if err != nil {
		return supabase.Session{}, auth.Session{}, fmt.Errorf("sign in: %w", err)
	}

	identity := auth.Session{UserID: sess.User.ID, Username: username}
	if err := auth.SaveSession(ctx, st.KV(), identity); err != nil {
		return supabase.Session{}, auth.Session{}, err
	}
	return sess, identity, nil
}

func mustFlag(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
