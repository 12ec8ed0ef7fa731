package main

import (
	"fmt"
	"os"

	"baseballnote/client"
	"baseballnote/models"
	"baseballnote/validation"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
	signupCoach   bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		s := client.NewSession(client.New(apiURL, nil))
		state, err := s.SignIn(ctx, loginEmail, passwordFlag(loginPassword))
		if err != nil {
			return err
		}
		if err := saveToken(s.Token()); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		role := "UNKNOWN"
		if state.Role != nil {
			role = state.Role.String()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s), home %s\n", state.User.Email, role, client.HomeFor(state.Role))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the stored token and forget it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		s := client.NewSession(client.New(apiURL, nil))
		if _, err := s.Restore(ctx, loadToken()); err == nil {
			s.SignOut(ctx)
		}
		if err := os.Remove(tokenFile); err != nil && !os.IsNotExist(err) {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		s, err := restoreSession(ctx)
		if err != nil {
			return err
		}
		id := s.State().User
		return printResult(cmd, id, func() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", id.UID, id.Email, id.Role)
		})
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		role := models.RolePlayer
		if signupCoach {
			role = models.RoleCoach
		}
		pw := passwordFlag(loginPassword)
		u, err := client.New(apiURL, nil).CreateAccount(ctx, validation.AccountInput{
			Email: loginEmail, Password1: pw, Password2: pw, AccountRole: &role,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", u.Email, u.Role)
		return nil
	},
}

// passwordFlag falls back to NOTECLI_PASSWORD so passwords stay out of shell history.
func passwordFlag(v string) string {
	if v != "" {
		return v
	}
	return os.Getenv("NOTECLI_PASSWORD")
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
		c.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (or set NOTECLI_PASSWORD)")
		_ = c.MarkFlagRequired("email")
	}
	signupCmd.Flags().BoolVar(&signupCoach, "coach", false, "Create a coach account")
}
