// Command notecli drives the baseball notebook API from a terminal.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"baseballnote/client"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	apiURL    string
	tokenFile string
	timeout   time.Duration
	verbose   bool
	asJSON    bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "notecli",
	Short: "Baseball notebook command line client",
	Long: `notecli talks to the baseball notebook API.

Sign in once with "notecli login"; the access token is kept in the token file and
reused by every other command.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log := zap.NewNop()
		if verbose {
			log, _ = zap.NewDevelopment()
		}
		zap.ReplaceGlobals(log)
	},
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".notecli-token"
	}
	return filepath.Join(dir, "baseballnote", "token")
}

func defaultAPI() string {
	if v := os.Getenv("BASEBALLNOTE_API"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI(), "API base URL (or set BASEBALLNOTE_API)")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", defaultTokenFile(), "Where the access token is stored")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print raw JSON")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, signupCmd)
	rootCmd.AddCommand(profileCmd, notesCmd, menuCmd, commentCmd, alertsCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func loadToken() string {
	b, err := os.ReadFile(tokenFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func saveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(tokenFile), 0o700); err != nil {
		return err
	}
	return os.WriteFile(tokenFile, []byte(token+"\n"), 0o600)
}

// restoreSession re-validates the saved token and fails when nobody is signed in.
func restoreSession(ctx context.Context) (*client.Session, error) {
	s := client.NewSession(client.New(apiURL, nil))
	state, err := s.Restore(ctx, loadToken())
	if err != nil {
		return nil, fmt.Errorf("saved session is no longer valid, run \"notecli login\": %w", err)
	}
	if state.User == nil {
		return nil, errors.New("not signed in, run \"notecli login\"")
	}
	return s, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult prints v as JSON with --json, otherwise runs pretty.
func printResult(cmd *cobra.Command, v any, pretty func()) error {
	if asJSON {
		return printJSON(cmd, v)
	}
	pretty()
	return nil
}
