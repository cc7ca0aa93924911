// Package cli implements thctl, the operator command line for the Total
// Health API: schema migrations and bearer tokens for staff accounts.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shubham90-developer/Total-Health-sub004/internal/env"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:          "thctl",
	Short:        "thctl manages a Total Health API deployment",
	Long:         "thctl applies database migrations and issues bearer tokens for the Total Health API.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (default: $DATABASE_PATH)")
}

func resolveDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return env.GetEnv(env.EnvDatabasePath, env.DefaultDatabasePath)
}
