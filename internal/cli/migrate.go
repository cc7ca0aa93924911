package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shubham90-developer/Total-Health-sub004/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveDBPath()
		version, err := database.Migrate(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s to schema version %d\n", path, version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
