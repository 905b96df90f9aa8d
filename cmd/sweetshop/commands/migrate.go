package commands

import (
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/sweet_shop/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, logger, store, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer db.Close(store)

		if err := db.Migrate(ctx, store); err != nil {
			return err
		}
		logger.Info("migrate_success")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
