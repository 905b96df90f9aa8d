package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/sweet_shop/internal/db"
	"github.com/Skotchmaster/sweet_shop/internal/repo"
	"github.com/Skotchmaster/sweet_shop/internal/service"
)

var (
	// Seed flags
	force bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo accounts and sample sweets",
	Long: `Insert the demo admin and user accounts together with a sample catalog.

Seeding is skipped when any user already exists. Use --force to drop and
recreate every table first.

Examples:
  sweetshop seed            # Seed an empty database
  sweetshop seed --force    # Wipe and reseed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, logger, store, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer db.Close(store)

		if force {
			if err := db.Reset(ctx, store); err != nil {
				return err
			}
			logger.Warn("seed_reset", "reason", "--force dropped all tables")
		} else if err := db.Migrate(ctx, store); err != nil {
			return err
		}

		svc := &service.SeedService{Repo: repo.New(store)}
		created, err := svc.Seed(ctx)
		if err != nil {
			return err
		}
		if !created {
			fmt.Fprintln(cmd.OutOrStdout(), "Database already seeded")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Database seeded successfully")
		for role, cred := range service.SeedCredentials() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-5s %s\n", role, cred)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&force, "force", false, "Drop and recreate all tables before seeding")
	rootCmd.AddCommand(seedCmd)
}
