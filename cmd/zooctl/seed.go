package main

import (
	"github.com/spf13/cobra"

	"zoo_management/pkg/database"
	"zoo_management/pkg/seed"
)

func getSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Loads the demo data set",
		Long: `Loads demo cages, animals, staff, tickets, events, inventory and one
login per role (admin@zoo.com, staff@zoo.com, visitor@zoo.com). Rows that
already exist are kept as they are.

Examples:
  zooctl seed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openMigrated(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := seed.Run(cmd.Context(), db, log); err != nil {
				return err
			}
			log.Info("Demo data loaded")
			return nil
		},
	}
}
