package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zoo_management/pkg/config"
	"zoo_management/pkg/database"
	"zoo_management/pkg/logger"
)

var (
	cfg *config.Config
	log *zap.Logger
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zooctl",
		Short: "zooctl manages the zoo management database",
		Long: `zooctl prepares and maintains the database behind the zoo management server.

Commands:
  - init: create or update the schema
  - seed: load the demo data set
  - copy-data: copy every table from a SQLite file into another database

Configuration is read from zoo.toml (./ or /etc/zoo) and the same
environment variables the server uses, e.g. DATABASE_URL, DATABASE_PATH
and LOG_LEVEL.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = loaded
			log = logger.New(logger.Config{Level: cfg.Log.Level, Format: "console", Output: "stderr"})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	rootCmd.Flags().BoolP("version", "V", false, "version for zooctl")

	rootCmd.AddCommand(getInitCmd())
	rootCmd.AddCommand(getSeedCmd())
	rootCmd.AddCommand(getCopyDataCmd())

	return rootCmd
}

// openDB connects with the loaded settings but the given database section.
func openDB(ctx context.Context, dbCfg config.DatabaseConfig) (*gorm.DB, error) {
	c := *cfg
	c.Database = dbCfg
	return database.Open(ctx, &c, log)
}

// openMigrated opens the configured database and brings the schema up to date.
func openMigrated(ctx context.Context) (*gorm.DB, error) {
	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}
