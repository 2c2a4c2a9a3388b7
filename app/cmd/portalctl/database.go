package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"backend/insurance-platform/app/database/migration"
	"backend/insurance-platform/app/database/seed"
)

func newMigrateCommand() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			defer env.close()

			database, err := env.openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			if reset {
				env.logger.Warn("dropping every table", zap.String("database", env.cfg.DatabaseConfig.Name))
				if err := migration.Drop(cmd.Context(), database); err != nil {
					return err
				}
			}
			return migration.Migrate(cmd.Context(), database, env.logger)
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "drop every table first")
	return cmd
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo users, products, policies and claims",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			defer env.close()

			database, err := env.openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			return seed.Seed(cmd.Context(), database, time.Now(), env.logger)
		},
	}
}
