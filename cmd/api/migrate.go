package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dev-genie/dev-genie-backend/config"
	"github.com/dev-genie/dev-genie-backend/internal/logger"
	"github.com/dev-genie/dev-genie-backend/internal/storage/postgres"
)

func migrateCMD() *cobra.Command {
	var direction string
	var steps int

	var migrate = &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.Init(cfg.App.LogLevel, cfg.App.LogFormat)

			sqlDB, err := postgres.NewConnection(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := postgres.Migrate(sqlDB, direction, steps); err != nil {
				return err
			}
			logger.Default().Info("migrations applied", "direction", direction, "steps", steps)
			return nil
		},
	}
	migrate.Flags().StringVar(&direction, "direction", "up", "up or down")
	migrate.Flags().IntVar(&steps, "steps", 0, "number of steps (0 = all)")

	return migrate
}
