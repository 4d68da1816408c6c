package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streamlinehq/streamline/internal/config"
	"github.com/streamlinehq/streamline/internal/database"
	"github.com/streamlinehq/streamline/internal/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log := logger.New(cfg, nil)

			if err := database.Migrate(cmd.Context(), log, cfg); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			log.Info().Msg("migrations applied")
			return nil
		},
	}
}
