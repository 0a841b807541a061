package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/brianpage/portfolio-server/internal/config"
	"github.com/spf13/cobra"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the storage schema",
	Long: `Create the storage schema and exit. Safe to run repeatedly; an
already-initialized store is left untouched.

This does from the shell what GET /internal/setup does over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}

		logger := config.NewLogger(cfg.Logging)
		repo, err := openRepository(cfg, logger)
		if err != nil {
			return err
		}
		defer repo.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if err := repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("schema setup failed: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "storage schema is ready")
		return nil
	},
}
