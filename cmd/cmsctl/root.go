package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"simple-cms/internal/infra/db"
	"simple-cms/internal/observability/logging"
)

var flagEnvFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cmsctl",
		Short:         "Maintenance commands for simple-cms",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(flagEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("load env (%s): %w", flagEnvFile, err)
			}
			slog.SetDefault(logging.NewTextLogger())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file to load before running")

	root.AddCommand(newMigrateCmd(), newSeedCmd(), newTokenCmd())
	return root
}

// withDB opens the database configured by DB_DRIVER and DATABASE_URL for the
// duration of fn.
func withDB(ctx context.Context, fn func(ctx context.Context, conn *sql.DB, driver db.Driver) error) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	conn, driver, err := db.Open(ctx)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = conn.Close() }()
	return fn(ctx, conn, driver)
}
