package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"simple-cms/internal/infra/db"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or drop the articles schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Create the articles table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, conn *sql.DB, driver db.Driver) error {
				if err := db.MigrateUp(ctx, conn, driver); err != nil {
					return fmt.Errorf("migrating up: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Schema ready (%s).\n", driver)
				return nil
			})
		},
	})

	var yes bool
	down := &cobra.Command{
		Use:   "down",
		Short: "Drop the articles table and all of its rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to drop data without --yes")
			}
			return withDB(cmd.Context(), func(ctx context.Context, conn *sql.DB, _ db.Driver) error {
				if err := db.MigrateDown(ctx, conn); err != nil {
					return fmt.Errorf("migrating down: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Schema dropped.")
				return nil
			})
		},
	}
	down.Flags().BoolVar(&yes, "yes", false, "confirm dropping all articles")
	cmd.AddCommand(down)

	return cmd
}
