package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"simple-cms/internal/infra/adapter/persistence"
	"simple-cms/internal/infra/db"
)

func newSeedCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample articles",
		Long: `Insert the three sample articles.

Does nothing when the table already holds articles unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, conn *sql.DB, driver db.Driver) error {
				n, err := db.Seed(ctx, persistence.NewArticleRepo(driver, conn), time.Now, force)
				if err != nil {
					return err
				}
				if n == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Articles already present; nothing seeded.")
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d article(s).\n", n)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "seed even if articles exist")
	return cmd
}
