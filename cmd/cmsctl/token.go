package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"simple-cms/internal/handler/http/auth"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Shared-secret helpers",
	}

	var size int
	gen := &cobra.Command{
		Use:   "generate",
		Short: "Print a random secret suitable for SUPER_SECRET_TOKEN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if size < 16 {
				return fmt.Errorf("--bytes must be at least 16, got %d", size)
			}
			secret, err := auth.GenerateSecret(size)
			if err != nil {
				return fmt.Errorf("generating secret: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret)
			return nil
		},
	}
	gen.Flags().IntVar(&size, "bytes", 32, "number of random bytes before encoding")
	cmd.AddCommand(gen)
	return cmd
}
