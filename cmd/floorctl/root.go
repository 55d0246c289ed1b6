package main

import (
	"github.com/spf13/cobra"
	"github.com/tableside/api/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DatabaseURL string
}

// NewRootCommand creates the root command for the floorctl operator CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "floorctl",
		Short:        "floorctl - tableside floor service operations",
		Long:         "Operator tooling for the tableside floor service: schema migrations and bootstrap data.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Fall back to DATABASE_URL / .env
			if opts.DatabaseURL == "" {
				opts.DatabaseURL = config.Load().DatabaseURL
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "database-url", "", "PostgreSQL connection string (defaults to DATABASE_URL)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
