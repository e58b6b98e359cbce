package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/image-lab/internal/config"
	"github.com/JaimeStill/image-lab/internal/migrations"
	"github.com/JaimeStill/image-lab/pkg/database"
	"github.com/JaimeStill/image-lab/pkg/logging"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withMigrator(func(cmd *cobra.Command, m *database.Migrator) error {
				return m.Up()
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert the most recent migration",
			RunE: withMigrator(func(cmd *cobra.Command, m *database.Migrator) error {
				return m.Down()
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: withMigrator(func(cmd *cobra.Command, m *database.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			}),
		},
	)

	return cmd
}

func withMigrator(fn func(*cobra.Command, *database.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		fsys, err := migrations.For(cfg.Database.Driver)
		if err != nil {
			return err
		}

		m, err := database.NewMigrator(&cfg.Database, fsys, logging.New(&cfg.Logging))
		if err != nil {
			return err
		}
		defer m.Close()

		return fn(cmd, m)
	}
}
