package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/followban/internal/config"
	"github.com/Taichi-iskw/followban/internal/repository/postgres"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the PostgreSQL schema",
	Long:  `Apply or roll back the channels schema used by the postgres store.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		databaseURL, err := migrationDatabaseURL()
		if err != nil {
			return err
		}

		if err := postgres.MigrateUp(databaseURL); err != nil {
			return err
		}

		return printMigrationVersion(cmd, databaseURL)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		databaseURL, err := migrationDatabaseURL()
		if err != nil {
			return err
		}

		if err := postgres.MigrateDown(databaseURL); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "All migrations rolled back")
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		databaseURL, err := migrationDatabaseURL()
		if err != nil {
			return err
		}
		return printMigrationVersion(cmd, databaseURL)
	},
}

func migrationDatabaseURL() (string, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return "", fmt.Errorf("database_url is not configured")
	}
	return cfg.DatabaseURL, nil
}

func printMigrationVersion(cmd *cobra.Command, databaseURL string) error {
	version, dirty, err := postgres.MigrationVersion(databaseURL)
	if err != nil {
		return err
	}

	if dirty {
		fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d (dirty)\n", version)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d\n", version)
	return nil
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
