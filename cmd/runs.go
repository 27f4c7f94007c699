package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devexhq/devex/internal/contract"
	"github.com/devexhq/devex/internal/outwriter"
	"github.com/devexhq/devex/internal/runstore"
	"github.com/devexhq/devex/schema"
)

// runsCmd groups the run-history subcommands.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect and maintain the stored run history.",
	Long: `Every analyze run is tracked in the run store together with all of its
metric outcomes. These subcommands list past runs, show store health and
manage the store schema.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// runsListCmd lists all recorded runs.
var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded comparison runs.",
	Long: `Print every recorded run with its start time, duration, metric count,
reference date and workforce mode.

Examples:
  # Tabular run history
  devex runs list --output text

  # Feed run history into a script
  devex runs list --output csv`,
	PreRunE: storeSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		defer func() { _ = runStore.Close() }()
		runs, err := runStore.GetRuns()
		if err != nil {
			return err
		}
		return outwriter.NewOutWriter().WriteRuns(runs, cfg)
	},
}

// runsStatusCmd shows run store health and table sizes.
var runsStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show run store connectivity, counts and table sizes.",
	PreRunE: storeSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		defer func() { _ = runStore.Close() }()
		status, err := runStore.GetStatus()
		if err != nil {
			return err
		}
		return outwriter.NewOutWriter().WriteStatus(&status, cfg)
	},
}

// runsMigrateCmd manages the run store schema version.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations on the run store.",
	Long: `Apply or roll back run store schema migrations.

The target version semantics:
- -1 migrates to the latest version (default)
-  0 rolls back all migrations
-  N migrates to version N

Examples:
  # Migrate the default SQLite store to the latest schema
  devex runs migrate

  # Roll everything back
  devex runs migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Skip store initialization so migrations can run on a fresh database.
		if err := loadConfigFile(); err != nil {
			return err
		}
		backend := schema.DatabaseBackend(viper.GetString("store-backend"))
		return contract.ValidateDatabaseConnectionString(backend, viper.GetString("store-db-connect"))
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		backend := schema.DatabaseBackend(viper.GetString("store-backend"))
		connStr := viper.GetString("store-db-connect")
		targetVersion := viper.GetInt("target-version")
		return runstore.Migrate(backend, connStr, targetVersion)
	},
}
