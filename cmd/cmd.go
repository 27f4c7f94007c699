// Package cmd defines the command-line interface for devex.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devexhq/devex/internal/contract"
	"github.com/devexhq/devex/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	devexCmd.AddCommand(analyzeCmd)
	devexCmd.AddCommand(patternsCmd)
	devexCmd.AddCommand(tableCmd)
	devexCmd.AddCommand(metricsCmd)
	devexCmd.AddCommand(runsCmd)
	devexCmd.AddCommand(exportCmd)
	devexCmd.AddCommand(mcpCmd)
	devexCmd.AddCommand(versionCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of devexCmd to Viper
	devexCmd.PersistentFlags().String("commits-csv", "", "Path to the commits CSV export")
	devexCmd.PersistentFlags().String("mrs-csv", "", "Path to the merge requests CSV export")
	devexCmd.PersistentFlags().String("pipelines-csv", "", "Path to the pipelines CSV export")
	devexCmd.PersistentFlags().String("jira-csv", "", "Path to the Jira issues CSV export")
	devexCmd.PersistentFlags().String("commit-churn-csv", "", "Path to the weekly commit churn rollup CSV")
	devexCmd.PersistentFlags().String("pr-churn-csv", "", "Path to the weekly PR churn rollup CSV")
	devexCmd.PersistentFlags().StringP("reference-date", "r", "", "Split date between pre and post periods (YYYY-MM-DD)")
	devexCmd.PersistentFlags().StringP("workforce-mode", "m", string(schema.BothWorkforce), "Contributor population: full or common or both")
	devexCmd.PersistentFlags().String("sentinel", schema.UnmappedIdentity, "Identity placeholder excluded from contributor sets")
	devexCmd.PersistentFlags().StringP("output", "o", string(schema.JSONOut), "Output format: json or text or csv")
	devexCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	devexCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	devexCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	devexCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	devexCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Run history backend: sqlite or mysql or postgresql or none")
	devexCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	devexCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(devexCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of tableCmd to Viper
	tableCmd.Flags().String("report-a", "", "Path to the first platform's JSON report")
	tableCmd.Flags().String("report-b", "", "Path to the second platform's JSON report")
	tableCmd.Flags().String("label-a", "gitlab", "Display label for the first report")
	tableCmd.Flags().String("label-b", "bitbucket", "Display label for the second report")
	if err := viper.BindPFlags(tableCmd.Flags()); err != nil {
		contract.LogFatal("Error binding table flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
