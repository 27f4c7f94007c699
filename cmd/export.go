package cmd

import (
	"github.com/spf13/cobra"

	"github.com/devexhq/devex/internal/runstore"
)

// exportCmd dumps the run history to Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history and metric outcomes to Parquet files.",
	Long: `Write every stored run and metric outcome to a pair of Parquet files
for analysis in Spark, Pandas, DuckDB or any other columnar tooling.

The --output-file value is used as a prefix: exporting with
--output-file devex produces devex.runs.parquet and
devex.metric_outcomes.parquet.

Examples:
  # Export the default SQLite store
  devex export --output-file devex

  # Export a shared PostgreSQL store
  devex export --store-backend postgresql \
    --store-db-connect "host=db port=5432 dbname=devex" --output-file devex`,
	PreRunE: storeSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		defer func() { _ = runStore.Close() }()
		return runstore.Export(runStore, cfg.OutputFile)
	},
}
