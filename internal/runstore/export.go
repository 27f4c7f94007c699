package runstore

import (
	"errors"
	"fmt"

	"github.com/devexhq/devex/internal/contract"
	"github.com/devexhq/devex/internal/parquet"
)

// Export writes the full run history and all metric outcomes to a pair of
// Parquet files named after the given output prefix.
func Export(store contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total metric outcomes: %d\n", status.TotalOutcomes)

	runs, err := store.GetRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	outcomes, err := store.GetOutcomes()
	if err != nil {
		return fmt.Errorf("failed to retrieve metric outcomes: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetOutcomes := parquet.ConvertOutcomeRecords(outcomes)

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	outcomesFile := outputFile + ".metric_outcomes.parquet"
	if err := parquet.WriteMetricOutcomesParquet(parquetOutcomes, outcomesFile); err != nil {
		return fmt.Errorf("failed to write metric outcomes: %w", err)
	}
	fmt.Printf("Exported %d metric outcomes to: %s\n", len(parquetOutcomes), outcomesFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
