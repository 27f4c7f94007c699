package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/devexhq/devex/core"
	"github.com/devexhq/devex/internal/contract"
	"github.com/devexhq/devex/internal/loader"
	"github.com/devexhq/devex/internal/outwriter"
)

// analyzeCmd runs the full pre/post comparison across all configured sources.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the pre/post comparison across all configured data sources.",
	Long: `Split every configured CSV export around the reference date and run a
Mann-Whitney U test per metric, grouped by research question:

- rq1_feedback_loops: build duration, pipeline frequency and success rate,
  MR creation rate, review and merge time, review participation
- rq2_cognitive_load: commit frequency and churn, message length,
  context switching, issue cycle time and ticket load
- rq3_flow_state: commits and MRs per developer

Each metric reports the U statistic, two-sided p-value, effect size and
median shift. Metrics are computed for the full workforce, the common
contributors present on both sides of the split, or both.

Examples:
  # Compare GitLab activity around a platform migration
  devex analyze --commits-csv commits.csv --mrs-csv mrs.csv --reference-date 2024-10-08

  # Common contributors only, rendered as a table
  devex analyze --commits-csv commits.csv -r 2024-10-08 -m common -o text

  # Persist the report and keep run history in MySQL
  devex analyze --commits-csv commits.csv -r 2024-10-08 \
    --output-file report.json --store-backend mysql --store-db-connect "$DEVEX_DSN"`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if !cfg.HasAnyInput() {
			return errors.New("at least one data source CSV is required (see --commits-csv and friends)")
		}

		started := time.Now()

		dataset, err := loader.LoadDataset(cfg)
		if err != nil {
			return err
		}

		runID, err := runStore.BeginRun(started, cfg.ReferenceDate.Format(contract.DateFormat), cfg.Mode, runConfigParams())
		if err != nil {
			contract.LogWarn("Cannot begin run tracking", err)
		}
		defer func() { _ = runStore.Close() }()

		rpt := core.Run(dataset, core.Options{
			ReferenceDate: cfg.ReferenceDate,
			Mode:          cfg.Mode,
			Sentinel:      cfg.Sentinel,
		})

		for _, group := range rpt.Groups() {
			for key, outcome := range group.Outcomes {
				if err := runStore.RecordOutcome(runID, group.Name, key, outcome); err != nil {
					contract.LogWarn("Cannot record metric outcome", err)
				}
			}
		}
		if err := runStore.FinishRun(runID, time.Now(), rpt.TotalMetrics()); err != nil {
			contract.LogWarn("Cannot finish run tracking", err)
		}

		return outwriter.NewOutWriter().WriteReport(rpt, cfg, time.Since(started))
	},
}

// runConfigParams captures the inputs that shaped a run, for run history.
func runConfigParams() map[string]any {
	params := map[string]any{
		"workforce-mode": string(cfg.Mode),
		"reference-date": cfg.ReferenceDate.Format(contract.DateFormat),
		"sentinel":       cfg.Sentinel,
	}
	for flag, path := range cfg.InputPaths() {
		if path != "" {
			params[flag] = path
		}
	}
	return params
}
