package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devexhq/devex/core"
	"github.com/devexhq/devex/internal/loader"
	"github.com/devexhq/devex/internal/outwriter"
)

// patternsCmd classifies commit messages and compares per-category activity.
var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Classify commit messages into work categories and compare activity.",
	Long: `Bucket every commit message into a work category (fix, feature, docs,
tests, refactor, update, chore or other) using issue-key patterns and
keyword precedence, then aggregate commits, churn and contributors per
category and calendar year.

For each category, the common contributors' weekly commit counts before
and after the reference date are compared with a Mann-Whitney U test.

Examples:
  # Pattern breakdown with statistical comparison
  devex patterns --commits-csv commits.csv --reference-date 2024-10-08

  # Save the JSON result for later inspection
  devex patterns --commits-csv commits.csv -r 2024-10-08 --output-file patterns.json`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if cfg.CommitsPath == "" {
			return errors.New("--commits-csv is required for pattern analysis")
		}

		commits, dropped, err := loader.LoadCommits(cfg.CommitsPath)
		if err != nil {
			return err
		}
		if len(commits) == 0 {
			return fmt.Errorf("no usable commit records in %s (%d dropped)", cfg.CommitsPath, dropped)
		}

		result := core.AnalyzePatterns(commits, core.Options{
			ReferenceDate: cfg.ReferenceDate,
			Mode:          cfg.Mode,
			Sentinel:      cfg.Sentinel,
		})

		return outwriter.NewOutWriter().WritePatterns(result, cfg)
	},
}
