package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devexhq/devex/core"
	"github.com/devexhq/devex/internal/outwriter"
	"github.com/devexhq/devex/schema"
)

// tableCmd merges two saved reports into a side-by-side summary.
var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Merge two saved JSON reports into a side-by-side summary table.",
	Long: `Load two reports previously written by 'devex analyze --output-file'
(typically one per platform) and render every metric side by side with
medians, percentage change, p-value and sample sizes.

Metrics missing from both reports are dropped; a metric present on only
one side keeps its row with the other cell left blank.

Examples:
  # Compare a GitLab report against a Bitbucket report
  devex table --report-a gitlab.json --report-b bitbucket.json

  # Custom labels and CSV output for a spreadsheet
  devex table --report-a before.json --report-b after.json \
    --label-a before --label-b after --output csv --output-file summary.csv`,
	PreRunE: outputSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		pathA := viper.GetString("report-a")
		pathB := viper.GetString("report-b")
		if pathA == "" || pathB == "" {
			return errors.New("--report-a and --report-b are both required")
		}

		reportA, err := loadReport(pathA)
		if err != nil {
			return err
		}
		reportB, err := loadReport(pathB)
		if err != nil {
			return err
		}

		rows := core.BuildSummaryTable(reportA, reportB)
		if len(rows) == 0 {
			return errors.New("no overlapping metrics found in the two reports")
		}

		labelA := viper.GetString("label-a")
		labelB := viper.GetString("label-b")
		return outwriter.NewOutWriter().WriteSummaryTable(rows, labelA, labelB, cfg)
	},
}

// loadReport reads one serialized analysis report from disk.
func loadReport(path string) (*schema.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}
	var rpt schema.Report
	if err := json.Unmarshal(data, &rpt); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &rpt, nil
}
