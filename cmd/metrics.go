package cmd

import (
	"github.com/spf13/cobra"

	"github.com/devexhq/devex/internal/outwriter"
)

// metricsCmd displays the formal definitions of all comparison metrics.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display definitions and units for all comparison metrics",
	Long: `Show what every metric measures, its unit, its data source and which
research question it belongs to.

No data is loaded - this is purely informational.

Use this to:
- Understand what each metric captures before running a comparison
- Explain the methodology to your team
- Check which CSV export feeds which metric

Examples:
  # Show the metric catalog
  devex metrics

  # Machine-readable form
  devex metrics --output json`,
	PreRunE: outputSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return outwriter.NewOutWriter().WriteMetricDefinitions(cfg)
	},
}
