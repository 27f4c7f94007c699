// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/devexhq/devex/core"
	"github.com/devexhq/devex/internal/contract"
	"github.com/devexhq/devex/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API
// for the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a full analysis report using the configured output format.
func (ow *OutWriter) WriteReport(rpt *schema.Report, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteReportResults(w, rpt, cfg, duration)
	}, "Wrote report")
}

// WritePatterns prints commit-message pattern results using the configured output format.
func (ow *OutWriter) WritePatterns(rpt *schema.PatternsReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WritePatternsResults(w, rpt, cfg)
	}, "Wrote patterns")
}

// WriteSummaryTable prints a merged two-platform summary using the configured output format.
func (ow *OutWriter) WriteSummaryTable(rows []core.TableRow, labelA, labelB string, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSummaryTableResults(w, rows, labelA, labelB, cfg)
	}, "Wrote summary table")
}

// WriteRuns prints stored run history using the configured output format.
func (ow *OutWriter) WriteRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteRunsResults(w, runs, cfg)
	}, "Wrote runs")
}

// WriteStatus prints the run store status using the configured output format.
func (ow *OutWriter) WriteStatus(status *schema.StoreStatus, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteStatusResults(w, status, cfg)
	}, "Wrote status")
}

// WriteMetricDefinitions prints the static metric catalog using the configured output format.
func (ow *OutWriter) WriteMetricDefinitions(cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteMetricDefinitionResults(w, cfg)
	}, "Wrote metric definitions")
}

// getTableWidth returns the usable terminal width for table output,
// honoring the width override from flag/env.
func getTableWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default for narrow terminals and CI
		return 80
	}
	return detectedWidth
}
