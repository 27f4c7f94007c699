package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/devexhq/devex/core"
	"github.com/devexhq/devex/internal/contract"
	"github.com/devexhq/devex/schema"
)

// WriteSummaryTableResults outputs the merged two-platform summary.
// CSV is the primary consumer of this command, so it is also the
// fallback for JSON-configured runs asking for a table merge.
func WriteSummaryTableResults(w io.Writer, rows []core.TableRow, labelA, labelB string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.TextOut:
		return writeSummaryText(w, rows, labelA, labelB, cfg)
	default:
		if err := writeSummaryCSV(w, rows, labelA, labelB, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	}
	return nil
}

func summaryCSVHeader(labelA, labelB string) []string {
	header := []string{"section", "metric"}
	for _, label := range []string{labelA, labelB} {
		header = append(header,
			label+"_median_pre",
			label+"_median_post",
			label+"_change_pct",
			label+"_p_value",
			label+"_significant",
			label+"_n1",
			label+"_n2",
		)
	}
	return header
}

func cellColumns(c core.TableCell, fmtFloat func(float64) string) []string {
	if !c.Found {
		return []string{"", "", "", "", "", "", ""}
	}
	return []string{
		fmtFloat(c.MedianPre),
		fmtFloat(c.MedianPost),
		fmtFloat(c.PercentageChange),
		fmt.Sprintf("%.4f", c.PValue),
		formatBool(c.Significant),
		strconv.Itoa(c.N1),
		strconv.Itoa(c.N2),
	}
}

func writeSummaryCSV(w io.Writer, rows []core.TableRow, labelA, labelB string, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return writeCSVWithHeader(w, summaryCSVHeader(labelA, labelB), func(cw *csv.Writer) error {
		for _, row := range rows {
			record := []string{row.Section, row.Metric}
			record = append(record, cellColumns(row.A, fmtFloat)...)
			record = append(record, cellColumns(row.B, fmtFloat)...)
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeSummaryText(w io.Writer, rows []core.TableRow, labelA, labelB string, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	table := tablewriter.NewWriter(w)
	table.Header([]string{
		"Section", "Metric",
		labelA + " Pre", labelA + " Post", labelA + " p",
		labelB + " Pre", labelB + " Post", labelB + " p",
	})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	sideCols := func(c core.TableCell) []string {
		if !c.Found {
			return []string{"-", "-", "-"}
		}
		return []string{fmtFloat(c.MedianPre), fmtFloat(c.MedianPost), fmt.Sprintf("%.4f", c.PValue)}
	}

	var data [][]string
	for _, row := range rows {
		record := []string{row.Section, row.Metric}
		record = append(record, sideCols(row.A)...)
		record = append(record, sideCols(row.B)...)
		data = append(data, record)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
