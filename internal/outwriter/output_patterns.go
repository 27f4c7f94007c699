package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/devexhq/devex/internal/contract"
	"github.com/devexhq/devex/schema"
)

// WritePatternsResults outputs pattern analysis results, dispatching based
// on the output format configured.
func WritePatternsResults(w io.Writer, rpt *schema.PatternsReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.CSVOut:
		if err := writePatternsCSV(w, rpt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.TextOut:
		return writePatternsTable(w, rpt, cfg)
	default:
		if err := writeJSON(w, rpt); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	}
	return nil
}

func sortedYears(byYear map[int]map[string]schema.PatternYearStats) []int {
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func writePatternsCSV(w io.Writer, rpt *schema.PatternsReport) error {
	header := []string{"year", "pattern", "total_commits", "total_churn", "total_net", "total_contributors"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, year := range sortedYears(rpt.ByYear) {
			for _, pattern := range schema.AllPatterns {
				stats, ok := rpt.ByYear[year][pattern]
				if !ok {
					continue
				}
				row := []string{
					strconv.Itoa(year),
					pattern,
					strconv.Itoa(stats.TotalCommits),
					strconv.FormatInt(stats.TotalChurn, 10),
					strconv.FormatInt(stats.TotalNet, 10),
					strconv.Itoa(stats.TotalContributors),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		total := []string{
			"TOTAL",
			"",
			strconv.Itoa(rpt.Total.TotalCommits),
			strconv.FormatInt(rpt.Total.TotalChurn, 10),
			strconv.FormatInt(rpt.Total.TotalNet, 10),
			strconv.Itoa(rpt.Total.TotalContributors),
		}
		return cw.Write(total)
	})
}

func writePatternsTable(w io.Writer, rpt *schema.PatternsReport, cfg *contract.Config) error {
	var heading func(...any) string
	if cfg.UseColors {
		heading = color.New(color.FgCyan, color.Bold).SprintFunc()
	} else {
		heading = fmt.Sprint
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Year", "Pattern", "Commits", "Churn", "Net", "Contributors"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, year := range sortedYears(rpt.ByYear) {
		for _, pattern := range schema.AllPatterns {
			stats, ok := rpt.ByYear[year][pattern]
			if !ok {
				continue
			}
			data = append(data, []string{
				strconv.Itoa(year),
				pattern,
				strconv.Itoa(stats.TotalCommits),
				strconv.FormatInt(stats.TotalChurn, 10),
				strconv.FormatInt(stats.TotalNet, 10),
				strconv.Itoa(stats.TotalContributors),
			})
		}
	}
	data = append(data, []string{
		"TOTAL",
		"",
		strconv.Itoa(rpt.Total.TotalCommits),
		strconv.FormatInt(rpt.Total.TotalChurn, 10),
		strconv.FormatInt(rpt.Total.TotalNet, 10),
		strconv.Itoa(rpt.Total.TotalContributors),
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s %.2f%%\n", heading("Assertion rate:"), rpt.AssertionRate)

	if len(rpt.Comparisons) > 0 {
		fmt.Fprintf(w, "\n%s\n", heading("Pre/post comparisons (common contributors)"))
		cmp := tablewriter.NewWriter(w)
		cmp.Header([]string{"Pattern", "Median Pre", "Median Post", "Change %", "p-value", "Sig"})
		cmp.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var rows [][]string
		for _, pattern := range schema.AllPatterns {
			o, ok := rpt.Comparisons[pattern]
			if !ok {
				continue
			}
			if o.Insufficient() {
				rows = append(rows, []string{pattern, "-", "-", "-", "-", "-"})
				continue
			}
			rows = append(rows, []string{
				pattern,
				fmt.Sprintf("%.*f", cfg.Precision, o.MedianPre),
				fmt.Sprintf("%.*f", cfg.Precision, o.MedianPost),
				fmt.Sprintf("%.*f", cfg.Precision, o.PercentageChange),
				fmt.Sprintf("%.4f", o.PValue),
				formatBool(o.Significant),
			})
		}
		if err := cmp.Bulk(rows); err != nil {
			return err
		}
		return cmp.Render()
	}
	return nil
}
