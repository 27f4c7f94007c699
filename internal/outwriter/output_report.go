package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/devexhq/devex/internal/contract"
	"github.com/devexhq/devex/schema"
)

// WriteReportResults outputs the analysis report, dispatching based on the
// output format configured.
func WriteReportResults(w io.Writer, rpt *schema.Report, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.CSVOut:
		if err := writeReportCSV(w, rpt, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.TextOut:
		return writeReportTable(w, rpt, cfg, fmtFloat, duration)
	default:
		// JSON is the canonical result contract
		if err := writeJSON(w, rpt); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	}
	return nil
}

// sortedMetricKeys returns the group's metric keys in stable order.
func sortedMetricKeys(outcomes map[string]schema.MetricOutcome) []string {
	keys := make([]string, 0, len(outcomes))
	for k := range outcomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// reportCSVHeader is the flat per-metric CSV shape.
var reportCSVHeader = []string{
	"group",
	"metric",
	"statistic",
	"p_value",
	"significant",
	"effect_size",
	"effect_size_interpretation",
	"n1",
	"n2",
	"median_pre",
	"median_post",
	"mean_pre",
	"mean_post",
	"std_pre",
	"std_post",
	"percentage_change",
	"error",
}

func writeReportCSV(w io.Writer, rpt *schema.Report, fmtFloat func(float64) string, intFmt string) error {
	return writeCSVWithHeader(w, reportCSVHeader, func(cw *csv.Writer) error {
		for _, group := range rpt.Groups() {
			for _, key := range sortedMetricKeys(group.Outcomes) {
				o := group.Outcomes[key]
				n1 := fmt.Sprintf(intFmt, o.N1)
				n2 := fmt.Sprintf(intFmt, o.N2)

				var row []string
				if o.Insufficient() {
					// Only identity and sample sizes are meaningful
					row = []string{group.Name, key, "", "", "", "", "", n1, n2,
						"", "", "", "", "", "", "", o.Err}
				} else {
					row = []string{
						group.Name,
						key,
						fmtFloat(o.Statistic),
						fmt.Sprintf("%.6f", o.PValue),
						formatBool(o.Significant),
						fmt.Sprintf("%.4f", o.EffectSize),
						o.EffectSizeLabel,
						n1,
						n2,
						fmtFloat(o.MedianPre),
						fmtFloat(o.MedianPost),
						fmtFloat(o.MeanPre),
						fmtFloat(o.MeanPost),
						fmtFloat(o.StdPre),
						fmtFloat(o.StdPost),
						fmtFloat(o.PercentageChange),
						"",
					}
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// groupTitles maps serialized group names onto display headings.
var groupTitles = map[string]string{
	schema.GroupFeedbackLoops: "Feedback Loops",
	schema.GroupCognitiveLoad: "Cognitive Load",
	schema.GroupFlowState:     "Flow State",
}

func writeReportTable(w io.Writer, rpt *schema.Report, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	var heading, sig func(...any) string
	if cfg.UseColors {
		heading = color.New(color.FgCyan, color.Bold).SprintFunc()
		sig = color.New(color.FgGreen, color.Bold).SprintFunc()
	} else {
		heading = fmt.Sprint
		sig = fmt.Sprint
	}

	fmt.Fprintf(w, "Reference date: %s | Workforce mode: %s\n",
		rpt.Metadata.ReferenceDate, rpt.Metadata.WorkforceMode)

	maxMetricWidth := getTableWidth(cfg) / 3
	for _, group := range rpt.Groups() {
		if len(group.Outcomes) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", heading(groupTitles[group.Name]))

		table := tablewriter.NewWriter(w)
		table.Header([]string{"Metric", "Median Pre", "Median Post", "Change %", "p-value", "Effect", "Sig", "n1/n2"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, key := range sortedMetricKeys(group.Outcomes) {
			o := group.Outcomes[key]
			name := contract.TruncateText(key, maxMetricWidth)
			sizes := fmt.Sprintf("%d/%d", o.N1, o.N2)
			if o.Insufficient() {
				data = append(data, []string{name, "-", "-", "-", "-", "-", "-", sizes})
				continue
			}
			sigMark := "no"
			if o.Significant {
				sigMark = sig("YES")
			}
			data = append(data, []string{
				name,
				fmtFloat(o.MedianPre),
				fmtFloat(o.MedianPost),
				fmtFloat(o.PercentageChange),
				fmt.Sprintf("%.4f", o.PValue),
				o.EffectSizeLabel,
				sigMark,
				sizes,
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\nComputed %s metrics in %v\n",
		strconv.Itoa(rpt.TotalMetrics()), duration.Round(time.Millisecond))
	return nil
}
