package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/devexhq/devex/internal/contract"
	"github.com/devexhq/devex/schema"
)

// WriteRunsResults outputs stored run history, dispatching based on the
// output format configured.
func WriteRunsResults(w io.Writer, runs []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.CSVOut:
		if err := writeRunsCSV(w, runs); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.TextOut:
		return writeRunsTable(w, runs)
	default:
		if err := writeJSON(w, runsRenderModel(runs)); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	}
	return nil
}

// runRender is the serializable view of a run record.
type runRender struct {
	RunID         int64  `json:"runId"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime,omitempty"`
	DurationMs    *int32 `json:"durationMs,omitempty"`
	TotalMetrics  int32  `json:"totalMetrics"`
	ReferenceDate string `json:"referenceDate"`
	WorkforceMode string `json:"workforceMode"`
}

func runsRenderModel(runs []schema.RunRecord) []runRender {
	out := make([]runRender, 0, len(runs))
	for _, r := range runs {
		render := runRender{
			RunID:         r.RunID,
			StartTime:     r.StartTime.UTC().Format(time.RFC3339),
			DurationMs:    r.RunDurationMs,
			TotalMetrics:  r.TotalMetrics,
			ReferenceDate: r.ReferenceDate,
			WorkforceMode: r.WorkforceMode,
		}
		if r.EndTime != nil {
			render.EndTime = r.EndTime.UTC().Format(time.RFC3339)
		}
		out = append(out, render)
	}
	return out
}

func writeRunsCSV(w io.Writer, runs []schema.RunRecord) error {
	header := []string{"run_id", "start_time", "end_time", "duration_ms", "total_metrics", "reference_date", "workforce_mode"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range runsRenderModel(runs) {
			duration := ""
			if r.DurationMs != nil {
				duration = strconv.Itoa(int(*r.DurationMs))
			}
			row := []string{
				strconv.FormatInt(r.RunID, 10),
				r.StartTime,
				r.EndTime,
				duration,
				strconv.Itoa(int(r.TotalMetrics)),
				r.ReferenceDate,
				r.WorkforceMode,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeRunsTable(w io.Writer, runs []schema.RunRecord) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "Started", "Duration ms", "Metrics", "Reference Date", "Mode"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range runsRenderModel(runs) {
		duration := "-"
		if r.DurationMs != nil {
			duration = strconv.Itoa(int(*r.DurationMs))
		}
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			r.StartTime,
			duration,
			strconv.Itoa(int(r.TotalMetrics)),
			r.ReferenceDate,
			r.WorkforceMode,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteStatusResults outputs the run store status, dispatching based on the
// output format configured.
func WriteStatusResults(w io.Writer, status *schema.StoreStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		model := map[string]any{
			"backend":       status.Backend,
			"connected":     status.Connected,
			"totalRuns":     status.TotalRuns,
			"totalOutcomes": status.TotalOutcomes,
			"tableSizes":    status.TableSizes,
		}
		if status.TotalRuns > 0 {
			model["lastRunId"] = status.LastRunID
			model["lastRunTime"] = status.LastRunTime.UTC().Format(time.RFC3339)
			model["oldestRunTime"] = status.OldestRunTime.UTC().Format(time.RFC3339)
		}
		if err := writeJSON(w, model); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
		return nil
	}

	fmt.Fprintf(w, "Backend:        %s\n", status.Backend)
	fmt.Fprintf(w, "Connected:      %s\n", formatBool(status.Connected))
	fmt.Fprintf(w, "Total runs:     %d\n", status.TotalRuns)
	fmt.Fprintf(w, "Total outcomes: %d\n", status.TotalOutcomes)
	if status.TotalRuns > 0 {
		fmt.Fprintf(w, "Last run:       #%d at %s\n", status.LastRunID, status.LastRunTime.UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "Oldest run:     %s\n", status.OldestRunTime.UTC().Format(time.RFC3339))
	}
	if len(status.TableSizes) > 0 {
		names := make([]string, 0, len(status.TableSizes))
		for name := range status.TableSizes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "Table %s: %d rows\n", name, status.TableSizes[name])
		}
	}
	return nil
}
