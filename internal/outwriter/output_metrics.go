package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/devexhq/devex/internal/contract"
	"github.com/devexhq/devex/schema"
)

// metricDefinition describes one metric in the static catalog shown by
// the metrics command.
type metricDefinition struct {
	Group       string `json:"group"`
	Key         string `json:"key"`
	Series      string `json:"series"`
	Description string `json:"description"`
}

// metricCatalog lists every comparable metric, the series it tests and
// what it measures. Keys with a _full/_common pair are listed once.
var metricCatalog = []metricDefinition{
	{schema.GroupFeedbackLoops, "buildDuration", "per-run minutes (>0)", "Pipeline wall time from creation to completion"},
	{schema.GroupFeedbackLoops, "pipelineExecutionFrequency", "weekly run counts", "How often pipelines run"},
	{schema.GroupFeedbackLoops, "pipelineSuccessRate", "weekly success % (mean x 100)", "Share of runs finishing successfully"},
	{schema.GroupFeedbackLoops, "mrCreationRate", "weekly MR counts", "How often merge requests open"},
	{schema.GroupFeedbackLoops, "mrReviewTime", "per-MR hours (>0)", "Creation-to-close cycle time"},
	{schema.GroupFeedbackLoops, "mrMergeTime", "per-MR hours (>0), merged only", "Creation-to-merge cycle time"},
	{schema.GroupFeedbackLoops, "codeReviewParticipation", "reviewers per MR", "Review involvement per change"},
	{schema.GroupCognitiveLoad, "commitFrequency", "weekly commit counts", "Commit cadence, with commit volume alongside"},
	{schema.GroupCognitiveLoad, "commitLevelChurn", "per-commit lines", "lines_added + lines_deleted"},
	{schema.GroupCognitiveLoad, "commitLevelChurn_commit_churn_csv", "monthly rollup values", "Pre-aggregated monthly commit churn"},
	{schema.GroupCognitiveLoad, "commitMessageLength", "per-commit characters", "Commit message verbosity"},
	{schema.GroupCognitiveLoad, "mrLevelChurn", "per-MR weighted score", "lines + 5*files + 2*sqrt(lines+files)"},
	{schema.GroupCognitiveLoad, "mrLevelChurn_pr_churn_csv", "monthly rollup values", "Pre-aggregated monthly MR churn"},
	{schema.GroupCognitiveLoad, "issueCycleTime", "per-issue hours (>0)", "Creation-to-resolution time"},
	{schema.GroupCognitiveLoad, "operationalTicketVolume", "weekly issue counts", "Ticket inflow pressure"},
	{schema.GroupCognitiveLoad, "ticketsPerPersonPerWeek", "weekly per-assignee counts", "Ticket load spread over people"},
	{schema.GroupCognitiveLoad, "ticketsPerPersonPerMonth", "monthly per-assignee counts", "Ticket load spread over people"},
	{schema.GroupCognitiveLoad, "contextSwitching", "distinct repos per developer", "Repository hopping per person"},
	{schema.GroupFlowState, "commitsPerDeveloper", "per-developer commit counts", "Individual commit throughput"},
	{schema.GroupFlowState, "mrsPerDeveloper", "per-developer MR counts", "Individual MR throughput"},
}

// WriteMetricDefinitionResults displays the formal definitions of all
// metrics. This is a static display that does not require any input data.
func WriteMetricDefinitionResults(w io.Writer, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.CSVOut:
		header := []string{"group", "key", "series", "description"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, def := range metricCatalog {
				if err := cw.Write([]string{def.Group, def.Key, def.Series, def.Description}); err != nil {
					return err
				}
			}
			return nil
		})
	case schema.TextOut:
		var heading func(...any) string
		if cfg.UseColors {
			heading = color.New(color.FgCyan, color.Bold).SprintFunc()
		} else {
			heading = fmt.Sprint
		}
		fmt.Fprintf(w, "%s\n", heading("Metric catalog"))
		fmt.Fprintln(w, "All comparisons: two-sided Mann-Whitney U, significance at p < 0.05")

		table := tablewriter.NewWriter(w)
		table.Header([]string{"Group", "Key", "Series", "Description"})
		var data [][]string
		for _, def := range metricCatalog {
			data = append(data, []string{def.Group, def.Key, def.Series, def.Description})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	default:
		return writeJSON(w, metricCatalog)
	}
}
