package core

import "github.com/devexhq/devex/schema"

// TableCell is one platform's side of a summary row.
type TableCell struct {
	Found            bool
	MedianPre        float64
	MedianPost       float64
	PercentageChange float64
	PValue           float64
	Significant      bool
	N1               int
	N2               int
}

// TableRow is one metric across both platforms.
type TableRow struct {
	Section string
	Metric  string
	A       TableCell
	B       TableCell
}

// rowSpec fixes row order and display names for the summary table.
type rowSpec struct {
	section string
	key     string
	display string
}

var summaryRows = []rowSpec{
	{"Pipeline Metrics", "buildDuration", "Build Duration (min)"},
	{"Pipeline Metrics", "pipelineExecutionFrequency_full", "Pipeline Frequency (weekly, full)"},
	{"Pipeline Metrics", "pipelineExecutionFrequency_common", "Pipeline Frequency (weekly, common)"},
	{"Pipeline Metrics", "pipelineSuccessRate_full", "Pipeline Success Rate (%, full)"},
	{"Pipeline Metrics", "pipelineSuccessRate_common", "Pipeline Success Rate (%, common)"},

	{"MR/PR Metrics", "mrCreationRate_full", "MR Creation Rate (weekly, full)"},
	{"MR/PR Metrics", "mrCreationRate_common", "MR Creation Rate (weekly, common)"},
	{"MR/PR Metrics", "mrReviewTime", "MR Review Time (hours)"},
	{"MR/PR Metrics", "mrReviewTime_full", "MR Review Time (hours, full)"},
	{"MR/PR Metrics", "mrReviewTime_common", "MR Review Time (hours, common)"},
	{"MR/PR Metrics", "mrMergeTime", "MR Merge Time (hours)"},
	{"MR/PR Metrics", "mrMergeTime_full", "MR Merge Time (hours, full)"},
	{"MR/PR Metrics", "mrMergeTime_common", "MR Merge Time (hours, common)"},
	{"MR/PR Metrics", "codeReviewParticipation", "Code Review Participation (reviewers)"},
	{"MR/PR Metrics", "codeReviewParticipation_full", "Code Review Participation (full)"},
	{"MR/PR Metrics", "codeReviewParticipation_common", "Code Review Participation (common)"},

	{"Commit Metrics", "commitFrequency_full", "Commit Frequency (weekly, full)"},
	{"Commit Metrics", "commitFrequency_common", "Commit Frequency (weekly, common)"},
	{"Commit Metrics", "commitMessageLength", "Commit Message Length (chars)"},
	{"Commit Metrics", "contextSwitching_full", "Context Switching (repos/dev, full)"},
	{"Commit Metrics", "contextSwitching_common", "Context Switching (repos/dev, common)"},

	{"Churn Metrics", "commitLevelChurn", "Commit Churn (lines)"},
	{"Churn Metrics", "commitLevelChurn_full", "Commit Churn (lines, full)"},
	{"Churn Metrics", "commitLevelChurn_common", "Commit Churn (lines, common)"},
	{"Churn Metrics", "commitLevelChurn_commit_churn_csv", "Commit Churn (monthly rollup)"},
	{"Churn Metrics", "mrLevelChurn", "MR Churn (weighted)"},
	{"Churn Metrics", "mrLevelChurn_full", "MR Churn (weighted, full)"},
	{"Churn Metrics", "mrLevelChurn_common", "MR Churn (weighted, common)"},
	{"Churn Metrics", "mrLevelChurn_pr_churn_csv", "MR Churn (monthly rollup)"},

	{"Jira Metrics", "issueCycleTime", "Issue Cycle Time (hours)"},
	{"Jira Metrics", "operationalTicketVolume", "Ticket Volume (weekly)"},
	{"Jira Metrics", "ticketsPerPersonPerWeek_full", "Tickets per Person per Week (full)"},
	{"Jira Metrics", "ticketsPerPersonPerWeek_common", "Tickets per Person per Week (common)"},
	{"Jira Metrics", "ticketsPerPersonPerMonth_full", "Tickets per Person per Month (full)"},
	{"Jira Metrics", "ticketsPerPersonPerMonth_common", "Tickets per Person per Month (common)"},

	{"Developer Productivity", "commitsPerDeveloper_full", "Commits per Developer (full)"},
	{"Developer Productivity", "commitsPerDeveloper_common", "Commits per Developer (common)"},
	{"Developer Productivity", "mrsPerDeveloper_full", "MRs per Developer (full)"},
	{"Developer Productivity", "mrsPerDeveloper_common", "MRs per Developer (common)"},
}

// BuildSummaryTable flattens two analysis reports into summary rows,
// one per metric, pairing the two platforms side by side. Rows absent
// from both reports are dropped; a metric present on only one side
// keeps its row with the other cell marked not found.
func BuildSummaryTable(a, b *schema.Report) []TableRow {
	rows := make([]TableRow, 0, len(summaryRows))
	for _, spec := range summaryRows {
		row := TableRow{
			Section: spec.section,
			Metric:  spec.display,
			A:       cellFor(a, spec.key),
			B:       cellFor(b, spec.key),
		}
		if !row.A.Found && !row.B.Found {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func cellFor(rpt *schema.Report, key string) TableCell {
	if rpt == nil {
		return TableCell{}
	}
	outcome, ok := rpt.Find(key)
	if !ok || outcome.Insufficient() {
		return TableCell{}
	}
	return TableCell{
		Found:            true,
		MedianPre:        outcome.MedianPre,
		MedianPost:       outcome.MedianPost,
		PercentageChange: outcome.PercentageChange,
		PValue:           outcome.PValue,
		Significant:      outcome.Significant,
		N1:               outcome.N1,
		N2:               outcome.N2,
	}
}
