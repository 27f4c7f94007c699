// Package schema has configs, models and global variables for all parts of devex.
package schema

import (
	"math"
	"strings"
	"time"
)

// Commit represents one normalized commit record from a source-control export.
// Loaders map platform-specific column names onto this shape so that the
// analysis core never branches on a data source.
type Commit struct {
	Timestamp    time.Time // Commit creation time, normalized to UTC
	Author       string    // Anonymized contributor identity
	Repository   string    // Repository slug the commit belongs to
	Message      string    // Commit message
	LinesAdded   float64   // Lines added (0 when missing)
	LinesDeleted float64   // Lines deleted (0 when missing)
}

// Churn returns the commit-level churn score: lines added plus lines deleted.
func (c Commit) Churn() float64 {
	return c.LinesAdded + c.LinesDeleted
}

// NetChange returns lines added minus lines deleted.
func (c Commit) NetChange() float64 {
	return c.LinesAdded - c.LinesDeleted
}

// MergeRequest represents one normalized merge/pull request record.
type MergeRequest struct {
	Timestamp      time.Time // Creation time, normalized to UTC
	Author         string    // Anonymized contributor identity
	State          string    // Lowercased state label (open, merged, declined, ...)
	DurationHours  float64   // Review/cycle time in hours (NaN when missing)
	ReviewersCount float64   // Number of reviewers (NaN when missing)
	LinesAdded     float64   // Lines added (0 when missing)
	LinesDeleted   float64   // Lines deleted (0 when missing)
	FilesChanged   float64   // Files changed (0 when missing)
}

// Churn returns the MR-level churn score. It weights files changed more
// heavily than raw line counts and adds a square-root term so that
// structurally broad changes score higher than purely large ones.
func (m MergeRequest) Churn() float64 {
	lines := m.LinesAdded + m.LinesDeleted
	return lines + 5.0*m.FilesChanged + 2.0*math.Sqrt(lines+m.FilesChanged)
}

// Merged reports whether the merge request reached its merged state.
func (m MergeRequest) Merged() bool {
	return m.State == "merged"
}

// Pipeline represents one normalized CI pipeline run record.
type Pipeline struct {
	Timestamp       time.Time // Creation time, normalized to UTC
	Completed       time.Time // Completion time (zero when missing)
	Actor           string    // Identity that triggered the run ("" when unknown)
	Status          string    // Raw status label from the source
	DurationMinutes float64   // Wall-clock duration in minutes (NaN when not derivable)
}

// successStatuses holds the status labels that count as a successful run
// across the supported CI platforms.
var successStatuses = map[string]struct{}{
	"success":    {},
	"passed":     {},
	"succeeded":  {},
	"successful": {},
	"ok":         {},
	"completed":  {},
}

// Succeeded reports whether the pipeline status label counts as a success.
func (p Pipeline) Succeeded() bool {
	_, ok := successStatuses[strings.ToLower(strings.TrimSpace(p.Status))]
	return ok
}

// Issue represents one normalized issue-tracker record.
type Issue struct {
	Created  time.Time // Creation time, normalized to UTC
	Resolved time.Time // Resolution time (zero when unresolved)
	Assignee string    // Anonymized assignee ("" or "Unassigned" when absent)
}

// Assigned reports whether the issue carries a usable assignee identity.
func (i Issue) Assigned() bool {
	return i.Assignee != "" && i.Assignee != "Unassigned"
}

// CycleTimeHours returns the hours between creation and resolution,
// or NaN when the issue is unresolved.
func (i Issue) CycleTimeHours() float64 {
	if i.Resolved.IsZero() {
		return math.NaN()
	}
	return i.Resolved.Sub(i.Created).Hours()
}

// ChurnRollup represents one row of a precomputed monthly churn CSV.
// The year and month columns are collapsed into a first-of-month date.
type ChurnRollup struct {
	Month time.Time // First day of the month, UTC
	Value float64   // Rolled-up churn value for that month
}

// Dataset bundles all normalized records for one analysis run. Any slice may
// be empty; metrics that depend on a missing source are skipped.
type Dataset struct {
	Commits           []Commit
	MergeRequests     []MergeRequest
	Pipelines         []Pipeline
	Issues            []Issue
	CommitChurn       []ChurnRollup
	MergeRequestChurn []ChurnRollup
}

// Empty reports whether the dataset carries no records at all.
func (d *Dataset) Empty() bool {
	return len(d.Commits) == 0 && len(d.MergeRequests) == 0 &&
		len(d.Pipelines) == 0 && len(d.Issues) == 0 &&
		len(d.CommitChurn) == 0 && len(d.MergeRequestChurn) == 0
}
