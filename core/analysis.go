// Package core implements the pre/post comparison engine: period
// splitting around a reference date, contributor set resolution,
// weekly and monthly series aggregation, and Mann-Whitney comparison
// of every developer-experience metric.
package core

import (
	"time"

	"github.com/devexhq/devex/schema"
)

// Options configures a single analysis run.
type Options struct {
	ReferenceDate time.Time
	Mode          schema.WorkforceMode
	Sentinel      string // unmapped identity placeholder, excluded from contributor sets
}

// Run executes the full comparison over the dataset and assembles the
// grouped report. Metrics whose data source is absent are left out of
// the report entirely.
func Run(d *schema.Dataset, opts Options) *schema.Report {
	rc := newRunContext(d, opts)
	return &schema.Report{
		Metadata: schema.Metadata{
			ReferenceDate: opts.ReferenceDate.UTC().Format("2006-01-02"),
			WorkforceMode: string(opts.Mode),
			AnalysisDate:  time.Now().UTC().Format(time.RFC3339),
			DataSourcesUsed: schema.DataSources{
				Commits:       len(d.Commits) > 0,
				MergeRequests: len(d.MergeRequests) > 0,
				Pipelines:     len(d.Pipelines) > 0,
				Issues:        len(d.Issues) > 0,
				Churn:         len(d.CommitChurn) > 0 || len(d.MergeRequestChurn) > 0,
			},
		},
		FeedbackLoops: rc.feedbackLoops(),
		CognitiveLoad: rc.cognitiveLoad(),
		FlowState:     rc.flowState(),
	}
}

// runContext holds the period splits and contributor sets shared by
// every metric in one run.
type runContext struct {
	opts Options

	commits     split[schema.Commit]
	mrs         split[schema.MergeRequest]
	mergedMRs   split[schema.MergeRequest]
	pipelines   split[schema.Pipeline]
	issues      split[schema.Issue]
	assigned    split[schema.Issue]
	commitChurn split[schema.ChurnRollup]
	mrChurn     split[schema.ChurnRollup]

	commitSets   ContributorSets
	mrSets       ContributorSets
	pipelineSets ContributorSets
	issueSets    ContributorSets
}

func newRunContext(d *schema.Dataset, opts Options) *runContext {
	ref := opts.ReferenceDate
	rc := &runContext{
		opts:        opts,
		commits:     SplitByReference(d.Commits, commitAt, ref),
		mrs:         SplitByReference(d.MergeRequests, mrAt, ref),
		pipelines:   SplitByReference(d.Pipelines, pipelineAt, ref),
		issues:      SplitByReference(d.Issues, issueAt, ref),
		commitChurn: SplitByReference(d.CommitChurn, rollupAt, ref),
		mrChurn:     SplitByReference(d.MergeRequestChurn, rollupAt, ref),
	}

	rc.mergedMRs = split[schema.MergeRequest]{
		Pre:  keepMerged(rc.mrs.Pre),
		Post: keepMerged(rc.mrs.Post),
	}
	rc.assigned = split[schema.Issue]{
		Pre:  keepAssigned(rc.issues.Pre),
		Post: keepAssigned(rc.issues.Post),
	}

	rc.commitSets = ResolveContributors(rc.commits, commitAuthor, opts.Sentinel)
	rc.mrSets = ResolveContributors(rc.mrs, mrAuthor, opts.Sentinel)
	rc.pipelineSets = ResolveContributors(rc.pipelines, pipelineActor, opts.Sentinel)
	rc.issueSets = ResolveContributors(rc.assigned, issueAssignee, opts.Sentinel)
	return rc
}

// modeComparisons runs the full-workforce and common-contributor
// variants of one metric, as selected by the workforce mode. The full
// variant drops unmapped-sentinel records and reports both per-side
// contributor sets; the common variant restricts both sides to the
// intersection. An optional aux name attaches per-side record volumes.
func modeComparisons[T any](
	out map[string]schema.MetricOutcome,
	mode schema.WorkforceMode, sentinel string,
	key string, s split[T], id func(T) string, sets ContributorSets,
	series func([]T) []float64, aux string,
) {
	if mode.IncludesFull() {
		full := withoutIdentity(s, id, sentinel)
		opts := []CompareOption{WithAllContributors(sets.Pre, sets.Post)}
		if aux != "" {
			opts = append(opts, WithAux(aux, len(full.Pre), len(full.Post)))
		}
		name := key + "_full"
		out[name] = Compare(name, series(full.Pre), series(full.Post), opts...)
	}
	if mode.IncludesCommon() {
		common := filterCommon(s, id, sets.Common)
		opts := []CompareOption{WithCommonContributors(sets.Common)}
		if aux != "" {
			opts = append(opts, WithAux(aux, len(common.Pre), len(common.Post)))
		}
		name := key + "_common"
		out[name] = Compare(name, series(common.Pre), series(common.Post), opts...)
	}
}

func (rc *runContext) hasCommits() bool   { return len(rc.commits.Pre)+len(rc.commits.Post) > 0 }
func (rc *runContext) hasMRs() bool       { return len(rc.mrs.Pre)+len(rc.mrs.Post) > 0 }
func (rc *runContext) hasPipelines() bool { return len(rc.pipelines.Pre)+len(rc.pipelines.Post) > 0 }
func (rc *runContext) hasIssues() bool    { return len(rc.issues.Pre)+len(rc.issues.Post) > 0 }

// hasRepositories reports whether any commit carries a repository
// slug, which context switching needs.
func (rc *runContext) hasRepositories() bool {
	for _, side := range [][]schema.Commit{rc.commits.Pre, rc.commits.Post} {
		for _, c := range side {
			if c.Repository != "" {
				return true
			}
		}
	}
	return false
}

func keepMerged(mrs []schema.MergeRequest) []schema.MergeRequest {
	out := make([]schema.MergeRequest, 0, len(mrs))
	for _, m := range mrs {
		if m.Merged() {
			out = append(out, m)
		}
	}
	return out
}

func keepAssigned(issues []schema.Issue) []schema.Issue {
	out := make([]schema.Issue, 0, len(issues))
	for _, i := range issues {
		if i.Assigned() {
			out = append(out, i)
		}
	}
	return out
}

// Record accessors shared across metric groups.

func commitAt(c schema.Commit) time.Time       { return c.Timestamp }
func commitAuthor(c schema.Commit) string      { return c.Author }
func commitRepo(c schema.Commit) string        { return c.Repository }
func mrAt(m schema.MergeRequest) time.Time     { return m.Timestamp }
func mrAuthor(m schema.MergeRequest) string    { return m.Author }
func mrDuration(m schema.MergeRequest) float64 { return m.DurationHours }
func pipelineAt(p schema.Pipeline) time.Time   { return p.Timestamp }
func pipelineActor(p schema.Pipeline) string   { return p.Actor }
func issueAt(i schema.Issue) time.Time         { return i.Created }
func issueAssignee(i schema.Issue) string      { return i.Assignee }
func rollupAt(r schema.ChurnRollup) time.Time  { return r.Month }
func rollupValue(r schema.ChurnRollup) float64 { return r.Value }
