package core

import "github.com/devexhq/devex/schema"

// feedbackLoops covers the build and review turnaround metrics: how
// fast pipelines run and succeed, and how quickly merge requests move
// through creation, review and merge.
func (rc *runContext) feedbackLoops() map[string]schema.MetricOutcome {
	out := make(map[string]schema.MetricOutcome)
	mode := rc.opts.Mode
	sentinel := rc.opts.Sentinel

	if rc.hasPipelines() {
		out["buildDuration"] = Compare("buildDuration",
			positiveValues(rc.pipelines.Pre, pipelineMinutes),
			positiveValues(rc.pipelines.Post, pipelineMinutes))

		modeComparisons(out, mode, sentinel, "pipelineExecutionFrequency",
			rc.pipelines, pipelineActor, rc.pipelineSets,
			func(recs []schema.Pipeline) []float64 {
				return countPerBucket(recs, pipelineAt, WeekStart)
			}, "")

		modeComparisons(out, mode, sentinel, "pipelineSuccessRate",
			rc.pipelines, pipelineActor, rc.pipelineSets,
			func(recs []schema.Pipeline) []float64 {
				return meanPerBucket(recs, pipelineAt, pipelineSuccess01, WeekStart, 100)
			}, "")
	}

	if rc.hasMRs() {
		modeComparisons(out, mode, sentinel, "mrCreationRate",
			rc.mrs, mrAuthor, rc.mrSets,
			func(recs []schema.MergeRequest) []float64 {
				return countPerBucket(recs, mrAt, WeekStart)
			}, "")

		reviewTime := func(recs []schema.MergeRequest) []float64 {
			return positiveValues(recs, mrDuration)
		}
		out["mrReviewTime"] = Compare("mrReviewTime",
			reviewTime(rc.mrs.Pre), reviewTime(rc.mrs.Post))
		modeComparisons(out, mode, sentinel, "mrReviewTime",
			rc.mrs, mrAuthor, rc.mrSets, reviewTime, "")

		out["mrMergeTime"] = Compare("mrMergeTime",
			reviewTime(rc.mergedMRs.Pre), reviewTime(rc.mergedMRs.Post))
		modeComparisons(out, mode, sentinel, "mrMergeTime",
			rc.mergedMRs, mrAuthor, rc.mrSets, reviewTime, "")

		reviewers := func(recs []schema.MergeRequest) []float64 {
			return values(recs, mrReviewers)
		}
		out["codeReviewParticipation"] = Compare("codeReviewParticipation",
			reviewers(rc.mrs.Pre), reviewers(rc.mrs.Post))
		modeComparisons(out, mode, sentinel, "codeReviewParticipation",
			rc.mrs, mrAuthor, rc.mrSets, reviewers, "")
	}

	return out
}

func pipelineMinutes(p schema.Pipeline) float64 { return p.DurationMinutes }

func pipelineSuccess01(p schema.Pipeline) float64 {
	if p.Succeeded() {
		return 1
	}
	return 0
}

func mrReviewers(m schema.MergeRequest) float64 { return float64(m.ReviewersCount) }
