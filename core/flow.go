package core

import "github.com/devexhq/devex/schema"

// flowState covers per-developer throughput: commits and merge
// requests produced per person on each side of the reference date.
func (rc *runContext) flowState() map[string]schema.MetricOutcome {
	out := make(map[string]schema.MetricOutcome)
	mode := rc.opts.Mode
	sentinel := rc.opts.Sentinel

	if rc.hasCommits() {
		modeComparisons(out, mode, sentinel, "commitsPerDeveloper",
			rc.commits, commitAuthor, rc.commitSets,
			func(recs []schema.Commit) []float64 {
				return countPerIdentity(recs, commitAuthor)
			}, "")
	}

	if rc.hasMRs() {
		modeComparisons(out, mode, sentinel, "mrsPerDeveloper",
			rc.mrs, mrAuthor, rc.mrSets,
			func(recs []schema.MergeRequest) []float64 {
				return countPerIdentity(recs, mrAuthor)
			}, "")
	}

	return out
}
