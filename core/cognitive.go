package core

import "github.com/devexhq/devex/schema"

// cognitiveLoad covers the churn, interruption and ticket-pressure
// metrics: how much code changes per commit and merge request, how
// ticket work is spread over people, and how often developers hop
// between repositories.
func (rc *runContext) cognitiveLoad() map[string]schema.MetricOutcome {
	out := make(map[string]schema.MetricOutcome)
	mode := rc.opts.Mode
	sentinel := rc.opts.Sentinel

	if rc.hasCommits() {
		modeComparisons(out, mode, sentinel, "commitFrequency",
			rc.commits, commitAuthor, rc.commitSets,
			func(recs []schema.Commit) []float64 {
				return countPerBucket(recs, commitAt, WeekStart)
			}, "commitVolume")

		commitChurn := func(recs []schema.Commit) []float64 {
			return values(recs, schema.Commit.Churn)
		}
		out["commitLevelChurn"] = Compare("commitLevelChurn",
			commitChurn(rc.commits.Pre), commitChurn(rc.commits.Post))
		modeComparisons(out, mode, sentinel, "commitLevelChurn",
			rc.commits, commitAuthor, rc.commitSets, commitChurn, "")

		out["commitMessageLength"] = Compare("commitMessageLength",
			values(rc.commits.Pre, commitMessageLen),
			values(rc.commits.Post, commitMessageLen))

		if rc.hasRepositories() {
			modeComparisons(out, mode, sentinel, "contextSwitching",
				rc.commits, commitAuthor, rc.commitSets,
				func(recs []schema.Commit) []float64 {
					return distinctPerIdentity(recs, commitAuthor, commitRepo)
				}, "")
		}
	}

	if len(rc.commitChurn.Pre)+len(rc.commitChurn.Post) > 0 {
		out["commitLevelChurn_commit_churn_csv"] = Compare("commitLevelChurn_commit_churn_csv",
			values(rc.commitChurn.Pre, rollupValue),
			values(rc.commitChurn.Post, rollupValue))
	}

	if rc.hasMRs() {
		mrChurn := func(recs []schema.MergeRequest) []float64 {
			return values(recs, schema.MergeRequest.Churn)
		}
		out["mrLevelChurn"] = Compare("mrLevelChurn",
			mrChurn(rc.mrs.Pre), mrChurn(rc.mrs.Post))
		modeComparisons(out, mode, sentinel, "mrLevelChurn",
			rc.mrs, mrAuthor, rc.mrSets, mrChurn, "")
	}

	if len(rc.mrChurn.Pre)+len(rc.mrChurn.Post) > 0 {
		out["mrLevelChurn_pr_churn_csv"] = Compare("mrLevelChurn_pr_churn_csv",
			values(rc.mrChurn.Pre, rollupValue),
			values(rc.mrChurn.Post, rollupValue))
	}

	if rc.hasIssues() {
		out["issueCycleTime"] = Compare("issueCycleTime",
			positiveValues(rc.issues.Pre, schema.Issue.CycleTimeHours),
			positiveValues(rc.issues.Post, schema.Issue.CycleTimeHours))

		out["operationalTicketVolume"] = Compare("operationalTicketVolume",
			countPerBucket(rc.issues.Pre, issueAt, WeekStart),
			countPerBucket(rc.issues.Post, issueAt, WeekStart))

		modeComparisons(out, mode, sentinel, "ticketsPerPersonPerWeek",
			rc.assigned, issueAssignee, rc.issueSets,
			func(recs []schema.Issue) []float64 {
				return countPerBucketPerIdentity(recs, issueAt, issueAssignee, WeekStart)
			}, "ticketVolume")

		modeComparisons(out, mode, sentinel, "ticketsPerPersonPerMonth",
			rc.assigned, issueAssignee, rc.issueSets,
			func(recs []schema.Issue) []float64 {
				return countPerBucketPerIdentity(recs, issueAt, issueAssignee, MonthStart)
			}, "ticketVolume")
	}

	return out
}

func commitMessageLen(c schema.Commit) float64 { return float64(len(c.Message)) }
