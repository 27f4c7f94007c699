package core

import (
	"regexp"
	"strings"

	"github.com/devexhq/devex/schema"
)

// issueKeyPatterns match project-tracker references embedded in commit
// messages. A commit that names a tracked issue is treated as feature
// work before any keyword matching runs.
var issueKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z][A-Z0-9]+-\d+\b`),
	regexp.MustCompile(`(?i)\bjira[:\s]+[A-Z0-9-]+`),
}

// patternKeywords maps each bucket to its trigger words, checked in
// bucketOrder. First match wins.
var patternKeywords = map[string][]string{
	schema.PatternFix:      {"fix", "bug", "issue", "hotfix", "bugfix", "correction", "corr"},
	schema.PatternDocs:     {"doc", "documentation", "readme", "docs"},
	schema.PatternTests:    {"test", "testing", "ci", "coverage", "spec"},
	schema.PatternRefactor: {"refactor", "cleanup", "clean", "restructure", "improve"},
	schema.PatternUpdate:   {"update", "upgrade", "bump", "version", "migrate"},
	schema.PatternChore:    {"chore", "misc", "miscellaneous", "merge", "style"},
	schema.PatternFeature:  {"feature", "add", "new", "feat", "implement"},
}

// bucketOrder fixes keyword precedence; feature keywords run last so
// that "add bugfix" classifies as a fix.
var bucketOrder = []string{
	schema.PatternFix,
	schema.PatternDocs,
	schema.PatternTests,
	schema.PatternRefactor,
	schema.PatternUpdate,
	schema.PatternChore,
	schema.PatternFeature,
}

// ClassifyMessage assigns a commit message to exactly one pattern
// bucket.
func ClassifyMessage(message string) string {
	for _, re := range issueKeyPatterns {
		if re.MatchString(message) {
			return schema.PatternFeature
		}
	}
	lower := strings.ToLower(message)
	for _, bucket := range bucketOrder {
		for _, kw := range patternKeywords[bucket] {
			if strings.Contains(lower, kw) {
				return bucket
			}
		}
	}
	return schema.PatternOther
}

// AnalyzePatterns classifies every commit, aggregates per-year and
// overall totals per bucket, and runs one common-contributor
// comparison of weekly commit counts per bucket around the reference
// date. The assertion rate is the share of commits that landed in a
// named bucket rather than "other".
func AnalyzePatterns(commits []schema.Commit, opts Options) *schema.PatternsReport {
	rpt := &schema.PatternsReport{
		ByYear:      make(map[int]map[string]schema.PatternYearStats),
		Comparisons: make(map[string]schema.MetricOutcome),
	}
	if len(commits) == 0 {
		return rpt
	}

	byBucket := make(map[string][]schema.Commit)
	yearContribs := make(map[int]map[string]map[string]struct{})
	totalContribs := make(map[string]struct{})
	classified := 0

	for _, c := range commits {
		if c.Timestamp.IsZero() {
			continue
		}
		bucket := ClassifyMessage(c.Message)
		byBucket[bucket] = append(byBucket[bucket], c)
		if bucket != schema.PatternOther {
			classified++
		}

		year := c.Timestamp.UTC().Year()
		if rpt.ByYear[year] == nil {
			rpt.ByYear[year] = make(map[string]schema.PatternYearStats)
			yearContribs[year] = make(map[string]map[string]struct{})
		}
		stats := rpt.ByYear[year][bucket]
		stats.Year = year
		stats.TotalCommits++
		stats.TotalChurn += int64(c.Churn())
		stats.TotalNet += int64(c.NetChange())

		if yearContribs[year][bucket] == nil {
			yearContribs[year][bucket] = make(map[string]struct{})
		}
		if c.Author != "" && c.Author != opts.Sentinel {
			yearContribs[year][bucket][c.Author] = struct{}{}
			totalContribs[c.Author] = struct{}{}
		}
		stats.TotalContributors = len(yearContribs[year][bucket])
		rpt.ByYear[year][bucket] = stats

		rpt.Total.TotalCommits++
		rpt.Total.TotalChurn += int64(c.Churn())
		rpt.Total.TotalNet += int64(c.NetChange())
	}
	rpt.Total.TotalContributors = len(totalContribs)

	total := rpt.Total.TotalCommits
	if total > 0 {
		rpt.AssertionRate = schema.Round2(float64(classified) / float64(total) * 100)
	}

	for _, bucket := range schema.AllPatterns {
		recs := byBucket[bucket]
		if len(recs) == 0 {
			continue
		}
		s := SplitByReference(recs, commitAt, opts.ReferenceDate)
		sets := ResolveContributors(s, commitAuthor, opts.Sentinel)
		common := filterCommon(s, commitAuthor, sets.Common)
		rpt.Comparisons[bucket] = Compare(bucket,
			countPerBucket(common.Pre, commitAt, WeekStart),
			countPerBucket(common.Post, commitAt, WeekStart),
			WithCommonContributors(sets.Common))
	}

	return rpt
}
