package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devexhq/devex/schema"
)

func TestClassifyMessage(t *testing.T) {
	cases := map[string]string{
		"fix null pointer in loader":        schema.PatternFix,
		"Hotfix for prod outage":            schema.PatternFix,
		"update README":                     schema.PatternDocs,
		"add coverage for parser":           schema.PatternTests,
		"refactor session handling":         schema.PatternRefactor,
		"bump dependency versions":          schema.PatternUpdate,
		"chore: tidy imports":               schema.PatternChore,
		"implement retry budget":            schema.PatternFeature,
		"PROJ-1234 wire payment provider":   schema.PatternFeature,
		"lorem ipsum dolor":                 schema.PatternOther,
		"Add bugfix for session expiry":     schema.PatternFix,
		"feat: expose health endpoint":      schema.PatternFeature,
	}
	for msg, want := range cases {
		assert.Equal(t, want, ClassifyMessage(msg), "message %q", msg)
	}
}

func TestClassifyMessageIssueKeyWinsOverKeywords(t *testing.T) {
	// An issue key marks feature work even when a fix keyword appears.
	assert.Equal(t, schema.PatternFeature, ClassifyMessage("ABC-42 fix onboarding flow"))
}

func TestAnalyzePatternsAggregation(t *testing.T) {
	commits := []schema.Commit{
		{Timestamp: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), Author: "A", Message: "fix crash", LinesAdded: 10, LinesDeleted: 2},
		{Timestamp: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Author: "B", Message: "fix leak", LinesAdded: 4, LinesDeleted: 4},
		{Timestamp: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Author: "A", Message: "implement exports", LinesAdded: 100, LinesDeleted: 0},
		{Timestamp: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Author: "A", Message: "zzz"},
	}

	rpt := AnalyzePatterns(commits, testOptions())

	fix2023 := rpt.ByYear[2023][schema.PatternFix]
	assert.Equal(t, 2, fix2023.TotalCommits)
	assert.Equal(t, int64(20), fix2023.TotalChurn)
	assert.Equal(t, int64(8), fix2023.TotalNet)
	assert.Equal(t, 2, fix2023.TotalContributors)
	assert.Equal(t, 2023, fix2023.Year)

	feat2024 := rpt.ByYear[2024][schema.PatternFeature]
	assert.Equal(t, 1, feat2024.TotalCommits)
	assert.Equal(t, int64(100), feat2024.TotalChurn)

	assert.Equal(t, 4, rpt.Total.TotalCommits)
	assert.Equal(t, 2, rpt.Total.TotalContributors)
	assert.Equal(t, 75.0, rpt.AssertionRate, "3 of 4 commits classified")
}

func TestAnalyzePatternsExcludesSentinelContributors(t *testing.T) {
	commits := []schema.Commit{
		{Timestamp: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Author: "P n/a", Message: "fix it"},
		{Timestamp: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), Author: "A", Message: "fix it more"},
	}

	rpt := AnalyzePatterns(commits, testOptions())

	assert.Equal(t, 1, rpt.ByYear[2024][schema.PatternFix].TotalContributors)
	assert.Equal(t, 1, rpt.Total.TotalContributors)
	assert.Equal(t, 2, rpt.Total.TotalCommits, "sentinel commits still count as volume")
}

func TestAnalyzePatternsComparisons(t *testing.T) {
	var commits []schema.Commit
	day := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		commits = append(commits, schema.Commit{
			Timestamp: day,
			Author:    "A",
			Message:   "fix things",
		})
		day = day.AddDate(0, 0, 3)
	}

	rpt := AnalyzePatterns(commits, testOptions())

	out, ok := rpt.Comparisons[schema.PatternFix]
	require.True(t, ok)
	assert.False(t, out.Insufficient())
	assert.Equal(t, []string{"A"}, out.CommonContributors)

	_, ok = rpt.Comparisons[schema.PatternDocs]
	assert.False(t, ok, "buckets with no commits have no comparison")
}

func TestAnalyzePatternsEmptyInput(t *testing.T) {
	rpt := AnalyzePatterns(nil, testOptions())

	assert.Empty(t, rpt.ByYear)
	assert.Zero(t, rpt.Total.TotalCommits)
	assert.Zero(t, rpt.AssertionRate)
}
