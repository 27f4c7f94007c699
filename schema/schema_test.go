package schema

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommitChurn(t *testing.T) {
	c := Commit{LinesAdded: 10, LinesDeleted: 4}
	assert.Equal(t, 14.0, c.Churn())
	assert.Equal(t, 6.0, c.NetChange())
}

func TestMergeRequestChurn(t *testing.T) {
	// 100 lines over 4 files: 100 + 5*4 + 2*sqrt(104)
	m := MergeRequest{LinesAdded: 60, LinesDeleted: 40, FilesChanged: 4}
	want := 100 + 20 + 2*math.Sqrt(104)
	assert.InDelta(t, want, m.Churn(), 1e-9)

	// Zero work yields zero churn, no NaN from the sqrt term.
	assert.Equal(t, 0.0, MergeRequest{}.Churn())
}

func TestMergeRequestMerged(t *testing.T) {
	assert.True(t, MergeRequest{State: "merged"}.Merged())
	assert.False(t, MergeRequest{State: "open"}.Merged())
	assert.False(t, MergeRequest{State: "declined"}.Merged())
}

func TestPipelineSucceeded(t *testing.T) {
	for _, s := range []string{"success", "PASSED", "succeeded", "Successful", "ok", "completed", " success "} {
		assert.True(t, Pipeline{Status: s}.Succeeded(), "status %q should count as success", s)
	}
	for _, s := range []string{"failed", "error", "canceled", "", "running"} {
		assert.False(t, Pipeline{Status: s}.Succeeded(), "status %q should not count as success", s)
	}
}

func TestIssueCycleTime(t *testing.T) {
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	resolved := created.Add(36 * time.Hour)

	i := Issue{Created: created, Resolved: resolved}
	assert.InDelta(t, 36.0, i.CycleTimeHours(), 1e-9)

	open := Issue{Created: created}
	assert.True(t, math.IsNaN(open.CycleTimeHours()))
}

func TestIssueAssigned(t *testing.T) {
	assert.True(t, Issue{Assignee: "P 010"}.Assigned())
	assert.False(t, Issue{Assignee: ""}.Assigned())
	assert.False(t, Issue{Assignee: "Unassigned"}.Assigned())
}

func TestSanitizeFloat(t *testing.T) {
	assert.Equal(t, 0.0, SanitizeFloat(math.NaN()))
	assert.Equal(t, 0.0, SanitizeFloat(math.Inf(1)))
	assert.Equal(t, 0.0, SanitizeFloat(math.Inf(-1)))
	assert.Equal(t, 3.25, SanitizeFloat(3.25))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(100.0/3.0))
	assert.Equal(t, 900.0, Round2(900.0))
	assert.Equal(t, -12.5, Round2(-12.499999999))
}

func TestDatasetEmpty(t *testing.T) {
	assert.True(t, (&Dataset{}).Empty())
	assert.False(t, (&Dataset{Commits: []Commit{{}}}).Empty())
}

func TestWorkforceModeIncludes(t *testing.T) {
	assert.True(t, FullWorkforce.IncludesFull())
	assert.False(t, FullWorkforce.IncludesCommon())
	assert.True(t, CommonWorkforce.IncludesCommon())
	assert.False(t, CommonWorkforce.IncludesFull())
	assert.True(t, BothWorkforce.IncludesFull())
	assert.True(t, BothWorkforce.IncludesCommon())
}
