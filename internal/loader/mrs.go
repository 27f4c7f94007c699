package loader

import (
	"strings"

	"github.com/devexhq/devex/schema"
)

// LoadMergeRequests reads a merge request / pull request export.
// Bitbucket names the creation column created_on and the state column
// pr_state; GitLab uses created_at and state. Cycle time arrives as
// duration_hours or cycle_time_hours depending on the extractor
// version.
func LoadMergeRequests(path string) ([]schema.MergeRequest, int, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, 0, err
	}

	tsCol, err := t.requireCol("created_on", "created_at")
	if err != nil {
		return nil, 0, err
	}
	authorCol, err := t.requireCol("anonymized_name", "author", "anonymized_author")
	if err != nil {
		return nil, 0, err
	}
	stateCol, _ := t.col("state", "pr_state")
	durationCol, _ := t.col("duration_hours", "cycle_time_hours")
	reviewersCol, _ := t.col("reviewers_count", "reviewer_count")
	addedCol, _ := t.col("lines_added", "additions")
	deletedCol, _ := t.col("lines_deleted", "lines_removed", "deletions")
	filesCol, _ := t.col("files_changed", "changed_files")

	var mrs []schema.MergeRequest
	dropped := 0
	for _, row := range t.rows {
		ts := parseTime(field(row, tsCol))
		if ts.IsZero() {
			dropped++
			continue
		}
		duration, errDur := parseFloat(field(row, durationCol))
		reviewers, errRev := parseInt(field(row, reviewersCol))
		added, errA := parseInt(field(row, addedCol))
		deleted, errD := parseInt(field(row, deletedCol))
		files, errF := parseInt(field(row, filesCol))
		if errDur != nil || errRev != nil || errA != nil || errD != nil || errF != nil {
			dropped++
			continue
		}
		mrs = append(mrs, schema.MergeRequest{
			Timestamp:      ts,
			Author:         field(row, authorCol),
			State:          strings.ToLower(field(row, stateCol)),
			DurationHours:  duration,
			ReviewersCount: float64(reviewers),
			LinesAdded:     float64(added),
			LinesDeleted:   float64(deleted),
			FilesChanged:   float64(files),
		})
	}
	return mrs, dropped, nil
}
