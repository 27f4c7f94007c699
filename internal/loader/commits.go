package loader

import "github.com/devexhq/devex/schema"

// LoadCommits reads a commit export. GitLab exports carry date and
// lines_deleted columns; Bitbucket exports carry created_at and
// lines_removed. Returns the parsed records and the number of rows
// dropped for unparseable timestamps or numerics.
func LoadCommits(path string) ([]schema.Commit, int, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, 0, err
	}

	tsCol, err := t.requireCol("date", "created_at", "timestamp")
	if err != nil {
		return nil, 0, err
	}
	authorCol, err := t.requireCol("anonymized_name", "author", "anonymized_author")
	if err != nil {
		return nil, 0, err
	}
	addedCol, _ := t.col("lines_added", "additions")
	deletedCol, _ := t.col("lines_deleted", "lines_removed", "deletions")
	messageCol, _ := t.col("message", "commit_message", "title")
	repoCol, _ := t.col("repository_slug", "repo_slug", "repository")

	var commits []schema.Commit
	dropped := 0
	for _, row := range t.rows {
		ts := parseTime(field(row, tsCol))
		if ts.IsZero() {
			dropped++
			continue
		}
		added, errA := parseInt(field(row, addedCol))
		deleted, errD := parseInt(field(row, deletedCol))
		if errA != nil || errD != nil {
			dropped++
			continue
		}
		commits = append(commits, schema.Commit{
			Timestamp:    ts,
			Author:       field(row, authorCol),
			Repository:   field(row, repoCol),
			Message:      field(row, messageCol),
			LinesAdded:   float64(added),
			LinesDeleted: float64(deleted),
		})
	}
	return commits, dropped, nil
}
