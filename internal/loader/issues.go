package loader

import "github.com/devexhq/devex/schema"

// LoadIssues reads a project-tracker export. An unresolved issue has
// an empty resolved cell and keeps a zero Resolved time; the cycle
// time metric skips those. Assignee stays as exported, including the
// "Unassigned" placeholder, so per-person metrics can exclude it
// while volume metrics still count the issue.
func LoadIssues(path string) ([]schema.Issue, int, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, 0, err
	}

	createdCol, err := t.requireCol("created")
	if err != nil {
		return nil, 0, err
	}
	resolvedCol, _ := t.col("resolved", "resolution_date")
	assigneeCol, _ := t.col("anonymized_assignee", "assignee")

	var issues []schema.Issue
	dropped := 0
	for _, row := range t.rows {
		created := parseTime(field(row, createdCol))
		if created.IsZero() {
			dropped++
			continue
		}
		issues = append(issues, schema.Issue{
			Created:  created,
			Resolved: parseTime(field(row, resolvedCol)),
			Assignee: field(row, assigneeCol),
		})
	}
	return issues, dropped, nil
}
