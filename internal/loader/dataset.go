package loader

import (
	"fmt"

	"github.com/devexhq/devex/internal/contract"
	"github.com/devexhq/devex/schema"
)

// LoadDataset loads every configured data source. A source that fails
// to load is reported as a warning and left empty so its dependent
// metrics are skipped; only an entirely empty dataset is an error.
func LoadDataset(cfg *contract.Config) (*schema.Dataset, error) {
	d := &schema.Dataset{}

	if cfg.CommitsPath != "" {
		commits, dropped, err := LoadCommits(cfg.CommitsPath)
		reportSource("commits", dropped, err)
		d.Commits = commits
	}
	if cfg.MergeRequestsPath != "" {
		mrs, dropped, err := LoadMergeRequests(cfg.MergeRequestsPath)
		reportSource("merge requests", dropped, err)
		d.MergeRequests = mrs
	}
	if cfg.PipelinesPath != "" {
		pipelines, dropped, err := LoadPipelines(cfg.PipelinesPath)
		reportSource("pipelines", dropped, err)
		d.Pipelines = pipelines
	}
	if cfg.IssuesPath != "" {
		issues, dropped, err := LoadIssues(cfg.IssuesPath)
		reportSource("issues", dropped, err)
		d.Issues = issues
	}
	if cfg.CommitChurnPath != "" {
		rollups, dropped, err := LoadChurnRollup(cfg.CommitChurnPath, CommitChurnValueColumns, true)
		reportSource("commit churn rollup", dropped, err)
		d.CommitChurn = rollups
	}
	if cfg.MergeRequestChurnPath != "" {
		rollups, dropped, err := LoadChurnRollup(cfg.MergeRequestChurnPath, MergeRequestChurnValueColumns, false)
		reportSource("MR churn rollup", dropped, err)
		d.MergeRequestChurn = rollups
	}

	if d.Empty() {
		return nil, fmt.Errorf("no usable records in any configured data source")
	}
	return d, nil
}

func reportSource(name string, dropped int, err error) {
	if err != nil {
		contract.LogWarn(fmt.Sprintf("loading %s", name), err)
		return
	}
	if dropped > 0 {
		contract.LogWarn(fmt.Sprintf("loading %s", name), fmt.Errorf("dropped %d malformed rows", dropped))
	}
}
