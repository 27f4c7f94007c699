package schema

// Commit message pattern buckets. Every commit is classified into exactly
// one bucket; "other" collects whatever matches nothing.
const (
	PatternFix      = "fix/bug/issue"
	PatternFeature  = "feature/add/new/feat"
	PatternDocs     = "doc/documentation/readme"
	PatternTests    = "test/testing/ci/coverage"
	PatternRefactor = "refactor/cleanup/clean/restructure"
	PatternUpdate   = "update/upgrade/bump/version"
	PatternChore    = "chore/misc/miscellaneous"
	PatternOther    = "other"
)

// AllPatterns lists every pattern bucket in serialization order.
var AllPatterns = []string{
	PatternFix,
	PatternFeature,
	PatternDocs,
	PatternTests,
	PatternRefactor,
	PatternUpdate,
	PatternChore,
	PatternOther,
}

// PatternYearStats aggregates one pattern bucket within one calendar year.
type PatternYearStats struct {
	TotalCommits      int   `json:"totalCommits"`
	TotalChurn        int64 `json:"totalChurn"`
	TotalNet          int64 `json:"totalNet"`
	TotalContributors int   `json:"totalContributors"`
	Year              int   `json:"year"`
}

// PatternTotals aggregates across all years and buckets.
type PatternTotals struct {
	TotalCommits      int   `json:"totalCommits"`
	TotalChurn        int64 `json:"totalChurn"`
	TotalNet          int64 `json:"totalNet"`
	TotalContributors int   `json:"totalContributors"`
}

// PatternsReport is the full output of commit-message pattern analysis.
// Comparisons holds one common-contributor Mann-Whitney outcome per pattern,
// testing weekly commit counts around the reference date.
type PatternsReport struct {
	ByYear        map[int]map[string]PatternYearStats `json:"byYear"`
	Total         PatternTotals                       `json:"TOTAL"`
	AssertionRate float64                             `json:"assertionRate"`
	Comparisons   map[string]MetricOutcome            `json:"comparisons,omitempty"`
}
