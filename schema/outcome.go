package schema

import "encoding/json"

// MetricOutcome is the uniform result record for one Mann-Whitney comparison.
// Every metric in every report group serializes to the same shape, so the
// writers never special-case individual metrics.
//
// An outcome with a non-empty Err carries only the metric name, the error
// string and the sample sizes. Statistic fields are meaningless in that case
// and are left out of the serialized form.
type MetricOutcome struct {
	Metric           string  // Human-readable metric description
	Err              string  // "Insufficient data" when a side is empty after cleaning
	Statistic        float64 // Mann-Whitney U statistic for the pre group
	PValue           float64 // Two-sided p-value
	Significant      bool    // PValue < SignificanceLevel
	EffectSize       float64 // r = |z| / sqrt(n1+n2)
	EffectSizeLabel  string  // negligible, small, medium or large
	N1               int     // Pre-period sample size
	N2               int     // Post-period sample size
	MedianPre        float64
	MedianPost       float64
	MeanPre          float64
	MeanPost         float64
	StdPre           float64 // Sample standard deviation (0 when n <= 1)
	StdPost          float64
	PercentageChange float64 // Median shift in percent, 0 when MedianPre == 0

	// Contributor context, present only when the caller supplied it.
	CommonContributors  []string
	AllContributorsPre  []string
	AllContributorsPost []string

	// Aux holds auxiliary integer counters alongside the tested quantity,
	// keyed by serialized name (e.g. "commitVolume_n1").
	Aux map[string]int
}

// InsufficientOutcome builds the structured result for a metric whose pre or
// post series is empty after removing non-finite values.
func InsufficientOutcome(metric string, n1, n2 int) MetricOutcome {
	return MetricOutcome{
		Metric: metric,
		Err:    "Insufficient data",
		N1:     n1,
		N2:     n2,
	}
}

// Insufficient reports whether the outcome carries no test result.
func (o MetricOutcome) Insufficient() bool {
	return o.Err != ""
}

// MarshalJSON serializes the outcome using the stable result-contract keys.
// Map-based marshaling keeps key order deterministic (encoding/json sorts
// map keys), which makes repeated runs byte-identical.
func (o MetricOutcome) MarshalJSON() ([]byte, error) {
	if o.Err != "" {
		return json.Marshal(map[string]any{
			"metric": o.Metric,
			"error":  o.Err,
			"n1":     o.N1,
			"n2":     o.N2,
		})
	}

	out := map[string]any{
		"metric":                   o.Metric,
		"statistic":                SanitizeFloat(o.Statistic),
		"pValue":                   SanitizeFloat(o.PValue),
		"significant":              o.Significant,
		"effectSize":               SanitizeFloat(o.EffectSize),
		"effectSizeInterpretation": o.EffectSizeLabel,
		"n1":                       o.N1,
		"n2":                       o.N2,
		"medianPre":                SanitizeFloat(o.MedianPre),
		"medianPost":               SanitizeFloat(o.MedianPost),
		"meanPre":                  SanitizeFloat(o.MeanPre),
		"meanPost":                 SanitizeFloat(o.MeanPost),
		"stdPre":                   SanitizeFloat(o.StdPre),
		"stdPost":                  SanitizeFloat(o.StdPost),
		"percentageChange":         SanitizeFloat(o.PercentageChange),
	}
	if o.CommonContributors != nil {
		out["commonContributors"] = o.CommonContributors
		out["commonContributorsCount"] = len(o.CommonContributors)
	}
	if o.AllContributorsPre != nil {
		out["allContributorsPre"] = o.AllContributorsPre
		out["allContributorsPreCount"] = len(o.AllContributorsPre)
	}
	if o.AllContributorsPost != nil {
		out["allContributorsPost"] = o.AllContributorsPost
		out["allContributorsPostCount"] = len(o.AllContributorsPost)
	}
	for k, v := range o.Aux {
		out[k] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores an outcome from its serialized form, so reports
// written by one run can be reloaded for cross-platform comparison.
func (o *MetricOutcome) UnmarshalJSON(data []byte) error {
	var raw struct {
		Metric           string   `json:"metric"`
		Err              string   `json:"error"`
		Statistic        float64  `json:"statistic"`
		PValue           float64  `json:"pValue"`
		Significant      bool     `json:"significant"`
		EffectSize       float64  `json:"effectSize"`
		EffectSizeLabel  string   `json:"effectSizeInterpretation"`
		N1               int      `json:"n1"`
		N2               int      `json:"n2"`
		MedianPre        float64  `json:"medianPre"`
		MedianPost       float64  `json:"medianPost"`
		MeanPre          float64  `json:"meanPre"`
		MeanPost         float64  `json:"meanPost"`
		StdPre           float64  `json:"stdPre"`
		StdPost          float64  `json:"stdPost"`
		PercentageChange float64  `json:"percentageChange"`
		Common           []string `json:"commonContributors"`
		AllPre           []string `json:"allContributorsPre"`
		AllPost          []string `json:"allContributorsPost"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = MetricOutcome{
		Metric:              raw.Metric,
		Err:                 raw.Err,
		Statistic:           raw.Statistic,
		PValue:              raw.PValue,
		Significant:         raw.Significant,
		EffectSize:          raw.EffectSize,
		EffectSizeLabel:     raw.EffectSizeLabel,
		N1:                  raw.N1,
		N2:                  raw.N2,
		MedianPre:           raw.MedianPre,
		MedianPost:          raw.MedianPost,
		MeanPre:             raw.MeanPre,
		MeanPost:            raw.MeanPost,
		StdPre:              raw.StdPre,
		StdPost:             raw.StdPost,
		PercentageChange:    raw.PercentageChange,
		CommonContributors:  raw.Common,
		AllContributorsPre:  raw.AllPre,
		AllContributorsPost: raw.AllPost,
	}
	return nil
}

// DataSources records which inputs were present for an analysis run.
type DataSources struct {
	Commits       bool `json:"commits"`
	MergeRequests bool `json:"mrs"`
	Pipelines     bool `json:"pipelines"`
	Issues        bool `json:"jira"`
	Churn         bool `json:"churn"`
}

// Metadata describes one analysis run. AnalysisDate is the only
// non-deterministic field in a report.
type Metadata struct {
	ReferenceDate   string      `json:"referenceDate"`
	WorkforceMode   string      `json:"workforceMode"`
	AnalysisDate    string      `json:"analysisDate"`
	DataSourcesUsed DataSources `json:"dataSourcesUsed"`
}

// Report is the full output of one comparison run, grouped by research
// question the way the downstream tooling expects.
type Report struct {
	Metadata      Metadata                 `json:"metadata"`
	FeedbackLoops map[string]MetricOutcome `json:"rq1_feedback_loops"`
	CognitiveLoad map[string]MetricOutcome `json:"rq2_cognitive_load"`
	FlowState     map[string]MetricOutcome `json:"rq3_flow_state"`
}

// Groups returns the three metric groups keyed by their serialized names,
// in a fixed order.
func (r *Report) Groups() []struct {
	Name     string
	Outcomes map[string]MetricOutcome
} {
	return []struct {
		Name     string
		Outcomes map[string]MetricOutcome
	}{
		{GroupFeedbackLoops, r.FeedbackLoops},
		{GroupCognitiveLoad, r.CognitiveLoad},
		{GroupFlowState, r.FlowState},
	}
}

// TotalMetrics returns the number of computed metrics across all groups.
func (r *Report) TotalMetrics() int {
	return len(r.FeedbackLoops) + len(r.CognitiveLoad) + len(r.FlowState)
}

// Find returns the named outcome from whichever group holds it.
func (r *Report) Find(key string) (MetricOutcome, bool) {
	for _, g := range r.Groups() {
		if o, ok := g.Outcomes[key]; ok {
			return o, true
		}
	}
	return MetricOutcome{}, false
}
