package schema

import "time"

// RunRecord is one persisted analysis run in the run-history store.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalMetrics  int32
	ReferenceDate string
	WorkforceMode string
	ConfigParams  *string
}

// OutcomeRecord is one persisted metric outcome tied to a run.
type OutcomeRecord struct {
	RunID            int64
	MetricGroup      string
	MetricKey        string
	Metric           string
	Statistic        float64
	PValue           float64
	Significant      bool
	EffectSize       float64
	EffectSizeLabel  string
	N1               int32
	N2               int32
	MedianPre        float64
	MedianPost       float64
	PercentageChange float64
	Err              *string
}

// StoreStatus summarizes the state of the run-history store.
type StoreStatus struct {
	Backend       string
	Connected     bool
	TotalRuns     int64
	LastRunID     int64
	LastRunTime   time.Time
	OldestRunTime time.Time
	TotalOutcomes int64
	TableSizes    map[string]int64
}
