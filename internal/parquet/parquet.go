// Package parquet provides data structures and functions for exporting run
// history and metric outcomes to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/devexhq/devex/schema"
)

// Run represents a single comparison run with metadata.
// This struct maps to the devex_runs database table.
type Run struct {
	// RunID is the unique identifier for this comparison run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalMetrics is the number of metric outcomes computed in this run
	TotalMetrics int32 `parquet:"total_metrics,snappy"`

	// ReferenceDate is the pre/post split date in YYYY-MM-DD form
	ReferenceDate string `parquet:"reference_date,snappy"`

	// WorkforceMode is the contributor population the run compared
	WorkforceMode string `parquet:"workforce_mode,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// MetricOutcome represents one stored test result for a run.
// This struct maps to the devex_metric_outcomes database table.
type MetricOutcome struct {
	// RunID references the parent comparison run
	RunID int64 `parquet:"run_id,snappy"`

	// MetricGroup is the report group the metric belongs to
	MetricGroup string `parquet:"metric_group,snappy"`

	// MetricKey is the stable identifier of the metric within its group
	MetricKey string `parquet:"metric_key,snappy"`

	// Metric is the human-readable metric description
	Metric string `parquet:"metric,snappy"`

	// Statistic is the Mann-Whitney U statistic for the pre group
	Statistic float64 `parquet:"statistic,snappy"`

	// PValue is the two-sided p-value
	PValue float64 `parquet:"p_value,snappy"`

	// Significant indicates whether the p-value cleared the significance level
	Significant bool `parquet:"significant,snappy"`

	// EffectSize is the rank-biserial style effect size r
	EffectSize float64 `parquet:"effect_size,snappy"`

	// EffectSizeLabel is the qualitative effect size bucket
	EffectSizeLabel string `parquet:"effect_size_label,snappy"`

	// N1 is the pre-period sample size
	N1 int32 `parquet:"n1,snappy"`

	// N2 is the post-period sample size
	N2 int32 `parquet:"n2,snappy"`

	// MedianPre is the median of the pre-period series
	MedianPre float64 `parquet:"median_pre,snappy"`

	// MedianPost is the median of the post-period series
	MedianPost float64 `parquet:"median_post,snappy"`

	// PercentageChange is the median shift in percent
	PercentageChange float64 `parquet:"percentage_change,snappy"`

	// Error carries the data sufficiency error, if any (nullable)
	Error *string `parquet:"error,optional,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteMetricOutcomesParquet writes a slice of MetricOutcome structs to a Parquet file.
func WriteMetricOutcomesParquet(data []MetricOutcome, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the MetricOutcome struct tags
	writer := parquet.NewGenericWriter[MetricOutcome](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalMetrics:  record.TotalMetrics,
			ReferenceDate: record.ReferenceDate,
			WorkforceMode: record.WorkforceMode,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertOutcomeRecords converts schema.OutcomeRecord to MetricOutcome for Parquet export.
func ConvertOutcomeRecords(records []schema.OutcomeRecord) []MetricOutcome {
	result := make([]MetricOutcome, len(records))
	for i, record := range records {
		result[i] = MetricOutcome{
			RunID:            record.RunID,
			MetricGroup:      record.MetricGroup,
			MetricKey:        record.MetricKey,
			Metric:           record.Metric,
			Statistic:        record.Statistic,
			PValue:           record.PValue,
			Significant:      record.Significant,
			EffectSize:       record.EffectSize,
			EffectSizeLabel:  record.EffectSizeLabel,
			N1:               record.N1,
			N2:               record.N2,
			MedianPre:        record.MedianPre,
			MedianPost:       record.MedianPost,
			PercentageChange: record.PercentageChange,
			Error:            record.Err,
		}
	}
	return result
}
