package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devexhq/devex/schema"
)

func sampleRuns() []Run {
	start1 := time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC)
	end1 := start1.Add(45 * time.Second)
	duration1 := int32(end1.Sub(start1).Milliseconds())
	config1 := `{"workforce-mode":"both","reference-date":"2024-10-08"}`

	start2 := time.Date(2024, 11, 2, 9, 30, 0, 0, time.UTC)

	return []Run{
		{
			RunID:         1,
			StartTime:     start1,
			EndTime:       &end1,
			RunDurationMs: &duration1,
			TotalMetrics:  42,
			ReferenceDate: "2024-10-08",
			WorkforceMode: "both",
			ConfigParams:  &config1,
		},
		{
			// Unfinished run, nullable fields stay nil
			RunID:         2,
			StartTime:     start2,
			ReferenceDate: "2024-10-08",
			WorkforceMode: "common",
		},
	}
}

func sampleOutcomes() []MetricOutcome {
	errText := "Insufficient data"
	return []MetricOutcome{
		{
			RunID:            1,
			MetricGroup:      "rq1_feedback_loops",
			MetricKey:        "buildDuration",
			Metric:           "Build duration (minutes)",
			Statistic:        120.5,
			PValue:           0.012,
			Significant:      true,
			EffectSize:       0.44,
			EffectSizeLabel:  "medium",
			N1:               30,
			N2:               28,
			MedianPre:        14.2,
			MedianPost:       9.8,
			PercentageChange: -30.99,
		},
		{
			RunID:       1,
			MetricGroup: "rq2_cognitive_load",
			MetricKey:   "contextSwitching_full",
			Metric:      "Context switching",
			N2:          5,
			Error:       &errText,
		},
	}
}

func TestRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(Run))
	require.NotNil(t, s)

	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"run_duration_ms",
		"total_metrics",
		"reference_date",
		"workforce_mode",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestMetricOutcomeStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(MetricOutcome))
	require.NotNil(t, s)

	expectedColumns := []string{
		"run_id",
		"metric_group",
		"metric_key",
		"metric",
		"statistic",
		"p_value",
		"significant",
		"effect_size",
		"effect_size_label",
		"n1",
		"n2",
		"median_pre",
		"median_post",
		"percentage_change",
		"error",
	}

	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "runs.parquet")

	data := sampleRuns()
	err := WriteRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[Run](file)
	defer func() { _ = reader.Close() }()

	rows := make([]Run, len(data))
	n, err := reader.Read(rows)
	if err != nil {
		require.ErrorIs(t, err, io.EOF)
	}
	require.Equal(t, len(data), n, "Should read back the same number of rows")

	assert.Equal(t, int64(1), rows[0].RunID)
	assert.Equal(t, "both", rows[0].WorkforceMode)
	require.NotNil(t, rows[0].RunDurationMs)
	assert.Equal(t, int32(45000), *rows[0].RunDurationMs)
	assert.Nil(t, rows[1].EndTime, "Unfinished run should keep nil end time")
}

func TestWriteMetricOutcomesParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "outcomes.parquet")

	data := sampleOutcomes()
	err := WriteMetricOutcomesParquet(data, outputPath)
	require.NoError(t, err)

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[MetricOutcome](file)
	defer func() { _ = reader.Close() }()

	rows := make([]MetricOutcome, len(data))
	n, err := reader.Read(rows)
	if err != nil {
		require.ErrorIs(t, err, io.EOF)
	}
	require.Equal(t, len(data), n)

	assert.Equal(t, "buildDuration", rows[0].MetricKey)
	assert.True(t, rows[0].Significant)
	assert.Nil(t, rows[0].Error)
	require.NotNil(t, rows[1].Error)
	assert.Equal(t, "Insufficient data", *rows[1].Error)
}

func TestConvertRunRecords(t *testing.T) {
	end := time.Date(2024, 11, 1, 10, 1, 0, 0, time.UTC)
	duration := int32(60000)
	config := `{"reference-date":"2024-10-08"}`
	records := []schema.RunRecord{
		{
			RunID:         7,
			StartTime:     time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC),
			EndTime:       &end,
			RunDurationMs: &duration,
			TotalMetrics:  12,
			ReferenceDate: "2024-10-08",
			WorkforceMode: "full",
			ConfigParams:  &config,
		},
	}

	converted := ConvertRunRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, int64(7), converted[0].RunID)
	assert.Equal(t, int32(12), converted[0].TotalMetrics)
	assert.Equal(t, "full", converted[0].WorkforceMode)
	require.NotNil(t, converted[0].EndTime)
	assert.True(t, converted[0].EndTime.Equal(end))
}

func TestConvertOutcomeRecords(t *testing.T) {
	errText := "Insufficient data"
	records := []schema.OutcomeRecord{
		{
			RunID:       3,
			MetricGroup: "rq3_flow_state",
			MetricKey:   "commitsPerDeveloper_full",
			Metric:      "Commits per developer",
			Statistic:   44,
			PValue:      0.2,
			N1:          10,
			N2:          9,
		},
		{
			RunID:       3,
			MetricGroup: "rq3_flow_state",
			MetricKey:   "mrsPerDeveloper_common",
			Metric:      "MRs per developer",
			Err:         &errText,
		},
	}

	converted := ConvertOutcomeRecords(records)
	require.Len(t, converted, 2)
	assert.Equal(t, "commitsPerDeveloper_full", converted[0].MetricKey)
	assert.Nil(t, converted[0].Error)
	require.NotNil(t, converted[1].Error)
	assert.Equal(t, errText, *converted[1].Error)
}
