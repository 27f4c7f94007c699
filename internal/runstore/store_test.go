package runstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devexhq/devex/schema"
)

func sampleOutcome() schema.MetricOutcome {
	return schema.MetricOutcome{
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
	}
}

func TestStore_NoneBackend(t *testing.T) {
	store, err := New(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	runID, err := store.BeginRun(time.Now(), "2024-10-08", schema.BothWorkforce, map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	err = store.RecordOutcome(1, "rq1_feedback_loops", "buildDuration", sampleOutcome())
	assert.NoError(t, err)

	err = store.FinishRun(1, time.Now(), 10)
	assert.NoError(t, err)

	runs, err := store.GetRuns()
	assert.NoError(t, err)
	assert.Nil(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	err = store.Close()
	assert.NoError(t, err)
}

func TestStore_UnsupportedBackend(t *testing.T) {
	_, err := New(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestStore_SQLiteRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := New(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	startTime := time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC)
	configParams := map[string]any{
		"workforce-mode": "both",
		"reference-date": "2024-10-08",
	}
	runID, err := store.BeginRun(startTime, "2024-10-08", schema.BothWorkforce, configParams)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	err = store.RecordOutcome(runID, "rq1_feedback_loops", "buildDuration", sampleOutcome())
	require.NoError(t, err)

	insufficient := schema.InsufficientOutcome("Context switching", 0, 5)
	err = store.RecordOutcome(runID, "rq2_cognitive_load", "contextSwitching_full", insufficient)
	require.NoError(t, err)

	endTime := startTime.Add(30 * time.Second)
	err = store.FinishRun(runID, endTime, 2)
	require.NoError(t, err)

	runs, err := store.GetRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.True(t, run.StartTime.Equal(startTime), "start time should survive the round trip")
	require.NotNil(t, run.EndTime)
	assert.True(t, run.EndTime.Equal(endTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(30000), *run.RunDurationMs)
	assert.Equal(t, int32(2), run.TotalMetrics)
	assert.Equal(t, "2024-10-08", run.ReferenceDate)
	assert.Equal(t, "both", run.WorkforceMode)
	require.NotNil(t, run.ConfigParams)
	assert.Contains(t, *run.ConfigParams, "reference-date")

	outcomes, err := store.GetOutcomes()
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	// Ordered by run, group, key
	first := outcomes[0]
	assert.Equal(t, "rq1_feedback_loops", first.MetricGroup)
	assert.Equal(t, "buildDuration", first.MetricKey)
	assert.InDelta(t, 120.5, first.Statistic, 1e-9)
	assert.InDelta(t, 0.012, first.PValue, 1e-9)
	assert.True(t, first.Significant)
	assert.Equal(t, "medium", first.EffectSizeLabel)
	assert.Equal(t, int32(30), first.N1)
	assert.Nil(t, first.Err)

	second := outcomes[1]
	assert.Equal(t, "contextSwitching_full", second.MetricKey)
	require.NotNil(t, second.Err)
	assert.Equal(t, "Insufficient data", *second.Err)
	assert.False(t, second.Significant)
}

func TestStore_SQLiteStatus(t *testing.T) {
	store, err := New(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store reports zero runs and zero-size tables
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(0), status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes["devex_runs"])

	first, err := store.BeginRun(time.Date(2024, 10, 1, 8, 0, 0, 0, time.UTC), "2024-09-15", schema.FullWorkforce, nil)
	require.NoError(t, err)
	second, err := store.BeginRun(time.Date(2024, 11, 1, 8, 0, 0, 0, time.UTC), "2024-10-08", schema.BothWorkforce, nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordOutcome(second, "rq3_flow_state", "commitsPerDeveloper_full", sampleOutcome()))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalRuns)
	assert.Equal(t, int64(1), status.TotalOutcomes)
	assert.Equal(t, second, status.LastRunID)
	assert.Equal(t, 2024, status.LastRunTime.UTC().Year())
	assert.Equal(t, time.October, status.OldestRunTime.UTC().Month())
	assert.Equal(t, int64(2), status.TableSizes["devex_runs"])
	assert.Equal(t, int64(1), status.TableSizes["devex_metric_outcomes"])
	_ = first
}

func TestStore_MultipleRuns(t *testing.T) {
	store, err := New(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Date(2024, 11, 1+i, 9, 0, 0, 0, time.UTC)
		id, err := store.BeginRun(start, "2024-10-08", schema.BothWorkforce, nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := store.GetRuns()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	for i, run := range runs {
		assert.Equal(t, ids[i], run.RunID)
		// Unfinished runs have no end time or duration
		assert.Nil(t, run.EndTime)
		assert.Nil(t, run.RunDurationMs)
		assert.Equal(t, int32(0), run.TotalMetrics)
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, `"devex_runs"`, quoteTableName(runsTable, schema.SQLiteBackend))
	assert.Equal(t, `"devex_runs"`, quoteTableName(runsTable, schema.PostgreSQLBackend))
	assert.Equal(t, "`devex_runs`", quoteTableName(runsTable, schema.MySQLBackend))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 10, 8, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-10-08T12:30:00Z", formatTime(ts, schema.SQLiteBackend))
	assert.Equal(t, ts, formatTime(ts, schema.PostgreSQLBackend))
}
