package contract

import (
	"time"

	"github.com/devexhq/devex/schema"
)

// RunStore defines the interface for tracking comparison runs and their
// metric outcomes across analysis sessions.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, referenceDate string, mode schema.WorkforceMode, configParams map[string]any) (int64, error)

	// FinishRun updates the run with completion data
	FinishRun(runID int64, endTime time.Time, totalMetrics int) error

	// RecordOutcome stores one metric outcome for a run
	RecordOutcome(runID int64, group, key string, outcome schema.MetricOutcome) error

	// GetRuns retrieves all recorded runs
	GetRuns() ([]schema.RunRecord, error)

	// GetOutcomes retrieves all recorded metric outcomes
	GetOutcomes() ([]schema.OutcomeRecord, error)

	// GetStatus returns status information about the run store
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection
	Close() error
}
