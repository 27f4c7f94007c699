package schema

// Custom string types for type safety.
type (
	// WorkforceMode selects which contributor population a comparison uses.
	WorkforceMode string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All workforce modes supported.
const (
	FullWorkforce   WorkforceMode = "full"
	CommonWorkforce WorkforceMode = "common"
	BothWorkforce   WorkforceMode = "both" // default
)

// All output modes supported.
const (
	JSONOut OutputMode = "json" // default
	TextOut OutputMode = "text"
	CSVOut  OutputMode = "csv"
)

// All run-history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Report group names. These match the serialized result contract.
const (
	GroupFeedbackLoops = "rq1_feedback_loops"
	GroupCognitiveLoad = "rq2_cognitive_load"
	GroupFlowState     = "rq3_flow_state"
)

// UnmappedIdentity is the default sentinel for contributor identities that
// could not be mapped during anonymization. It is never counted as a
// contributor.
const UnmappedIdentity = "P n/a"

// SignificanceLevel is the two-sided alpha used to flag significant results.
const SignificanceLevel = 0.05

// Effect-size interpretation labels, per Cohen's conventions.
const (
	EffectNegligible = "negligible"
	EffectSmall      = "small"
	EffectMedium     = "medium"
	EffectLarge      = "large"
)

// ValidWorkforceModes lists all valid workforce modes.
var ValidWorkforceModes = map[WorkforceMode]struct{}{
	FullWorkforce:   {},
	CommonWorkforce: {},
	BothWorkforce:   {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	JSONOut: {},
	TextOut: {},
	CSVOut:  {},
}

// ValidDatabaseBackends lists all valid run-history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// IncludesFull reports whether the mode covers the full workforce.
func (m WorkforceMode) IncludesFull() bool {
	return m == FullWorkforce || m == BothWorkforce
}

// IncludesCommon reports whether the mode covers common contributors.
func (m WorkforceMode) IncludesCommon() bool {
	return m == CommonWorkforce || m == BothWorkforce
}
