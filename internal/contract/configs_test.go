package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devexhq/devex/schema"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		CommitsPath:   "commits.csv",
		ReferenceDate: "2024-10-08",
		WorkforceMode: "both",
		Output:        "json",
		Precision:     2,
		Color:         "yes",
		StoreBackend:  "sqlite",
	}
}

func TestProcessAndValidate(t *testing.T) {
	var cfg Config
	err := ProcessAndValidate(&cfg, validInput())
	require.NoError(t, err)

	assert.Equal(t, "commits.csv", cfg.CommitsPath)
	assert.Equal(t, time.Date(2024, 10, 8, 0, 0, 0, 0, time.UTC), cfg.ReferenceDate)
	assert.Equal(t, schema.BothWorkforce, cfg.Mode)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, schema.UnmappedIdentity, cfg.Sentinel, "empty sentinel falls back to the default")
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.True(t, cfg.HasAnyInput())
}

func TestProcessAndValidateRequiresReferenceDate(t *testing.T) {
	input := validInput()
	input.ReferenceDate = ""

	var cfg Config
	err := ProcessAndValidate(&cfg, input)
	assert.ErrorContains(t, err, "reference date is required")
}

func TestProcessAndValidateRejectsBadDate(t *testing.T) {
	input := validInput()
	input.ReferenceDate = "not-a-date"

	var cfg Config
	err := ProcessAndValidate(&cfg, input)
	assert.ErrorContains(t, err, "invalid reference date")
}

func TestProcessAndValidateRejectsBadModes(t *testing.T) {
	input := validInput()
	input.WorkforceMode = "everyone"
	var cfg Config
	assert.ErrorContains(t, ProcessAndValidate(&cfg, input), "invalid workforce mode")

	input = validInput()
	input.Output = "xml"
	assert.ErrorContains(t, ProcessAndValidate(&cfg, input), "invalid output mode")

	input = validInput()
	input.StoreBackend = "oracle"
	assert.ErrorContains(t, ProcessAndValidate(&cfg, input), "invalid store backend")

	input = validInput()
	input.Precision = 42
	assert.ErrorContains(t, ProcessAndValidate(&cfg, input), "precision")
}

func TestProcessAndValidateCustomSentinel(t *testing.T) {
	input := validInput()
	input.Sentinel = "unknown-user"

	var cfg Config
	require.NoError(t, ProcessAndValidate(&cfg, input))
	assert.Equal(t, "unknown-user", cfg.Sentinel)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))

	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@localhost/db"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/devex"))

	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost dbname=devex user=postgres"))
}

func TestHasAnyInput(t *testing.T) {
	var cfg Config
	assert.False(t, cfg.HasAnyInput())

	cfg.IssuesPath = "jira.csv"
	assert.True(t, cfg.HasAnyInput())
}
