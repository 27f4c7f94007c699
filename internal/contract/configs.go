// Package contract holds the validated runtime configuration and the
// shared logging and output helpers used across commands.
package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/devexhq/devex/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 2
	DateFormat       = "2006-01-02"
)

// Config holds the runtime configuration for an analysis run.
// This struct remains the "final, validated" config.
type Config struct {
	CommitsPath           string
	MergeRequestsPath     string
	PipelinesPath         string
	IssuesPath            string
	CommitChurnPath       string
	MergeRequestChurnPath string

	ReferenceDate time.Time
	Mode          schema.WorkforceMode
	Sentinel      string

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from devexCmd.PersistentFlags() ---
	CommitsPath           string `mapstructure:"commits-csv"`
	MergeRequestsPath     string `mapstructure:"mrs-csv"`
	PipelinesPath         string `mapstructure:"pipelines-csv"`
	IssuesPath            string `mapstructure:"jira-csv"`
	CommitChurnPath       string `mapstructure:"commit-churn-csv"`
	MergeRequestChurnPath string `mapstructure:"pr-churn-csv"`
	ReferenceDate         string `mapstructure:"reference-date"`
	WorkforceMode         string `mapstructure:"workforce-mode"`
	Sentinel              string `mapstructure:"sentinel"`
	Output                string `mapstructure:"output"`
	OutputFile            string `mapstructure:"output-file"`
	Precision             int    `mapstructure:"precision"`
	Color                 string `mapstructure:"color"`
	Width                 int    `mapstructure:"width"`
	StoreBackend          string `mapstructure:"store-backend"`
	StoreDBConnect        string `mapstructure:"store-db-connect"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processReferenceDate(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// ProcessOutputConfig validates only the fields needed by commands that
// render stored or precomputed results, where no reference date applies.
func ProcessOutputConfig(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	return validateBackendConfig(cfg, input)
}

// validateSimpleInputs processes and validates all non-date fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.CommitsPath = input.CommitsPath
	cfg.MergeRequestsPath = input.MergeRequestsPath
	cfg.PipelinesPath = input.PipelinesPath
	cfg.IssuesPath = input.IssuesPath
	cfg.CommitChurnPath = input.CommitChurnPath
	cfg.MergeRequestChurnPath = input.MergeRequestChurnPath
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	cfg.Mode = schema.WorkforceMode(strings.ToLower(input.WorkforceMode))
	if _, ok := schema.ValidWorkforceModes[cfg.Mode]; !ok {
		return fmt.Errorf("invalid workforce mode '%s'. must be full, common, both", input.WorkforceMode)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode '%s'. must be json, text, csv", input.Output)
	}

	cfg.Sentinel = input.Sentinel
	if cfg.Sentinel == "" {
		cfg.Sentinel = schema.UnmappedIdentity
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 0 || cfg.Precision > 10 {
		return fmt.Errorf("precision must be between 0 and 10, got %d", input.Precision)
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	return nil
}

// processReferenceDate parses the required reference date. There is no
// default: without it the pre/post split is meaningless.
func processReferenceDate(cfg *Config, input *ConfigRawInput) error {
	if input.ReferenceDate == "" {
		return fmt.Errorf("reference date is required (use --reference-date YYYY-MM-DD)")
	}
	ref, err := time.ParseInLocation(DateFormat, input.ReferenceDate, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid reference date '%s': %w", input.ReferenceDate, err)
	}
	cfg.ReferenceDate = ref
	return nil
}

// validateBackendConfig validates the results store configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// InputPaths returns every configured data source path, keyed by source name.
func (c *Config) InputPaths() map[string]string {
	return map[string]string{
		"commits":      c.CommitsPath,
		"mrs":          c.MergeRequestsPath,
		"pipelines":    c.PipelinesPath,
		"jira":         c.IssuesPath,
		"commit-churn": c.CommitChurnPath,
		"pr-churn":     c.MergeRequestChurnPath,
	}
}

// HasAnyInput reports whether at least one data source was configured.
func (c *Config) HasAnyInput() bool {
	for _, p := range c.InputPaths() {
		if p != "" {
			return true
		}
	}
	return false
}
