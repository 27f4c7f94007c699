// Package loader ingests the flat CSV exports produced by the
// platform extraction tooling and normalizes them onto the canonical
// record shapes. Each source has its own adapter that maps
// platform-specific column names onto one schema, so nothing past
// this package ever branches on where the data came from.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// table is a parsed CSV file with a normalized header index.
type table struct {
	idx  map[string]int
	rows [][]string
}

// readTable reads an entire CSV file. Header names are lowercased and
// trimmed so column lookup is case-insensitive. Rows with ragged
// field counts are tolerated; adapters bounds-check every access.
func readTable(path string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}

	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return &table{idx: idx, rows: records[1:]}, nil
}

// col returns the index of the first matching column candidate.
func (t *table) col(candidates ...string) (int, bool) {
	for _, name := range candidates {
		if i, ok := t.idx[name]; ok {
			return i, true
		}
	}
	return -1, false
}

// requireCol is col with an error naming the missing column set.
func (t *table) requireCol(candidates ...string) (int, error) {
	i, ok := t.col(candidates...)
	if !ok {
		return -1, fmt.Errorf("missing required column (any of %s)", strings.Join(candidates, ", "))
	}
	return i, nil
}

// field returns a trimmed cell value, or "" when the row is too short
// or the column is absent.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// timeLayouts covers every timestamp shape the platform exports use.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999 -0700",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/Jan/06 3:04 PM", // jira export format
}

// parseTime parses a source timestamp into UTC. The zero time marks
// an unparseable value; callers drop those records.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}

// parseFloat parses a numeric cell. Empty cells are zero; anything
// unparseable is an error so the row can be dropped.
func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// parseInt parses an integer cell, tolerating float-formatted values
// the way spreadsheet exports produce them.
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
