package loader

import (
	"testing"
)

// FuzzParseTime fuzzes the timestamp parser with random inputs.
func FuzzParseTime(f *testing.F) {
	// Add some seed inputs
	seeds := []string{
		"2024-10-08",
		"2024-10-08T14:30:00Z",
		"2024-10-08 14:30:00",
		"2024-10-08 14:30:00.123456789 +0200",
		"08/Oct/24 2:30 PM",
		"not a date",
		"", // edge case
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		ts := parseTime(input)
		// A parsed value must come back in UTC; the zero time marks failure.
		if !ts.IsZero() && ts.Location().String() != "UTC" {
			t.Errorf("parseTime(%q) returned non-UTC location %s", input, ts.Location())
		}
	})
}

// FuzzParseInt fuzzes the integer cell parser.
func FuzzParseInt(f *testing.F) {
	seeds := []string{
		"42",
		"42.0",
		"-7",
		"1e3",
		"",
		"NaN",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, input string) {
		_, err := parseInt(input)
		_ = err
	})
}
