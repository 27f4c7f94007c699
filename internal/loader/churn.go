package loader

import (
	"time"

	"github.com/devexhq/devex/schema"
)

// Value column candidates for the two monthly churn rollup exports,
// in detection priority order.
var (
	CommitChurnValueColumns       = []string{"total_churn", "net_change", "commits"}
	MergeRequestChurnValueColumns = []string{"mr_churn", "pr_churn", "churn", "churn_value"}
)

// LoadChurnRollup reads a monthly churn rollup keyed by year and
// month columns. The value column is detected among the candidates.
// dropZero removes empty months, which the commit rollup export pads
// in but the MR rollup does not.
func LoadChurnRollup(path string, valueColumns []string, dropZero bool) ([]schema.ChurnRollup, int, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, 0, err
	}

	yearCol, err := t.requireCol("year")
	if err != nil {
		return nil, 0, err
	}
	monthCol, err := t.requireCol("month")
	if err != nil {
		return nil, 0, err
	}
	valueCol, err := t.requireCol(valueColumns...)
	if err != nil {
		return nil, 0, err
	}

	var rollups []schema.ChurnRollup
	dropped := 0
	for _, row := range t.rows {
		year, errY := parseInt(field(row, yearCol))
		month, errM := parseInt(field(row, monthCol))
		value, errV := parseFloat(field(row, valueCol))
		if errY != nil || errM != nil || errV != nil || year == 0 || month < 1 || month > 12 {
			dropped++
			continue
		}
		if dropZero && value == 0 {
			continue
		}
		rollups = append(rollups, schema.ChurnRollup{
			Month: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
			Value: value,
		})
	}
	return rollups, dropped, nil
}
