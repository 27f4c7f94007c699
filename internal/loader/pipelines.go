package loader

import "github.com/devexhq/devex/schema"

// LoadPipelines reads a pipeline run export. Duration is taken from
// an explicit duration_minutes column when present, otherwise derived
// from the creation and completion timestamps. Runs without a usable
// completion time keep a zero duration and are skipped by the
// build-duration metric's positive filter.
func LoadPipelines(path string) ([]schema.Pipeline, int, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, 0, err
	}

	createdCol, err := t.requireCol("created_on", "created_at")
	if err != nil {
		return nil, 0, err
	}
	completedCol, _ := t.col("completed_on", "updated_at", "finished_at")
	actorCol, _ := t.col("anonymized_name", "actor", "triggered_by")
	statusCol, err := t.requireCol("status", "state", "result")
	if err != nil {
		return nil, 0, err
	}
	durationCol, _ := t.col("duration_minutes")

	var pipelines []schema.Pipeline
	dropped := 0
	for _, row := range t.rows {
		created := parseTime(field(row, createdCol))
		if created.IsZero() {
			dropped++
			continue
		}
		completed := parseTime(field(row, completedCol))

		var minutes float64
		if durationCol >= 0 {
			v, err := parseFloat(field(row, durationCol))
			if err != nil {
				dropped++
				continue
			}
			minutes = v
		} else if !completed.IsZero() {
			minutes = completed.Sub(created).Minutes()
		}

		pipelines = append(pipelines, schema.Pipeline{
			Timestamp:       created,
			Completed:       completed,
			Actor:           field(row, actorCol),
			Status:          field(row, statusCol),
			DurationMinutes: minutes,
		})
	}
	return pipelines, dropped, nil
}
