package core

import (
	"sort"
	"time"
)

// WeekStart truncates a timestamp to the Monday that opens its ISO
// week, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// MonthStart truncates a timestamp to the first of its month, at
// midnight UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// countPerBucket buckets records by time and returns one count per
// occupied bucket, ordered by bucket key.
func countPerBucket[T any](records []T, at func(T) time.Time, bucket func(time.Time) time.Time) []float64 {
	counts := make(map[time.Time]float64)
	for _, r := range records {
		counts[bucket(at(r))]++
	}
	return orderedByTime(counts)
}

// countPerBucketPerIdentity returns one count per (bucket, identity)
// pair, ordered by bucket then identity. This is the per-person
// activity rate used by the ticket metrics.
func countPerBucketPerIdentity[T any](records []T, at func(T) time.Time, id func(T) string, bucket func(time.Time) time.Time) []float64 {
	type key struct {
		t    time.Time
		name string
	}
	counts := make(map[key]float64)
	for _, r := range records {
		counts[key{bucket(at(r)), id(r)}]++
	}
	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if !keys[a].t.Equal(keys[b].t) {
			return keys[a].t.Before(keys[b].t)
		}
		return keys[a].name < keys[b].name
	})
	out := make([]float64, len(keys))
	for i, k := range keys {
		out[i] = counts[k]
	}
	return out
}

// meanPerBucket averages a per-record value within each bucket and
// scales the result, ordered by bucket key. With scale 100 and a 0/1
// value this yields a per-bucket success percentage.
func meanPerBucket[T any](records []T, at func(T) time.Time, value func(T) float64, bucket func(time.Time) time.Time, scale float64) []float64 {
	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]float64)
	for _, r := range records {
		b := bucket(at(r))
		sums[b] += value(r)
		counts[b]++
	}
	means := make(map[time.Time]float64, len(sums))
	for b, sum := range sums {
		means[b] = sum / counts[b] * scale
	}
	return orderedByTime(means)
}

// countPerIdentity returns one total count per identity, ordered by
// identity name.
func countPerIdentity[T any](records []T, id func(T) string) []float64 {
	counts := make(map[string]float64)
	for _, r := range records {
		counts[id(r)]++
	}
	return orderedByName(counts)
}

// distinctPerIdentity counts, for each identity, the number of
// distinct keys it touches. Used for context switching, where the key
// is the repository slug.
func distinctPerIdentity[T any](records []T, id func(T) string, key func(T) string) []float64 {
	seen := make(map[string]map[string]struct{})
	for _, r := range records {
		name := id(r)
		if seen[name] == nil {
			seen[name] = make(map[string]struct{})
		}
		seen[name][key(r)] = struct{}{}
	}
	counts := make(map[string]float64, len(seen))
	for name, keys := range seen {
		counts[name] = float64(len(keys))
	}
	return orderedByName(counts)
}

// values extracts one value per record, preserving record order.
func values[T any](records []T, value func(T) float64) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = value(r)
	}
	return out
}

// positiveValues extracts one value per record, keeping only strictly
// positive results. Zero and negative durations mean the source never
// recorded a usable completion time.
func positiveValues[T any](records []T, value func(T) float64) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		if v := value(r); v > 0 {
			out = append(out, v)
		}
	}
	return out
}

func orderedByTime(m map[time.Time]float64) []float64 {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a].Before(keys[b]) })
	out := make([]float64, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}

func orderedByName(m map[string]float64) []float64 {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]float64, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}
