package core

import "time"

// split holds the two sides of a reference-date partition.
type split[T any] struct {
	Pre  []T
	Post []T
}

// SplitByReference partitions records around the reference date using
// the supplied timestamp accessor. Records strictly before the
// reference land in Pre, records at or after it land in Post.
// Timestamps are compared in UTC. Zero timestamps mark records whose
// source value failed to parse and are excluded from both sides.
func SplitByReference[T any](records []T, at func(T) time.Time, reference time.Time) split[T] {
	var s split[T]
	ref := reference.UTC()
	for _, r := range records {
		ts := at(r)
		if ts.IsZero() {
			continue
		}
		if ts.UTC().Before(ref) {
			s.Pre = append(s.Pre, r)
		} else {
			s.Post = append(s.Post, r)
		}
	}
	return s
}

// filterByIdentity keeps only records whose identity is in allowed.
func filterByIdentity[T any](records []T, id func(T) string, allowed []string) []T {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if _, ok := set[id(r)]; ok {
			out = append(out, r)
		}
	}
	return out
}

// filterCommon restricts both sides to the common contributor set.
func filterCommon[T any](s split[T], id func(T) string, common []string) split[T] {
	return split[T]{
		Pre:  filterByIdentity(s.Pre, id, common),
		Post: filterByIdentity(s.Post, id, common),
	}
}

// withoutIdentity drops records carrying the given identity, used to
// strip the unmapped sentinel before full-workforce aggregation.
func withoutIdentity[T any](s split[T], id func(T) string, sentinel string) split[T] {
	keep := func(records []T) []T {
		out := make([]T, 0, len(records))
		for _, r := range records {
			if id(r) == sentinel {
				continue
			}
			out = append(out, r)
		}
		return out
	}
	return split[T]{Pre: keep(s.Pre), Post: keep(s.Post)}
}
