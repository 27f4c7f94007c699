package core

import "sort"

// ContributorSets captures who was active on each side of the
// reference date and who appears on both.
type ContributorSets struct {
	Pre    []string
	Post   []string
	Common []string
}

// ResolveContributors computes the distinct identities active in each
// sub-period and their intersection. The unmapped sentinel never
// enters any of the three sets. All sets are sorted so downstream
// output is deterministic.
func ResolveContributors[T any](s split[T], id func(T) string, sentinel string) ContributorSets {
	collect := func(records []T) map[string]struct{} {
		set := make(map[string]struct{})
		for _, r := range records {
			name := id(r)
			if name == "" || name == sentinel {
				continue
			}
			set[name] = struct{}{}
		}
		return set
	}

	preSet := collect(s.Pre)
	postSet := collect(s.Post)

	sets := ContributorSets{
		Pre:  sortedKeys(preSet),
		Post: sortedKeys(postSet),
	}
	for name := range preSet {
		if _, ok := postSet[name]; ok {
			sets.Common = append(sets.Common, name)
		}
	}
	sort.Strings(sets.Common)
	return sets
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
