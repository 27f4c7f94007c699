package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devexhq/devex/schema"
)

func TestResolveContributors(t *testing.T) {
	s := split[schema.Commit]{
		Pre:  []schema.Commit{{Author: "A"}, {Author: "B"}, {Author: "A"}},
		Post: []schema.Commit{{Author: "B"}, {Author: "C"}},
	}

	sets := ResolveContributors(s, commitAuthor, schema.UnmappedIdentity)

	assert.Equal(t, []string{"A", "B"}, sets.Pre)
	assert.Equal(t, []string{"B", "C"}, sets.Post)
	assert.Equal(t, []string{"B"}, sets.Common)
}

func TestResolveContributorsExcludesSentinel(t *testing.T) {
	s := split[schema.Commit]{
		Pre:  []schema.Commit{{Author: "P n/a"}, {Author: "A"}, {Author: ""}},
		Post: []schema.Commit{{Author: "P n/a"}, {Author: "A"}},
	}

	sets := ResolveContributors(s, commitAuthor, schema.UnmappedIdentity)

	assert.Equal(t, []string{"A"}, sets.Pre)
	assert.Equal(t, []string{"A"}, sets.Post)
	assert.Equal(t, []string{"A"}, sets.Common, "the unmapped sentinel never counts as a common contributor")
}

func TestResolveContributorsCommonIsSubset(t *testing.T) {
	s := split[schema.Commit]{
		Pre:  []schema.Commit{{Author: "A"}, {Author: "B"}, {Author: "D"}},
		Post: []schema.Commit{{Author: "C"}, {Author: "D"}, {Author: "E"}},
	}

	sets := ResolveContributors(s, commitAuthor, schema.UnmappedIdentity)

	preSet := make(map[string]bool)
	for _, n := range sets.Pre {
		preSet[n] = true
	}
	postSet := make(map[string]bool)
	for _, n := range sets.Post {
		postSet[n] = true
	}
	for _, n := range sets.Common {
		assert.True(t, preSet[n], "common member %q missing from pre", n)
		assert.True(t, postSet[n], "common member %q missing from post", n)
	}
}

func TestResolveContributorsDisjointPeriods(t *testing.T) {
	s := split[schema.Commit]{
		Pre:  []schema.Commit{{Author: "A"}},
		Post: []schema.Commit{{Author: "B"}},
	}

	sets := ResolveContributors(s, commitAuthor, schema.UnmappedIdentity)

	assert.Empty(t, sets.Common)
}
