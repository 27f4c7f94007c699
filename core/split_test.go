package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/devexhq/devex/schema"
)

var refDate = time.Date(2024, 10, 8, 0, 0, 0, 0, time.UTC)

func commitOn(day string, author string) schema.Commit {
	ts, _ := time.Parse("2006-01-02", day)
	return schema.Commit{Timestamp: ts, Author: author}
}

func TestSplitByReference(t *testing.T) {
	commits := []schema.Commit{
		commitOn("2024-09-01", "P 001"),
		commitOn("2024-10-07", "P 002"),
		commitOn("2024-10-08", "P 003"), // boundary lands in post
		commitOn("2024-11-01", "P 004"),
	}

	s := SplitByReference(commits, commitAt, refDate)

	assert.Len(t, s.Pre, 2)
	assert.Len(t, s.Post, 2)
	assert.Equal(t, "P 003", s.Post[0].Author, "a record at the reference date belongs to post")
	assert.Equal(t, len(commits), len(s.Pre)+len(s.Post), "no record may be lost or duplicated")
}

func TestSplitByReferenceDropsZeroTimestamps(t *testing.T) {
	// A zero timestamp marks a row whose source value failed to parse.
	commits := []schema.Commit{
		{Author: "P 001"},
		commitOn("2024-09-01", "P 002"),
	}

	s := SplitByReference(commits, commitAt, refDate)

	assert.Len(t, s.Pre, 1)
	assert.Empty(t, s.Post)
	assert.Equal(t, "P 002", s.Pre[0].Author)
}

func TestSplitByReferenceOutsideRange(t *testing.T) {
	commits := []schema.Commit{
		commitOn("2020-01-01", "P 001"),
		commitOn("2020-06-01", "P 002"),
	}

	s := SplitByReference(commits, commitAt, refDate)

	assert.Len(t, s.Pre, 2)
	assert.Empty(t, s.Post, "a reference after all data leaves post empty, not an error")
}

func TestSplitByReferenceNormalizesZones(t *testing.T) {
	zone := time.FixedZone("UTC+10", 10*3600)
	// 2024-10-08 08:00 +10:00 is 2024-10-07 22:00 UTC, so still pre.
	c := schema.Commit{Timestamp: time.Date(2024, 10, 8, 8, 0, 0, 0, zone)}

	s := SplitByReference([]schema.Commit{c}, commitAt, refDate)

	assert.Len(t, s.Pre, 1)
	assert.Empty(t, s.Post)
}

func TestFilterCommon(t *testing.T) {
	s := split[schema.Commit]{
		Pre:  []schema.Commit{commitOn("2024-09-01", "A"), commitOn("2024-09-02", "B")},
		Post: []schema.Commit{commitOn("2024-11-01", "B"), commitOn("2024-11-02", "C")},
	}

	got := filterCommon(s, commitAuthor, []string{"B"})

	assert.Len(t, got.Pre, 1)
	assert.Len(t, got.Post, 1)
	assert.Equal(t, "B", got.Pre[0].Author)
	assert.Equal(t, "B", got.Post[0].Author)
}

func TestWithoutIdentity(t *testing.T) {
	s := split[schema.Commit]{
		Pre:  []schema.Commit{commitOn("2024-09-01", "P n/a"), commitOn("2024-09-02", "B")},
		Post: []schema.Commit{commitOn("2024-11-01", "P n/a")},
	}

	got := withoutIdentity(s, commitAuthor, schema.UnmappedIdentity)

	assert.Len(t, got.Pre, 1)
	assert.Equal(t, "B", got.Pre[0].Author)
	assert.Empty(t, got.Post)
}
