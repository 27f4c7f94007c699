package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devexhq/devex/core/stats"
	"github.com/devexhq/devex/schema"
)

func TestCompareIdenticalGroups(t *testing.T) {
	out := Compare("m", []float64{5, 5, 5}, []float64{5, 5, 5})

	assert.Equal(t, 1.0, out.PValue)
	assert.False(t, out.Significant)
	assert.Equal(t, 0.0, out.EffectSize)
	assert.Equal(t, schema.EffectNegligible, out.EffectSizeLabel)
	assert.Equal(t, 0.0, out.PercentageChange)
}

func TestCompareShiftedConstantGroups(t *testing.T) {
	out := Compare("m", []float64{1, 1, 1}, []float64{10, 10, 10})

	assert.Less(t, out.PValue, schema.SignificanceLevel)
	assert.True(t, out.Significant)
	assert.Equal(t, 1.0, out.MedianPre)
	assert.Equal(t, 10.0, out.MedianPost)
	assert.Equal(t, 900.0, out.PercentageChange)
	assert.Equal(t, schema.EffectLarge, out.EffectSizeLabel)
	assert.Equal(t, 3, out.N1)
	assert.Equal(t, 3, out.N2)
}

func TestCompareSymmetry(t *testing.T) {
	pre := []float64{1, 2, 3, 4, 9}
	post := []float64{5, 6, 7, 8}

	ab := Compare("m", pre, post)
	ba := Compare("m", post, pre)

	assert.InDelta(t, ab.PValue, ba.PValue, 1e-12)
	assert.InDelta(t, ab.EffectSize, ba.EffectSize, 1e-12)
	assert.Equal(t, ab.MedianPre, ba.MedianPost)
	assert.Equal(t, ab.MedianPost, ba.MedianPre)
}

func TestCompareZeroMedianGuard(t *testing.T) {
	out := Compare("m", []float64{0, 0, 0}, []float64{1, 2, 3})

	assert.Equal(t, 0.0, out.PercentageChange, "division by a zero pre-median is forced to 0")
}

func TestCompareRemovesNonFinite(t *testing.T) {
	out := Compare("m", []float64{1, math.NaN(), 2}, []float64{3, math.Inf(1), 4})

	assert.Equal(t, 2, out.N1)
	assert.Equal(t, 2, out.N2)
	assert.False(t, out.Insufficient())
}

func TestCompareInsufficientData(t *testing.T) {
	out := Compare("m", nil, []float64{1, 2})

	require.True(t, out.Insufficient())
	assert.Equal(t, "Insufficient data", out.Err)
	assert.Equal(t, 0, out.N1)
	assert.Equal(t, 2, out.N2)

	// A side that is all-NaN empties out the same way.
	out = Compare("m", []float64{math.NaN()}, []float64{1, 2})
	assert.True(t, out.Insufficient())
}

func TestCompareOptions(t *testing.T) {
	out := Compare("m", []float64{1, 2}, []float64{3, 4},
		WithCommonContributors([]string{"A", "B"}),
		WithAllContributors([]string{"A", "B", "C"}, []string{"A", "B"}),
		WithAux("commitVolume", 12, 34))

	assert.Equal(t, []string{"A", "B"}, out.CommonContributors)
	assert.Equal(t, []string{"A", "B", "C"}, out.AllContributorsPre)
	assert.Equal(t, 12, out.Aux["commitVolume_n1"])
	assert.Equal(t, 34, out.Aux["commitVolume_n2"])
}

func TestEffectBucketsAreMonotonic(t *testing.T) {
	labels := map[string]int{
		schema.EffectNegligible: 0,
		schema.EffectSmall:      1,
		schema.EffectMedium:     2,
		schema.EffectLarge:      3,
	}
	prev := 0
	for r := 0.0; r <= 1.0; r += 0.01 {
		cur := labels[stats.EffectLabel(r)]
		assert.GreaterOrEqual(t, cur, prev, "bucket must not step down as r grows (r=%.2f)", r)
		prev = cur
	}
}
