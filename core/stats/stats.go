// Package stats implements the nonparametric machinery behind every
// pre/post comparison: the Mann-Whitney U test with midrank tie
// handling, its normal approximation, and the descriptive helpers
// (median, mean, sample standard deviation) reported alongside it.
package stats

import (
	"math"
	"sort"

	"github.com/devexhq/devex/schema"
)

// TestResult holds the outcome of a two-sided Mann-Whitney U test.
type TestResult struct {
	U          float64 // U statistic of the first sample
	Z          float64 // standardized statistic under H0
	PValue     float64 // two-sided asymptotic p-value
	EffectSize float64 // rank-biserial style r derived from PValue
}

// MannWhitneyU runs a two-sided Mann-Whitney U test on the two samples
// using the normal approximation with tie correction. Ranks are
// midranks, so fully tied inputs degenerate to a zero variance and a
// p-value of 1. No continuity correction is applied.
func MannWhitneyU(pre, post []float64) TestResult {
	n1 := len(pre)
	n2 := len(post)
	n := n1 + n2

	combined := make([]float64, 0, n)
	combined = append(combined, pre...)
	combined = append(combined, post...)
	ranks, tieTerm := midranks(combined)

	var r1 float64
	for i := 0; i < n1; i++ {
		r1 += ranks[i]
	}
	u1 := r1 - float64(n1)*float64(n1+1)/2

	mu := float64(n1) * float64(n2) / 2
	variance := float64(n1) * float64(n2) / 12 *
		(float64(n+1) - tieTerm/(float64(n)*float64(n-1)))

	if variance <= 0 {
		// Every observation shares one midrank. There is nothing to
		// distinguish the groups.
		return TestResult{U: u1, Z: 0, PValue: 1, EffectSize: 0}
	}

	z := (u1 - mu) / math.Sqrt(variance)
	p := math.Erfc(math.Abs(z) / math.Sqrt2)
	return TestResult{U: u1, Z: z, PValue: p, EffectSize: effectFromP(p, n)}
}

// effectFromP recovers the standard normal quantile implied by the
// two-sided p-value and scales it by sqrt(n), mirroring r = |z|/sqrt(n).
// A p-value that underflows to zero would send the quantile to +Inf,
// so that case reports no effect, same as p >= 1.
func effectFromP(p float64, n int) float64 {
	if n == 0 || p <= 0 || p >= 1 {
		return 0
	}
	z := math.Sqrt2 * math.Erfinv(1-p)
	return math.Abs(z) / math.Sqrt(float64(n))
}

// EffectLabel buckets an effect size r into the conventional
// negligible/small/medium/large interpretation bands.
func EffectLabel(r float64) string {
	r = math.Abs(r)
	switch {
	case r < 0.1:
		return schema.EffectNegligible
	case r < 0.3:
		return schema.EffectSmall
	case r < 0.5:
		return schema.EffectMedium
	default:
		return schema.EffectLarge
	}
}

// midranks assigns 1-based midranks to values, averaging ranks within
// tie groups, and returns the tie correction term sum(t^3 - t) over
// all tie groups.
func midranks(values []float64) ([]float64, float64) {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	ranks := make([]float64, n)
	var tieTerm float64
	for i := 0; i < n; {
		j := i
		for j < n && values[order[j]] == values[order[i]] {
			j++
		}
		// Positions i..j-1 hold the same value; each gets the average
		// of ranks i+1..j.
		mid := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = mid
		}
		t := float64(j - i)
		tieTerm += t*t*t - t
		i = j
	}
	return ranks, tieTerm
}

// Median returns the middle value of the sample, averaging the two
// central values for even lengths. Zero for an empty sample.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Mean returns the arithmetic mean, or zero for an empty sample.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleStdDev returns the standard deviation with one delta degree of
// freedom. Samples of one or fewer values have no spread to measure,
// so the result is zero.
func SampleStdDev(values []float64) float64 {
	n := len(values)
	if n <= 1 {
		return 0
	}
	m := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// RemoveNonFinite drops NaN and infinite values from the sample.
func RemoveNonFinite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}
