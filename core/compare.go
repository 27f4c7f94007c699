package core

import (
	"github.com/devexhq/devex/core/stats"
	"github.com/devexhq/devex/schema"
)

// CompareOption attaches caller-supplied context to a comparison
// outcome, such as the contributor sets behind the two samples.
type CompareOption func(*schema.MetricOutcome)

// WithCommonContributors records the common contributor set used to
// restrict both samples.
func WithCommonContributors(common []string) CompareOption {
	return func(o *schema.MetricOutcome) {
		o.CommonContributors = common
	}
}

// WithAllContributors records the full contributor sets active on
// each side.
func WithAllContributors(pre, post []string) CompareOption {
	return func(o *schema.MetricOutcome) {
		o.AllContributorsPre = pre
		o.AllContributorsPost = post
	}
}

// WithAux attaches an auxiliary per-side volume, serialized as
// <name>_n1 and <name>_n2 next to the tested quantity.
func WithAux(name string, pre, post int) CompareOption {
	return func(o *schema.MetricOutcome) {
		if o.Aux == nil {
			o.Aux = make(map[string]int)
		}
		o.Aux[name+"_n1"] = pre
		o.Aux[name+"_n2"] = post
	}
}

// Compare runs a two-sided Mann-Whitney U test on the pre and post
// series and assembles the uniform outcome record. Non-finite values
// are removed first; if either side is then empty the outcome is the
// structured insufficient-data record instead of a test result.
func Compare(metric string, pre, post []float64, opts ...CompareOption) schema.MetricOutcome {
	pre = stats.RemoveNonFinite(pre)
	post = stats.RemoveNonFinite(post)

	if len(pre) == 0 || len(post) == 0 {
		return schema.InsufficientOutcome(metric, len(pre), len(post))
	}

	res := stats.MannWhitneyU(pre, post)
	medianPre := stats.Median(pre)
	medianPost := stats.Median(post)

	var pctChange float64
	if medianPre != 0 {
		pctChange = schema.Round2((medianPost - medianPre) / medianPre * 100)
	}

	out := schema.MetricOutcome{
		Metric:           metric,
		Statistic:        res.U,
		PValue:           res.PValue,
		Significant:      res.PValue < schema.SignificanceLevel,
		EffectSize:       res.EffectSize,
		EffectSizeLabel:  stats.EffectLabel(res.EffectSize),
		N1:               len(pre),
		N2:               len(post),
		MedianPre:        medianPre,
		MedianPost:       medianPost,
		MeanPre:          stats.Mean(pre),
		MeanPost:         stats.Mean(post),
		StdPre:           stats.SampleStdDev(pre),
		StdPost:          stats.SampleStdDev(post),
		PercentageChange: pctChange,
	}
	for _, opt := range opts {
		opt(&out)
	}
	return out
}
