package research

import (
	"sort"

	"nichescout/internal/domain/market"
)

// strengthGate is the minimum strength a trend must exceed before its growth
// rate counts toward ranking. At or below the gate the trend scores zero.
const strengthGate = 0.7

type scoredTrend struct {
	name  string
	score float64
}

// trendScore computes the ranking score for a single trend. The gate is a
// hard cutoff, not a weight: weak trends score exactly zero regardless of
// growth rate.
func trendScore(t market.TrendRecord) float64 {
	if t.Strength > strengthGate {
		return t.GrowthRate
	}
	return 0
}

// RankTrends orders trend names from most to least viable. Ties in score are
// broken by ascending name, giving a total order. The output is a
// permutation of the input names; duplicates are preserved.
func RankTrends(trends []market.TrendRecord) []string {
	if len(trends) == 0 {
		return nil
	}

	scored := make([]scoredTrend, 0, len(trends))
	for _, t := range trends {
		scored = append(scored, scoredTrend{name: t.Name, score: trendScore(t)})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].name < scored[j].name
	})

	names := make([]string, len(scored))
	for i, s := range scored {
		names[i] = s.name
	}
	return names
}
