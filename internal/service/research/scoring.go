package research

import (
	"nichescout/internal/domain/market"
)

// marketSizes maps niche names to estimated market size in millions of
// dollars. Keys are matched exactly against trend names, including the
// legacy "workflow Automation" casing; unknown niches fall back to
// defaultMarketSize.
var marketSizes = map[string]float64{
	"project_management":  150,
	"workflow Automation": 200,
}

// defaultMarketSize is assumed for niches without an entry above, in millions
const defaultMarketSize = 50

// EstimateMarketSize returns the assumed market size for a niche in millions
func EstimateMarketSize(niche string) float64 {
	if size, ok := marketSizes[niche]; ok {
		return size
	}
	return defaultMarketSize
}

// ScorePotential computes the viability score for a niche given its
// competitive landscape. An empty landscape scores exactly 1.0. Otherwise
// the score scales linearly with assumed market size and decreases
// monotonically with competitor count; it can exceed 1.0 for large markets
// with few competitors and is deliberately not clamped.
func ScorePotential(niche string, competitors []market.CompetitorRecord) float64 {
	if len(competitors) == 0 {
		return 1.0
	}

	marketSize := EstimateMarketSize(niche)
	return (marketSize / 100) * (1 / float64(len(competitors)+1))
}
