package listening

import (
	"context"
	"errors"

	"nichescout/internal/domain/market"
)

// defaultSaturationMentions is the mention volume at which a topic's
// strength saturates at 1.0
const defaultSaturationMentions = 1000

// AnalyzerConfig contains configuration for the analyzer
type AnalyzerConfig struct {
	// SaturationMentions is the mention count mapped to full strength
	SaturationMentions int
}

// Analyzer implements market.TrendAnalyzer by turning raw mention signals
// into trend records
type Analyzer struct {
	config AnalyzerConfig
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(config AnalyzerConfig) *Analyzer {
	if config.SaturationMentions <= 0 {
		config.SaturationMentions = defaultSaturationMentions
	}
	return &Analyzer{config: config}
}

// AnalyzeTrends extracts one trend record per signal. Strength is the
// mention volume relative to the saturation point, capped at 1.0; growth
// rate is the percent change between the previous and current windows.
func (a *Analyzer) AnalyzeTrends(ctx context.Context, data *market.Dataset) ([]market.TrendRecord, error) {
	if data == nil {
		return nil, errors.New("no dataset to analyze")
	}

	records := make([]market.TrendRecord, 0, len(data.Signals))
	for _, signal := range data.Signals {
		records = append(records, market.TrendRecord{
			Name:       signal.Topic,
			Strength:   a.strength(signal),
			GrowthRate: growthRate(signal),
		})
	}
	return records, nil
}

// strength maps mention volume onto [0,1]
func (a *Analyzer) strength(signal market.Signal) float64 {
	s := float64(signal.Mentions) / float64(a.config.SaturationMentions)
	if s > 1 {
		return 1
	}
	return s
}

// growthRate is the percent change in mentions between windows. A topic
// with no previous mentions counts as 100% growth if it has any now.
func growthRate(signal market.Signal) float64 {
	if signal.PreviousMentions <= 0 {
		if signal.Mentions > 0 {
			return 100
		}
		return 0
	}
	delta := float64(signal.Mentions - signal.PreviousMentions)
	return delta / float64(signal.PreviousMentions) * 100
}
