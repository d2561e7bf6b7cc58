// internal/service/competitors/analyzer.go

package competitors

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"nichescout/internal/domain/market"
)

// Store defines the storage interface for competitor records
type Store interface {
	// FindByNiche returns the known competitors in a niche
	FindByNiche(ctx context.Context, niche string) ([]market.CompetitorRecord, error)
}

// Analyzer implements market.CompetitorAnalyzer over a competitor store
type Analyzer struct {
	store  Store
	logger logrus.FieldLogger
}

// NewAnalyzer creates a new competitor analyzer
func NewAnalyzer(store Store, logger logrus.FieldLogger) *Analyzer {
	return &Analyzer{
		store:  store,
		logger: logger,
	}
}

// AnalyzeCompetitors returns the competitive landscape for a single niche.
// An empty result is a valid landscape, not an error.
func (a *Analyzer) AnalyzeCompetitors(ctx context.Context, niche string) ([]market.CompetitorRecord, error) {
	competitors, err := a.store.FindByNiche(ctx, niche)
	if err != nil {
		return nil, fmt.Errorf("finding competitors for %q: %w", niche, err)
	}

	a.logger.WithFields(logrus.Fields{
		"niche":       niche,
		"competitors": len(competitors),
	}).Debug("analyzed competitive landscape")

	return competitors, nil
}
