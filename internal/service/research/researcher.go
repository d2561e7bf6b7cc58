// internal/service/research/researcher.go

package research

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"nichescout/internal/domain/market"
)

// maxCandidates caps how many ranked niches get competitor analysis. If all
// of them fail, the pass reports no viable niche even when a lower-ranked
// candidate might have succeeded.
const maxCandidates = 3

// ReportStore defines the storage interface for niche reports
type ReportStore interface {
	// SaveReport saves a report to storage
	SaveReport(ctx context.Context, report market.NicheReport) error

	// GetReport retrieves a report by ID
	GetReport(ctx context.Context, id string) (*market.NicheReport, error)

	// ListReports finds reports matching the filter
	ListReports(ctx context.Context, filter market.ReportFilter) ([]market.NicheReport, error)
}

// ResearcherConfig contains configuration for the researcher
type ResearcherConfig struct {
	EventsSubject string
}

// Researcher implements the market.Researcher interface by composing the
// injected collector and analyzers with the ranking and scoring heuristics
// in this package. A single research pass is synchronous and sequential.
type Researcher struct {
	collector          market.DataCollector
	trendAnalyzer      market.TrendAnalyzer
	competitorAnalyzer market.CompetitorAnalyzer
	reportStore        ReportStore
	eventBus           *nats.Conn
	config             ResearcherConfig
	logger             logrus.FieldLogger
}

// NewResearcher creates a new researcher. reportStore and eventBus may be
// nil; persistence and event publication are then skipped.
func NewResearcher(
	collector market.DataCollector,
	trendAnalyzer market.TrendAnalyzer,
	competitorAnalyzer market.CompetitorAnalyzer,
	reportStore ReportStore,
	eventBus *nats.Conn,
	config ResearcherConfig,
	logger logrus.FieldLogger,
) *Researcher {
	return &Researcher{
		collector:          collector,
		trendAnalyzer:      trendAnalyzer,
		competitorAnalyzer: competitorAnalyzer,
		reportStore:        reportStore,
		eventBus:           eventBus,
		config:             config,
		logger:             logger,
	}
}

// IdentifyNiche runs one research pass: collect market data, analyze trends,
// and analyze competitors for the top-ranked candidates in order. The first
// candidate whose competitor analysis succeeds becomes the report. Collector
// and trend analyzer failures abort the pass with a typed error; a
// competitor analysis failure only skips its candidate.
func (r *Researcher) IdentifyNiche(ctx context.Context) (*market.NicheReport, error) {
	r.logger.Info("collecting market data")
	data, err := r.collector.CollectData(ctx)
	if err != nil {
		r.logger.WithError(err).Error("failed to collect market data")
		return nil, &market.CollectionError{Err: err}
	}

	r.logger.Info("analyzing trends")
	trends, err := r.trendAnalyzer.AnalyzeTrends(ctx, data)
	if err != nil {
		r.logger.WithError(err).Error("failed to analyze trends")
		return nil, &market.TrendAnalysisError{Err: err}
	}

	ranked := RankTrends(trends)
	if len(ranked) > maxCandidates {
		ranked = ranked[:maxCandidates]
	}

	var reports []market.NicheReport
	for _, niche := range ranked {
		competitors, err := r.competitorAnalyzer.AnalyzeCompetitors(ctx, niche)
		if err != nil {
			analysisErr := &market.CompetitorAnalysisError{Niche: niche, Err: err}
			r.logger.WithField("niche", niche).WithError(analysisErr).Warn("skipping candidate")
			continue
		}

		reports = append(reports, market.NicheReport{
			ID:             uuid.New().String(),
			Niche:          niche,
			PotentialScore: ScorePotential(niche, competitors),
			TargetAudience: TargetAudience(niche),
			Competitors:    competitors,
			CreatedAt:      time.Now(),
		})
	}

	if len(reports) == 0 {
		return nil, market.ErrNoViableNiche
	}

	// The first accumulated report belongs to the highest-ranked candidate
	// that survived competitor analysis.
	report := reports[0]

	if r.reportStore != nil {
		if err := r.reportStore.SaveReport(ctx, report); err != nil {
			// Persistence is best-effort; the identification result stands.
			r.logger.WithError(err).Error("failed to save niche report")
		}
	}

	if err := r.publishReportEvent(report); err != nil {
		r.logger.WithError(err).Error("failed to publish niche identified event")
	}

	r.logger.WithFields(logrus.Fields{
		"niche":           report.Niche,
		"potential_score": report.PotentialScore,
		"competitors":     len(report.Competitors),
	}).Info("niche identified")

	return &report, nil
}

// publishReportEvent publishes the identified niche to the event bus
func (r *Researcher) publishReportEvent(report market.NicheReport) error {
	if r.eventBus == nil || r.config.EventsSubject == "" {
		return nil
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}

	return r.eventBus.Publish(r.config.EventsSubject, payload)
}
