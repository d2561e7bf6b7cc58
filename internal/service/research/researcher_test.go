package research

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"nichescout/internal/domain/market"
)

// mockCollector returns a fixed dataset or error
type mockCollector struct {
	data *market.Dataset
	err  error
}

func (m *mockCollector) CollectData(ctx context.Context) (*market.Dataset, error) {
	return m.data, m.err
}

// mockTrendAnalyzer returns fixed trend records or an error
type mockTrendAnalyzer struct {
	trends []market.TrendRecord
	err    error
}

func (m *mockTrendAnalyzer) AnalyzeTrends(ctx context.Context, data *market.Dataset) ([]market.TrendRecord, error) {
	return m.trends, m.err
}

// mockCompetitorAnalyzer maps niche names to results and records the niches
// it was asked about
type mockCompetitorAnalyzer struct {
	competitors map[string][]market.CompetitorRecord
	failures    map[string]error
	asked       []string
}

func (m *mockCompetitorAnalyzer) AnalyzeCompetitors(ctx context.Context, niche string) ([]market.CompetitorRecord, error) {
	m.asked = append(m.asked, niche)
	if err, ok := m.failures[niche]; ok {
		return nil, err
	}
	return m.competitors[niche], nil
}

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestResearcher(
	collector market.DataCollector,
	trendAnalyzer market.TrendAnalyzer,
	competitorAnalyzer market.CompetitorAnalyzer,
) *Researcher {
	return NewResearcher(collector, trendAnalyzer, competitorAnalyzer, nil, nil, ResearcherConfig{}, quietLogger())
}

func TestIdentifyNicheReturnsTopCandidate(t *testing.T) {
	researcher := newTestResearcher(
		&mockCollector{data: &market.Dataset{}},
		&mockTrendAnalyzer{trends: []market.TrendRecord{
			{Name: "x", Strength: 0.8, GrowthRate: 10},
		}},
		&mockCompetitorAnalyzer{},
	)

	report, err := researcher.IdentifyNiche(context.Background())
	if err != nil {
		t.Fatalf("identify: %v", err)
	}

	if report.Niche != "x" {
		t.Errorf("niche = %q, want x", report.Niche)
	}
	if report.PotentialScore != 1.0 {
		t.Errorf("potential score = %v, want exactly 1.0", report.PotentialScore)
	}
	if len(report.Competitors) != 0 {
		t.Errorf("expected no competitors, got %v", report.Competitors)
	}
	if len(report.TargetAudience.Roles) != 0 || len(report.TargetAudience.Industries) != 0 {
		t.Errorf("expected empty audience descriptor, got %+v", report.TargetAudience)
	}
	if report.ID == "" {
		t.Errorf("report should carry an ID")
	}
}

func TestIdentifyNicheCollectionFailureIsFatal(t *testing.T) {
	researcher := newTestResearcher(
		&mockCollector{err: errors.New("upstream down")},
		&mockTrendAnalyzer{},
		&mockCompetitorAnalyzer{},
	)

	report, err := researcher.IdentifyNiche(context.Background())
	if report != nil {
		t.Fatalf("expected nil report, got %+v", report)
	}

	var collErr *market.CollectionError
	if !errors.As(err, &collErr) {
		t.Fatalf("expected *market.CollectionError, got %v", err)
	}
}

func TestIdentifyNicheTrendAnalysisFailureIsFatal(t *testing.T) {
	analyzer := &mockCompetitorAnalyzer{}
	researcher := newTestResearcher(
		&mockCollector{data: &market.Dataset{}},
		&mockTrendAnalyzer{err: errors.New("model unavailable")},
		analyzer,
	)

	report, err := researcher.IdentifyNiche(context.Background())
	if report != nil {
		t.Fatalf("expected nil report, got %+v", report)
	}

	var trendErr *market.TrendAnalysisError
	if !errors.As(err, &trendErr) {
		t.Fatalf("expected *market.TrendAnalysisError, got %v", err)
	}
	if len(analyzer.asked) != 0 {
		t.Errorf("competitor analysis should not run after a fatal failure")
	}
}

func TestIdentifyNicheSkipsFailedCandidate(t *testing.T) {
	analyzer := &mockCompetitorAnalyzer{
		failures: map[string]error{"first": errors.New("scrape blocked")},
		competitors: map[string][]market.CompetitorRecord{
			"second": {{Name: "incumbent"}},
		},
	}
	researcher := newTestResearcher(
		&mockCollector{data: &market.Dataset{}},
		&mockTrendAnalyzer{trends: []market.TrendRecord{
			{Name: "first", Strength: 0.9, GrowthRate: 10},
			{Name: "second", Strength: 0.9, GrowthRate: 5},
		}},
		analyzer,
	)

	report, err := researcher.IdentifyNiche(context.Background())
	if err != nil {
		t.Fatalf("identify: %v", err)
	}

	if report.Niche != "second" {
		t.Errorf("niche = %q, want second (first candidate failed)", report.Niche)
	}
	// Unknown niche, one competitor: 50/100 * 1/2.
	if report.PotentialScore != 0.25 {
		t.Errorf("potential score = %v, want 0.25", report.PotentialScore)
	}
}

func TestIdentifyNicheStopsAfterTopThreeCandidates(t *testing.T) {
	failAll := errors.New("no data")
	analyzer := &mockCompetitorAnalyzer{
		failures: map[string]error{"a": failAll, "b": failAll, "c": failAll},
		competitors: map[string][]market.CompetitorRecord{
			"d": {},
		},
	}
	researcher := newTestResearcher(
		&mockCollector{data: &market.Dataset{}},
		&mockTrendAnalyzer{trends: []market.TrendRecord{
			{Name: "a", Strength: 0.9, GrowthRate: 40},
			{Name: "b", Strength: 0.9, GrowthRate: 30},
			{Name: "c", Strength: 0.9, GrowthRate: 20},
			{Name: "d", Strength: 0.9, GrowthRate: 10},
		}},
		analyzer,
	)

	report, err := researcher.IdentifyNiche(context.Background())
	if report != nil {
		t.Fatalf("expected nil report, got %+v", report)
	}
	if !errors.Is(err, market.ErrNoViableNiche) {
		t.Fatalf("expected ErrNoViableNiche, got %v", err)
	}

	// The fourth-ranked niche would have succeeded but must never be tried.
	if len(analyzer.asked) != 3 {
		t.Errorf("expected 3 competitor lookups, got %v", analyzer.asked)
	}
	for _, niche := range analyzer.asked {
		if niche == "d" {
			t.Errorf("candidate d is outside the top 3 and should not be analyzed")
		}
	}
}

func TestIdentifyNicheNoTrendsMeansNoViableNiche(t *testing.T) {
	researcher := newTestResearcher(
		&mockCollector{data: &market.Dataset{}},
		&mockTrendAnalyzer{},
		&mockCompetitorAnalyzer{},
	)

	_, err := researcher.IdentifyNiche(context.Background())
	if !errors.Is(err, market.ErrNoViableNiche) {
		t.Fatalf("expected ErrNoViableNiche, got %v", err)
	}
}
