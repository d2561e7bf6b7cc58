package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"nichescout/internal/domain/market"
)

// stubResearcher returns a fixed report or error
type stubResearcher struct {
	report *market.NicheReport
	err    error
}

func (s *stubResearcher) IdentifyNiche(ctx context.Context) (*market.NicheReport, error) {
	return s.report, s.err
}

// stubReportStore serves reports from a map
type stubReportStore struct {
	reports map[string]market.NicheReport
}

func (s *stubReportStore) SaveReport(ctx context.Context, report market.NicheReport) error {
	s.reports[report.ID] = report
	return nil
}

func (s *stubReportStore) GetReport(ctx context.Context, id string) (*market.NicheReport, error) {
	report, ok := s.reports[id]
	if !ok {
		return nil, market.ErrNotFound
	}
	return &report, nil
}

func (s *stubReportStore) ListReports(ctx context.Context, filter market.ReportFilter) ([]market.NicheReport, error) {
	var out []market.NicheReport
	for _, report := range s.reports {
		out = append(out, report)
	}
	return out, nil
}

func TestRunResearchReturnsReport(t *testing.T) {
	handler := NewResearchHandler(&stubResearcher{
		report: &market.NicheReport{
			ID:             "r1",
			Niche:          "project_management",
			PotentialScore: 0.75,
		},
	}, &stubReportStore{reports: map[string]market.NicheReport{}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/research", nil)
	rec := httptest.NewRecorder()

	handler.RunResearch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var report market.NicheReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.Niche != "project_management" || report.PotentialScore != 0.75 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestRunResearchNoViableNiche(t *testing.T) {
	handler := NewResearchHandler(&stubResearcher{
		err: market.ErrNoViableNiche,
	}, &stubReportStore{reports: map[string]market.NicheReport{}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/research", nil)
	rec := httptest.NewRecorder()

	handler.RunResearch(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRunResearchCollectionFailureMapsToBadGateway(t *testing.T) {
	handler := NewResearchHandler(&stubResearcher{
		err: &market.CollectionError{Err: errors.New("twitter unreachable")},
	}, &stubReportStore{reports: map[string]market.NicheReport{}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/research", nil)
	rec := httptest.NewRecorder()

	handler.RunResearch(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] != "Market data collection failed" {
		t.Errorf("unexpected error message: %v", body)
	}
}
