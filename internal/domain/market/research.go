// internal/domain/market/research.go

package market

import (
	"context"
	"errors"
	"fmt"
)

// DataCollector gathers raw market data from an upstream source
type DataCollector interface {
	// CollectData fetches the current market dataset
	CollectData(ctx context.Context) (*Dataset, error)
}

// TrendAnalyzer turns a collected dataset into trend records
type TrendAnalyzer interface {
	// AnalyzeTrends extracts trend records from the dataset
	AnalyzeTrends(ctx context.Context, data *Dataset) ([]TrendRecord, error)
}

// CompetitorAnalyzer surveys the competitive landscape of a single niche
type CompetitorAnalyzer interface {
	// AnalyzeCompetitors returns the known competitors in the niche
	AnalyzeCompetitors(ctx context.Context, niche string) ([]CompetitorRecord, error)
}

// Researcher identifies a viable market niche from current trends
type Researcher interface {
	// IdentifyNiche runs one research pass and returns the highest-ranked
	// niche whose analysis succeeded. It returns ErrNoViableNiche when none
	// of the top candidates could be analyzed, and a *CollectionError or
	// *TrendAnalysisError when an upstream stage failed outright.
	IdentifyNiche(ctx context.Context) (*NicheReport, error)
}

// ErrNoViableNiche is returned when collection and trend analysis succeeded
// but no candidate niche produced a report
var ErrNoViableNiche = errors.New("no viable niche identified")

// ErrNotFound is returned by stores when a requested record does not exist
var ErrNotFound = errors.New("not found")

// CollectionError indicates the data collector failed; the whole research
// pass is abandoned
type CollectionError struct {
	Err error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("market data collection failed: %v", e.Err)
}

func (e *CollectionError) Unwrap() error { return e.Err }

// TrendAnalysisError indicates trend analysis failed; the whole research
// pass is abandoned
type TrendAnalysisError struct {
	Err error
}

func (e *TrendAnalysisError) Error() string {
	return fmt.Sprintf("trend analysis failed: %v", e.Err)
}

func (e *TrendAnalysisError) Unwrap() error { return e.Err }

// CompetitorAnalysisError indicates competitor analysis failed for one
// niche; the research pass skips that candidate and continues
type CompetitorAnalysisError struct {
	Niche string
	Err   error
}

func (e *CompetitorAnalysisError) Error() string {
	return fmt.Sprintf("competitor analysis failed for niche %q: %v", e.Niche, e.Err)
}

func (e *CompetitorAnalysisError) Unwrap() error { return e.Err }
