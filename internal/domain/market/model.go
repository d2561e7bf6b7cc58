package market

import (
	"time"
)

// Signal is one observed topic with its mention volume for the current and
// previous observation windows
type Signal struct {
	Topic            string
	Mentions         int
	PreviousMentions int
	Sources          []string
	ObservedAt       time.Time
}

// Dataset is the raw payload produced by a data collector. Its contents are
// opaque to the niche selector; only trend analyzers interpret it.
type Dataset struct {
	Signals     []Signal
	CollectedAt time.Time
}

// TrendRecord is a scored signal about a niche's momentum. Strength and
// GrowthRate are supplied by the analyzer and are not range-validated.
type TrendRecord struct {
	Name       string  `json:"name"`
	Strength   float64 `json:"strength"`
	GrowthRate float64 `json:"growth_rate"`
}

// CompetitorRecord describes one competing product in a niche. Scoring only
// looks at how many of these exist; the remaining fields are reporting detail.
type CompetitorRecord struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// AudienceDescriptor captures who a niche's product would be sold to
type AudienceDescriptor struct {
	Roles        []string `json:"role"`
	Industries   []string `json:"industry"`
	CompanySizes []string `json:"company_size"`
}

// NicheReport is the result of one successful niche analysis. It is
// immutable after creation and owned by the caller once returned.
type NicheReport struct {
	ID             string             `json:"id"`
	Niche          string             `json:"niche"`
	PotentialScore float64            `json:"potential_score"`
	TargetAudience AudienceDescriptor `json:"target_audience"`
	Competitors    []CompetitorRecord `json:"competitors"`
	CreatedAt      time.Time          `json:"created_at"`
}

// ReportFilter defines criteria for listing stored reports
type ReportFilter struct {
	Niche        string
	MinPotential float64
	CreatedAfter time.Time
	Limit        int
	Offset       int
}
