package listening

import (
	"context"
	"testing"
	"time"

	"nichescout/internal/domain/market"
)

func TestAnalyzeTrendsProducesOneRecordPerSignal(t *testing.T) {
	analyzer := NewAnalyzer(AnalyzerConfig{SaturationMentions: 1000})

	data := &market.Dataset{
		CollectedAt: time.Now(),
		Signals: []market.Signal{
			{Topic: "project_management", Mentions: 800, PreviousMentions: 400},
			{Topic: "crm", Mentions: 2500, PreviousMentions: 2500},
			{Topic: "niche_tool", Mentions: 50, PreviousMentions: 0},
			{Topic: "fading", Mentions: 0, PreviousMentions: 0},
		},
	}

	records, err := analyzer.AnalyzeTrends(context.Background(), data)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(records) != len(data.Signals) {
		t.Fatalf("expected %d records, got %d", len(data.Signals), len(records))
	}

	if records[0].Name != "project_management" || records[0].Strength != 0.8 {
		t.Errorf("strength = %v, want 0.8", records[0].Strength)
	}
	if records[0].GrowthRate != 100 {
		t.Errorf("growth rate = %v, want 100 (doubled mentions)", records[0].GrowthRate)
	}

	// Volume beyond the saturation point caps at full strength.
	if records[1].Strength != 1.0 {
		t.Errorf("saturated strength = %v, want 1.0", records[1].Strength)
	}
	if records[1].GrowthRate != 0 {
		t.Errorf("flat topic growth = %v, want 0", records[1].GrowthRate)
	}

	// A topic appearing from nothing counts as 100% growth.
	if records[2].GrowthRate != 100 {
		t.Errorf("new topic growth = %v, want 100", records[2].GrowthRate)
	}
	if records[3].GrowthRate != 0 || records[3].Strength != 0 {
		t.Errorf("dead topic should score zero, got %+v", records[3])
	}
}

func TestAnalyzeTrendsNilDataset(t *testing.T) {
	analyzer := NewAnalyzer(AnalyzerConfig{})
	if _, err := analyzer.AnalyzeTrends(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil dataset")
	}
}
