// internal/adapter/storage/report_store.go

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"nichescout/internal/domain/market"
)

// ReportStore implements storage for niche reports
type ReportStore struct {
	db *pgxpool.Pool
}

// NewReportStore creates a new report store
func NewReportStore(db *pgxpool.Pool) *ReportStore {
	return &ReportStore{
		db: db,
	}
}

// SaveReport saves a niche report
func (s *ReportStore) SaveReport(ctx context.Context, report market.NicheReport) error {
	query := `
		INSERT INTO niche_reports (
			id, niche, potential_score, target_audience, competitors, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	audienceJSON, err := json.Marshal(report.TargetAudience)
	if err != nil {
		return fmt.Errorf("error marshaling target audience: %w", err)
	}

	competitorsJSON, err := json.Marshal(report.Competitors)
	if err != nil {
		return fmt.Errorf("error marshaling competitors: %w", err)
	}

	_, err = s.db.Exec(
		ctx,
		query,
		report.ID,
		report.Niche,
		report.PotentialScore,
		audienceJSON,
		competitorsJSON,
		report.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetReport retrieves a report by ID
func (s *ReportStore) GetReport(ctx context.Context, id string) (*market.NicheReport, error) {
	query := `
		SELECT id, niche, potential_score, target_audience, competitors, created_at
		FROM niche_reports
		WHERE id = $1
	`

	var report market.NicheReport
	var audienceJSON, competitorsJSON []byte

	err := s.db.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.Niche,
		&report.PotentialScore,
		&audienceJSON,
		&competitorsJSON,
		&report.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, market.ErrNotFound
		}
		return nil, fmt.Errorf("error querying report: %w", err)
	}

	if err := json.Unmarshal(audienceJSON, &report.TargetAudience); err != nil {
		return nil, fmt.Errorf("error unmarshaling target audience: %w", err)
	}

	if err := json.Unmarshal(competitorsJSON, &report.Competitors); err != nil {
		return nil, fmt.Errorf("error unmarshaling competitors: %w", err)
	}

	return &report, nil
}

// ListReports finds reports matching the filter
func (s *ReportStore) ListReports(ctx context.Context, filter market.ReportFilter) ([]market.NicheReport, error) {
	query := `
		SELECT id, niche, potential_score, target_audience, competitors, created_at
		FROM niche_reports
		WHERE potential_score >= $1
	`

	args := []interface{}{filter.MinPotential}
	argIndex := 2

	if filter.Niche != "" {
		query += fmt.Sprintf(" AND niche = $%d", argIndex)
		args = append(args, filter.Niche)
		argIndex++
	}

	if !filter.CreatedAfter.IsZero() {
		query += fmt.Sprintf(" AND created_at > $%d", argIndex)
		args = append(args, filter.CreatedAfter)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" LIMIT $%d", argIndex)
	args = append(args, limit)
	argIndex++

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var reports []market.NicheReport
	for rows.Next() {
		var report market.NicheReport
		var audienceJSON, competitorsJSON []byte

		err := rows.Scan(
			&report.ID,
			&report.Niche,
			&report.PotentialScore,
			&audienceJSON,
			&competitorsJSON,
			&report.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning report: %w", err)
		}

		if err := json.Unmarshal(audienceJSON, &report.TargetAudience); err != nil {
			return nil, fmt.Errorf("error unmarshaling target audience: %w", err)
		}

		if err := json.Unmarshal(competitorsJSON, &report.Competitors); err != nil {
			return nil, fmt.Errorf("error unmarshaling competitors: %w", err)
		}

		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}
