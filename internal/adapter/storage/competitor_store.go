// internal/adapter/storage/competitor_store.go

package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"nichescout/internal/domain/market"
)

// CompetitorStore implements storage for competitor records
type CompetitorStore struct {
	db *pgxpool.Pool
}

// NewCompetitorStore creates a new competitor store
func NewCompetitorStore(db *pgxpool.Pool) *CompetitorStore {
	return &CompetitorStore{
		db: db,
	}
}

// FindByNiche returns the competitors recorded for a niche
func (s *CompetitorStore) FindByNiche(ctx context.Context, niche string) ([]market.CompetitorRecord, error) {
	query := `
		SELECT id, name, url, description
		FROM competitors
		WHERE niche = $1
		ORDER BY name ASC
	`

	rows, err := s.db.Query(ctx, query, niche)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	// An empty landscape is a valid result, distinct from a query failure,
	// so the slice is always non-nil on success.
	competitors := []market.CompetitorRecord{}
	for rows.Next() {
		var c market.CompetitorRecord
		if err := rows.Scan(&c.ID, &c.Name, &c.URL, &c.Description); err != nil {
			return nil, fmt.Errorf("error scanning competitor: %w", err)
		}
		competitors = append(competitors, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating competitors: %w", err)
	}

	return competitors, nil
}

// SaveCompetitor inserts or updates a competitor record
func (s *CompetitorStore) SaveCompetitor(ctx context.Context, niche string, c market.CompetitorRecord) error {
	query := `
		INSERT INTO competitors (id, niche, name, url, description)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET
			niche = $2,
			name = $3,
			url = $4,
			description = $5
	`

	_, err := s.db.Exec(ctx, query, c.ID, niche, c.Name, c.URL, c.Description)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}
