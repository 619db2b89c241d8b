package postgres

import (
	"context"
	"fmt"

	"github.com/sagecrest/pulsedash/internal/domain/company"
	"github.com/sagecrest/pulsedash/internal/domain/metrics"
)

func (s *Store) ListOverrides(ctx context.Context) ([]metrics.Override, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, company, metric_key, value, updated_at
		 FROM metric_overrides ORDER BY company, metric_key`)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	defer rows.Close()

	var overrides []metrics.Override
	for rows.Next() {
		var o metrics.Override
		if err := rows.Scan(&o.ID, &o.Company, &o.Key, &o.Value, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		overrides = append(overrides, o)
	}
	return orEmpty(overrides), rows.Err()
}

// UpsertOverride writes the override for (company, metric_key), replacing
// any existing value for the same pair.
func (s *Store) UpsertOverride(ctx context.Context, o *metrics.Override) error {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO metric_overrides (company, metric_key, value, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (company, metric_key) DO UPDATE SET
		   value = EXCLUDED.value, updated_at = now()
		 RETURNING id, updated_at`,
		o.Company, o.Key, o.Value)
	if err := row.Scan(&o.ID, &o.UpdatedAt); err != nil {
		return fmt.Errorf("upsert override %s/%s: %w", o.Company, o.Key, err)
	}
	return nil
}

func (s *Store) DeleteOverride(ctx context.Context, c company.Company, key metrics.Key) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM metric_overrides WHERE company = $1 AND metric_key = $2`, c, key)
	return execExpectOne(tag, err, "delete override %s/%s", c, key)
}
