package postgres

import (
	"context"
	"fmt"

	"github.com/sagecrest/pulsedash/internal/domain"
	"github.com/sagecrest/pulsedash/internal/domain/company"
	"github.com/sagecrest/pulsedash/internal/domain/metrics"
)

// CompanyStats reads the live counts and sums for one company straight
// from its entity tables. Fields outside the company's subset stay zero.
func (s *Store) CompanyStats(ctx context.Context, c company.Company) (metrics.LiveStats, error) {
	var stats metrics.LiveStats

	switch c {
	case company.Summit:
		row := s.pool.QueryRow(ctx,
			`SELECT
			   (SELECT COUNT(*) FROM summit_clients WHERE status = 'active'),
			   (SELECT COUNT(*) FROM summit_projects WHERE status = 'active'),
			   (SELECT COALESCE(SUM(monthly_value), 0) FROM summit_clients WHERE status = 'active')`)
		if err := row.Scan(&stats.ActiveClients, &stats.ActiveProjects, &stats.RetainerMRR); err != nil {
			return stats, fmt.Errorf("summit stats: %w", err)
		}

	case company.ElkPeak:
		row := s.pool.QueryRow(ctx,
			`SELECT
			   (SELECT COUNT(*) FROM elk_peak_clients WHERE status = 'active'),
			   (SELECT COALESCE(SUM(mrr), 0) FROM elk_peak_subscriptions WHERE status = 'active'),
			   (SELECT COALESCE(SUM(mrr), 0) FROM elk_peak_clients WHERE status = 'active')`)
		if err := row.Scan(&stats.ActiveClients, &stats.SubscriptionMRR, &stats.ClientMRR); err != nil {
			return stats, fmt.Errorf("elk_peak stats: %w", err)
		}

	case company.Trailside:
		row := s.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM trailside_sales WHERE status <> 'void'`)
		if err := row.Scan(&stats.SalesCount); err != nil {
			return stats, fmt.Errorf("trailside stats: %w", err)
		}

	case company.Lodgepole:
		row := s.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM lodgepole_users WHERE status = 'active'`)
		if err := row.Scan(&stats.ActiveUsers); err != nil {
			return stats, fmt.Errorf("lodgepole stats: %w", err)
		}

	default:
		return stats, fmt.Errorf("unknown company %q: %w", c, domain.ErrValidation)
	}

	return stats, nil
}
