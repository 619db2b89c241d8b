package postgres

import (
	"context"
	"fmt"

	"github.com/sagecrest/pulsedash/internal/domain"
	"github.com/sagecrest/pulsedash/internal/domain/company"
	"github.com/sagecrest/pulsedash/internal/domain/monthly"
)

// Each company keeps its own monthly log table with its own column
// subset, so reads and writes switch on the company instead of building
// SQL dynamically.

func (s *Store) ListMonthlyLogs(ctx context.Context, c company.Company) ([]monthly.Log, error) {
	switch c {
	case company.Summit:
		return s.listSummitLogs(ctx)
	case company.ElkPeak:
		return s.listElkPeakLogs(ctx)
	case company.Trailside:
		return s.listTrailsideLogs(ctx)
	case company.Lodgepole:
		return s.listLodgepoleLogs(ctx)
	}
	return nil, fmt.Errorf("unknown company %q: %w", c, domain.ErrValidation)
}

func (s *Store) listSummitLogs(ctx context.Context) ([]monthly.Log, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT year, month, revenue, tech_days, new_clients, notes
		 FROM summit_monthly_logs ORDER BY year, month`)
	if err != nil {
		return nil, fmt.Errorf("list summit logs: %w", err)
	}
	defer rows.Close()

	var logs []monthly.Log
	for rows.Next() {
		l := monthly.Log{Company: company.Summit}
		if err := rows.Scan(&l.Year, &l.Month, &l.Revenue, &l.TechDays, &l.NewClients, &l.Notes); err != nil {
			return nil, fmt.Errorf("scan summit log: %w", err)
		}
		logs = append(logs, l)
	}
	return orEmpty(logs), rows.Err()
}

func (s *Store) listElkPeakLogs(ctx context.Context) ([]monthly.Log, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT year, month, revenue, mrr, active_clients, notes
		 FROM elk_peak_monthly_logs ORDER BY year, month`)
	if err != nil {
		return nil, fmt.Errorf("list elk_peak logs: %w", err)
	}
	defer rows.Close()

	var logs []monthly.Log
	for rows.Next() {
		l := monthly.Log{Company: company.ElkPeak}
		if err := rows.Scan(&l.Year, &l.Month, &l.Revenue, &l.MRR, &l.ActiveClients, &l.Notes); err != nil {
			return nil, fmt.Errorf("scan elk_peak log: %w", err)
		}
		logs = append(logs, l)
	}
	return orEmpty(logs), rows.Err()
}

func (s *Store) listTrailsideLogs(ctx context.Context) ([]monthly.Log, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT year, month, revenue, units_sold, notes
		 FROM trailside_monthly_logs ORDER BY year, month`)
	if err != nil {
		return nil, fmt.Errorf("list trailside logs: %w", err)
	}
	defer rows.Close()

	var logs []monthly.Log
	for rows.Next() {
		l := monthly.Log{Company: company.Trailside}
		if err := rows.Scan(&l.Year, &l.Month, &l.Revenue, &l.UnitsSold, &l.Notes); err != nil {
			return nil, fmt.Errorf("scan trailside log: %w", err)
		}
		logs = append(logs, l)
	}
	return orEmpty(logs), rows.Err()
}

func (s *Store) listLodgepoleLogs(ctx context.Context) ([]monthly.Log, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT year, month, revenue, active_users, signups, notes
		 FROM lodgepole_monthly_logs ORDER BY year, month`)
	if err != nil {
		return nil, fmt.Errorf("list lodgepole logs: %w", err)
	}
	defer rows.Close()

	var logs []monthly.Log
	for rows.Next() {
		l := monthly.Log{Company: company.Lodgepole}
		if err := rows.Scan(&l.Year, &l.Month, &l.Revenue, &l.ActiveUsers, &l.Signups, &l.Notes); err != nil {
			return nil, fmt.Errorf("scan lodgepole log: %w", err)
		}
		logs = append(logs, l)
	}
	return orEmpty(logs), rows.Err()
}

// UpsertMonthlyLog inserts or overwrites the log for (year, month).
// The period is the conflict target; a second write for the same month
// replaces the figures rather than erroring.
func (s *Store) UpsertMonthlyLog(ctx context.Context, l *monthly.Log) error {
	var err error
	switch l.Company {
	case company.Summit:
		_, err = s.pool.Exec(ctx,
			`INSERT INTO summit_monthly_logs (year, month, revenue, tech_days, new_clients, notes)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (year, month) DO UPDATE SET
			   revenue = EXCLUDED.revenue, tech_days = EXCLUDED.tech_days,
			   new_clients = EXCLUDED.new_clients, notes = EXCLUDED.notes`,
			l.Year, l.Month, l.Revenue, l.TechDays, l.NewClients, l.Notes)
	case company.ElkPeak:
		_, err = s.pool.Exec(ctx,
			`INSERT INTO elk_peak_monthly_logs (year, month, revenue, mrr, active_clients, notes)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (year, month) DO UPDATE SET
			   revenue = EXCLUDED.revenue, mrr = EXCLUDED.mrr,
			   active_clients = EXCLUDED.active_clients, notes = EXCLUDED.notes`,
			l.Year, l.Month, l.Revenue, l.MRR, l.ActiveClients, l.Notes)
	case company.Trailside:
		_, err = s.pool.Exec(ctx,
			`INSERT INTO trailside_monthly_logs (year, month, revenue, units_sold, notes)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (year, month) DO UPDATE SET
			   revenue = EXCLUDED.revenue, units_sold = EXCLUDED.units_sold, notes = EXCLUDED.notes`,
			l.Year, l.Month, l.Revenue, l.UnitsSold, l.Notes)
	case company.Lodgepole:
		_, err = s.pool.Exec(ctx,
			`INSERT INTO lodgepole_monthly_logs (year, month, revenue, active_users, signups, notes)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (year, month) DO UPDATE SET
			   revenue = EXCLUDED.revenue, active_users = EXCLUDED.active_users,
			   signups = EXCLUDED.signups, notes = EXCLUDED.notes`,
			l.Year, l.Month, l.Revenue, l.ActiveUsers, l.Signups, l.Notes)
	default:
		return fmt.Errorf("unknown company %q: %w", l.Company, domain.ErrValidation)
	}
	if err != nil {
		return fmt.Errorf("upsert %s log %d-%02d: %w", l.Company, l.Year, l.Month, err)
	}
	return nil
}
