// Package monthly defines the per-business monthly log, the append-or-
// overwrite time series behind the dashboard charts.
package monthly

import (
	"fmt"

	"github.com/sagecrest/pulsedash/internal/domain"
	"github.com/sagecrest/pulsedash/internal/domain/company"
)

// Log is one month's recorded figures for one business. Each business
// stores a different column subset; fields outside a company's subset are
// ignored on write and zero on read.
type Log struct {
	Company company.Company `json:"company"`
	Year    int             `json:"year"`
	Month   int             `json:"month"`

	Revenue float64 `json:"revenue"`

	// summit
	TechDays   int `json:"tech_days,omitempty"`
	NewClients int `json:"new_clients,omitempty"`

	// elk_peak
	MRR           float64 `json:"mrr,omitempty"`
	ActiveClients int     `json:"active_clients,omitempty"`

	// trailside
	UnitsSold int `json:"units_sold,omitempty"`

	// lodgepole
	ActiveUsers int `json:"active_users,omitempty"`
	Signups     int `json:"signups,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// Validate checks period bounds and figure sanity for an upsert.
func (l *Log) Validate() error {
	if !company.Valid(l.Company) {
		return fmt.Errorf("unknown company %q: %w", l.Company, domain.ErrValidation)
	}
	if l.Year < 2000 || l.Year > 2100 {
		return fmt.Errorf("year must be between 2000 and 2100: %w", domain.ErrValidation)
	}
	if l.Month < 1 || l.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12: %w", domain.ErrValidation)
	}
	if l.Revenue < 0 || l.MRR < 0 {
		return fmt.Errorf("monetary figures must not be negative: %w", domain.ErrValidation)
	}
	if l.TechDays < 0 || l.NewClients < 0 || l.ActiveClients < 0 ||
		l.UnitsSold < 0 || l.ActiveUsers < 0 || l.Signups < 0 {
		return fmt.Errorf("count figures must not be negative: %w", domain.ErrValidation)
	}
	if len(l.Notes) > 2000 {
		return fmt.Errorf("notes exceeds 2000 characters: %w", domain.ErrValidation)
	}
	return nil
}

// After reports whether l's period is later than (year, month).
func (l *Log) After(year, month int) bool {
	if l.Year != year {
		return l.Year > year
	}
	return l.Month > month
}

// Latest returns the log with the greatest (year, month) pair, or nil for
// an empty slice. Ties cannot occur: the period is unique per business.
func Latest(logs []Log) *Log {
	var latest *Log
	for i := range logs {
		if latest == nil || logs[i].After(latest.Year, latest.Month) {
			latest = &logs[i]
		}
	}
	return latest
}
