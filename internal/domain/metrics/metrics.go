// Package metrics defines the aggregated dashboard snapshot and the manual
// override entity layered on top of it.
package metrics

import (
	"fmt"
	"time"

	"github.com/sagecrest/pulsedash/internal/domain"
	"github.com/sagecrest/pulsedash/internal/domain/company"
	"github.com/sagecrest/pulsedash/internal/domain/monthly"
)

// Snapshot is the fully aggregated dashboard state: one metric map per
// company with overrides already merged in, plus the raw monthly series
// the charts are drawn from.
type Snapshot struct {
	Companies   map[company.Company]map[Key]float64 `json:"companies"`
	Series      map[company.Company][]monthly.Log   `json:"series"`
	GeneratedAt time.Time                           `json:"generated_at"`
}

// Value returns the metric value for (c, k), or 0 when absent. Absent and
// zero are deliberately indistinguishable: empty tables aggregate to zero.
func (s *Snapshot) Value(c company.Company, k Key) float64 {
	return s.Companies[c][k]
}

// LiveStats holds the counts and sums read directly from a company's
// entity tables, before monthly logs and overrides are considered.
type LiveStats struct {
	ActiveClients   int
	ActiveProjects  int
	ActiveUsers     int
	SalesCount      int
	RetainerMRR     float64
	SubscriptionMRR float64
	ClientMRR       float64
}

// Override is a manual correction for a single computed metric. While a
// row exists the stored value wins; deleting the row reverts the dashboard
// to the computed figure.
type Override struct {
	ID        string          `json:"id"`
	Company   company.Company `json:"company"`
	Key       Key             `json:"metric_key"`
	Value     float64         `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Validate checks that the override targets an enumerated (company, key)
// pair.
func (o *Override) Validate() error {
	if !company.Valid(o.Company) {
		return fmt.Errorf("unknown company %q: %w", o.Company, domain.ErrValidation)
	}
	if !Overridable(o.Company, o.Key) {
		return fmt.Errorf("metric_key %q is not overridable for %s: %w", o.Key, o.Company, domain.ErrValidation)
	}
	return nil
}
