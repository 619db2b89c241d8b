// Package goal defines quarter-scoped business goals and their progress
// rules.
package goal

import (
	"fmt"
	"time"

	"github.com/sagecrest/pulsedash/internal/domain"
	"github.com/sagecrest/pulsedash/internal/domain/company"
	"github.com/sagecrest/pulsedash/internal/domain/metrics"
)

// MetricType selects how a goal's current value is produced. Custom goals
// store their own current value; every other type is resolved against the
// live aggregated snapshot each time goals are listed.
type MetricType string

const (
	TypeCustom                MetricType = "custom"
	TypeSummitActiveClients   MetricType = "summit_active_clients"
	TypeSummitTotalRevenue    MetricType = "summit_total_revenue"
	TypeElkPeakMRR            MetricType = "elk_peak_mrr"
	TypeElkPeakActiveClients  MetricType = "elk_peak_active_clients"
	TypeTrailsideTotalSales   MetricType = "trailside_total_sales"
	TypeTrailsideTotalRevenue MetricType = "trailside_total_revenue"
	TypeLodgepoleActiveUsers  MetricType = "lodgepole_active_users"
	TypeCombinedRevenue       MetricType = "combined_revenue"
)

// autoResolved maps each auto-calculated type to its snapshot coordinates.
// TypeCombinedRevenue is resolved separately because it spans companies.
var autoResolved = map[MetricType]struct {
	Company company.Company
	Key     metrics.Key
}{
	TypeSummitActiveClients:   {company.Summit, metrics.KeyActiveClients},
	TypeSummitTotalRevenue:    {company.Summit, metrics.KeyTotalRevenue},
	TypeElkPeakMRR:            {company.ElkPeak, metrics.KeyMRR},
	TypeElkPeakActiveClients:  {company.ElkPeak, metrics.KeyActiveClients},
	TypeTrailsideTotalSales:   {company.Trailside, metrics.KeyTotalSales},
	TypeTrailsideTotalRevenue: {company.Trailside, metrics.KeyTotalRevenue},
	TypeLodgepoleActiveUsers:  {company.Lodgepole, metrics.KeyActiveUsers},
}

// ValidType reports whether t is a known metric type.
func ValidType(t MetricType) bool {
	if t == TypeCustom || t == TypeCombinedRevenue {
		return true
	}
	_, ok := autoResolved[t]
	return ok
}

// Resolve returns the live value for an auto-calculated metric type.
// The second return is false for TypeCustom.
func Resolve(t MetricType, snap *metrics.Snapshot) (float64, bool) {
	if t == TypeCustom {
		return 0, false
	}
	if t == TypeCombinedRevenue {
		var total float64
		for _, c := range company.All() {
			total += snap.Value(c, metrics.KeyTotalRevenue)
		}
		return total, true
	}
	coord, ok := autoResolved[t]
	if !ok {
		return 0, false
	}
	return snap.Value(coord.Company, coord.Key), true
}

// Goal is a quarter-scoped target. CurrentValue is authoritative only for
// TypeCustom; for auto-calculated types the listed value is derived and
// Live is set so clients can tell the difference.
type Goal struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Quarter      int        `json:"quarter"`
	Year         int        `json:"year"`
	MetricType   MetricType `json:"metric_type"`
	SortOrder    int        `json:"sort_order"`
	Live         bool       `json:"live"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Progress returns the completion percentage, clamped to [0, 100].
// A zero or negative target reports 0 so a misconfigured goal can never
// show as complete.
func (g *Goal) Progress() float64 {
	if g.TargetValue <= 0 {
		return 0
	}
	pct := g.CurrentValue / g.TargetValue * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Complete reports whether the goal has been reached.
func (g *Goal) Complete() bool {
	return g.TargetValue > 0 && g.CurrentValue >= g.TargetValue
}

// CreateRequest holds the fields needed to create a goal.
type CreateRequest struct {
	Name         string     `json:"name"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Quarter      int        `json:"quarter"`
	Year         int        `json:"year"`
	MetricType   MetricType `json:"metric_type"`
	SortOrder    int        `json:"sort_order"`
}

// Validate checks a creation request.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if len(r.Name) > 200 {
		return fmt.Errorf("name exceeds 200 characters: %w", domain.ErrValidation)
	}
	if r.Quarter < 1 || r.Quarter > 4 {
		return fmt.Errorf("quarter must be between 1 and 4: %w", domain.ErrValidation)
	}
	if r.Year < 2000 || r.Year > 2100 {
		return fmt.Errorf("year must be between 2000 and 2100: %w", domain.ErrValidation)
	}
	if !ValidType(r.MetricType) {
		return fmt.Errorf("unknown metric_type %q: %w", r.MetricType, domain.ErrValidation)
	}
	if r.TargetValue < 0 {
		return fmt.Errorf("target_value must not be negative: %w", domain.ErrValidation)
	}
	if r.MetricType != TypeCustom && r.CurrentValue != 0 {
		return fmt.Errorf("current_value is only writable for custom goals: %w", domain.ErrValidation)
	}
	return nil
}

// UpdateRequest holds the mutable goal fields. Quarter, year and metric
// type are immutable after creation; the service rejects any attempt to
// change them.
type UpdateRequest struct {
	Name         *string  `json:"name,omitempty"`
	TargetValue  *float64 `json:"target_value,omitempty"`
	CurrentValue *float64 `json:"current_value,omitempty"`
	SortOrder    *int     `json:"sort_order,omitempty"`

	// Immutable fields. Decoded so their presence can be rejected rather
	// than silently dropped.
	Quarter    *int        `json:"quarter,omitempty"`
	Year       *int        `json:"year,omitempty"`
	MetricType *MetricType `json:"metric_type,omitempty"`
}

// Validate checks an update request against the stored goal.
func (r *UpdateRequest) Validate(existing *Goal) error {
	if r.Quarter != nil || r.Year != nil || r.MetricType != nil {
		return fmt.Errorf("quarter, year and metric_type are immutable: %w", domain.ErrValidation)
	}
	if r.Name != nil {
		if *r.Name == "" {
			return fmt.Errorf("name cannot be empty: %w", domain.ErrValidation)
		}
		if len(*r.Name) > 200 {
			return fmt.Errorf("name exceeds 200 characters: %w", domain.ErrValidation)
		}
	}
	if r.TargetValue != nil && *r.TargetValue < 0 {
		return fmt.Errorf("target_value must not be negative: %w", domain.ErrValidation)
	}
	if r.CurrentValue != nil && existing.MetricType != TypeCustom {
		return fmt.Errorf("current_value is only writable for custom goals: %w", domain.ErrValidation)
	}
	return nil
}
