package metrics

import "github.com/sagecrest/pulsedash/internal/domain/company"

// Key names a single dashboard metric within a company.
type Key string

// Metric keys. Each is meaningful only for the companies listed in
// overridable below.
const (
	KeyActiveClients  Key = "active_clients"
	KeyActiveProjects Key = "active_projects"
	KeyTotalRevenue   Key = "total_revenue"
	KeyRetainerMRR    Key = "retainer_mrr"
	KeyMRR            Key = "mrr"
	KeyTechDays       Key = "tech_days"
	KeyTotalSales     Key = "total_sales"
	KeyUnitsSold      Key = "units_sold"
	KeyActiveUsers    Key = "active_users"
	KeySignups        Key = "signups"
)

// overridable enumerates the exact (company, key) pairs a manual override
// may target. Keeping this closed prevents stale override rows from
// reintroducing retired metric keys into the snapshot.
var overridable = map[company.Company]map[Key]bool{
	company.Summit: {
		KeyActiveClients:  true,
		KeyActiveProjects: true,
		KeyTotalRevenue:   true,
		KeyRetainerMRR:    true,
		KeyTechDays:       true,
	},
	company.ElkPeak: {
		KeyActiveClients: true,
		KeyMRR:           true,
		KeyTotalRevenue:  true,
	},
	company.Trailside: {
		KeyTotalSales:   true,
		KeyUnitsSold:    true,
		KeyTotalRevenue: true,
	},
	company.Lodgepole: {
		KeyActiveUsers:  true,
		KeySignups:      true,
		KeyTotalRevenue: true,
	},
}

// Overridable reports whether the (company, key) pair accepts a manual
// override.
func Overridable(c company.Company, k Key) bool {
	return overridable[c][k]
}

// OverridableKeys returns the override-eligible keys for a company, in no
// particular order. Returns nil for an unknown company.
func OverridableKeys(c company.Company) []Key {
	keys := make([]Key, 0, len(overridable[c]))
	for k := range overridable[c] {
		keys = append(keys, k)
	}
	return keys
}
