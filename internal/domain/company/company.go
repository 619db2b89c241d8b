// Package company defines the fixed set of Sagecrest business units.
package company

// Company identifies one of the four affiliated businesses. The set is
// closed: every table family, metric key and goal type is scoped to one of
// these slugs, so there is no runtime registration.
type Company string

const (
	// Summit is the consulting firm (clients, projects, tech days).
	Summit Company = "summit"
	// ElkPeak is the managed-services business (subscriptions, MRR).
	ElkPeak Company = "elk_peak"
	// Trailside is the commerce arm (per-sale line items).
	Trailside Company = "trailside"
	// Lodgepole is the community platform (users, signups).
	Lodgepole Company = "lodgepole"
)

// All returns the companies in dashboard display order.
func All() []Company {
	return []Company{Summit, ElkPeak, Trailside, Lodgepole}
}

// Valid reports whether c is one of the known companies.
func Valid(c Company) bool {
	switch c {
	case Summit, ElkPeak, Trailside, Lodgepole:
		return true
	}
	return false
}
