// Package entity holds the static registry behind the generic business-
// record management endpoint.
//
// The endpoint takes its target table from the caller, so the registry is
// the only thing standing between a request and an arbitrary table: every
// table name and every field must resolve here before any SQL is built.
package entity

import (
	"fmt"
	"sort"

	"github.com/sagecrest/pulsedash/internal/domain"
)

// Operation is one of the management actions.
type Operation string

const (
	OpList   Operation = "list"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// ValidOperation reports whether op is a known management action.
func ValidOperation(op Operation) bool {
	switch op {
	case OpList, OpCreate, OpUpdate, OpDelete:
		return true
	}
	return false
}

// Table describes one manageable table: the columns a list returns and the
// subset a create/update may set. id and created_at are always read-only.
type Table struct {
	Name    string
	Columns []string
	mutable map[string]bool
}

// Mutable reports whether the named field may be written.
func (t Table) Mutable(field string) bool {
	return t.mutable[field]
}

// MutableColumns returns the writable fields in stable order.
func (t Table) MutableColumns() []string {
	cols := make([]string, 0, len(t.mutable))
	for c := range t.mutable {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

func table(name string, readOnly, writable []string) Table {
	m := make(map[string]bool, len(writable))
	for _, c := range writable {
		m[c] = true
	}
	cols := make([]string, 0, len(readOnly)+len(writable))
	cols = append(cols, readOnly...)
	cols = append(cols, writable...)
	return Table{Name: name, Columns: cols, mutable: m}
}

// registry is the closed set of tables the management endpoint may touch.
var registry = map[string]Table{
	"summit_clients": table("summit_clients",
		[]string{"id", "created_at"},
		[]string{"name", "email", "status", "monthly_value", "notes"}),
	"summit_projects": table("summit_projects",
		[]string{"id", "created_at"},
		[]string{"client_id", "name", "status", "value", "notes"}),
	"elk_peak_clients": table("elk_peak_clients",
		[]string{"id", "created_at"},
		[]string{"name", "email", "status", "mrr", "notes"}),
	"elk_peak_subscriptions": table("elk_peak_subscriptions",
		[]string{"id", "created_at"},
		[]string{"client_id", "plan", "status", "mrr", "started_on"}),
	"trailside_sales": table("trailside_sales",
		[]string{"id", "created_at"},
		[]string{"item", "amount", "units", "status", "sold_on"}),
	"lodgepole_users": table("lodgepole_users",
		[]string{"id", "created_at"},
		[]string{"email", "status", "joined_on"}),
}

// Lookup resolves a caller-supplied table name against the registry.
func Lookup(name string) (Table, bool) {
	t, ok := registry[name]
	return t, ok
}

// Tables returns the registered table names in sorted order.
func Tables() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ManageRequest is the body of the generic management endpoint.
type ManageRequest struct {
	Operation Operation      `json:"operation"`
	ID        string         `json:"id,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// Validate checks the request against the resolved table. It rejects
// unknown operations, missing ids, empty payloads and any field outside
// the table's writable set.
func (r *ManageRequest) Validate(t Table) error {
	if !ValidOperation(r.Operation) {
		return fmt.Errorf("unknown operation %q: %w", r.Operation, domain.ErrValidation)
	}
	switch r.Operation {
	case OpCreate, OpUpdate:
		if len(r.Data) == 0 {
			return fmt.Errorf("data is required: %w", domain.ErrValidation)
		}
		for field := range r.Data {
			if !t.Mutable(field) {
				return fmt.Errorf("field %q is not writable on %s: %w", field, t.Name, domain.ErrValidation)
			}
		}
	}
	switch r.Operation {
	case OpUpdate, OpDelete:
		if r.ID == "" {
			return fmt.Errorf("id is required: %w", domain.ErrValidation)
		}
	}
	return nil
}
