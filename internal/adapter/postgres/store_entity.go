package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sagecrest/pulsedash/internal/domain/entity"
)

// The generic management queries interpolate identifiers, so every table
// and column name must come from the entity registry, never from the
// request. Values always travel as positional arguments.

func (s *Store) EntityList(ctx context.Context, t entity.Table) ([]map[string]any, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT to_jsonb(%s) FROM %s ORDER BY created_at DESC`, t.Name, t.Name))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.Name, err)
	}
	defer rows.Close()

	var records []map[string]any
	for rows.Next() {
		var rec map[string]any
		if err := rows.Scan(&rec); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", t.Name, err)
		}
		records = append(records, rec)
	}
	return orEmpty(records), rows.Err()
}

func (s *Store) EntityCreate(ctx context.Context, t entity.Table, fields map[string]any) (map[string]any, error) {
	cols := sortedFields(fields)
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = fields[c]
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING to_jsonb(%s)`,
		t.Name, strings.Join(cols, ", "), strings.Join(placeholders, ", "), t.Name)

	var rec map[string]any
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&rec); err != nil {
		return nil, fmt.Errorf("create %s: %w", t.Name, err)
	}
	return rec, nil
}

func (s *Store) EntityUpdate(ctx context.Context, t entity.Table, id string, fields map[string]any) (map[string]any, error) {
	cols := sortedFields(fields)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	args = append(args, id)
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+2)
		args = append(args, fields[c])
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $1 RETURNING to_jsonb(%s)`,
		t.Name, strings.Join(sets, ", "), t.Name)

	var rec map[string]any
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&rec); err != nil {
		return nil, notFoundWrap(err, "update %s %s", t.Name, id)
	}
	return rec, nil
}

func (s *Store) EntityDelete(ctx context.Context, t entity.Table, id string) error {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.Name), id)
	return execExpectOne(tag, err, "delete %s %s", t.Name, id)
}

// sortedFields returns the field names in stable order so generated SQL
// is deterministic.
func sortedFields(fields map[string]any) []string {
	cols := make([]string, 0, len(fields))
	for c := range fields {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}
