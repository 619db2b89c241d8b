package postgres

import (
	"context"
	"fmt"

	"github.com/sagecrest/pulsedash/internal/domain/goal"
)

const goalColumns = `id, name, target_value, current_value, quarter, year, metric_type, sort_order, created_at, updated_at`

func scanGoal(row scannable) (goal.Goal, error) {
	var g goal.Goal
	err := row.Scan(&g.ID, &g.Name, &g.TargetValue, &g.CurrentValue,
		&g.Quarter, &g.Year, &g.MetricType, &g.SortOrder, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (s *Store) ListGoals(ctx context.Context, quarter, year int) ([]goal.Goal, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+goalColumns+`
		 FROM quarter_goals WHERE quarter = $1 AND year = $2
		 ORDER BY sort_order, created_at`, quarter, year)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []goal.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return orEmpty(goals), rows.Err()
}

func (s *Store) GetGoal(ctx context.Context, id string) (*goal.Goal, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM quarter_goals WHERE id = $1`, id)

	g, err := scanGoal(row)
	if err != nil {
		return nil, notFoundWrap(err, "get goal %s", id)
	}
	return &g, nil
}

func (s *Store) CreateGoal(ctx context.Context, req goal.CreateRequest) (*goal.Goal, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO quarter_goals (name, target_value, current_value, quarter, year, metric_type, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+goalColumns,
		req.Name, req.TargetValue, req.CurrentValue, req.Quarter, req.Year, req.MetricType, req.SortOrder)

	g, err := scanGoal(row)
	if err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return &g, nil
}

func (s *Store) UpdateGoal(ctx context.Context, g *goal.Goal) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE quarter_goals
		 SET name = $2, target_value = $3, current_value = $4, sort_order = $5, updated_at = now()
		 WHERE id = $1`,
		g.ID, g.Name, g.TargetValue, g.CurrentValue, g.SortOrder)
	return execExpectOne(tag, err, "update goal %s", g.ID)
}

func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM quarter_goals WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete goal %s", id)
}
