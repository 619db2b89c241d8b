package service

import (
	"context"
	"fmt"

	"github.com/sagecrest/pulsedash/internal/adapter/ws"
	"github.com/sagecrest/pulsedash/internal/domain"
	"github.com/sagecrest/pulsedash/internal/domain/goal"
	"github.com/sagecrest/pulsedash/internal/port/broadcast"
	"github.com/sagecrest/pulsedash/internal/port/database"
)

// GoalService manages quarter-scoped goals. Auto-calculated goals get
// their current value from the live snapshot on every list.
type GoalService struct {
	store database.Store
	agg   *Aggregator
	hub   broadcast.Broadcaster
}

// NewGoalService creates a GoalService. hub may be nil.
func NewGoalService(store database.Store, agg *Aggregator, hub broadcast.Broadcaster) *GoalService {
	return &GoalService{store: store, agg: agg, hub: hub}
}

// List returns the goals for (quarter, year) with auto-calculated current
// values resolved against the live snapshot and marked Live.
func (s *GoalService) List(ctx context.Context, quarter, year int) ([]goal.Goal, error) {
	if quarter < 1 || quarter > 4 {
		return nil, fmt.Errorf("quarter must be between 1 and 4: %w", domain.ErrValidation)
	}
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("year must be between 2000 and 2100: %w", domain.ErrValidation)
	}

	goals, err := s.store.ListGoals(ctx, quarter, year)
	if err != nil {
		return nil, err
	}

	snap, err := s.agg.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve goal values: %w", err)
	}

	for i := range goals {
		if value, ok := goal.Resolve(goals[i].MetricType, snap); ok {
			goals[i].CurrentValue = value
			goals[i].Live = true
		}
	}
	return goals, nil
}

// Create stores a new goal.
func (s *GoalService) Create(ctx context.Context, req goal.CreateRequest) (*goal.Goal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g, err := s.store.CreateGoal(ctx, req)
	if err != nil {
		return nil, err
	}

	s.broadcast(ctx, g, "created")
	return g, nil
}

// Update applies the mutable fields to an existing goal. Quarter, year
// and metric type are immutable; their presence in the request is a
// validation error, not a silent drop.
func (s *GoalService) Update(ctx context.Context, id string, req goal.UpdateRequest) (*goal.Goal, error) {
	g, err := s.store.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(g); err != nil {
		return nil, err
	}

	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.TargetValue != nil {
		g.TargetValue = *req.TargetValue
	}
	if req.CurrentValue != nil {
		g.CurrentValue = *req.CurrentValue
	}
	if req.SortOrder != nil {
		g.SortOrder = *req.SortOrder
	}

	if err := s.store.UpdateGoal(ctx, g); err != nil {
		return nil, err
	}

	s.broadcast(ctx, g, "updated")
	return g, nil
}

// Delete removes a goal.
func (s *GoalService) Delete(ctx context.Context, id string) error {
	g, err := s.store.GetGoal(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteGoal(ctx, id); err != nil {
		return err
	}

	s.broadcast(ctx, g, "deleted")
	return nil
}

func (s *GoalService) broadcast(ctx context.Context, g *goal.Goal, action string) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastEvent(ctx, ws.EventGoalChanged, ws.GoalChangedEvent{
		GoalID:  g.ID,
		Quarter: g.Quarter,
		Year:    g.Year,
		Action:  action,
	})
}
