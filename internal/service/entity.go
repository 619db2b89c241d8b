package service

import (
	"context"
	"fmt"

	"github.com/sagecrest/pulsedash/internal/adapter/ws"
	"github.com/sagecrest/pulsedash/internal/domain"
	"github.com/sagecrest/pulsedash/internal/domain/entity"
	"github.com/sagecrest/pulsedash/internal/port/broadcast"
	"github.com/sagecrest/pulsedash/internal/port/database"
)

// EntityService executes generic management requests against the
// allow-listed business tables.
type EntityService struct {
	store database.Store
	agg   *Aggregator
	hub   broadcast.Broadcaster
}

// NewEntityService creates an EntityService. hub may be nil.
func NewEntityService(store database.Store, agg *Aggregator, hub broadcast.Broadcaster) *EntityService {
	return &EntityService{store: store, agg: agg, hub: hub}
}

// ManageResult is the outcome of a management request. Records is set
// for list; Record for create/update.
type ManageResult struct {
	Records []map[string]any `json:"records,omitempty"`
	Record  map[string]any   `json:"record,omitempty"`
	Deleted bool             `json:"deleted,omitempty"`
}

// Manage resolves the table against the registry and dispatches the
// operation. A table name outside the registry never reaches SQL.
func (s *EntityService) Manage(ctx context.Context, tableName string, req entity.ManageRequest) (*ManageResult, error) {
	t, ok := entity.Lookup(tableName)
	if !ok {
		return nil, fmt.Errorf("unknown table %q: %w", tableName, domain.ErrValidation)
	}
	if err := req.Validate(t); err != nil {
		return nil, err
	}

	switch req.Operation {
	case entity.OpList:
		records, err := s.store.EntityList(ctx, t)
		if err != nil {
			return nil, err
		}
		return &ManageResult{Records: records}, nil

	case entity.OpCreate:
		rec, err := s.store.EntityCreate(ctx, t, req.Data)
		if err != nil {
			return nil, err
		}
		s.invalidate(ctx, t)
		return &ManageResult{Record: rec}, nil

	case entity.OpUpdate:
		rec, err := s.store.EntityUpdate(ctx, t, req.ID, req.Data)
		if err != nil {
			return nil, err
		}
		s.invalidate(ctx, t)
		return &ManageResult{Record: rec}, nil

	case entity.OpDelete:
		if err := s.store.EntityDelete(ctx, t, req.ID); err != nil {
			return nil, err
		}
		s.invalidate(ctx, t)
		return &ManageResult{Deleted: true}, nil
	}

	return nil, fmt.Errorf("unknown operation %q: %w", req.Operation, domain.ErrValidation)
}

// invalidate drops the snapshot after any entity write, since live
// counts feed the aggregated metrics.
func (s *EntityService) invalidate(ctx context.Context, t entity.Table) {
	s.agg.Invalidate(ctx)
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, ws.EventMetricsUpdated, ws.MetricsUpdatedEvent{
			Source: t.Name,
		})
	}
}
