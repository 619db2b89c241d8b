package service

import (
	"context"

	"github.com/sagecrest/pulsedash/internal/adapter/otel"
	"github.com/sagecrest/pulsedash/internal/adapter/ws"
	"github.com/sagecrest/pulsedash/internal/domain/company"
	"github.com/sagecrest/pulsedash/internal/domain/metrics"
	"github.com/sagecrest/pulsedash/internal/port/broadcast"
	"github.com/sagecrest/pulsedash/internal/port/database"
)

// OverrideService manages manual metric corrections.
type OverrideService struct {
	store   database.Store
	agg     *Aggregator
	hub     broadcast.Broadcaster
	metrics *otel.Metrics
}

// NewOverrideService creates an OverrideService. hub and metrics may be nil.
func NewOverrideService(store database.Store, agg *Aggregator, hub broadcast.Broadcaster, m *otel.Metrics) *OverrideService {
	return &OverrideService{store: store, agg: agg, hub: hub, metrics: m}
}

// List returns every stored override.
func (s *OverrideService) List(ctx context.Context) ([]metrics.Override, error) {
	return s.store.ListOverrides(ctx)
}

// Upsert writes an override for its (company, metric_key) pair. The pair
// must be in the enumerated overridable set.
func (s *OverrideService) Upsert(ctx context.Context, o *metrics.Override) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := s.store.UpsertOverride(ctx, o); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.OverrideWrites.Add(ctx, 1)
	}
	s.agg.Invalidate(ctx)
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, ws.EventMetricsUpdated, ws.MetricsUpdatedEvent{
			Company: string(o.Company),
			Source:  "override",
		})
	}
	return nil
}

// Delete removes an override, reverting the dashboard to the computed
// value for that metric.
func (s *OverrideService) Delete(ctx context.Context, c company.Company, key metrics.Key) error {
	if err := s.store.DeleteOverride(ctx, c, key); err != nil {
		return err
	}

	s.agg.Invalidate(ctx)
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, ws.EventMetricsUpdated, ws.MetricsUpdatedEvent{
			Company: string(c),
			Source:  "override",
		})
	}
	return nil
}
