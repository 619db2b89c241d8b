package service

import (
	"context"
	"fmt"

	"github.com/sagecrest/pulsedash/internal/adapter/ws"
	"github.com/sagecrest/pulsedash/internal/domain"
	"github.com/sagecrest/pulsedash/internal/domain/company"
	"github.com/sagecrest/pulsedash/internal/domain/monthly"
	"github.com/sagecrest/pulsedash/internal/port/broadcast"
	"github.com/sagecrest/pulsedash/internal/port/database"
)

// MonthlyService manages the per-business monthly log series.
type MonthlyService struct {
	store database.Store
	agg   *Aggregator
	hub   broadcast.Broadcaster
}

// NewMonthlyService creates a MonthlyService. hub may be nil.
func NewMonthlyService(store database.Store, agg *Aggregator, hub broadcast.Broadcaster) *MonthlyService {
	return &MonthlyService{store: store, agg: agg, hub: hub}
}

// List returns the full series for one company, oldest first.
func (s *MonthlyService) List(ctx context.Context, c company.Company) ([]monthly.Log, error) {
	if !company.Valid(c) {
		return nil, fmt.Errorf("unknown company %q: %w", c, domain.ErrValidation)
	}
	return s.store.ListMonthlyLogs(ctx, c)
}

// Upsert writes the log for (company, year, month), overwriting any
// existing entry for the same period, and invalidates the snapshot.
func (s *MonthlyService) Upsert(ctx context.Context, l *monthly.Log) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if err := s.store.UpsertMonthlyLog(ctx, l); err != nil {
		return err
	}

	s.agg.Invalidate(ctx)
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, ws.EventMetricsUpdated, ws.MetricsUpdatedEvent{
			Company: string(l.Company),
			Source:  "monthly_log",
		})
	}
	return nil
}
