package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sagecrest/pulsedash/internal/domain"
	"github.com/sagecrest/pulsedash/internal/domain/company"
	"github.com/sagecrest/pulsedash/internal/domain/monthly"
)

func newTestMonthlyService(store *mockStore) (*MonthlyService, *mockCache, *mockHub) {
	c := newMockCache()
	hub := &mockHub{}
	agg := NewAggregator(store, c, time.Minute, nil)
	return NewMonthlyService(store, agg, hub), c, hub
}

func TestMonthlyUpsertOverwritesPeriod(t *testing.T) {
	store := newMockStore()
	svc, cache, hub := newTestMonthlyService(store)
	ctx := context.Background()

	first := &monthly.Log{Company: company.Summit, Year: 2026, Month: 5, Revenue: 10000}
	if err := svc.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	second := &monthly.Log{Company: company.Summit, Year: 2026, Month: 5, Revenue: 12000}
	if err := svc.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	logs, err := svc.List(ctx, company.Summit)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("List() = %d logs, want 1 after overwrite", len(logs))
	}
	if logs[0].Revenue != 12000 {
		t.Errorf("revenue = %v, want 12000", logs[0].Revenue)
	}

	if cache.deletes != 2 {
		t.Errorf("cache invalidations = %d, want 2", cache.deletes)
	}
	if hub.count() != 2 {
		t.Errorf("broadcasts = %d, want 2", hub.count())
	}
}

func TestMonthlyUpsertValidation(t *testing.T) {
	svc, _, _ := newTestMonthlyService(newMockStore())
	ctx := context.Background()

	bad := []*monthly.Log{
		{Company: company.Company("acme"), Year: 2026, Month: 1},
		{Company: company.Summit, Year: 1999, Month: 1},
		{Company: company.Summit, Year: 2026, Month: 13},
		{Company: company.Summit, Year: 2026, Month: 1, Revenue: -5},
	}
	for i, l := range bad {
		if err := svc.Upsert(ctx, l); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("case %d err = %v, want validation error", i, err)
		}
	}
}

func TestMonthlyListUnknownCompany(t *testing.T) {
	svc, _, _ := newTestMonthlyService(newMockStore())

	if _, err := svc.List(context.Background(), company.Company("acme")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}
