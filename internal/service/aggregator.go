package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sagecrest/pulsedash/internal/adapter/otel"
	"github.com/sagecrest/pulsedash/internal/domain/company"
	"github.com/sagecrest/pulsedash/internal/domain/metrics"
	"github.com/sagecrest/pulsedash/internal/domain/monthly"
	"github.com/sagecrest/pulsedash/internal/port/cache"
	"github.com/sagecrest/pulsedash/internal/port/database"
)

const snapshotCacheKey = "metrics:snapshot"

// Aggregator builds the blended dashboard snapshot: live entity counts,
// monthly log totals and manual overrides, one metric map per company.
type Aggregator struct {
	store   database.Store
	cache   cache.Cache
	ttl     time.Duration
	metrics *otel.Metrics
}

// NewAggregator creates an Aggregator. metrics may be nil.
func NewAggregator(store database.Store, c cache.Cache, ttl time.Duration, metrics *otel.Metrics) *Aggregator {
	return &Aggregator{store: store, cache: c, ttl: ttl, metrics: metrics}
}

// Snapshot returns the aggregated dashboard state, serving from cache
// when a fresh snapshot exists.
func (a *Aggregator) Snapshot(ctx context.Context) (*metrics.Snapshot, error) {
	if data, ok, _ := a.cache.Get(ctx, snapshotCacheKey); ok {
		var snap metrics.Snapshot
		if err := json.Unmarshal(data, &snap); err == nil {
			return &snap, nil
		}
	}

	snap, err := a.build(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(snap); err == nil {
		_ = a.cache.Set(ctx, snapshotCacheKey, data, a.ttl)
	}
	return snap, nil
}

// Invalidate drops the cached snapshot. Every admin write calls this so
// the next read reflects the change.
func (a *Aggregator) Invalidate(ctx context.Context) {
	_ = a.cache.Delete(ctx, snapshotCacheKey)
}

// build recomputes the snapshot from scratch: the four companies are
// collected concurrently, then overrides are merged on top.
func (a *Aggregator) build(ctx context.Context) (*metrics.Snapshot, error) {
	ctx, span := otel.StartAggregationSpan(ctx)
	defer span.End()

	start := time.Now()

	snap := &metrics.Snapshot{
		Companies:   make(map[company.Company]map[metrics.Key]float64, len(company.All())),
		Series:      make(map[company.Company][]monthly.Log, len(company.All())),
		GeneratedAt: time.Now().UTC(),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, c := range company.All() {
		g.Go(func() error {
			cctx, cspan := otel.StartCompanySpan(gctx, string(c))
			defer cspan.End()

			stats, err := a.store.CompanyStats(cctx, c)
			if err != nil {
				return fmt.Errorf("stats for %s: %w", c, err)
			}
			logs, err := a.store.ListMonthlyLogs(cctx, c)
			if err != nil {
				return fmt.Errorf("logs for %s: %w", c, err)
			}

			values := reduce(c, stats, logs)

			mu.Lock()
			snap.Companies[c] = values
			snap.Series[c] = logs
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	overrides, err := a.store.ListOverrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	for _, o := range overrides {
		if !metrics.Overridable(o.Company, o.Key) {
			continue
		}
		snap.Companies[o.Company][o.Key] = o.Value
	}

	if a.metrics != nil {
		a.metrics.SnapshotRefreshes.Add(ctx, 1)
		a.metrics.AggregationDuration.Record(ctx, time.Since(start).Seconds())
	}

	return snap, nil
}

// reduce turns one company's live stats and monthly series into its
// metric map. Empty inputs reduce to zeros, never an error.
func reduce(c company.Company, stats metrics.LiveStats, logs []monthly.Log) map[metrics.Key]float64 {
	values := make(map[metrics.Key]float64)

	var revenue float64
	for _, l := range logs {
		revenue += l.Revenue
	}
	values[metrics.KeyTotalRevenue] = revenue

	switch c {
	case company.Summit:
		values[metrics.KeyActiveClients] = float64(stats.ActiveClients)
		values[metrics.KeyActiveProjects] = float64(stats.ActiveProjects)
		values[metrics.KeyRetainerMRR] = stats.RetainerMRR
		var techDays int
		for _, l := range logs {
			techDays += l.TechDays
		}
		values[metrics.KeyTechDays] = float64(techDays)

	case company.ElkPeak:
		values[metrics.KeyActiveClients] = float64(stats.ActiveClients)
		// MRR prefers the latest recorded month; live subscription and
		// client sums are fallbacks for businesses with no logs yet.
		switch latest := monthly.Latest(logs); {
		case latest != nil:
			values[metrics.KeyMRR] = latest.MRR
		case stats.SubscriptionMRR > 0:
			values[metrics.KeyMRR] = stats.SubscriptionMRR
		default:
			values[metrics.KeyMRR] = stats.ClientMRR
		}

	case company.Trailside:
		values[metrics.KeyTotalSales] = float64(stats.SalesCount)
		var units int
		for _, l := range logs {
			units += l.UnitsSold
		}
		values[metrics.KeyUnitsSold] = float64(units)

	case company.Lodgepole:
		if latest := monthly.Latest(logs); latest != nil {
			values[metrics.KeyActiveUsers] = float64(latest.ActiveUsers)
		} else {
			values[metrics.KeyActiveUsers] = float64(stats.ActiveUsers)
		}
		var signups int
		for _, l := range logs {
			signups += l.Signups
		}
		values[metrics.KeySignups] = float64(signups)
	}

	return values
}
