// Package service holds the treasury business logic: the synchronised
// working set, the mutation flows against the remote backend, and the pure
// aggregation engines that derive every report from it.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/observability"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/resilience"
	"github.com/tesourariapro/tesouraria-bff/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("service/treasury")

// Treasury owns the in-memory working set and coordinates it with the remote
// backend. Reads are served from the local snapshot; writes go to the backend
// first and are applied locally only after confirmed success.
type Treasury struct {
	store     port.TreasuryStore
	snapshots port.SnapshotStore
	stmtCache port.Cache[domain.MonthlyStatement]
	bulkhead  *resilience.Bulkhead
	metrics   *observability.Metrics
	logger    *zap.Logger

	mu   sync.RWMutex
	data domain.AppData

	// now is replaceable in tests.
	now func() time.Time
}

// NewTreasury creates the treasury service. The working set starts from the
// local snapshot (or the seed data when none exists) so reads work before the
// first successful sync.
func NewTreasury(
	store port.TreasuryStore,
	snapshots port.SnapshotStore,
	stmtCache port.Cache[domain.MonthlyStatement],
	bulkhead *resilience.Bulkhead,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*Treasury, error) {
	data, err := snapshots.Load()
	if err != nil {
		return nil, fmt.Errorf("load local snapshot: %w", err)
	}

	return &Treasury{
		store:     store,
		snapshots: snapshots,
		stmtCache: stmtCache,
		bulkhead:  bulkhead,
		metrics:   metrics,
		logger:    logger,
		data:      *data,
		now:       time.Now,
	}, nil
}

// Snapshot returns a copy of the current working set. Slices are shared with
// the internal state; callers must treat them as read-only.
func (t *Treasury) Snapshot() domain.AppData {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.data
}

// Refresh pulls every collection from the backend concurrently. Each
// collection fails soft: on error the previously known slice is kept, so one
// unreachable endpoint never wipes local data. The refreshed set replaces the
// working set wholesale (last fetch wins) and is persisted locally.
func (t *Treasury) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Treasury.Refresh")
	defer span.End()

	start := time.Now()
	defer func() {
		t.metrics.RecordRequestDuration("refresh", time.Since(start))
	}()

	if err := t.bulkhead.Acquire(ctx); err != nil {
		return err
	}
	defer t.bulkhead.Release()

	prev := t.Snapshot()
	next := prev
	var failures atomic.Int32

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		users, err := t.store.ListUsers(gCtx)
		if err != nil {
			t.logger.Warn("refresh: users fetch failed, keeping local", zap.Error(err))
			t.metrics.IncrExternalError("backend/users")
			failures.Add(1)
			return nil
		}
		next.Users = users
		return nil
	})
	g.Go(func() error {
		accounts, err := t.store.ListAccounts(gCtx)
		if err != nil {
			t.logger.Warn("refresh: accounts fetch failed, keeping local", zap.Error(err))
			t.metrics.IncrExternalError("backend/accounts")
			failures.Add(1)
			return nil
		}
		next.Accounts = accounts
		return nil
	})
	g.Go(func() error {
		transactions, err := t.store.ListTransactions(gCtx)
		if err != nil {
			t.logger.Warn("refresh: transactions fetch failed, keeping local", zap.Error(err))
			t.metrics.IncrExternalError("backend/transactions")
			failures.Add(1)
			return nil
		}
		next.Transactions = transactions
		return nil
	})
	g.Go(func() error {
		bills, err := t.store.ListBills(gCtx)
		if err != nil {
			t.logger.Warn("refresh: bills fetch failed, keeping local", zap.Error(err))
			t.metrics.IncrExternalError("backend/bills")
			failures.Add(1)
			return nil
		}
		next.Bills = bills
		return nil
	})
	g.Go(func() error {
		closings, err := t.store.ListClosings(gCtx)
		if err != nil {
			t.logger.Warn("refresh: closings fetch failed, keeping local", zap.Error(err))
			t.metrics.IncrExternalError("backend/closings")
			failures.Add(1)
			return nil
		}
		next.Closings = closings
		return nil
	})
	g.Go(func() error {
		settings, err := t.store.GetSettings(gCtx)
		if err != nil {
			t.logger.Warn("refresh: settings fetch failed, keeping local", zap.Error(err))
			t.metrics.IncrExternalError("backend/settings")
			failures.Add(1)
			return nil
		}
		next.Settings = *settings
		return nil
	})
	g.Go(func() error {
		incomes, err := t.store.ListMissionIncomes(gCtx)
		if err != nil {
			t.logger.Warn("refresh: mission incomes fetch failed, keeping local", zap.Error(err))
			t.metrics.IncrExternalError("backend/missoes")
			failures.Add(1)
			return nil
		}
		next.MissionIncomes = incomes
		return nil
	})
	g.Go(func() error {
		campaigns, err := t.store.ListCampaigns(gCtx)
		if err != nil {
			t.logger.Warn("refresh: campaigns fetch failed, keeping local", zap.Error(err))
			t.metrics.IncrExternalError("backend/campaigns")
			failures.Add(1)
			return nil
		}
		next.Campaigns = campaigns
		return nil
	})

	if err := g.Wait(); err != nil {
		t.metrics.IncrSync("error")
		return err
	}

	const collections = 8
	failed := int(failures.Load())
	switch {
	case failed == 0:
		t.metrics.IncrSync("success")
	case failed < collections:
		t.metrics.IncrSync("partial")
	default:
		t.metrics.IncrSync("error")
		t.logger.Error("refresh: every collection failed, serving local data")
		return &domain.ErrExternalService{
			Service: "backend",
			Err:     fmt.Errorf("all %d collections unreachable", collections),
		}
	}

	t.replaceData(next)

	t.logger.Info("refresh: working set updated",
		zap.Int("failed_collections", failed),
		zap.Int("transactions", len(next.Transactions)),
		zap.Int("bills", len(next.Bills)),
	)
	return nil
}

// replaceData swaps in a new working set, invalidates memoised statements and
// persists the snapshot. Snapshot write failure is logged but never fatal.
func (t *Treasury) replaceData(next domain.AppData) {
	t.mu.Lock()
	t.data = next
	t.mu.Unlock()

	t.stmtCache.Purge()

	if err := t.snapshots.Save(&next); err != nil {
		t.logger.Warn("snapshot save failed", zap.Error(err))
	}
}

// mutate applies fn to a copy of the working set and swaps the result in.
// Called only after the corresponding remote write succeeded. The copy is a
// struct header only: slices still share backing arrays with snapshots handed
// out earlier, so fn must clone a sub-slice before rewriting an element of
// it. Appends and wholesale slice replacements are safe as-is.
func (t *Treasury) mutate(fn func(data *domain.AppData)) {
	t.mu.Lock()
	next := t.data
	fn(&next)
	t.data = next
	t.mu.Unlock()

	t.stmtCache.Purge()

	if err := t.snapshots.Save(&next); err != nil {
		t.logger.Warn("snapshot save failed", zap.Error(err))
	}
}
