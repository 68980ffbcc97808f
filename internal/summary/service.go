// Package summary assembles the financial summary for an owner-scoped
// window: current totals, percent changes against the immediately
// preceding window of equal length, the ranked category breakdown and the
// gap-filled daily series.
package summary

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/core"
	"tally/internal/ledger"
)

// Service is the engine's single public entry point. It is a pure function
// of its inputs plus the injected read-only ledger handle: no state is
// shared between calls and no writes or retries happen here.
type Service struct {
	ledger ledger.Reader
	clock  func() time.Time
}

// New creates a Service reading from the given ledger.
func New(reader ledger.Reader) *Service {
	return NewWithClock(reader, time.Now)
}

// NewWithClock creates a Service with an injectable "now" reference, used
// when resolving default date ranges. Tests pin the clock.
func NewWithClock(reader ledger.Reader, clock func() time.Time) *Service {
	return &Service{ledger: reader, clock: clock}
}

// GetSummary resolves the requested window, runs the four ledger reads
// concurrently and assembles the Summary. Malformed dates fail before any
// read; any read failure aborts the whole call wrapped in
// ledger.ErrUnavailable, so a partial summary is never returned.
func (s *Service) GetSummary(ctx context.Context, scope ledger.Scope, from, to string) (core.Summary, error) {
	window, err := core.ResolveRange(from, to, s.clock())
	if err != nil {
		return core.Summary{}, fmt.Errorf("resolve range: %w", err)
	}
	comparison := window.Previous()

	var (
		current  core.Totals
		previous core.Totals
		cats     []core.CategoryTotal
		days     []core.DailyTotal
	)

	// The four reads are independent; the group is the join point and the
	// first failure cancels the rest.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if current, err = s.ledger.FetchAggregate(gctx, scope, window); err != nil {
			return fmt.Errorf("fetch current totals: %w: %w", ledger.ErrUnavailable, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if previous, err = s.ledger.FetchAggregate(gctx, scope, comparison); err != nil {
			return fmt.Errorf("fetch comparison totals: %w: %w", ledger.ErrUnavailable, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if cats, err = s.ledger.FetchCategoryTotals(gctx, scope, window); err != nil {
			return fmt.Errorf("fetch category totals: %w: %w", ledger.ErrUnavailable, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if days, err = s.ledger.FetchDailyTotals(gctx, scope, window); err != nil {
			return fmt.Errorf("fetch daily totals: %w: %w", ledger.ErrUnavailable, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.Summary{}, err
	}

	// Backends are expected to return ranked rows already; re-sorting here
	// keeps the tie-break deterministic even if one does not.
	core.SortCategoryTotals(cats)

	return core.Summary{
		RemainingAmount: current.Net,
		RemainingChange: core.PercentChange(current.Net, previous.Net),
		IncomeAmount:    current.Income,
		IncomeChange:    core.PercentChange(current.Income, previous.Income),
		ExpensesAmount:  current.Expenses,
		ExpensesChange:  core.PercentChange(current.Expenses, previous.Expenses),
		Categories:      core.RankCategories(cats),
		Days:            core.FillMissingDays(days, window),
	}, nil
}
