package memory

import (
	"context"
	"testing"

	"tally/internal/core"
	"tally/internal/ledger"
)

func seeded() *Store {
	s := New()
	s.Add(
		core.Transaction{ID: "t1", Owner: "alice", Account: "checking", Category: "Food", Amount: core.Money{Miliunits: -2000}, Date: core.NewDate(2024, 3, 10)},
		core.Transaction{ID: "t2", Owner: "alice", Account: "checking", Amount: core.Money{Miliunits: 5000}, Date: core.NewDate(2024, 3, 11)},
		core.Transaction{ID: "t3", Owner: "alice", Account: "savings", Category: "Rent", Amount: core.Money{Miliunits: -1000}, Date: core.NewDate(2024, 3, 12)},
		core.Transaction{ID: "t4", Owner: "alice", Account: "checking", Amount: core.Money{Miliunits: -400}, Date: core.NewDate(2024, 3, 19)}, // uncategorized expense
		core.Transaction{ID: "t5", Owner: "bob", Account: "checking", Category: "Food", Amount: core.Money{Miliunits: -9000}, Date: core.NewDate(2024, 3, 10)},
		core.Transaction{ID: "t6", Owner: "alice", Account: "checking", Category: "Food", Amount: core.Money{Miliunits: -700}, Date: core.NewDate(2024, 3, 20)}, // outside range
	)
	return s
}

var window = core.DateRange{Start: core.NewDate(2024, 3, 10), End: core.NewDate(2024, 3, 19)}

func TestFetchAggregateScopesByOwner(t *testing.T) {
	s := seeded()
	totals, err := s.FetchAggregate(context.Background(), ledger.Scope{Owner: "alice"}, window)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if totals.Income.Miliunits != 5000 {
		t.Fatalf("income = %d, want 5000", totals.Income.Miliunits)
	}
	if totals.Expenses.Miliunits != -3400 {
		t.Fatalf("expenses = %d, want -3400 (bob and out-of-range rows excluded)", totals.Expenses.Miliunits)
	}
	if totals.Net.Miliunits != 1600 {
		t.Fatalf("net = %d, want 1600", totals.Net.Miliunits)
	}
}

func TestFetchAggregateAccountFilter(t *testing.T) {
	s := seeded()
	account := "savings"
	totals, err := s.FetchAggregate(context.Background(), ledger.Scope{Owner: "alice", Account: &account}, window)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if totals.Expenses.Miliunits != -1000 || totals.Income.Miliunits != 0 {
		t.Fatalf("totals = %+v, want only the savings expense", totals)
	}
}

func TestFetchAggregateInclusiveBounds(t *testing.T) {
	s := seeded()
	edge := core.DateRange{Start: core.NewDate(2024, 3, 19), End: core.NewDate(2024, 3, 19)}
	totals, err := s.FetchAggregate(context.Background(), ledger.Scope{Owner: "alice"}, edge)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if totals.Expenses.Miliunits != -400 {
		t.Fatalf("end date must be inclusive, got %+v", totals)
	}
}

func TestFetchCategoryTotalsExcludesUncategorized(t *testing.T) {
	s := seeded()
	cats, err := s.FetchCategoryTotals(context.Background(), ledger.Scope{Owner: "alice"}, window)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("got %d categories, want 2 (uncategorized t4 excluded)", len(cats))
	}
	if cats[0].Name != "Food" || cats[0].Value.Miliunits != 2000 {
		t.Fatalf("top = %+v, want Food=2000", cats[0])
	}
}

func TestFetchDailyTotals(t *testing.T) {
	s := seeded()
	days, err := s.FetchDailyTotals(context.Background(), ledger.Scope{Owner: "alice"}, window)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(days) != 4 {
		t.Fatalf("got %d active days, want 4", len(days))
	}
	if days[0].Expenses.Miliunits != 2000 {
		t.Fatalf("expenses must be positive magnitudes, got %+v", days[0])
	}
}

func TestFetchCancelledContext(t *testing.T) {
	s := seeded()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.FetchAggregate(ctx, ledger.Scope{Owner: "alice"}, window); err == nil {
		t.Fatal("expected context error")
	}
}

func TestNewFromFileMissing(t *testing.T) {
	s, err := NewFromFile(t.TempDir() + "/absent.json")
	if err != nil {
		t.Fatalf("missing seed file must not error: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("store should start empty, has %d rows", s.Len())
	}
}
