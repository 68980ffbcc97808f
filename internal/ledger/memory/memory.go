// Package memory provides an in-process ledger backend. It backs tests and
// the default demo configuration, and doubles as the reference
// implementation of the ledger.Reader contract: aggregation is an explicit
// partition-then-sum over rows, with no storage engine involved.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"tally/internal/core"
	"tally/internal/ledger"
)

// Store holds transactions in memory behind a read-write lock.
type Store struct {
	mu  sync.RWMutex
	txs []core.Transaction
}

var _ ledger.Reader = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// NewFromFile creates a store seeded from a JSON file holding an array of
// transactions. Missing files are not an error: the store starts empty.
func NewFromFile(path string) (*Store, error) {
	s := New()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var rows []seedRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for _, row := range rows {
		s.Add(row.transaction())
	}
	return s, nil
}

type seedRow struct {
	ID       string     `json:"id"`
	Owner    string     `json:"owner"`
	Account  string     `json:"account"`
	Category string     `json:"category"`
	Payee    string     `json:"payee"`
	Notes    string     `json:"notes"`
	Amount   core.Money `json:"amount"`
	Date     core.Date  `json:"date"`
}

func (r seedRow) transaction() core.Transaction {
	return core.Transaction{
		ID:       r.ID,
		Owner:    r.Owner,
		Account:  r.Account,
		Category: r.Category,
		Payee:    r.Payee,
		Notes:    r.Notes,
		Amount:   r.Amount,
		Date:     r.Date,
	}
}

// Add appends transactions to the store.
func (s *Store) Add(txs ...core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, txs...)
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txs)
}

func (s *Store) filter(scope ledger.Scope, r core.DateRange) []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []core.Transaction
	for _, tx := range s.txs {
		if scope.Matches(tx) && r.Contains(tx.Date) {
			matched = append(matched, tx)
		}
	}
	return matched
}

// FetchAggregate implements ledger.Reader.
func (s *Store) FetchAggregate(ctx context.Context, scope ledger.Scope, r core.DateRange) (core.Totals, error) {
	if err := ctx.Err(); err != nil {
		return core.Totals{}, err
	}
	return core.Aggregate(s.filter(scope, r)), nil
}

// FetchCategoryTotals implements ledger.Reader.
func (s *Store) FetchCategoryTotals(ctx context.Context, scope ledger.Scope, r core.DateRange) ([]core.CategoryTotal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return core.GroupExpensesByCategory(s.filter(scope, r)), nil
}

// FetchDailyTotals implements ledger.Reader.
func (s *Store) FetchDailyTotals(ctx context.Context, scope ledger.Scope, r core.DateRange) ([]core.DailyTotal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return core.GroupByDay(s.filter(scope, r)), nil
}
