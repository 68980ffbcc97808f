// Package ledger defines the read-only port the summary engine depends on.
// Storage backends (sqlite, Google Sheets, in-memory) implement Reader; the
// engine never writes through it.
package ledger

import (
	"context"
	"errors"
	"strings"

	"tally/internal/core"
)

// ErrUnavailable marks a ledger read that failed to answer. Callers use it
// to distinguish "no data" (a valid zero result) from "couldn't fetch data".
var ErrUnavailable = errors.New("ledger unavailable")

// Scope bounds every ledger read to one owner, optionally narrowed to a
// single account. A nil Account means "all accounts for this owner"; the
// absence of a filter is explicit, not a sentinel value.
type Scope struct {
	Owner   string
	Account *string
}

// Matches reports whether a transaction falls inside the scope.
func (s Scope) Matches(tx core.Transaction) bool {
	if tx.Owner != s.Owner {
		return false
	}
	if s.Account != nil && tx.Account != *s.Account {
		return false
	}
	return true
}

// Key returns a stable cache-key fragment for the scope, prefixed by owner
// so that owner-wide invalidation can match on the prefix. Separator
// characters inside the owner or account are escaped, keeping the prefix
// for owner "alice" distinct from the key of owner "alice|x".
func (s Scope) Key() string {
	if s.Account == nil {
		return OwnerKeyPrefix(s.Owner)
	}
	return OwnerKeyPrefix(s.Owner) + escapeKeyPart(*s.Account)
}

// OwnerKeyPrefix returns the key prefix shared by every scope of the owner.
func OwnerKeyPrefix(owner string) string {
	return escapeKeyPart(owner) + "|"
}

func escapeKeyPart(part string) string {
	part = strings.ReplaceAll(part, `\`, `\\`)
	return strings.ReplaceAll(part, "|", `\|`)
}

// Reader is the query surface over the transaction store. All three reads
// honor the scope and treat the range as inclusive on both ends.
type Reader interface {
	// FetchAggregate returns income/expenses/net totals in miliunits,
	// with explicit zeros when nothing matches.
	FetchAggregate(ctx context.Context, scope Scope, r core.DateRange) (core.Totals, error)

	// FetchCategoryTotals returns absolute expense totals per category for
	// categorized expense transactions, ordered by total descending with
	// name ascending as the tie-break.
	FetchCategoryTotals(ctx context.Context, scope Scope, r core.DateRange) ([]core.CategoryTotal, error)

	// FetchDailyTotals returns per-day income and absolute expense sums
	// for days with activity, ordered by date ascending.
	FetchDailyTotals(ctx context.Context, scope Scope, r core.DateRange) ([]core.DailyTotal, error)
}
