// Package storage implements the ledger read port on sqlite. Aggregation is
// pushed down to the database with conditional sums, and the category
// ordering carries the same name-ascending tie-break the in-memory backend
// uses, so ranking is deterministic across backends.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/ledger"

	_ "modernc.org/sqlite"
)

// TransactionEventPublisher emits change events after successful writes so
// consumers can drop stale cached summaries.
type TransactionEventPublisher interface {
	PublishTransactionChanged(ctx context.Context, msg *amqp.TransactionChangedMessage) error
}

var _ TransactionEventPublisher = (*amqp.Client)(nil)

// Repository is the sqlite-backed transaction store. The summary engine
// only reads through it; the insert helpers exist for the CRUD side of the
// product and for seeding.
type Repository struct {
	db        *sql.DB
	publisher TransactionEventPublisher
}

var _ ledger.Reader = (*Repository)(nil)

// NewRepository opens (creating if needed) the database at dbPath and runs
// pending migrations.
func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

// SetPublisher attaches an event publisher. Writes work without one; they
// just emit no change events.
func (r *Repository) SetPublisher(p TransactionEventPublisher) {
	r.publisher = p
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// scopeFilter appends the optional account clause and its argument.
func scopeFilter(query string, args []any, scope ledger.Scope) (string, []any) {
	if scope.Account != nil {
		query += " AND t.account_id = ?"
		args = append(args, *scope.Account)
	}
	return query, args
}

// FetchAggregate implements ledger.Reader. COALESCE keeps the totals at
// explicit zeros when no rows match.
func (r *Repository) FetchAggregate(ctx context.Context, scope ledger.Scope, window core.DateRange) (core.Totals, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN t.amount_miliunits >= 0 THEN t.amount_miliunits ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.amount_miliunits < 0 THEN t.amount_miliunits ELSE 0 END), 0),
			COALESCE(SUM(t.amount_miliunits), 0)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = ? AND t.date >= ? AND t.date <= ?`
	args := []any{scope.Owner, window.Start.String(), window.End.String()}
	query, args = scopeFilter(query, args, scope)

	var totals core.Totals
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&totals.Income.Miliunits,
		&totals.Expenses.Miliunits,
		&totals.Net.Miliunits,
	)
	if err != nil {
		return core.Totals{}, fmt.Errorf("query aggregate: %w", err)
	}
	return totals, nil
}

// FetchCategoryTotals implements ledger.Reader. The inner join on
// categories drops uncategorized rows before grouping.
func (r *Repository) FetchCategoryTotals(ctx context.Context, scope ledger.Scope, window core.DateRange) ([]core.CategoryTotal, error) {
	query := `
		SELECT c.name, SUM(ABS(t.amount_miliunits)) AS total
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		JOIN categories c ON c.id = t.category_id
		WHERE a.user_id = ? AND t.amount_miliunits < 0 AND t.date >= ? AND t.date <= ?`
	args := []any{scope.Owner, window.Start.String(), window.End.String()}
	query, args = scopeFilter(query, args, scope)
	query += `
		GROUP BY c.name
		ORDER BY total DESC, c.name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var ct core.CategoryTotal
		if err := rows.Scan(&ct.Name, &ct.Value.Miliunits); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}
	return totals, nil
}

// FetchDailyTotals implements ledger.Reader. Only days with activity come
// back; the engine gap-fills.
func (r *Repository) FetchDailyTotals(ctx context.Context, scope ledger.Scope, window core.DateRange) ([]core.DailyTotal, error) {
	query := `
		SELECT t.date,
			COALESCE(SUM(CASE WHEN t.amount_miliunits >= 0 THEN t.amount_miliunits ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.amount_miliunits < 0 THEN ABS(t.amount_miliunits) ELSE 0 END), 0)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = ? AND t.date >= ? AND t.date <= ?`
	args := []any{scope.Owner, window.Start.String(), window.End.String()}
	query, args = scopeFilter(query, args, scope)
	query += `
		GROUP BY t.date
		ORDER BY t.date ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query daily totals: %w", err)
	}
	defer rows.Close()

	var days []core.DailyTotal
	for rows.Next() {
		var dateStr string
		var dt core.DailyTotal
		if err := rows.Scan(&dateStr, &dt.Income.Miliunits, &dt.Expenses.Miliunits); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		if dt.Date, err = core.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", dateStr, err)
		}
		days = append(days, dt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily totals: %w", err)
	}
	return days, nil
}

// InsertAccount creates an account row for an owner.
func (r *Repository) InsertAccount(ctx context.Context, id, owner, name string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, user_id, name) VALUES (?, ?, ?)`, id, owner, name)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// InsertCategory creates a category row for an owner.
func (r *Repository) InsertCategory(ctx context.Context, id, owner, name string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, user_id, name) VALUES (?, ?, ?)`, id, owner, name)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// InsertTransaction creates a transaction row. categoryID may be nil for
// uncategorized transactions. When a publisher is attached, a change event
// for the account's owner goes out after the write commits; delivery is
// best-effort and never fails the insert.
func (r *Repository) InsertTransaction(ctx context.Context, id, accountID string, categoryID *string, amount core.Money, payee, notes string, date core.Date) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, account_id, category_id, amount_miliunits, payee, notes, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, accountID, categoryID, amount.Miliunits, payee, notes, date.String())
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"account_id", accountID,
		"amount_miliunits", amount.Miliunits,
		"date", date.String())

	r.publishChange(ctx, id, accountID, amqp.ActionCreated)
	return nil
}

// publishChange resolves the account's owner and emits a change event.
func (r *Repository) publishChange(ctx context.Context, transactionID, accountID, action string) {
	if r.publisher == nil {
		return
	}

	var owner string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM accounts WHERE id = ?`, accountID).Scan(&owner)
	if err != nil {
		slog.WarnContext(ctx, "Failed to resolve owner for change event",
			"error", err, "account_id", accountID)
		return
	}

	msg := amqp.NewTransactionChangedMessage(owner, transactionID, action)
	if err := r.publisher.PublishTransactionChanged(ctx, msg); err != nil {
		slog.WarnContext(ctx, "Failed to publish change event",
			"error", err, "owner", owner, "transaction_id", transactionID)
	}
}
