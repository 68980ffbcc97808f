// Package google exposes a Google Sheets spreadsheet as a read-only
// transaction ledger. Rows are fetched per request and aggregated in
// process; the spreadsheet is the source of truth for households that keep
// their books in Sheets instead of the database.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"tally/internal/core"
	"tally/internal/ledger"
)

const defaultSheetName = "Transactions"

// readRange covers the transaction columns:
// A=date, B=owner, C=account, D=category, E=payee, F=notes, G=amount.
const readRange = "A:G"

// Config carries everything needed to open the spreadsheet. Exactly one of
// ServiceAccountJSON or ServiceAccountFile must be set; when both are empty
// the GOOGLE_APPLICATION_CREDENTIALS file is used as a last resort.
type Config struct {
	SpreadsheetID      string
	SheetName          string
	ServiceAccountJSON string
	ServiceAccountFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ledger.Reader = (*Client)(nil)

// New creates a Sheets-backed ledger from an already-validated Config.
func New(ctx context.Context, cfg Config) (*Client, error) {
	spreadsheetID := strings.TrimSpace(cfg.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}

	sheetName := strings.TrimSpace(cfg.SheetName)
	if sheetName == "" {
		sheetName = defaultSheetName
	}

	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets Service using the service account
// credentials named by cfg.
func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(cfg.ServiceAccountJSON)
	serviceAccountFile := strings.TrimSpace(cfg.ServiceAccountFile)
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets ledger initialized")
	return service, nil
}

// fetchTransactions reads the whole sheet and returns the rows that match
// the scope and window. Unparseable rows (headers, notes, blank lines) are
// skipped rather than failing the read.
func (c *Client) fetchTransactions(ctx context.Context, scope ledger.Scope, window core.DateRange) ([]core.Transaction, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!%s", c.sheetName, readRange)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	var out []core.Transaction
	for _, row := range resp.Values {
		tx, err := parseRow(row)
		if err != nil {
			continue
		}
		if scope.Matches(tx) && window.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (c *Client) FetchAggregate(ctx context.Context, scope ledger.Scope, window core.DateRange) (core.Totals, error) {
	txs, err := c.fetchTransactions(ctx, scope, window)
	if err != nil {
		return core.Totals{}, err
	}
	return core.Aggregate(txs), nil
}

func (c *Client) FetchCategoryTotals(ctx context.Context, scope ledger.Scope, window core.DateRange) ([]core.CategoryTotal, error) {
	txs, err := c.fetchTransactions(ctx, scope, window)
	if err != nil {
		return nil, err
	}
	return core.GroupExpensesByCategory(txs), nil
}

func (c *Client) FetchDailyTotals(ctx context.Context, scope ledger.Scope, window core.DateRange) ([]core.DailyTotal, error) {
	txs, err := c.fetchTransactions(ctx, scope, window)
	if err != nil {
		return nil, err
	}
	return core.GroupByDay(txs), nil
}
