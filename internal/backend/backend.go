// Package backend selects and constructs the transaction ledger the
// summary engine reads from. Three backends exist: an in-memory store for
// development and tests, a sqlite database, and a Google Sheets
// spreadsheet.
package backend

import (
	"context"
	"fmt"

	"tally/internal/config"
	"tally/internal/ledger"
	"tally/internal/ledger/memory"
	gsheet "tally/internal/sheets/google"
	"tally/internal/storage"
)

type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
	Sheets Type = "sheets"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite, Sheets:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources on shutdown. It may be nil.
type CleanupFunc func() error

// Result holds the constructed ledger and its cleanup hook. Repo is set
// only for the sqlite backend, whose write helpers can publish change
// events once a broker connection exists.
type Result struct {
	Ledger  ledger.Reader
	Repo    *storage.Repository
	Cleanup CleanupFunc
}

// New builds the ledger named by cfg.DataBackend. The config is assumed to
// have passed Validate already; structural problems still surface as
// construction errors.
func New(ctx context.Context, cfg *config.Config) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}

	switch t {
	case SQLite:
		repo, err := storage.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		return &Result{Ledger: repo, Repo: repo, Cleanup: repo.Close}, nil

	case Sheets:
		cli, err := gsheet.New(ctx, gsheet.Config{
			SpreadsheetID:      cfg.GoogleSpreadsheetID,
			SheetName:          cfg.GoogleSheetName,
			ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
			ServiceAccountFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize sheets backend: %w", err)
		}
		return &Result{Ledger: cli}, nil

	default:
		if cfg.SeedFile != "" {
			store, err := memory.NewFromFile(cfg.SeedFile)
			if err != nil {
				return nil, fmt.Errorf("initialize memory backend: %w", err)
			}
			return &Result{Ledger: store}, nil
		}
		return &Result{Ledger: memory.New()}, nil
	}
}
