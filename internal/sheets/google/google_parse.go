package google

import (
	"errors"
	"fmt"
	"strings"

	"tally/internal/core"
)

var errSkipRow = errors.New("skip row")

// parseRow converts a raw sheet row into a Transaction. Column order is
// date, owner, account, category, payee, notes, amount. Rows without a
// parseable date or amount (headers, separators) report errSkipRow.
func parseRow(row []any) (core.Transaction, error) {
	cols := toStrings(row)
	if len(cols) < 7 {
		return core.Transaction{}, errSkipRow
	}

	date, err := core.ParseDate(cols[0])
	if err != nil {
		return core.Transaction{}, errSkipRow
	}

	owner := cols[1]
	account := cols[2]
	if owner == "" || account == "" {
		return core.Transaction{}, errSkipRow
	}

	amount, err := core.ParseAmount(cols[6])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("amount %q: %w", cols[6], err)
	}

	return core.Transaction{
		Owner:    owner,
		Account:  account,
		Category: cols[3],
		Payee:    cols[4],
		Notes:    cols[5],
		Amount:   amount,
		Date:     date,
	}, nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
