package http

import (
	"errors"
	"net/http"
	"strings"

	"tally/internal/ledger"
)

var errMissingOwner = errors.New("owner query parameter is required")

// summaryQuery holds the parsed and sanitized /summary query parameters.
// The date strings are passed through verbatim; the engine validates them.
type summaryQuery struct {
	scope ledger.Scope
	from  string
	to    string
}

// parseSummaryQuery extracts owner, accountId, from, and to from the
// request. Owner is mandatory; everything else is optional.
func parseSummaryQuery(r *http.Request) (summaryQuery, error) {
	q := r.URL.Query()

	owner := sanitizeInput(q.Get("owner"))
	if owner == "" {
		return summaryQuery{}, errMissingOwner
	}

	scope := ledger.Scope{Owner: owner}
	if account := sanitizeInput(q.Get("accountId")); account != "" {
		scope.Account = &account
	}

	return summaryQuery{
		scope: scope,
		from:  sanitizeInput(q.Get("from")),
		to:    sanitizeInput(q.Get("to")),
	}, nil
}

// cacheKey builds the cache key for a query. The owner prefix lets
// InvalidateOwner match every entry of one owner.
func (q summaryQuery) cacheKey() string {
	return q.scope.Key() + "|" + q.from + "|" + q.to
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
