package http

import (
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/core"
	"tally/internal/ledger"
)

// handleGetSummary serves GET /summary?owner=&accountId=&from=&to=.
//
// Status mapping: missing owner is 400, malformed dates are 422, and a
// ledger that cannot answer is 502. Cached responses bypass the engine.
func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query, err := parseSummaryQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := query.cacheKey()
	if cached, found := s.summaryCache.Get(key); found {
		slog.DebugContext(r.Context(), "Summary cache hit", "owner", query.scope.Owner)
		writeData(w, http.StatusOK, cached)
		return
	}

	sum, err := s.service.GetSummary(r.Context(), query.scope, query.from, query.to)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidDateFormat):
			writeError(w, http.StatusUnprocessableEntity, "invalid date: expected YYYY-MM-DD with from <= to")
		case errors.Is(err, ledger.ErrUnavailable):
			slog.ErrorContext(r.Context(), "Ledger read failed", "error", err, "owner", query.scope.Owner)
			writeError(w, http.StatusBadGateway, "ledger unavailable")
		default:
			slog.ErrorContext(r.Context(), "Summary failed", "error", err, "owner", query.scope.Owner)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.summaryCache.Set(key, sum)
	writeData(w, http.StatusOK, sum)
}
