package http

import (
	"errors"
	"net/http/httptest"
	"testing"
)

func TestParseSummaryQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/summary?owner=alice&accountId=checking&from=2024-03-01&to=2024-03-31", nil)

	q, err := parseSummaryQuery(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.scope.Owner != "alice" {
		t.Errorf("owner = %q", q.scope.Owner)
	}
	if q.scope.Account == nil || *q.scope.Account != "checking" {
		t.Errorf("account = %v, want checking", q.scope.Account)
	}
	if q.from != "2024-03-01" || q.to != "2024-03-31" {
		t.Errorf("dates = %q..%q", q.from, q.to)
	}
}

func TestParseSummaryQueryOptionalParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/summary?owner=alice", nil)

	q, err := parseSummaryQuery(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.scope.Account != nil {
		t.Errorf("account should be nil, got %v", *q.scope.Account)
	}
	if q.from != "" || q.to != "" {
		t.Errorf("dates should be empty, got %q..%q", q.from, q.to)
	}
}

func TestParseSummaryQueryMissingOwner(t *testing.T) {
	r := httptest.NewRequest("GET", "/summary", nil)

	if _, err := parseSummaryQuery(r); !errors.Is(err, errMissingOwner) {
		t.Fatalf("expected errMissingOwner, got %v", err)
	}
}

func TestCacheKeyOwnerPrefix(t *testing.T) {
	r := httptest.NewRequest("GET", "/summary?owner=alice&from=2024-03-01&to=2024-03-31", nil)
	q, err := parseSummaryQuery(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, want := q.cacheKey(), "alice||2024-03-01|2024-03-31"; got != want {
		t.Errorf("cache key = %q, want %q", got, want)
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  alice  ", "alice"},
		{"ali\x00ce", "alice"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
