package google

import (
	"context"
	"strings"
	"testing"
)

func TestNewRequiresSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Config{
		ServiceAccountJSON: `{"type":"service_account"}`,
	})
	if err == nil || !strings.Contains(err.Error(), "spreadsheet ID") {
		t.Fatalf("expected spreadsheet ID error, got %v", err)
	}
}

func TestNewRequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	_, err := New(context.Background(), Config{SpreadsheetID: "sheet-1"})
	if err == nil || !strings.Contains(err.Error(), "service account credentials") {
		t.Fatalf("expected credentials error, got %v", err)
	}
}

func TestNewRejectsMissingCredentialsFile(t *testing.T) {
	_, err := New(context.Background(), Config{
		SpreadsheetID:      "sheet-1",
		ServiceAccountFile: "/nonexistent/creds.json",
	})
	if err == nil || !strings.Contains(err.Error(), "read service account file") {
		t.Fatalf("expected file read error, got %v", err)
	}
}
