package amqp

import (
	"testing"
	"time"
)

func TestNewTransactionChangedMessage(t *testing.T) {
	msg := NewTransactionChangedMessage("alice", "tx-42", ActionCreated)

	if msg.Owner != "alice" || msg.TransactionID != "tx-42" || msg.Action != ActionCreated {
		t.Errorf("unexpected message fields: %+v", msg)
	}
	if msg.Timestamp.IsZero() || time.Since(msg.Timestamp) > time.Second {
		t.Errorf("timestamp should be recent, got %v", msg.Timestamp)
	}
}

func TestTransactionChangedMessageJSON(t *testing.T) {
	msg := &TransactionChangedMessage{
		Owner:         "alice",
		TransactionID: "tx-42",
		Action:        ActionDeleted,
		Timestamp:     time.Date(2024, 3, 19, 12, 0, 0, 0, time.UTC),
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}

	parsed, err := TransactionChangedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if parsed.Owner != msg.Owner || parsed.TransactionID != msg.TransactionID || parsed.Action != msg.Action {
		t.Errorf("round trip mismatch: %+v", parsed)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestTransactionChangedMessageFromJSONRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"malformed json", []byte(`{"owner": `)},
		{"missing owner", []byte(`{"transactionId":"tx-1","action":"created"}`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := TransactionChangedMessageFromJSON(tc.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}
