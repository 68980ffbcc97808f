package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Actions carried by transaction change events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// TransactionChangedMessage announces that an owner's ledger changed.
// Consumers only need the owner to drop stale cached summaries; the
// transaction ID is carried for tracing.
type TransactionChangedMessage struct {
	Owner         string    `json:"owner"`
	TransactionID string    `json:"transactionId"`
	Action        string    `json:"action"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewTransactionChangedMessage creates an event for the given owner and
// transaction.
func NewTransactionChangedMessage(owner, transactionID, action string) *TransactionChangedMessage {
	return &TransactionChangedMessage{
		Owner:         owner,
		TransactionID: transactionID,
		Action:        action,
		Timestamp:     time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *TransactionChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionChangedMessageFromJSON parses a message from JSON bytes.
// Messages without an owner are rejected since there is nothing to
// invalidate.
func TransactionChangedMessageFromJSON(data []byte) (*TransactionChangedMessage, error) {
	var msg TransactionChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Owner == "" {
		return nil, fmt.Errorf("message has no owner")
	}
	return &msg, nil
}
