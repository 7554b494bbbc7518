package amqp

import (
	"encoding/json"
	"time"
)

// Sync operations carried by TransactionSyncMessage.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// TransactionSyncMessage represents a lightweight message for syncing a
// transaction to Google Sheets. It carries only the ID and operation,
// the worker fetches the full transaction from the store.
type TransactionSyncMessage struct {
	ID        string    `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionSyncMessage creates a new sync message for the given
// transaction ID and operation.
func NewTransactionSyncMessage(id, op string) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		ID:        id,
		Op:        op,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionSyncMessageFromJSON creates a message from JSON bytes
func TransactionSyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Op == "" {
		msg.Op = OpUpsert
	}
	return &msg, nil
}
