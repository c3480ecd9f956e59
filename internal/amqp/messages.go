package amqp

import (
	"encoding/json"
	"time"
)

// Reasons an income recompute message is published.
const (
	ReasonPaymentAdded   = "payment_added"
	ReasonPaymentDeleted = "payment_deleted"
	ReasonSourceUpdated  = "source_updated"
)

// IncomeRecomputeMessage signals that an income source's payment history
// changed. It carries only the ID and reason, the worker fetches the source
// from the database and recomputes its derived statistics.
type IncomeRecomputeMessage struct {
	IncomeID  string    `json:"income_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// NewIncomeRecomputeMessage creates a new recompute message
func NewIncomeRecomputeMessage(incomeID, reason string) *IncomeRecomputeMessage {
	return &IncomeRecomputeMessage{
		IncomeID:  incomeID,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *IncomeRecomputeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func IncomeRecomputeMessageFromJSON(data []byte) (*IncomeRecomputeMessage, error) {
	var msg IncomeRecomputeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
