package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Change actions carried on the feed.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Record domains that emit change messages.
const (
	DomainExpense = "expense"
	DomainIncome  = "income"
	DomainSaving  = "saving"
	DomainLoan    = "loan"
)

// RecordChangeMessage is a lightweight notification that a record changed.
// It carries only the domain, record ID and action; consumers fetch the
// current state from the backend themselves.
type RecordChangeMessage struct {
	Domain    string    `json:"domain"`
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordChangeMessage(domain, id, action string) *RecordChangeMessage {
	return &RecordChangeMessage{
		Domain:    domain,
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *RecordChangeMessage) Validate() error {
	switch m.Domain {
	case DomainExpense, DomainIncome, DomainSaving, DomainLoan:
	default:
		return fmt.Errorf("unknown domain %q", m.Domain)
	}
	switch m.Action {
	case ActionCreated, ActionUpdated, ActionDeleted:
	default:
		return fmt.Errorf("unknown action %q", m.Action)
	}
	if m.ID == "" {
		return fmt.Errorf("empty record id")
	}
	return nil
}

func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordChangeMessageFromJSON(data []byte) (*RecordChangeMessage, error) {
	var msg RecordChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
