package amqp

import (
	"testing"
	"time"
)

func TestNewRecordChangeMessage(t *testing.T) {
	msg := NewRecordChangeMessage(DomainExpense, "abc-123", ActionCreated)

	if msg.Domain != DomainExpense {
		t.Errorf("Domain = %v, want %v", msg.Domain, DomainExpense)
	}
	if msg.ID != "abc-123" {
		t.Errorf("ID = %v, want abc-123", msg.ID)
	}
	if msg.Action != ActionCreated {
		t.Errorf("Action = %v, want %v", msg.Action, ActionCreated)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestRecordChangeMessage_JSON(t *testing.T) {
	timestamp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &RecordChangeMessage{
		Domain:    DomainSaving,
		ID:        "s-42",
		Action:    ActionUpdated,
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := RecordChangeMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("RecordChangeMessageFromJSON() error = %v", err)
	}

	if parsed.Domain != msg.Domain {
		t.Errorf("Parsed Domain = %v, want %v", parsed.Domain, msg.Domain)
	}
	if parsed.ID != msg.ID {
		t.Errorf("Parsed ID = %v, want %v", parsed.ID, msg.ID)
	}
	if parsed.Action != msg.Action {
		t.Errorf("Parsed Action = %v, want %v", parsed.Action, msg.Action)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestRecordChangeMessage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		msg     RecordChangeMessage
		wantErr bool
	}{
		{
			name: "valid",
			msg:  RecordChangeMessage{Domain: DomainLoan, ID: "l-1", Action: ActionDeleted},
		},
		{
			name:    "unknown domain",
			msg:     RecordChangeMessage{Domain: "habit", ID: "h-1", Action: ActionCreated},
			wantErr: true,
		},
		{
			name:    "unknown action",
			msg:     RecordChangeMessage{Domain: DomainIncome, ID: "i-1", Action: "renamed"},
			wantErr: true,
		},
		{
			name:    "empty id",
			msg:     RecordChangeMessage{Domain: DomainIncome, Action: ActionCreated},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordChangeMessage_InvalidJSON(t *testing.T) {
	if _, err := RecordChangeMessageFromJSON([]byte(`{"domain": 42}`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := RecordChangeMessageFromJSON([]byte(`{"domain":"expense","id":"","action":"created"}`)); err == nil {
		t.Error("expected validation error for empty id")
	}
}
