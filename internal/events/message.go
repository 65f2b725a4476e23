package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
)

// StatusChangedMessage is published after an invoice status is persisted.
type StatusChangedMessage struct {
	InvoiceID      uuid.UUID      `json:"invoice_id"`
	OrganizationID uuid.UUID      `json:"organization_id"`
	From           invoice.Status `json:"from"`
	To             invoice.Status `json:"to"`
	ChangedAt      time.Time      `json:"changed_at"`
}

func newStatusChangedMessage(c invoice.StatusChange) StatusChangedMessage {
	return StatusChangedMessage{
		InvoiceID:      c.InvoiceID,
		OrganizationID: c.OrganizationID,
		From:           c.From,
		To:             c.To,
		ChangedAt:      c.ChangedAt,
	}
}

func (m StatusChangedMessage) toJSON() ([]byte, error) {
	return json.Marshal(m)
}

func statusChangedFromJSON(data []byte) (*StatusChangedMessage, error) {
	var msg StatusChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}
