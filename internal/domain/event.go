package domain

import (
	"time"

	"github.com/google/uuid"
)

// Action outcomes recorded on events and metrics.
const (
	OutcomeOK            = "ok"
	OutcomeNoData        = "no_data"
	OutcomeNotFound      = "not_found"
	OutcomeUnknownAction = "unknown_action"
)

// ActionEvent records one handled action for the audit topic.
type ActionEvent struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	SenderID    string    `json:"sender_id,omitempty"`
	Slots       Slots     `json:"slots"`
	Responses   int       `json:"responses"`
	Outcome     string    `json:"outcome"`
	ProcessedAt time.Time `json:"processed_at"`
}

// NewActionEvent builds an event with a fresh ID and the current time.
func NewActionEvent(action, senderID string, slots Slots, responses int, outcome string) ActionEvent {
	return ActionEvent{
		ID:          uuid.NewString(),
		Action:      action,
		SenderID:    senderID,
		Slots:       slots,
		Responses:   responses,
		Outcome:     outcome,
		ProcessedAt: clock.Now().UTC(),
	}
}
