package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/couchcryptid/flood-aid-actions/internal/actions"
	"github.com/couchcryptid/flood-aid-actions/internal/domain"
)

// maxBodyBytes caps webhook payloads; trackers with long histories stay well below it.
const maxBodyBytes = 1 << 20

// actionCall is the request body the dialogue engine posts for a custom action.
type actionCall struct {
	NextAction string       `json:"next_action"`
	SenderID   string       `json:"sender_id"`
	Tracker    trackerState `json:"tracker"`
}

type trackerState struct {
	SenderID string                     `json:"sender_id"`
	Slots    map[string]json.RawMessage `json:"slots"`
}

type actionResponse struct {
	Events    []any            `json:"events"`
	Responses []domain.Message `json:"responses"`
}

type actionError struct {
	Error      string `json:"error"`
	ActionName string `json:"action_name,omitempty"`
}

type actionInfo struct {
	Name string `json:"name"`
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var call actionCall
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&call); err != nil {
		writeJSON(w, http.StatusBadRequest, actionError{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if strings.TrimSpace(call.NextAction) == "" {
		writeJSON(w, http.StatusBadRequest, actionError{Error: "next_action is required"})
		return
	}

	senderID := call.SenderID
	if senderID == "" {
		senderID = call.Tracker.SenderID
	}

	msgs, err := s.runner.Run(r.Context(), actions.Request{
		Action:   actions.Name(call.NextAction),
		SenderID: senderID,
		Slots:    decodeSlots(call.Tracker.Slots),
	})
	if errors.Is(err, actions.ErrUnknownAction) {
		writeJSON(w, http.StatusNotFound, actionError{
			Error:      fmt.Sprintf("No registered action found for name '%s'.", call.NextAction),
			ActionName: call.NextAction,
		})
		return
	}
	if err != nil {
		s.logger.Error("action failed", "action", call.NextAction, "sender_id", senderID, "error", err)
		writeJSON(w, http.StatusInternalServerError, actionError{Error: "action failed", ActionName: call.NextAction})
		return
	}

	if msgs == nil {
		msgs = []domain.Message{}
	}
	writeJSON(w, http.StatusOK, actionResponse{Events: []any{}, Responses: msgs})
}

func (s *Server) handleActions(w http.ResponseWriter, _ *http.Request) {
	names := s.runner.Names()
	out := make([]actionInfo, len(names))
	for i, n := range names {
		out[i] = actionInfo{Name: string(n)}
	}
	writeJSON(w, http.StatusOK, out)
}

// decodeSlots reads the slots the handlers use. Text slots accept strings
// and numbers (postcodes often arrive as numbers); flags accept booleans
// only, so anything else stays unknown.
func decodeSlots(raw map[string]json.RawMessage) domain.Slots {
	return domain.Slots{
		Location:   textSlot(raw[domain.SlotLocation]),
		Severity:   textSlot(raw[domain.SlotSeverity]),
		WaterLevel: textSlot(raw[domain.SlotWaterLevel]),
		Injuries:   flagSlot(raw[domain.SlotInjuries]),
		Trapped:    flagSlot(raw[domain.SlotTrapped]),
	}
}

func textSlot(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func flagSlot(raw json.RawMessage) *bool {
	// null would otherwise decode to false.
	if len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil
	}
	return &b
}
