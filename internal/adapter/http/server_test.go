package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/couchcryptid/flood-aid-actions/internal/actions"
	httpadapter "github.com/couchcryptid/flood-aid-actions/internal/adapter/http"
	"github.com/couchcryptid/flood-aid-actions/internal/domain"
	"github.com/couchcryptid/flood-aid-actions/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

// recordingRunner captures the last request and replies with fixed messages.
type recordingRunner struct {
	last actions.Request
	msgs []domain.Message
	err  error
}

func (r *recordingRunner) Run(_ context.Context, req actions.Request) ([]domain.Message, error) {
	r.last = req
	return r.msgs, r.err
}

func (r *recordingRunner) Names() []actions.Name {
	return []actions.Name{actions.Fallback, actions.FindNearbyFacilities}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(runner httpadapter.ActionRunner, readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", runner, &mockReadiness{err: readyErr}, discardLogger())
}

func postWebhook(t *testing.T, srv *httpadapter.Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(rec, req)
	return rec
}

type webhookResponse struct {
	Events    []any            `json:"events"`
	Responses []domain.Message `json:"responses"`
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&recordingRunner{}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(&recordingRunner{}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(&recordingRunner{}, fmt.Errorf("load facilities: %w", domain.ErrDataUnavailable))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&recordingRunner{}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestActionsEndpoint(t *testing.T) {
	srv := newTestServer(&recordingRunner{}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/actions", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"action_fallback"},{"name":"action_find_nearby_facilities"}]`, rec.Body.String())
}

func TestWebhook_DecodesSlots(t *testing.T) {
	runner := &recordingRunner{msgs: domain.TextMessages("ok")}
	srv := newTestServer(runner, nil)

	rec := postWebhook(t, srv, `{
		"next_action": "action_flood_risk_assessment",
		"sender_id": "student-ui",
		"tracker": {
			"sender_id": "student-ui",
			"slots": {
				"location": "Berlin",
				"severity": "high",
				"water_level": "knee",
				"injuries": true,
				"trapped": false,
				"requested_slot": null
			}
		}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, actions.FloodRiskAssessment, runner.last.Action)
	assert.Equal(t, "student-ui", runner.last.SenderID)
	assert.Equal(t, "Berlin", runner.last.Slots.Location)
	assert.Equal(t, "high", runner.last.Slots.Severity)
	assert.Equal(t, "knee", runner.last.Slots.WaterLevel)
	require.NotNil(t, runner.last.Slots.Injuries)
	assert.True(t, *runner.last.Slots.Injuries)
	require.NotNil(t, runner.last.Slots.Trapped)
	assert.False(t, *runner.last.Slots.Trapped)
}

func TestWebhook_UnknownSlotShapes(t *testing.T) {
	runner := &recordingRunner{}
	srv := newTestServer(runner, nil)

	rec := postWebhook(t, srv, `{
		"next_action": "action_find_nearby_facilities",
		"tracker": {
			"sender_id": "tracker-sender",
			"slots": {"location": 10243, "severity": null, "injuries": "yes", "trapped": null}
		}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tracker-sender", runner.last.SenderID)
	assert.Equal(t, "10243", runner.last.Slots.Location)
	assert.Empty(t, runner.last.Slots.Severity)
	assert.Nil(t, runner.last.Slots.Injuries, "only JSON booleans set a flag")
	assert.Nil(t, runner.last.Slots.Trapped)
}

func TestWebhook_ResponseShape(t *testing.T) {
	runner := &recordingRunner{msgs: domain.TextMessages("✅ Safety checklist:", "• Stay high")}
	srv := newTestServer(runner, nil)

	rec := postWebhook(t, srv, `{"next_action": "action_location_guidance", "tracker": {"slots": {}}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body webhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotNil(t, body.Events)
	assert.Empty(t, body.Events)
	assert.Equal(t, runner.msgs, body.Responses)
}

func TestWebhook_EmptyResponsesIsArray(t *testing.T) {
	srv := newTestServer(&recordingRunner{}, nil)

	rec := postWebhook(t, srv, `{"next_action": "action_fallback"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"events": [], "responses": []}`, rec.Body.String())
}

func TestWebhook_UnknownAction(t *testing.T) {
	runner := &recordingRunner{err: fmt.Errorf("%w: %q", actions.ErrUnknownAction, "action_dance")}
	srv := newTestServer(runner, nil)

	rec := postWebhook(t, srv, `{"next_action": "action_dance"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "No registered action found for name 'action_dance'.", "action_name": "action_dance"}`, rec.Body.String())
}

func TestWebhook_RunnerError(t *testing.T) {
	srv := newTestServer(&recordingRunner{err: fmt.Errorf("boom")}, nil)

	rec := postWebhook(t, srv, `{"next_action": "action_fallback"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWebhook_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"next_action": `},
		{"missing action", `{"tracker": {"slots": {}}}`},
		{"blank action", `{"next_action": "  "}`},
		{"wrong slot container", `{"next_action": "action_fallback", "tracker": {"slots": []}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&recordingRunner{}, nil)
			rec := postWebhook(t, srv, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestWebhook_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(&recordingRunner{}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// TestWebhook_EndToEnd drives the real registry with on-disk style data through HTTP.
func TestWebhook_EndToEnd(t *testing.T) {
	data := &staticData{
		facilities: []domain.Facility{
			{Type: "hospital", Name: "A", Address: "Addr1", City: "Berlin"},
			{Type: "shelter", Name: "B", Address: "Addr2", City: "Berlin"},
		},
	}
	registry := actions.New(data, discardLogger(), observability.NewMetricsForTesting(),
		actions.WithRand(actions.NewSeededRand(1)))
	srv := newTestServer(registry, nil)

	rec := postWebhook(t, srv, `{"next_action": "action_find_nearby_facilities", "tracker": {"slots": {"location": "berlin"}}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body webhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Responses, 1)
	assert.Contains(t, body.Responses[0].Text, "Nearest hospital for berlin: A — Addr1")
	assert.Contains(t, body.Responses[0].Text, "Shelter for berlin: B — Addr2")
}

type staticData struct {
	facilities []domain.Facility
	advice     domain.FloodAdviceSet
}

func (s *staticData) LoadFacilities(_ context.Context) ([]domain.Facility, error) {
	return s.facilities, nil
}

func (s *staticData) LoadFloodAdvice(_ context.Context) (domain.FloodAdviceSet, error) {
	return s.advice, nil
}
