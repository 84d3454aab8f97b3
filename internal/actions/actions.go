// Package actions maps action names requested by the dialogue engine to the
// handlers that compose their responses.
package actions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/couchcryptid/flood-aid-actions/internal/domain"
	"github.com/couchcryptid/flood-aid-actions/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Name identifies an action the dialogue engine can request.
type Name string

const (
	FindNearbyFacilities Name = "action_find_nearby_facilities"
	FloodRiskAssessment  Name = "action_flood_risk_assessment"
	LocationGuidance     Name = "action_location_guidance"
	Fallback             Name = "action_fallback"
)

// ErrUnknownAction is returned by Run for names missing from the registry.
var ErrUnknownAction = errors.New("unknown action")

// Request is one action invocation: which action, for whom, with which slots.
type Request struct {
	Action   Name
	SenderID string
	Slots    domain.Slots
}

// DataSource supplies the datasets. Implementations load fresh data per call.
type DataSource interface {
	LoadFacilities(ctx context.Context) ([]domain.Facility, error)
	LoadFloodAdvice(ctx context.Context) (domain.FloodAdviceSet, error)
}

// Recorder receives an event for every handled action.
type Recorder interface {
	Record(event domain.ActionEvent)
}

// handlerFunc composes the messages for one action and reports its outcome.
type handlerFunc func(ctx context.Context, req Request) ([]domain.Message, string)

// Registry is the static dispatch table from action name to handler.
type Registry struct {
	data     DataSource
	rng      domain.Rand
	geocoder domain.Geocoder
	recorder Recorder
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics
	handlers map[Name]handlerFunc
}

// Option customizes a Registry.
type Option func(*Registry)

// WithRand sets the random source used for sampling and random picks.
func WithRand(rng domain.Rand) Option {
	return func(r *Registry) { r.rng = rng }
}

// WithGeocoder enables location resolution for facility lookups.
func WithGeocoder(g domain.Geocoder) Option {
	return func(r *Registry) { r.geocoder = g }
}

// WithRecorder sets where action events are sent.
func WithRecorder(rec Recorder) Option {
	return func(r *Registry) { r.recorder = rec }
}

// WithClock sets the clock used to time handlers.
func WithClock(c clockwork.Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// New builds the registry with every known action bound to its handler.
func New(data DataSource, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Registry {
	r := &Registry{
		data:     data,
		rng:      DefaultRand(),
		recorder: nopRecorder{},
		clock:    clockwork.NewRealClock(),
		logger:   logger,
		metrics:  metrics,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.handlers = map[Name]handlerFunc{
		FindNearbyFacilities: r.findNearbyFacilities,
		FloodRiskAssessment:  r.floodRiskAssessment,
		LocationGuidance:     r.locationGuidance,
		Fallback:             r.fallback,
	}
	return r
}

// Names lists the registered actions in lexical order.
func (r *Registry) Names() []Name {
	names := make([]Name, 0, len(r.handlers))
	for n := range r.handlers {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Run dispatches req to its handler and returns the messages to send, in order.
// Dataset failures are answered with a message, never an error; the only
// error is ErrUnknownAction.
func (r *Registry) Run(ctx context.Context, req Request) ([]domain.Message, error) {
	start := r.clock.Now()
	action := string(req.Action)

	h, ok := r.handlers[req.Action]
	if !ok {
		r.metrics.ActionsTotal.WithLabelValues(action, domain.OutcomeUnknownAction).Inc()
		r.recorder.Record(domain.NewActionEvent(action, req.SenderID, req.Slots, 0, domain.OutcomeUnknownAction))
		r.logger.Warn("unknown action requested", "action", action, "sender_id", req.SenderID)
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	msgs, outcome := h(ctx, req)

	r.metrics.ActionsTotal.WithLabelValues(action, outcome).Inc()
	r.metrics.ActionDuration.WithLabelValues(action).Observe(r.clock.Since(start).Seconds())
	r.recorder.Record(domain.NewActionEvent(action, req.SenderID, req.Slots, len(msgs), outcome))
	r.logger.Debug("action handled",
		"action", action,
		"sender_id", req.SenderID,
		"outcome", outcome,
		"responses", len(msgs),
	)
	return msgs, nil
}

type nopRecorder struct{}

func (nopRecorder) Record(domain.ActionEvent) {}
