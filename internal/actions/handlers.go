package actions

import (
	"context"
	"strings"

	"github.com/couchcryptid/flood-aid-actions/internal/domain"
)

func (r *Registry) findNearbyFacilities(ctx context.Context, req Request) ([]domain.Message, string) {
	facilities, err := r.data.LoadFacilities(ctx)
	if err != nil {
		return r.dataUnavailable("facilities", req, err)
	}

	q := domain.ResolveLocation(ctx, req.Slots.Location, r.geocoder, r.logger)
	match := domain.FindFacilities(r.rng, q, facilities)

	switch match.Kind {
	case domain.MatchRandom:
		return domain.TextMessages(match.Lines[0], domain.LocationHintText), domain.OutcomeOK
	case domain.MatchLocated:
		return domain.TextMessages(strings.Join(match.Lines, "\n")), domain.OutcomeOK
	default:
		return domain.TextMessages(match.Lines...), domain.OutcomeNotFound
	}
}

func (r *Registry) floodRiskAssessment(ctx context.Context, req Request) ([]domain.Message, string) {
	advice, err := r.data.LoadFloodAdvice(ctx)
	if err != nil {
		return r.dataUnavailable("flood_info", req, err)
	}

	sections := domain.AssessRisk(r.rng, domain.RiskInput{
		Severity:   req.Slots.Severity,
		WaterLevel: req.Slots.WaterLevel,
		Injuries:   req.Slots.Injuries,
		Trapped:    req.Slots.Trapped,
	}, advice)
	return domain.TextMessages(domain.RenderSections(sections)), domain.OutcomeOK
}

func (r *Registry) locationGuidance(ctx context.Context, req Request) ([]domain.Message, string) {
	advice, err := r.data.LoadFloodAdvice(ctx)
	if err != nil {
		return r.dataUnavailable("flood_info", req, err)
	}
	return domain.TextMessages(domain.SafetyChecklist(r.rng, advice)...), domain.OutcomeOK
}

func (r *Registry) fallback(_ context.Context, _ Request) ([]domain.Message, string) {
	return domain.TextMessages(domain.FallbackMessage()), domain.OutcomeOK
}

func (r *Registry) dataUnavailable(dataset string, req Request, err error) ([]domain.Message, string) {
	r.metrics.DatasetErrors.WithLabelValues(dataset).Inc()
	r.logger.Warn("dataset unavailable",
		"dataset", dataset,
		"action", string(req.Action),
		"sender_id", req.SenderID,
		"error", err,
	)
	return domain.TextMessages(domain.NoDataText), domain.OutcomeNoData
}
