package domain

import (
	"context"
	"log/slog"
	"strings"
)

// ResolveLocation builds a LocationQuery for a location slot, adding the
// geocoded city when a geocoder is available. Geocoding failures are logged
// and the query falls back to the raw text.
func ResolveLocation(ctx context.Context, location string, geocoder Geocoder, logger *slog.Logger) LocationQuery {
	q := LocationQuery{Text: location}
	if geocoder == nil || strings.TrimSpace(location) == "" {
		return q
	}

	result, err := geocoder.ForwardGeocode(ctx, strings.TrimSpace(location))
	if err != nil {
		logger.Warn("forward geocoding failed",
			"location", location,
			"error", err,
		)
		return q
	}

	switch {
	case result.City != "":
		q.Resolved = result.City
	case result.PlaceName != "":
		q.Resolved = result.PlaceName
	}
	return q
}
