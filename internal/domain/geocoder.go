package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string
	City             string  // enclosing city, e.g. "Berlin" for postcode "10243"
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves free-text locations.
type Geocoder interface {
	// ForwardGeocode converts a free-text location (city, district, postcode)
	// into place details.
	ForwardGeocode(ctx context.Context, query string) (GeocodingResult, error)
}
