// Package dataset loads the static facility and flood-advice datasets.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/couchcryptid/flood-aid-actions/internal/domain"
)

// Paths locates the datasets on disk.
type Paths struct {
	Facilities string
	FloodInfo  string
	// Guidance is carried for completeness; no handler reads it.
	Guidance string
}

// Loader reads datasets fresh on every call. It holds no cached state, so it
// is safe for concurrent use.
type Loader struct {
	paths Paths
}

// NewLoader creates a Loader for the given dataset paths.
func NewLoader(paths Paths) *Loader {
	return &Loader{paths: paths}
}

// Paths returns the configured dataset locations.
func (l *Loader) Paths() Paths {
	return l.paths
}

// LoadFacilities reads the facility directory. Any read or parse failure
// wraps domain.ErrDataUnavailable.
func (l *Loader) LoadFacilities(_ context.Context) ([]domain.Facility, error) {
	var facilities []domain.Facility
	if err := readJSON(l.paths.Facilities, &facilities); err != nil {
		return nil, fmt.Errorf("load facilities: %w", err)
	}
	return facilities, nil
}

// LoadFloodAdvice reads the flood-advice dataset.
func (l *Loader) LoadFloodAdvice(_ context.Context) (domain.FloodAdviceSet, error) {
	var advice domain.FloodAdviceSet
	if err := readJSON(l.paths.FloodInfo, &advice); err != nil {
		return domain.FloodAdviceSet{}, fmt.Errorf("load flood advice: %w", err)
	}
	return advice, nil
}

// CheckReadiness returns nil when both datasets can be loaded.
func (l *Loader) CheckReadiness(ctx context.Context) error {
	if _, err := l.LoadFacilities(ctx); err != nil {
		return err
	}
	if _, err := l.LoadFloodAdvice(ctx); err != nil {
		return err
	}
	return nil
}

// readJSON decodes a whole file into v. Callers discard v on error.
func readJSON(path string, v any) error {
	if path == "" {
		return fmt.Errorf("%w: no path configured", domain.ErrDataUnavailable)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrDataUnavailable, path)
	}

	// Unmarshal rejects anything but whitespace after the top-level value.
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: parse %s: %w", domain.ErrDataUnavailable, path, err)
	}
	return nil
}
