package domain

import (
	"fmt"
	"strings"
)

// MatchKind describes which branch of facility matching produced a result.
type MatchKind int

const (
	// MatchNoData means no location was given and the directory has no hospitals.
	MatchNoData MatchKind = iota
	// MatchRandom means no location was given and a random hospital was picked.
	MatchRandom
	// MatchLocated means a location was given and at least one line was produced.
	MatchLocated
	// MatchNotFound means a location was given but nothing could be offered.
	MatchNotFound
)

func (k MatchKind) String() string {
	switch k {
	case MatchNoData:
		return "no_data"
	case MatchRandom:
		return "random"
	case MatchLocated:
		return "located"
	case MatchNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Facility response texts.
const (
	NoHospitalDataText = "I have no hospital data available right now."
	LocationHintText   = "Send your city/postcode to match a nearer one."
)

// LocationQuery is the location slot plus an optional geocoded city name.
type LocationQuery struct {
	Text     string
	Resolved string
}

// FacilityMatch is the outcome of FindFacilities: display-ready lines and the
// branch that produced them.
type FacilityMatch struct {
	Kind     MatchKind
	Lines    []string
	Hospital *Facility
	Shelter  *Facility
}

// FindFacilities picks the hospital and shelter to suggest for a location.
// It performs no I/O.
func FindFacilities(rng Rand, q LocationQuery, facilities []Facility) FacilityMatch {
	var hospitals, shelters []Facility
	for _, f := range facilities {
		switch {
		case f.IsType(FacilityHospital):
			hospitals = append(hospitals, f)
		case f.IsType(FacilityShelter):
			shelters = append(shelters, f)
		}
	}

	if strings.TrimSpace(q.Text) == "" {
		if len(hospitals) == 0 {
			return FacilityMatch{Kind: MatchNoData, Lines: []string{NoHospitalDataText}}
		}
		h := pickOne(rng, hospitals)
		return FacilityMatch{
			Kind:     MatchRandom,
			Lines:    []string{fmt.Sprintf("🏥 Hospital (random): %s — %s", h.Name, h.Address)},
			Hospital: &h,
		}
	}

	keys := matchKeys(q)
	res := FacilityMatch{Kind: MatchLocated}

	if h, ok := firstMatch(hospitals, keys); ok {
		res.Hospital = &h
		res.Lines = append(res.Lines, fmt.Sprintf("🏥 Nearest hospital for %s: %s — %s", q.Text, h.Name, h.Address))
	} else if len(hospitals) > 0 {
		h := pickOne(rng, hospitals)
		res.Hospital = &h
		res.Lines = append(res.Lines, fmt.Sprintf("🏥 No exact match. Hospital (random): %s — %s", h.Name, h.Address))
	}

	if s, ok := firstMatch(shelters, keys); ok {
		res.Shelter = &s
		res.Lines = append(res.Lines, fmt.Sprintf("🏠 Shelter for %s: %s — %s", q.Text, s.Name, s.Address))
	}

	if len(res.Lines) == 0 {
		return FacilityMatch{
			Kind:  MatchNotFound,
			Lines: []string{fmt.Sprintf("I couldn’t find facilities for '%s'. Try Berlin/Munich/Hamburg/Cologne.", q.Text)},
		}
	}
	return res
}

// CityMatches reports whether a facility city and a location overlap by
// substring containment in either direction, after normalization.
func CityMatches(city, location string) bool {
	c, l := Normalize(city), Normalize(location)
	return strings.Contains(l, c) || strings.Contains(c, l)
}

func matchKeys(q LocationQuery) []string {
	keys := []string{q.Text}
	if r := strings.TrimSpace(q.Resolved); r != "" && Normalize(r) != Normalize(q.Text) {
		keys = append(keys, r)
	}
	return keys
}

// firstMatch tries each key against the whole list before moving to the
// next, so the raw text always wins over the resolved city.
func firstMatch(fs []Facility, keys []string) (Facility, bool) {
	for _, k := range keys {
		for _, f := range fs {
			if CityMatches(f.City, k) {
				return f, true
			}
		}
	}
	return Facility{}, false
}
