package domain

import "strings"

// Facility types recognized in the directory.
const (
	FacilityHospital = "hospital"
	FacilityShelter  = "shelter"
)

// Facility is one hospital or shelter entry from the facility directory.
type Facility struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// IsType reports whether the facility's normalized type equals kind.
func (f Facility) IsType(kind string) bool {
	return Normalize(f.Type) == kind
}

// Normalize trims surrounding whitespace and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
