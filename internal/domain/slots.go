package domain

// Slot names read from the dialogue tracker.
const (
	SlotLocation   = "location"
	SlotSeverity   = "severity"
	SlotWaterLevel = "water_level"
	SlotInjuries   = "injuries"
	SlotTrapped    = "trapped"
)

// Slots holds the tracker values the handlers consume. Empty strings and nil
// flags mean the slot is unset.
type Slots struct {
	Location   string `json:"location,omitempty"`
	Severity   string `json:"severity,omitempty"`
	WaterLevel string `json:"water_level,omitempty"`
	Injuries   *bool  `json:"injuries,omitempty"`
	Trapped    *bool  `json:"trapped,omitempty"`
}

// IsTrue reports whether a tri-state flag is explicitly true.
func IsTrue(b *bool) bool {
	return b != nil && *b
}

// Bool returns a pointer to v, handy for building Slots.
func Bool(v bool) *bool {
	return &v
}
