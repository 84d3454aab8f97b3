package domain

// FloodAdviceSet is the localized flood-advice dataset. Every accessor
// returns an empty (possibly nil) list for missing keys.
type FloodAdviceSet struct {
	Severity         map[string][]string `json:"severity"`
	WaterLevelAdvice map[string][]string `json:"water_level_advice"`
	InjuriesYes      []string            `json:"injuries_yes"`
	InjuriesNo       []string            `json:"injuries_no"`
	TrappedTips      []string            `json:"trapped"`
	Precautions      []string            `json:"precautions"`
}

// SeverityTips returns the advice for a severity label. Lookup on a nil map
// is safe and yields nil.
func (a FloodAdviceSet) SeverityTips(severity string) []string {
	return a.Severity[severity]
}

// WaterLevelTips returns the advice for a water-level label.
func (a FloodAdviceSet) WaterLevelTips(level string) []string {
	return a.WaterLevelAdvice[level]
}

// InjuryTips selects injuries_yes only for an explicit true.
func (a FloodAdviceSet) InjuryTips(injuries *bool) []string {
	if IsTrue(injuries) {
		return a.InjuriesYes
	}
	return a.InjuriesNo
}
