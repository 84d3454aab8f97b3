package domain

import (
	"fmt"
	"strings"
)

// Per-section tip limits for the risk assessment.
const (
	severityTipLimit   = 3
	waterLevelTipLimit = 2
	injuryTipLimit     = 2
	trappedTipLimit    = 3
	precautionTipLimit = 3
)

// RiskInput carries the slot values the risk assessment depends on.
type RiskInput struct {
	Severity   string
	WaterLevel string
	Injuries   *bool
	Trapped    *bool
}

// Section is one header plus its sampled tips.
type Section struct {
	Header string
	Tips   []string
}

// Lines renders the section as its header followed by bulleted tips.
func (s Section) Lines() []string {
	lines := make([]string, 0, len(s.Tips)+1)
	lines = append(lines, s.Header)
	for _, t := range s.Tips {
		lines = append(lines, Bullet(t))
	}
	return lines
}

// AssessRisk builds the advisory sections in fixed order: severity (if set),
// water level (if set), injuries, then trapped or precautions.
func AssessRisk(rng Rand, in RiskInput, advice FloodAdviceSet) []Section {
	severity := Normalize(in.Severity)
	waterLevel := Normalize(in.WaterLevel)

	var sections []Section
	if severity != "" {
		sections = append(sections, Section{
			Header: fmt.Sprintf("📌 Severity (%s):", severity),
			Tips:   PickLines(rng, advice.SeverityTips(severity), severityTipLimit),
		})
	}
	if waterLevel != "" {
		sections = append(sections, Section{
			Header: fmt.Sprintf("🌊 Water level (%s):", waterLevel),
			Tips:   PickLines(rng, advice.WaterLevelTips(waterLevel), waterLevelTipLimit),
		})
	}

	sections = append(sections, Section{
		Header: "🩹 Injuries:",
		Tips:   PickLines(rng, advice.InjuryTips(in.Injuries), injuryTipLimit),
	})

	if IsTrue(in.Trapped) {
		sections = append(sections, Section{
			Header: "🚨 Trapped:",
			Tips:   PickLines(rng, advice.TrappedTips, trappedTipLimit),
		})
	} else {
		sections = append(sections, Section{
			Header: "✅ Precautions:",
			Tips:   PickLines(rng, advice.Precautions, precautionTipLimit),
		})
	}
	return sections
}

// RenderSections joins all sections into a single message body.
func RenderSections(sections []Section) string {
	var lines []string
	for _, s := range sections {
		lines = append(lines, s.Lines()...)
	}
	return strings.Join(lines, "\n")
}

// Bullet formats one advice line.
func Bullet(tip string) string {
	return "• " + tip
}
