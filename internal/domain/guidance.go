package domain

const (
	checklistHeader   = "✅ Safety checklist:"
	checklistTipLimit = 4
)

// FallbackText lists the inputs the assistant understands. It never changes
// between calls.
const FallbackText = "⚠️ I didn’t understand. Please reply with:\n" +
	"• City/postcode (e.g., Berlin, 10243)\n" +
	"• Severity: low / medium / high\n" +
	"• Water level: ankle / knee / waist / above\n" +
	"• nearest hospital\n" +
	"If life-threatening call 112."

// NoDataText replaces a response whose dataset could not be loaded.
const NoDataText = "I have no flood data available right now. If life-threatening call 112."

// SafetyChecklist returns the checklist header followed by up to four sampled
// precautions. Each element is sent as its own message.
func SafetyChecklist(rng Rand, advice FloodAdviceSet) []string {
	tips := PickLines(rng, advice.Precautions, checklistTipLimit)
	out := make([]string, 0, len(tips)+1)
	out = append(out, checklistHeader)
	for _, t := range tips {
		out = append(out, Bullet(t))
	}
	return out
}

// FallbackMessage returns the static help text.
func FallbackMessage() string {
	return FallbackText
}
