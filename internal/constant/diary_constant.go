package constant

const (
	AnalysisModeCBT = "cbt"
	AnalysisModeMBT = "mbt"

	MoodVeryHappy = "very_happy"
	MoodHappy     = "happy"
	MoodExcited   = "excited"
	MoodContent   = "content"
	MoodCalm      = "calm"
	MoodNeutral   = "neutral"
	MoodOkay      = "okay"
	MoodSad       = "sad"
	MoodDown      = "down"
	MoodAnxious   = "anxious"
	MoodVerySad   = "very_sad"
	MoodDepressed = "depressed"

	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

// Moods accepted on diary entries, used by request validation.
const MoodOneOf = "very_happy happy excited content calm neutral okay sad down anxious very_sad depressed"

func IsMood(mood string) bool {
	switch mood {
	case MoodVeryHappy, MoodHappy, MoodExcited, MoodContent, MoodCalm, MoodNeutral,
		MoodOkay, MoodSad, MoodDown, MoodAnxious, MoodVerySad, MoodDepressed:
		return true
	}
	return false
}
