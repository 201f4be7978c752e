package eligibility

import "time"

// CooldownDays is the minimum number of whole days between two analyses.
const CooldownDays = 30

type Eligibility struct {
	Eligible      bool `json:"eligible"`
	DaysRemaining int  `json:"days_remaining"`
}

// Check decides whether a new analysis may run. A user who was never
// analyzed is always eligible. Elapsed time is counted in whole days,
// rounded down; a last analysis in the future counts as zero days.
func Check(lastAnalysisAt *time.Time, now time.Time) Eligibility {
	if lastAnalysisAt == nil {
		return Eligibility{Eligible: true}
	}

	elapsed := ElapsedDays(*lastAnalysisAt, now)
	if elapsed >= CooldownDays {
		return Eligibility{Eligible: true}
	}
	return Eligibility{Eligible: false, DaysRemaining: CooldownDays - elapsed}
}

func ElapsedDays(from, now time.Time) int {
	d := now.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
