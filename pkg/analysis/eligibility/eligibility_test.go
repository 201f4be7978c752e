package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	now := time.Date(2024, 7, 31, 15, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(-d)
		return &v
	}
	day := 24 * time.Hour

	tests := []struct {
		name string
		last *time.Time
		want Eligibility
	}{
		{name: "never analyzed", last: nil, want: Eligibility{Eligible: true}},
		{name: "twelve days ago", last: at(12 * day), want: Eligibility{Eligible: false, DaysRemaining: 18}},
		{name: "just now", last: at(0), want: Eligibility{Eligible: false, DaysRemaining: 30}},
		{name: "partial day rounds down", last: at(29*day + 23*time.Hour), want: Eligibility{Eligible: false, DaysRemaining: 1}},
		{name: "exactly thirty days", last: at(30 * day), want: Eligibility{Eligible: true}},
		{name: "thirty one days", last: at(31 * day), want: Eligibility{Eligible: true}},
		{name: "future timestamp", last: at(-5 * day), want: Eligibility{Eligible: false, DaysRemaining: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.last, now))
		})
	}
}

func TestCheck_DaysRemainingBounds(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h <= 40*24; h += 7 {
		last := now.Add(-time.Duration(h) * time.Hour)
		got := Check(&last, now)

		assert.GreaterOrEqual(t, got.DaysRemaining, 0)
		assert.LessOrEqual(t, got.DaysRemaining, CooldownDays)
		assert.Equal(t, got.Eligible, got.DaysRemaining == 0, "hours=%d", h)
	}
}
