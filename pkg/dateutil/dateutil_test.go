package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDay(t *testing.T) {
	east := time.FixedZone("UTC+9", 9*60*60)
	west := time.FixedZone("UTC-5", -5*60*60)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"utc", time.Date(2024, 8, 15, 9, 30, 0, 0, time.UTC), time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)},
		{"west evening rolls forward", time.Date(2024, 8, 15, 22, 0, 0, 0, west), time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC)},
		{"east morning rolls back", time.Date(2024, 8, 15, 6, 0, 0, 0, east), time.Date(2024, 8, 14, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Day(tt.in))
		})
	}
}

func TestWindow(t *testing.T) {
	west := time.FixedZone("UTC-5", -5*60*60)
	from, to := Window(time.Date(2024, 8, 15, 22, 0, 0, 0, west), 7)
	assert.Equal(t, time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC), to)
	assert.Equal(t, time.Date(2024, 8, 9, 0, 0, 0, 0, time.UTC), from)
}
