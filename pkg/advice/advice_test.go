package advice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples(values ...float64) []Sample {
	out := make([]Sample, len(values))
	for i := range values {
		v := values[i]
		out[i] = Sample{Value: &v}
	}
	return out
}

func TestAverage(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		in     []Sample
		want   float64
		wantOk bool
	}{
		{"empty", nil, 0, false},
		{"all missing", []Sample{{}, {}}, 0, false},
		{"skips missing and nan", append(samples(4, 8), Sample{}, Sample{Value: &nan}), 6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Average(tt.in)
			assert.Equal(t, tt.wantOk, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name        string
		metrics     Metrics
		wantSummary string
		wantTitle   string
		wantSev     string
	}{
		{
			name:        "healthy",
			metrics:     Metrics{SleepHours: samples(7.5, 8), HRV: samples(60), Steps: samples(9000)},
			wantSummary: "stable",
		},
		{
			name:        "no metrics",
			metrics:     Metrics{},
			wantSummary: "stable",
		},
		{
			name:        "short sleep only",
			metrics:     Metrics{SleepHours: samples(6, 6.5)},
			wantSummary: "sleep is short",
			wantTitle:   "Improve sleep",
			wantSev:     SeverityMedium,
		},
		{
			name:        "medium tie goes to hrv",
			metrics:     Metrics{SleepHours: samples(6), HRV: samples(45), Steps: samples(6000)},
			wantSummary: "sleep is short, stress is elevated, activity is low",
			wantTitle:   "Raise HRV",
			wantSev:     SeverityMedium,
		},
		{
			name:        "high severity beats priority",
			metrics:     Metrics{SleepHours: samples(6), HRV: samples(45), Steps: samples(3000)},
			wantSummary: "sleep is short, stress is elevated, activity is low",
			wantTitle:   "Move more",
			wantSev:     SeverityHigh,
		},
		{
			name:        "high sleep over high steps",
			metrics:     Metrics{SleepHours: samples(4), Steps: samples(2000)},
			wantSummary: "sleep is short, activity is low",
			wantTitle:   "Improve sleep",
			wantSev:     SeverityHigh,
		},
		{
			name:        "thresholds are exclusive",
			metrics:     Metrics{SleepHours: samples(7), HRV: samples(50), Steps: samples(7000)},
			wantSummary: "stable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.metrics)
			assert.Equal(t, tt.wantSummary, got.Summary)
			if tt.wantTitle == "" {
				assert.Empty(t, got.Items)
				assert.NotNil(t, got.Items)
				return
			}
			require.Len(t, got.Items, 1)
			assert.Equal(t, tt.wantTitle, got.Items[0].Title)
			assert.Equal(t, tt.wantSev, got.Items[0].Severity)
		})
	}
}

func TestNoData(t *testing.T) {
	got := NoData()
	assert.Equal(t, "no data available yet", got.Summary)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}
