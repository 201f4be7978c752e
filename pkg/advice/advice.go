// Package advice turns averaged wearable metrics into a short health
// summary and a single ranked recommendation.
package advice

import (
	"math"
	"sort"
	"strings"
)

const (
	SleepHoursTarget = 7.0
	SleepHoursFloor  = 5.0
	HRVTarget        = 50.0
	HRVFloor         = 35.0
	StepsTarget      = 7000.0
	StepsFloor       = 4000.0

	SeverityHigh   = "high"
	SeverityMedium = "medium"

	summaryStable = "stable"
	summaryNoData = "no data available yet"
)

type Sample struct {
	Date  string   `json:"date,omitempty"`
	Value *float64 `json:"value"`
}

type Metrics struct {
	HRV        []Sample `json:"hrv"`
	SleepHours []Sample `json:"sleep_hours"`
	Steps      []Sample `json:"steps"`
}

type Item struct {
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Severity string `json:"severity"`
}

type Advice struct {
	Summary string `json:"summary"`
	Items   []Item `json:"items"`
}

// NoData is returned when no metrics are available for a range.
func NoData() *Advice {
	return &Advice{Summary: summaryNoData, Items: []Item{}}
}

// Average ignores samples without a finite value. ok is false when none remain.
func Average(samples []Sample) (avg float64, ok bool) {
	var sum float64
	var n int
	for _, s := range samples {
		if s.Value == nil || math.IsNaN(*s.Value) || math.IsInf(*s.Value, 0) {
			continue
		}
		sum += *s.Value
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

type candidate struct {
	item     Item
	priority int
}

func severity(avg, floor float64) string {
	if avg < floor {
		return SeverityHigh
	}
	return SeverityMedium
}

func severityRank(s string) int {
	if s == SeverityHigh {
		return 2
	}
	return 1
}

// Build flags each metric below its target and recommends only the most
// pressing one. Ties on severity go to HRV, then sleep, then steps.
func Build(m Metrics) *Advice {
	var summary []string
	var candidates []candidate

	if avg, ok := Average(m.SleepHours); ok && avg < SleepHoursTarget {
		summary = append(summary, "sleep is short")
		candidates = append(candidates, candidate{priority: 2, item: Item{
			Title:    "Improve sleep",
			Detail:   "Cut screen light before bed and keep a fixed schedule to improve sleep quality.",
			Severity: severity(avg, SleepHoursFloor),
		}})
	}
	if avg, ok := Average(m.HRV); ok && avg < HRVTarget {
		summary = append(summary, "stress is elevated")
		candidates = append(candidates, candidate{priority: 3, item: Item{
			Title:    "Raise HRV",
			Detail:   "Spend 10 minutes a day on deep breathing or meditation to relax.",
			Severity: severity(avg, HRVFloor),
		}})
	}
	if avg, ok := Average(m.Steps); ok && avg < StepsTarget {
		summary = append(summary, "activity is low")
		candidates = append(candidates, candidate{priority: 1, item: Item{
			Title:    "Move more",
			Detail:   "Walk an extra 10 to 15 minutes a day to build up your step count.",
			Severity: severity(avg, StepsFloor),
		}})
	}

	items := []Item{}
	if len(candidates) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool {
			a, b := candidates[i], candidates[j]
			if ra, rb := severityRank(a.item.Severity), severityRank(b.item.Severity); ra != rb {
				return ra > rb
			}
			return a.priority > b.priority
		})
		items = append(items, candidates[0].item)
	}

	if len(summary) == 0 {
		summary = append(summary, summaryStable)
	}
	return &Advice{Summary: strings.Join(summary, ", "), Items: items}
}
