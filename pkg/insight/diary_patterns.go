package insight

import (
	"strings"

	"mindcare-be/internal/entity"
)

const (
	MoodTrendNeutral   = "neutral"
	MoodTrendImproving = "improving"
	MoodTrendDeclining = "declining"
	MoodTrendStable    = "stable"

	trendEntries = 3
	trendMargin  = 0.5
	unknownMood  = 3.0
)

var moodScores = map[string]float64{
	"very_happy": 5, "happy": 4, "neutral": 3, "sad": 2, "very_sad": 1,
	"excited": 5, "content": 4, "okay": 3, "down": 2, "depressed": 1,
}

type emotionKeywords struct {
	emotion  string
	keywords []string
}

var emotionalKeywords = []emotionKeywords{
	{emotion: "anxiety", keywords: []string{"anxious", "worried", "nervous", "panic"}},
	{emotion: "sadness", keywords: []string{"sad", "down", "depressed", "blue"}},
	{emotion: "anger", keywords: []string{"angry", "frustrated", "mad", "irritated"}},
	{emotion: "joy", keywords: []string{"happy", "excited", "joyful", "glad"}},
}

func analyzeDiary(entries []*entity.DiaryEntry) DiaryAnalysis {
	if len(entries) == 0 {
		return DiaryAnalysis{
			MoodTrend:       MoodTrendNeutral,
			MoodPatterns:    []MoodCount{},
			EntryFrequency:  "low",
			KeyInsights:     []string{},
			EmotionalTrends: map[string]EmotionTrend{},
		}
	}

	moods := newCounter()
	for _, e := range entries {
		if e.Mood != "" {
			moods.add(e.Mood)
		}
	}
	patterns := make([]MoodCount, 0, len(moods.order))
	for _, m := range moods.order {
		patterns = append(patterns, MoodCount{Mood: m, Count: moods.counts[m]})
	}

	recent := entries
	if len(recent) > trendEntries {
		recent = recent[:trendEntries]
	}
	earlier := entries
	if len(earlier) > trendEntries {
		earlier = earlier[len(earlier)-trendEntries:]
	}

	return DiaryAnalysis{
		MoodTrend:       moodTrend(recent, earlier),
		MoodPatterns:    patterns,
		EntryFrequency:  diaryFrequency(len(entries)),
		KeyInsights:     diaryInsights(entries),
		EmotionalTrends: emotionalTrends(entries),
		TotalEntries:    len(entries),
	}
}

func moodTrend(recent, earlier []*entity.DiaryEntry) string {
	recentAvg := meanMood(recent)
	earlierAvg := meanMood(earlier)

	switch {
	case recentAvg > earlierAvg+trendMargin:
		return MoodTrendImproving
	case recentAvg < earlierAvg-trendMargin:
		return MoodTrendDeclining
	}
	return MoodTrendStable
}

// meanMood averages the scores of entries that have a mood. Moods missing
// from the table score as neutral.
func meanMood(entries []*entity.DiaryEntry) float64 {
	sum, n := 0.0, 0
	for _, e := range entries {
		if e.Mood == "" {
			continue
		}
		score, ok := moodScores[e.Mood]
		if !ok {
			score = unknownMood
		}
		sum += score
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func diaryFrequency(entryCount int) string {
	switch {
	case entryCount >= 6:
		return "high"
	case entryCount >= 3:
		return "medium"
	}
	return "low"
}

func diaryInsights(entries []*entity.DiaryEntry) []string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Content)
	}
	text := strings.ToLower(strings.Join(parts, " "))

	insights := []string{}
	if strings.Contains(text, "sleep") && (strings.Contains(text, "problem") || strings.Contains(text, "difficult")) {
		insights = append(insights, "Sleep-related concerns mentioned in diary entries")
	}
	if strings.Contains(text, "work") && strings.Contains(text, "stress") {
		insights = append(insights, "Work-related stress appears in diary reflections")
	}
	if strings.Contains(text, "grateful") || strings.Contains(text, "thankful") {
		insights = append(insights, "Expressing gratitude in diary entries - positive indicator")
	}
	return insights
}

// emotionalTrends counts entries mentioning each emotion family, split into
// the newer half and the older half of the window.
func emotionalTrends(entries []*entity.DiaryEntry) map[string]EmotionTrend {
	trends := map[string]EmotionTrend{}
	half := float64(len(entries)) / 2

	for i, e := range entries {
		content := strings.ToLower(e.Content)
		for _, family := range emotionalKeywords {
			if !mentionsAny(content, family.keywords) {
				continue
			}
			t := trends[family.emotion]
			if float64(i) < half {
				t.Recent++
			} else {
				t.Earlier++
			}
			trends[family.emotion] = t
		}
	}
	return trends
}

func mentionsAny(content string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(content, k) {
			return true
		}
	}
	return false
}
