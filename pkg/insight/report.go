// Package insight builds the consulting report from conversation signals
// and recent diary entries. Generation is a pure function of its inputs.
package insight

import (
	"sort"
	"time"

	"mindcare-be/internal/entity"

	"github.com/google/uuid"
)

const (
	// DiaryDays is the diary window covered by a report.
	DiaryDays = 7
	// SignalLimit is the number of conversation signals a report reads.
	SignalLimit = 25
)

type Report struct {
	UserID               uuid.UUID            `json:"user_id"`
	GeneratedAt          time.Time            `json:"generated_at"`
	Period               Period               `json:"period"`
	MentalHealthOverview MentalHealthOverview `json:"mental_health_overview"`
	ChatAnalysis         ChatAnalysis         `json:"chat_analysis"`
	DiaryAnalysis        DiaryAnalysis        `json:"diary_analysis"`
	Recommendations      []Recommendation     `json:"recommendations"`
	RiskAssessment       RiskAssessment       `json:"risk_assessment"`
	ProgressSummary      ProgressSummary      `json:"progress_summary"`
}

type Period struct {
	DiaryDays            int `json:"diary_days"`
	ChatSessionsAnalyzed int `json:"chat_sessions_analyzed"`
}

type MentalHealthOverview struct {
	PrimaryConcerns    []string            `json:"primary_concerns"`
	MoodTrend          string              `json:"mood_trend"`
	EngagementLevel    string              `json:"engagement_level"`
	ProgressIndicators []ProgressIndicator `json:"progress_indicators"`
}

type ProgressIndicator struct {
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type ThemeCount struct {
	Topic     string `json:"topic"`
	Frequency int    `json:"frequency"`
}

type SentimentDistribution struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

type ChatAnalysis struct {
	PrimaryConcerns       []string              `json:"primary_concerns"`
	DominantThemes        []ThemeCount          `json:"dominant_themes"`
	EngagementLevel       string                `json:"engagement_level"`
	TherapyEngagement     map[string]int        `json:"therapy_engagement"`
	ConcerningPatterns    []string              `json:"concerning_patterns"`
	PositivePatterns      []string              `json:"positive_patterns"`
	SessionFrequency      string                `json:"session_frequency"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
}

type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

type EmotionTrend struct {
	Recent  int `json:"recent"`
	Earlier int `json:"earlier"`
}

type DiaryAnalysis struct {
	MoodTrend       string                  `json:"mood_trend"`
	MoodPatterns    []MoodCount             `json:"mood_patterns"`
	EntryFrequency  string                  `json:"entry_frequency"`
	KeyInsights     []string                `json:"key_insights"`
	EmotionalTrends map[string]EmotionTrend `json:"emotional_trends"`
	TotalEntries    int                     `json:"total_entries"`
}

type Recommendation struct {
	Category       string `json:"category"`
	Priority       string `json:"priority"`
	Recommendation string `json:"recommendation"`
	Rationale      string `json:"rationale"`
}

type RiskAssessment struct {
	Level          string    `json:"level"`
	Factors        []string  `json:"factors"`
	AssessmentDate time.Time `json:"assessment_date"`
}

type ProgressSummary struct {
	OverallProgress     string   `json:"overall_progress"`
	KeyAchievements     []string `json:"key_achievements"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	NextSteps           []string `json:"next_steps"`
}

// Generate builds the report. Signals are ordered newest first by creation
// time and entries newest first by entry date before any rule runs, so the
// caller's ordering does not matter. Empty inputs yield the baseline report.
func Generate(userID uuid.UUID, signals []*entity.ConversationSignal, entries []*entity.DiaryEntry, now time.Time) *Report {
	signals = sortedSignals(signals)
	entries = sortedEntries(entries)

	chat := analyzeChat(signals)
	diary := analyzeDiary(entries)

	return &Report{
		UserID:      userID,
		GeneratedAt: now,
		Period: Period{
			DiaryDays:            DiaryDays,
			ChatSessionsAnalyzed: len(signals),
		},
		MentalHealthOverview: MentalHealthOverview{
			PrimaryConcerns:    chat.PrimaryConcerns,
			MoodTrend:          diary.MoodTrend,
			EngagementLevel:    chat.EngagementLevel,
			ProgressIndicators: progressIndicators(chat, diary),
		},
		ChatAnalysis:    chat,
		DiaryAnalysis:   diary,
		Recommendations: recommendations(chat, diary),
		RiskAssessment:  assessRisk(chat, entries, now),
		ProgressSummary: ProgressSummary{
			OverallProgress:     overallProgress(chat, diary),
			KeyAchievements:     keyAchievements(chat, diary),
			AreasForImprovement: improvementAreas(chat, diary),
			NextSteps:           nextSteps(chat, diary),
		},
	}
}

func sortedSignals(in []*entity.ConversationSignal) []*entity.ConversationSignal {
	out := make([]*entity.ConversationSignal, 0, len(in))
	for _, s := range in {
		if s != nil {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func sortedEntries(in []*entity.DiaryEntry) []*entity.DiaryEntry {
	out := make([]*entity.DiaryEntry, 0, len(in))
	for _, e := range in {
		if e != nil {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].EntryDate.After(out[j].EntryDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// counter tallies keys and remembers the order they were first seen.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
