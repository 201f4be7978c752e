package insight

import (
	"fmt"
	"time"

	"mindcare-be/internal/constant"
	"mindcare-be/internal/entity"
)

var negativeDiaryMoods = []string{constant.MoodVerySad, constant.MoodDepressed, constant.MoodAnxious}

func progressIndicators(chat ChatAnalysis, diary DiaryAnalysis) []ProgressIndicator {
	indicators := []ProgressIndicator{}

	if len(chat.PositivePatterns) > 0 {
		indicators = append(indicators, ProgressIndicator{
			Type:        "positive",
			Category:    "therapy_engagement",
			Description: "Showing positive engagement in therapy conversations",
		})
	}
	if diary.MoodTrend == MoodTrendImproving {
		indicators = append(indicators, ProgressIndicator{
			Type:        "positive",
			Category:    "mood_improvement",
			Description: "Recent diary entries show mood improvement",
		})
	}
	if chat.EngagementLevel == "high" {
		indicators = append(indicators, ProgressIndicator{
			Type:        "positive",
			Category:    "consistent_engagement",
			Description: "Maintaining consistent engagement with mental health support",
		})
	}
	return indicators
}

func recommendations(chat ChatAnalysis, diary DiaryAnalysis) []Recommendation {
	recs := []Recommendation{}

	if containsString(chat.PrimaryConcerns, "anxiety") {
		recs = append(recs, Recommendation{
			Category:       "anxiety_management",
			Priority:       "high",
			Recommendation: "Consider incorporating more CBT techniques and anxiety management strategies",
			Rationale:      "Anxiety patterns identified in chat history",
		})
	}
	if containsString(chat.PrimaryConcerns, "depression") {
		recs = append(recs, Recommendation{
			Category:       "depression_support",
			Priority:       "high",
			Recommendation: "Focus on mood tracking and behavioral activation techniques",
			Rationale:      "Depression-related concerns identified in conversations",
		})
	}
	if diary.EntryFrequency == "low" {
		recs = append(recs, Recommendation{
			Category:       "self_monitoring",
			Priority:       "medium",
			Recommendation: "Encourage more regular diary entries for better mood tracking",
			Rationale:      "Low diary entry frequency may limit self-awareness",
		})
	}

	sessions := 0
	for _, n := range chat.TherapyEngagement {
		sessions += n
	}
	if sessions > 10 {
		recs = append(recs, Recommendation{
			Category:       "therapy_progression",
			Priority:       "medium",
			Recommendation: "Consider exploring advanced therapeutic techniques",
			Rationale:      "High engagement suggests readiness for deeper therapeutic work",
		})
	}
	return recs
}

// assessRisk only ever escalates: low to medium to high.
func assessRisk(chat ChatAnalysis, entries []*entity.DiaryEntry, now time.Time) RiskAssessment {
	level := constant.RiskLevelLow
	factors := []string{}

	escalate := func(to string) {
		if level != constant.RiskLevelHigh {
			level = to
		}
	}

	if hasHighRiskConcern(chat.PrimaryConcerns) {
		escalate(constant.RiskLevelHigh)
		factors = append(factors, "High-risk concerns identified in conversations")
	}

	if len(chat.ConcerningPatterns) > 2 {
		escalate(constant.RiskLevelMedium)
		factors = append(factors, "Multiple concerning patterns identified")
	}

	if containsString(chat.ConcerningPatterns, PatternNegativeSentiment) {
		escalate(constant.RiskLevelMedium)
		factors = append(factors, "Recent conversations show predominantly negative sentiment")
	}

	recent := entries
	if len(recent) > trendEntries {
		recent = recent[:trendEntries]
	}
	negative := 0
	for _, e := range recent {
		if containsString(negativeDiaryMoods, e.Mood) {
			negative++
		}
	}
	if negative >= 2 {
		escalate(constant.RiskLevelMedium)
		factors = append(factors, "Recent diary entries show persistent negative moods")
	}

	return RiskAssessment{Level: level, Factors: factors, AssessmentDate: now}
}

func progressScore(chat ChatAnalysis, diary DiaryAnalysis) int {
	score := 0

	if len(chat.PositivePatterns) > 0 {
		score += 2
	}
	if diary.MoodTrend == MoodTrendImproving {
		score += 2
	}
	if chat.EngagementLevel == "high" {
		score++
	}
	if diary.EntryFrequency != "low" {
		score++
	}

	if len(chat.ConcerningPatterns) > 2 {
		score -= 2
	}
	if diary.MoodTrend == MoodTrendDeclining {
		score -= 2
	}
	if containsString(chat.PrimaryConcerns, ConcernSuicidalIdeation) {
		score -= 3
	}
	return score
}

func overallProgress(chat ChatAnalysis, diary DiaryAnalysis) string {
	switch score := progressScore(chat, diary); {
	case score >= 4:
		return "excellent"
	case score >= 2:
		return "good"
	case score >= 0:
		return "stable"
	}
	return "needs_attention"
}

func keyAchievements(chat ChatAnalysis, diary DiaryAnalysis) []string {
	achievements := []string{}
	if chat.EngagementLevel == "high" {
		achievements = append(achievements, "Maintaining consistent engagement with mental health support")
	}
	if diary.EntryFrequency == "high" {
		achievements = append(achievements, "Regular self-reflection through diary entries")
	}
	if len(chat.PositivePatterns) > 0 {
		achievements = append(achievements, "Demonstrating positive therapeutic engagement")
	}
	return achievements
}

func improvementAreas(chat ChatAnalysis, diary DiaryAnalysis) []string {
	areas := []string{}
	if len(chat.ConcerningPatterns) > 0 {
		areas = append(areas, "Address concerning patterns identified in conversations")
	}
	if diary.EntryFrequency == "low" {
		areas = append(areas, "Increase frequency of self-monitoring through diary entries")
	}
	if len(chat.PrimaryConcerns) > 3 {
		areas = append(areas, "Focus on primary mental health concerns systematically")
	}
	return areas
}

func nextSteps(chat ChatAnalysis, diary DiaryAnalysis) []string {
	steps := []string{}
	if len(chat.DominantThemes) > 0 {
		steps = append(steps, fmt.Sprintf("Focus next sessions on %s management strategies", chat.DominantThemes[0].Topic))
	}
	if containsString(chat.PrimaryConcerns, "anxiety") {
		steps = append(steps, "Implement anxiety management techniques and coping strategies")
	}
	if diary.MoodTrend == MoodTrendImproving {
		steps = append(steps, "Continue current therapeutic approach while monitoring progress")
	}
	return append(steps, "Schedule follow-up assessment in 2-3 weeks")
}
