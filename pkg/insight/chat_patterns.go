package insight

import (
	"sort"
	"strings"

	"mindcare-be/internal/entity"
)

const (
	PatternNegativeSentiment = "Increasing negative sentiment in recent conversations"
	PatternHighRiskConcerns  = "High-risk mental health concerns identified"
	PatternProgressLanguage  = "User expressing sense of progress and improvement"
	PatternPositiveSentiment = "Recent conversations show more positive sentiment"

	ConcernSuicidalIdeation = "suicidal_ideation"
	ConcernSelfHarm         = "self_harm"

	recentSignals  = 5
	dominantThemes = 5
	defaultTherapy = "DEFAULT"
)

var highRiskConcerns = []string{ConcernSuicidalIdeation, ConcernSelfHarm}

var progressWords = []string{"progress", "better", "improvement"}

func analyzeChat(signals []*entity.ConversationSignal) ChatAnalysis {
	if len(signals) == 0 {
		return ChatAnalysis{
			PrimaryConcerns:    []string{},
			DominantThemes:     []ThemeCount{},
			EngagementLevel:    "low",
			TherapyEngagement:  map[string]int{},
			ConcerningPatterns: []string{},
			PositivePatterns:   []string{},
			SessionFrequency:   "low",
		}
	}

	topics := newCounter()
	concerns := newCounter()
	therapy := map[string]int{}
	var sentiments SentimentDistribution

	for _, s := range signals {
		for _, t := range s.Topics {
			topics.add(t)
		}
		for _, c := range s.ConcernsIdentified {
			concerns.add(c)
		}

		switch s.Sentiment {
		case "positive":
			sentiments.Positive++
		case "negative":
			sentiments.Negative++
		case "neutral":
			sentiments.Neutral++
		}

		therapyType := s.TherapyType
		if therapyType == "" {
			therapyType = defaultTherapy
		}
		therapy[therapyType]++
	}

	themes := make([]ThemeCount, 0, len(topics.order))
	for _, t := range topics.order {
		themes = append(themes, ThemeCount{Topic: t, Frequency: topics.counts[t]})
	}
	sort.SliceStable(themes, func(i, j int) bool { return themes[i].Frequency > themes[j].Frequency })
	if len(themes) > dominantThemes {
		themes = themes[:dominantThemes]
	}

	return ChatAnalysis{
		PrimaryConcerns:       append([]string{}, concerns.order...),
		DominantThemes:        themes,
		EngagementLevel:       engagementLevel(len(signals)),
		TherapyEngagement:     therapy,
		ConcerningPatterns:    concerningPatterns(signals),
		PositivePatterns:      positivePatterns(signals),
		SessionFrequency:      sessionFrequency(signals),
		SentimentDistribution: sentiments,
	}
}

func engagementLevel(signalCount int) string {
	switch {
	case signalCount >= 20:
		return "high"
	case signalCount >= 10:
		return "medium"
	}
	return "low"
}

func sessionFrequency(signals []*entity.ConversationSignal) string {
	sessions := map[string]struct{}{}
	for _, s := range signals {
		sessions[s.SessionId] = struct{}{}
	}
	switch n := len(sessions); {
	case n >= 15:
		return "high"
	case n >= 8:
		return "medium"
	}
	return "low"
}

func mostRecent(signals []*entity.ConversationSignal) []*entity.ConversationSignal {
	if len(signals) > recentSignals {
		return signals[:recentSignals]
	}
	return signals
}

func concerningPatterns(signals []*entity.ConversationSignal) []string {
	patterns := []string{}

	negative := 0
	for _, s := range mostRecent(signals) {
		if s.Sentiment == "negative" {
			negative++
		}
	}
	if negative >= 3 {
		patterns = append(patterns, PatternNegativeSentiment)
	}

	for _, s := range signals {
		if hasHighRiskConcern(s.ConcernsIdentified) {
			patterns = append(patterns, PatternHighRiskConcerns)
			break
		}
	}
	return patterns
}

func positivePatterns(signals []*entity.ConversationSignal) []string {
	patterns := []string{}

	mentions := 0
	for _, s := range signals {
		content := strings.ToLower(s.Content)
		for _, w := range progressWords {
			if strings.Contains(content, w) {
				mentions++
				break
			}
		}
	}
	if mentions >= 2 {
		patterns = append(patterns, PatternProgressLanguage)
	}

	positive := 0
	for _, s := range mostRecent(signals) {
		if s.Sentiment == "positive" {
			positive++
		}
	}
	if positive >= 2 {
		patterns = append(patterns, PatternPositiveSentiment)
	}
	return patterns
}

func hasHighRiskConcern(concerns []string) bool {
	for _, c := range concerns {
		if containsString(highRiskConcerns, c) {
			return true
		}
	}
	return false
}
